package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand_HumanOutput(t *testing.T) {
	a := newTestApp(t)
	seedEvents(t, a)

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "0.1.0-test"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithApp(a))
	})

	assert.Contains(t, output, "Daybook Status")
	assert.Contains(t, output, "0.1.0-test")
	assert.Contains(t, output, "Events:        2")
	assert.Contains(t, output, "offline")
}

func TestStatusCommand_JSONOutput(t *testing.T) {
	a := newTestApp(t)
	seedEvents(t, a)

	cmd := &StatusCommand{globals: &GlobalFlags{JSON: true}, version: "0.1.0-test"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithApp(a))
	})

	var st statusJSON
	require.NoError(t, json.Unmarshal([]byte(output), &st))
	assert.Equal(t, 2, st.EventCount)
	assert.Equal(t, 95, st.RemainingQuota)
	assert.Equal(t, 95, st.DailyQuota)
	assert.False(t, st.Online)
	assert.Zero(t, st.ImageCacheRows)
}
