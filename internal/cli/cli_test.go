package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFlag(t *testing.T) {
	output := captureOutput(t, func() {
		err := RunWithArgs("0.1.0-test", []string{"--version"})
		assert.NoError(t, err)
	})
	assert.Contains(t, output, "daybook 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})
	assert.Equal(t, "daybook 1.2.3", strings.TrimSpace(output))
}

func TestAllSubcommandsRegistered(t *testing.T) {
	parser, _, _ := buildParser("test")

	for _, name := range []string{"today", "date", "random", "image", "status", "prune", "purge"} {
		assert.NotNil(t, parser.Find(name), "subcommand %q should be registered", name)
	}
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"frobnicate"})
	assert.Error(t, err)
}

func TestDateCommandRequiresMonthAndDay(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"date"})
	assert.Error(t, err)
}
