package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchClient_MissingCredentials(t *testing.T) {
	_, err := NewSearchClient("", "", "engine", "png", 10, time.Second)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewSearchClient("", "key", "", "png", 10, time.Second)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSearch_RequestShapeAndLinks(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"key":        q.Get("key"),
			"cx":         q.Get("cx"),
			"q":          q.Get("q"),
			"searchType": q.Get("searchType"),
			"fileType":   q.Get("fileType"),
			"num":        q.Get("num"),
		}
		w.Write([]byte(`{"items":[
			{"link":"https://img.example.com/a.png"},
			{"link":"https://img.example.com/b.jpg"},
			{"link":""}
		]}`))
	}))
	defer srv.Close()

	client, err := NewSearchClient(srv.URL, "test-key", "test-cx", "png", 10, time.Second)
	require.NoError(t, err)

	links, err := client.Search(context.Background(), "1969 moon landing")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "test-cx", gotQuery["cx"])
	assert.Equal(t, "1969 moon landing", gotQuery["q"])
	assert.Equal(t, "image", gotQuery["searchType"])
	assert.Equal(t, "png", gotQuery["fileType"])
	assert.Equal(t, "10", gotQuery["num"])

	// Provider order preserved, empty links dropped.
	assert.Equal(t, []string{"https://img.example.com/a.png", "https://img.example.com/b.jpg"}, links)
}

func TestSearch_NonSuccessStatusIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewSearchClient(srv.URL, "key", "cx", "png", 10, time.Second)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "query")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
}

func TestSearch_NoItemsKeyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewSearchClient(srv.URL, "key", "cx", "png", 10, time.Second)
	require.NoError(t, err)

	links, err := client.Search(context.Background(), "query")
	require.NoError(t, err)
	assert.Empty(t, links)
}
