package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.EscapedPath(), r.URL.RawQuery
		if r.URL.Path == "/Atlantis" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("New York: ☀️ +21°C ↗11km/h"))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")

	status, body, err := c.Fetch(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "New York: ☀️ +21°C ↗11km/h", body)
	assert.Equal(t, "/New%20York", gotPath)
	assert.Equal(t, "format=4", gotQuery)

	status, _, err = c.Fetch(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFetchThrottled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	before := c.Limiter.CurrentLimit()

	status, _, err := c.Fetch(context.Background(), "Oslo")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Less(t, c.Limiter.CurrentLimit(), before)
}

func TestFetchCancelled(t *testing.T) {
	c := New("http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Fetch(ctx, "Oslo")
	assert.ErrorIs(t, err, context.Canceled)
}
