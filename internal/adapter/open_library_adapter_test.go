//go:build unit

package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"bookshelf/pkg/http_client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCover_FirstDocWithCover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "Dune", r.URL.Query().Get("title"))
		assert.Equal(t, "Frank Herbert", r.URL.Query().Get("author"))
		_, _ = w.Write([]byte(`{"docs":[{},{"cover_i":0},{"cover_i":11481354}]}`))
	}))
	defer srv.Close()

	c := NewOpenLibraryClient(srv.URL, 0, http_client.CreateHTTPClient(0))
	cover, err := c.FindCover(context.Background(), "Dune", "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/11481354-L.jpg", cover)
}

func TestFindCover_MissIsFinal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"docs":[]}`))
	}))
	defer srv.Close()

	c := NewOpenLibraryClient(srv.URL, 3, http_client.CreateHTTPClient(0))
	_, err := c.FindCover(context.Background(), "Unknown", "")
	assert.True(t, errors.Is(err, errNoCover))
	assert.Equal(t, int32(1), calls.Load())
}

func TestFindCover_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"docs":[{"cover_i":42}]}`))
	}))
	defer srv.Close()

	c := NewOpenLibraryClient(srv.URL, 1, http_client.CreateHTTPClient(0))
	cover, err := c.FindCover(context.Background(), "Fondation", "Isaac Asimov")
	require.NoError(t, err)
	assert.Equal(t, coverURL(42), cover)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFindCover_GivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewOpenLibraryClient(srv.URL, 1, http_client.CreateHTTPClient(0))
	_, err := c.FindCover(context.Background(), "Sapiens", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
