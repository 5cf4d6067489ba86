package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/searxng-mcp/internal/research"
	"github.com/Laisky/searxng-mcp/library/config"
)

// TestNewSearchStackRunsResearch verifies the wired client and engine fan out against SearXNG.
func TestNewSearchStackRunsResearch(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/search" || r.URL.Query().Get("format") != "json" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"results":[{"url":"https://shared.example","title":"shared"},{"url":"https://%s.example/%d"}]}`,
			r.URL.Query().Get("categories"), n)
	}))
	defer server.Close()

	settings := config.LoadSettingsWithGetter(func(key string) any {
		if key == config.KeySearxngURL {
			return server.URL + "/"
		}
		return nil
	})
	require.Equal(t, 10*time.Second, settings.Searxng.Timeout)

	client, engine, err := newSearchStack(settings)
	require.NoError(t, err)
	require.Equal(t, server.URL+"/search", client.Endpoint())

	result, err := engine.Research(context.Background(), "topic", research.DepthQuick)
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
	require.Equal(t, 3, result.TotalUnique)
	require.Equal(t, "https://shared.example", result.Unique[0].URL)
	require.Zero(t, result.StrategiesFailed)
}

// TestNewSearchStackRejectsBadURL verifies an unusable SearXNG URL fails fast.
func TestNewSearchStackRejectsBadURL(t *testing.T) {
	settings := config.LoadSettingsWithGetter(func(key string) any {
		if key == config.KeySearxngURL {
			return "ftp://searx.example.org"
		}
		return nil
	})

	_, _, err := newSearchStack(settings)
	require.Error(t, err)
}
