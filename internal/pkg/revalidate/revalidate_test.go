package revalidate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	path   string
	bearer string
}

func TestWebhookInvalidatorPostsPath(t *testing.T) {
	var mu sync.Mutex
	var captured []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Path string `json:"path"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		mu.Lock()
		captured = append(captured, capturedRequest{
			path:   body.Path,
			bearer: r.Header.Get("Authorization"),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	inv := NewWebhookInvalidator(srv.URL, "hook-secret")
	inv.Invalidate("/subjects")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(captured) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/subjects", captured[0].path)
	assert.Equal(t, "Bearer hook-secret", captured[0].bearer)
}

func TestWebhookInvalidatorSurvivesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	inv := NewWebhookInvalidator(srv.URL, "")

	// Failures are logged, never panic or block the caller
	inv.Invalidate("/notes")
	srv.Close()
	inv.Invalidate("/notes")

	time.Sleep(50 * time.Millisecond)
}

func TestNopInvalidator(t *testing.T) {
	NopInvalidator{}.Invalidate("/anything")
}
