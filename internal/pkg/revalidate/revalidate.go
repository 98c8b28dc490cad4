package revalidate

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/emre/notesphere/internal/pkg/logger"
)

// Invalidator notifies the presentation layer that cached views of a logical
// path are stale. Calls are fire-and-forget: failures are logged, never
// surfaced to the mutation that triggered them.
type Invalidator interface {
	Invalidate(path string)
}

// WebhookInvalidator posts invalidation requests to the frontend's
// revalidation endpoint.
type WebhookInvalidator struct {
	endpoint string
	secret   string
	client   *http.Client
}

// NewWebhookInvalidator creates a WebhookInvalidator for the given endpoint.
// The secret is sent as a bearer token so the endpoint can reject strangers.
func NewWebhookInvalidator(endpoint, secret string) *WebhookInvalidator {
	return &WebhookInvalidator{
		endpoint: endpoint,
		secret:   secret,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type invalidateRequest struct {
	Path string `json:"path"`
}

// Invalidate sends the invalidation in the background.
func (w *WebhookInvalidator) Invalidate(path string) {
	go func() {
		body, err := json.Marshal(invalidateRequest{Path: path})
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to encode revalidation request")
			return
		}

		req, err := http.NewRequest(http.MethodPost, w.endpoint, bytes.NewReader(body))
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to build revalidation request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if w.secret != "" {
			req.Header.Set("Authorization", "Bearer "+w.secret)
		}

		resp, err := w.client.Do(req)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Revalidation request failed")
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("Revalidation endpoint returned non-success")
			return
		}

		logger.Debug().Str("path", path).Msg("Revalidation sent")
	}()
}

// NopInvalidator is used when no revalidation endpoint is configured.
type NopInvalidator struct{}

// Invalidate does nothing.
func (NopInvalidator) Invalidate(string) {}
