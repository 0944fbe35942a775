package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// UnloadPayload is the final best-effort write issued during session
// teardown.
type UnloadPayload struct {
	FileID  string `json:"fileId"`
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
}

// BestEffortSender delivers a payload without blocking the caller and
// without any delivery guarantee. The controller never awaits the
// result; implementations must survive the session going away.
type BestEffortSender interface {
	Send(payload UnloadPayload)
}

// BeaconSender posts the payload to the save-on-unload endpoint from a
// detached goroutine with its own timeout, so delivery does not depend
// on the calling session staying alive.
type BeaconSender struct {
	endpoint string
	token    string
	client   *http.Client
	timeout  time.Duration
	logger   *zap.Logger
}

// NewBeaconSender creates a sender targeting the unload endpoint
func NewBeaconSender(endpoint, token string, logger *zap.Logger) *BeaconSender {
	return &BeaconSender{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{},
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

// Send fires the request and returns immediately
func (s *BeaconSender) Send(payload UnloadPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if s.token != "" {
			req.Header.Set("Authorization", "Bearer "+s.token)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			if s.logger != nil {
				s.logger.Debug("unload beacon failed", zap.Error(err))
			}
			return
		}
		resp.Body.Close()
	}()
}
