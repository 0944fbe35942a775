package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSaver persists content through the REST API
type HTTPSaver struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPSaver creates a saver against the given API base URL, e.g.
// "https://api.example.com". The bearer token authenticates the session.
func NewHTTPSaver(baseURL, token string, client *http.Client) *HTTPSaver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSaver{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}
}

type saveContentRequest struct {
	Content string  `json:"content"`
	Title   *string `json:"title,omitempty"`
}

type saveContentResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SaveContent implements Saver
func (s *HTTPSaver) SaveContent(ctx context.Context, fileID, content string, title *string) error {
	body, err := json.Marshal(saveContentRequest{Content: content, Title: title})
	if err != nil {
		return fmt.Errorf("encoding save request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/files/%s/content", s.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("saving file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiResp saveContentResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &apiResp); err == nil && apiResp.Error != "" {
		return fmt.Errorf("save rejected (%d): %s", resp.StatusCode, apiResp.Error)
	}
	return fmt.Errorf("save rejected with status %d", resp.StatusCode)
}
