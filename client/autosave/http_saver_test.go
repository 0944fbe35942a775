package autosave

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSaver_SendsAuthorizedPut(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody saveContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	saver := NewHTTPSaver(server.URL, "tok123", nil)
	title := "New Title"
	err := saver.SaveContent(context.Background(), "0123456789abcdef01234567", "body text", &title)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v1/files/0123456789abcdef01234567/content", gotPath)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "body text", gotBody.Content)
	require.NotNil(t, gotBody.Title)
	assert.Equal(t, "New Title", *gotBody.Title)
}

func TestHTTPSaver_OmitsUnchangedTitle(t *testing.T) {
	var raw map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	saver := NewHTTPSaver(server.URL, "", nil)
	err := saver.SaveContent(context.Background(), "0123456789abcdef01234567", "body", nil)
	require.NoError(t, err)

	_, hasTitle := raw["title"]
	assert.False(t, hasTitle, "nil title must not appear in the payload")
}

func TestHTTPSaver_SurfacesRejectionMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "no edit access"})
	}))
	defer server.Close()

	saver := NewHTTPSaver(server.URL, "tok", nil)
	err := saver.SaveContent(context.Background(), "0123456789abcdef01234567", "body", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "no edit access")
}

func TestHTTPSaver_StatusOnlyErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer server.Close()

	saver := NewHTTPSaver(server.URL, "tok", nil)
	err := saver.SaveContent(context.Background(), "0123456789abcdef01234567", "body", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "504")
}

func TestHTTPSaver_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	saver := NewHTTPSaver(server.URL, "tok", nil)
	err := saver.SaveContent(ctx, "0123456789abcdef01234567", "body", nil)
	assert.Error(t, err)
}
