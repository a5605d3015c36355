package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "/v2/things", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("Authorization"))
		assert.Equal(t, "override", r.Header.Get("X-Trace"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"a":1}`, string(body))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", NewHTTPClient(time.Second), map[string]string{"Authorization": "key-1", "X-Trace": "default"})
	status, body, err := c.Do(context.Background(), http.MethodPost, "v2/things", []byte(`{"a":1}`), map[string]string{"X-Trace": "override"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClientDoTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", NewHTTPClient(200*time.Millisecond), nil)
	_, _, err := c.Do(context.Background(), http.MethodGet, "/", nil, nil)
	assert.Error(t, err)
}
