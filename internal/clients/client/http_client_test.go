package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	baseURL string
}

func (c *testClient) GetBaseURL() string                      { return c.baseURL }
func (c *testClient) GetDefaultRequestTimeout() time.Duration { return time.Second }
func (c *testClient) GetHttpClient() *http.Client             { return &http.Client{} }

type echoRequest struct {
	Value uint64 `json:"value"`
}

type echoResponse struct {
	Doubled uint64 `json:"doubled"`
}

func TestSendRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			var req echoRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			assert.Equal(t, "key", r.Header.Get("X-Test"))
			_ = json.NewEncoder(w).Encode(echoResponse{Doubled: req.Value * 2})
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("not found"))
		}
	}))
	defer server.Close()

	c := &testClient{baseURL: server.URL}
	ctx := t.Context()

	t.Run("ok", func(t *testing.T) {
		resp, err := SendRequest[echoRequest, echoResponse](ctx, c, http.MethodPost, &HttpClientOptions{
			Path:         "/echo",
			TemplatePath: "/echo",
			Headers:      map[string]string{"X-Test": "key"},
		}, &echoRequest{Value: 21})
		require.NoError(t, err)
		assert.Equal(t, uint64(42), resp.Doubled)
	})
	t.Run("empty body", func(t *testing.T) {
		_, err := SendRequest[struct{}, echoResponse](ctx, c, http.MethodGet, &HttpClientOptions{Path: "/empty"}, nil)
		require.NoError(t, err)
	})
	t.Run("status error", func(t *testing.T) {
		_, err := SendRequest[struct{}, echoResponse](ctx, c, http.MethodGet, &HttpClientOptions{Path: "/missing"}, nil)
		code, ok := StatusCode(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, code)
	})
	t.Run("method not allowed", func(t *testing.T) {
		_, err := SendRequest[struct{}, echoResponse](ctx, c, http.MethodDelete, &HttpClientOptions{Path: "/echo"}, nil)
		assert.ErrorContains(t, err, "not allowed")
	})
}
