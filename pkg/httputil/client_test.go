package httputil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDo(t *testing.T) {
	var gotRequest *http.Request
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Range", "0-0/1")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"id": 1}]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	params := url.Values{}
	params.Set("id", "eq.1")
	headers := http.Header{}
	headers.Set("Prefer", "count=exact")

	resp, err := client.Do(context.Background(), http.MethodPost, "articles", map[string]any{"a": 1}, params, headers)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0-0/1", resp.Headers.Get("Content-Range"))
	assert.JSONEq(t, `[{"id": 1}]`, string(resp.Body))

	assert.Equal(t, "/articles", gotRequest.URL.Path)
	assert.Equal(t, "eq.1", gotRequest.URL.Query().Get("id"))
	assert.Equal(t, "count=exact", gotRequest.Header.Get("Prefer"))
	assert.Equal(t, "application/json", gotRequest.Header.Get("Content-Type"))
	assert.NotEmpty(t, gotRequest.Header.Get(RequestIDHeader))
	assert.JSONEq(t, `{"a": 1}`, string(gotBody))
}

func TestClientDoPayloadKinds(t *testing.T) {
	tests := []struct {
		name     string
		payload  any
		wantBody string
	}{
		{"raw bytes pass through", []byte(`{"x":1}`), `{"x":1}`},
		{"string passes through", `{"y":2}`, `{"y":2}`},
		{"values marshal to JSON", map[string]int{"z": 3}, `{"z":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				buf, _ := io.ReadAll(r.Body)
				got = string(buf)
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			client, err := NewClient(server.URL)
			require.NoError(t, err)

			_, err = client.Do(context.Background(), http.MethodPost, "t", tt.payload, nil, nil)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantBody, got)
		})
	}
}

func TestClientDoReturnsNon2xxAsResponse(t *testing.T) {
	// Error classification belongs to the query layer; the transport
	// must not turn a 4xx/5xx exchange into a Go error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "gone"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), http.MethodGet, "missing", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClientDoTransportFailure(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1", WithTimeout(200*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Do(context.Background(), http.MethodGet, "x", nil, nil, nil)
	require.Error(t, err)
}

func TestClientRetryRecoversTransientFailure(t *testing.T) {
	var attempts int
	var flaky *httptest.Server
	flaky = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			// Drop the first connection mid-request.
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				conn.Close()
			}
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer flaky.Close()

	client, err := NewClient(flaky.URL, WithRetry(RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     50 * time.Millisecond,
	}))
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), http.MethodGet, "t", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.GreaterOrEqual(t, attempts, 2)
}

func TestResponseJSON(t *testing.T) {
	resp := &Response{Body: []byte(`{"id": 7}`)}
	var v struct {
		ID int `json:"id"`
	}
	require.NoError(t, resp.JSON(&v))
	assert.Equal(t, 7, v.ID)

	resp = &Response{Body: []byte(`нет`)}
	require.Error(t, resp.JSON(&json.RawMessage{}))
}

func TestRedactQuery(t *testing.T) {
	u, _ := url.Parse("http://x/t?id=eq.secret&select=name")
	got := redactQuery(u)
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "id")
}
