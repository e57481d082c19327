package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lorahub/chirpstack-bridge/internal/apierror"
)

func TestDo(t *testing.T) {
	t.Run("request headers and url", func(t *testing.T) {
		assert := require.New(t)

		var gotPath, gotAuth, gotContentType, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Grpc-Metadata-Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{"result": [], "totalCount": 0}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", time.Second)

		q := url.Values{}
		q.Set("limit", "10")
		q.Set("offset", "0")

		out, err := client.Do(context.Background(), "GET", "applications", q, nil)
		assert.NoError(err)
		assert.Equal("/api/applications", gotPath)
		assert.Equal("Bearer test-api-key", gotAuth)
		assert.Equal("application/json", gotContentType)
		assert.Equal("limit=10&offset=0", gotQuery)
		assert.Equal(map[string]interface{}{
			"result":     []interface{}{},
			"totalCount": float64(0),
		}, out)
	})

	t.Run("empty body returns empty map", func(t *testing.T) {
		assert := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", time.Second)

		out, err := client.Do(context.Background(), "DELETE", "applications/app-1", nil, nil)
		assert.NoError(err)
		assert.Equal(map[string]interface{}{}, out)
	})

	t.Run("non-2xx returns UpstreamHTTPError with body", func(t *testing.T) {
		assert := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "object does not exist"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", time.Second)

		_, err := client.Do(context.Background(), "GET", "devices/0102030405060708", nil, nil)

		var httpErr apierror.UpstreamHTTPError
		assert.ErrorAs(err, &httpErr)
		assert.Equal(http.StatusNotFound, httpErr.Status)
		assert.Equal(`{"error": "object does not exist"}`, string(httpErr.Body))
	})

	t.Run("request body is sent as json", func(t *testing.T) {
		assert := require.New(t)

		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", time.Second)

		_, err := client.Do(context.Background(), "POST", "applications", nil, map[string]interface{}{
			"application": map[string]interface{}{"name": "test-app"},
		})
		assert.NoError(err)
		assert.JSONEq(`{"application": {"name": "test-app"}}`, string(gotBody))
	})

	t.Run("timeout is not an UpstreamHTTPError", func(t *testing.T) {
		assert := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", 20*time.Millisecond)

		_, err := client.Do(context.Background(), "GET", "applications", nil, nil)
		assert.Error(err)

		var httpErr apierror.UpstreamHTTPError
		assert.False(errors.As(err, &httpErr))
	})

	t.Run("context cancellation aborts the call", func(t *testing.T) {
		assert := require.New(t)

		started := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			time.Sleep(time.Second)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-api-key", 0)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-started
			cancel()
		}()

		start := time.Now()
		_, err := client.Do(ctx, "GET", "applications", nil, nil)
		assert.Error(err)
		assert.Less(time.Since(start), time.Second)
	})
}
