package pipeline

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-koan-exact/pkg/httpclient"
)

const casePage = `<!DOCTYPE html>
<html>
<head><title>
  Case 12: The Stone
</title></head>
<body>
  <div class="koan">
    <p>A novice asked the master about the build.</p>
  </div>
  <div class="koan">
    <p>The master was silent.</p>
  </div>
</body>
</html>`

func TestFetchCase(t *testing.T) {
	t.Run("fetches and extracts a case", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/case/random", r.URL.Path)
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, casePage)
		}))
		defer server.Close()

		c, err := FetchCase(context.Background(), httpclient.New(0), server.URL+"/case/random", 0)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Case 12: The Stone", c.Title)
		require.True(t, c.HasText())
		assert.Equal(t, "A novice asked the master about the build.The master was silent.", *c.Text)
	})

	t.Run("page without title yields no case", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html><body><div class=\"koan\">orphan</div></body></html>")
		}))
		defer server.Close()

		c, err := FetchCase(context.Background(), httpclient.New(0), server.URL, 0)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("status error is wrapped with url", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c, err := FetchCase(context.Background(), httpclient.New(0), server.URL, 0)
		require.Error(t, err)
		assert.Nil(t, c)
		assert.True(t, httpclient.IsStatusError(err))
		assert.Contains(t, err.Error(), server.URL)
	})

	t.Run("overall timeout is applied", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		_, err := FetchCase(context.Background(), httpclient.New(0), server.URL, 20*time.Millisecond)
		require.Error(t, err)
		assert.ErrorIs(t, err, httpclient.ErrRequestFailed)
	})

	t.Run("nil fetcher is rejected", func(t *testing.T) {
		_, err := FetchCase(context.Background(), nil, "http://example.com", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Extractorの初期化エラー")
	})
}
