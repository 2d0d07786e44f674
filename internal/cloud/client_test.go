package cloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"famick/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cloudStub struct {
	mu          sync.Mutex
	tokenCalls  atomic.Int32
	pushCalls   atomic.Int32
	validTokens map[string]bool
	nextToken   string
	pushStatus  int
}

func newCloudStub() *cloudStub {
	return &cloudStub{validTokens: map[string]bool{}, nextToken: "token-1", pushStatus: http.StatusOK}
}

func (s *cloudStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/token", func(w http.ResponseWriter, r *http.Request) {
		s.tokenCalls.Add(1)
		s.mu.Lock()
		token := s.nextToken
		s.validTokens[token] = true
		s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"access_token": token, "expires_in": 3600})
	})
	mux.HandleFunc("POST /v1/tenants/", func(w http.ResponseWriter, r *http.Request) {
		s.pushCalls.Add(1)
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		ok := s.validTokens[token]
		status := s.pushStatus
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(status)
	})
	return mux
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(config.CloudConfig{
		BaseURL:      srv.URL,
		ClientID:     "cid",
		ClientSecret: "secret",
	}, srv.Client())
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.CloudConfig{}, http.DefaultClient)
	assert.Error(t, err)
}

func TestPushItem_Success(t *testing.T) {
	stub := newCloudStub()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv)
	res := c.PushItem(context.Background(), "tenant-1", "product", []byte(`{}`))

	assert.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int32(1), stub.tokenCalls.Load(), "token fetched once lazily")

	// Second push reuses the cached token.
	res = c.PushItem(context.Background(), "tenant-1", "product", []byte(`{}`))
	assert.True(t, res.Success)
	assert.Equal(t, int32(1), stub.tokenCalls.Load())
}

func TestPushItem_401RefreshAndRetryOnce(t *testing.T) {
	stub := newCloudStub()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv)

	// Acquire a token, then invalidate it server-side to force a 401.
	res := c.PushItem(context.Background(), "tenant-1", "product", []byte(`{}`))
	require.True(t, res.Success)

	stub.mu.Lock()
	stub.validTokens = map[string]bool{}
	stub.nextToken = "token-2"
	stub.mu.Unlock()

	res = c.PushItem(context.Background(), "tenant-1", "product", []byte(`{}`))

	assert.True(t, res.Success, "push succeeds after a single refresh-and-retry")
	assert.Equal(t, int32(2), stub.tokenCalls.Load())
}

func TestPushItem_FailureIsResultNotError(t *testing.T) {
	stub := newCloudStub()
	stub.pushStatus = http.StatusInternalServerError
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv)
	res := c.PushItem(context.Background(), "tenant-1", "product", []byte(`{}`))

	assert.False(t, res.Success)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Contains(t, res.Message, "cloud returned 500")
}

func TestRefreshToken_SingleRefreshUnderConcurrency(t *testing.T) {
	stub := newCloudStub()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv)

	// Prime the cache.
	_, err := c.currentToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), stub.tokenCalls.Load())

	stub.mu.Lock()
	stub.nextToken = "token-2"
	stub.mu.Unlock()

	// Many goroutines observe the same stale token; only one refresh happens.
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.refreshToken(context.Background(), "token-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(2), stub.tokenCalls.Load(), "concurrent 401s trigger exactly one refresh")
}
