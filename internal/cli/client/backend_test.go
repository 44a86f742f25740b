package client

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/printmarket-dev/printmarket/internal/cli/session"
)

// fakeBackend is an in-process stand-in for the marketplace API
type fakeBackend struct {
	server *httptest.Server
	hits   atomic.Int32

	mu      sync.Mutex
	lastReq *http.Request
}

func newFakeBackend(t *testing.T, routes func(r *gin.Engine)) *fakeBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fb := &fakeBackend{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		fb.hits.Add(1)
		fb.mu.Lock()
		fb.lastReq = c.Request.Clone(c.Request.Context())
		fb.mu.Unlock()
		c.Next()
	})
	routes(r)

	fb.server = httptest.NewServer(r)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) URL() string {
	return fb.server.URL
}

func (fb *fakeBackend) Hits() int {
	return int(fb.hits.Load())
}

func (fb *fakeBackend) LastRequest() *http.Request {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.lastReq
}

// newTestClient returns a client for fb with an in-memory session
func newTestClient(fb *fakeBackend) (*Client, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return New(fb.URL(), store), store
}

// loggedIn seeds the store with a token and user
func loggedIn(t *testing.T, store session.Store) {
	t.Helper()
	if err := store.SetToken("t-existing"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	if err := store.SetUser(&session.User{ID: 7, UUID: "u7", Email: "c@d.com", Role: "CUSTOMER"}); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}
