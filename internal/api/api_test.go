package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/cache"
	"github.com/mantonx/reelcast/internal/encoder"
	"github.com/mantonx/reelcast/internal/resolver"
	"github.com/mantonx/reelcast/internal/transcoder"
)

func newTestEngine(t *testing.T, resolverHandler http.HandlerFunc) (*gin.Engine, *Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	store := cache.NewStore(filepath.Join(root, "cache"), filepath.Join(root, "metadata"))
	if err := store.Wipe(hclog.NewNullLogger()); err != nil {
		t.Fatal(err)
	}

	var upstream *httptest.Server
	if resolverHandler != nil {
		upstream = httptest.NewServer(resolverHandler)
		t.Cleanup(upstream.Close)
	}

	driver := encoder.NewDriver(hclog.NewNullLogger(), "/bin/false")
	manager := transcoder.NewManager(hclog.NewNullLogger(), store, driver, nil)

	deps := &Deps{
		Logger:  hclog.NewNullLogger(),
		Manager: manager,
		Store:   store,
	}
	if upstream != nil {
		deps.Resolver = resolver.New(upstream.URL, "")
	}

	engine := gin.New()
	RegisterRoutes(engine, deps)
	return engine, deps
}

func TestGetTranscodedMissingClientIDIsBadRequest(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/movie/some-slug/720p/index.m3u8", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetChunkInvalidSegmentNumber(t *testing.T) {
	engine, _ := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"path": "/media/movie.mkv"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/movie/some-slug/720p/not-a-segment.ts", nil)
	req.Header.Set("X-CLIENT-ID", "client-1")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
