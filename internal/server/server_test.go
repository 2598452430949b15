package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/api"
)

func TestNewEngineStampsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewEngine(hclog.NewNullLogger(), &api.Deps{Logger: hclog.NewNullLogger()})

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header to be set")
	}
}

func TestNewEngineHandlesCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewEngine(hclog.NewNullLogger(), &api.Deps{Logger: hclog.NewNullLogger()})

	req := httptest.NewRequest(http.MethodOptions, "/does-not-exist", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header to be set")
	}
}
