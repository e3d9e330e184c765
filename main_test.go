package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chartdeck/internal/config"
	"chartdeck/internal/server"
	"chartdeck/internal/storage"
)

func TestHealthEndpoint(t *testing.T) {
	t.Setenv("STORAGE_MODE", "local")
	t.Setenv("LOCAL_DATA_DIR", t.TempDir())
	t.Setenv("RANDOM_SEED", "5")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	client, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	srv, err := server.NewServer(ctx, cfg, client, nil)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	httpServer := newHTTPServer(cfg, srv.SetupRoutes())
	if httpServer.Addr != ":8980" {
		t.Errorf("Expected default address :8980, got %s", httpServer.Addr)
	}

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	httpServer.Handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("handler returned unexpected body: got %v", rr.Body.String())
	}
}

func TestThemeTogglePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOCAL_DATA_DIR", dir)

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	start := func() http.Handler {
		client, err := storage.NewStorageClient(ctx, cfg)
		if err != nil {
			t.Fatalf("Failed to create storage: %v", err)
		}
		srv, err := server.NewServer(ctx, cfg, client, nil)
		if err != nil {
			t.Fatalf("Failed to create server: %v", err)
		}
		return srv.SetupRoutes()
	}

	rr := httptest.NewRecorder()
	start().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/theme/toggle", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("toggle returned %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	start().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if !strings.Contains(rr.Body.String(), `"theme":{"dark":true}`) {
		t.Errorf("Expected dark theme after restart, got %s", rr.Body.String())
	}
}

func TestConfigLoadRejectsBadDefaults(t *testing.T) {
	t.Setenv("DEFAULT_REGION", "atlantis")

	if _, err := config.Load(context.Background()); err == nil {
		t.Error("Expected config load to fail for unknown region")
	}
}
