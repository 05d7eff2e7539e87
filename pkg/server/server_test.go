package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/psl/pkg/config"
)

func metricsStub() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "psl_assess_assessments_total 1\n")
	})
}

func TestServerHandler(t *testing.T) {
	tests := []struct {
		name       string
		cfgPath    string
		reqPath    string
		wantStatus int
		wantBody   string
	}{
		{name: "configured path", cfgPath: "/stats", reqPath: "/stats", wantStatus: http.StatusOK, wantBody: "assessments_total"},
		{name: "default path", cfgPath: "", reqPath: "/metrics", wantStatus: http.StatusOK, wantBody: "assessments_total"},
		{name: "health", cfgPath: "", reqPath: "/health", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "unknown route", cfgPath: "", reqPath: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(&config.MetricsConfig{Path: tt.cfgPath}, metricsStub())

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.reqPath, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServerStartAndShutdown(t *testing.T) {
	s := NewServer(&config.MetricsConfig{ListenAddress: "127.0.0.1:0", Path: "/metrics"}, metricsStub())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Addr() == nil {
		t.Fatal("server did not start")
	}
	if !s.IsRunning() {
		t.Error("IsRunning() = false after start")
	}

	resp, err := http.Get("http://" + s.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "assessments_total") {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
	if s.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}

func TestServerListenError(t *testing.T) {
	s := NewServer(&config.MetricsConfig{ListenAddress: "256.0.0.1:bad"}, metricsStub())
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start() with an invalid address should return error")
	}
}
