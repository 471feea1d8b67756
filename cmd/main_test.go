package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/exdivpulse/config"
	"github.com/guttosm/exdivpulse/internal/domain/dto"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	time.Sleep(50 * time.Millisecond)

	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestParseAt(t *testing.T) {
	got, err := parseAt("2026-10-20T09:29:00-04:00")
	if err != nil || got.Hour() != 9 || got.Minute() != 29 {
		t.Fatalf("parseAt: %v %v", got, err)
	}
	if _, err := parseAt("tomorrow"); err == nil {
		t.Fatalf("expected error for malformed --at")
	}
	if got, err := parseAt(""); err != nil || time.Since(got) > time.Minute {
		t.Fatalf("empty --at must mean now: %v %v", got, err)
	}
}

func TestPrintWindow(t *testing.T) {
	cfg := &config.Config{Market: config.MarketConfig{Timezone: "America/New_York", Open: "09:30", Policy: config.PolicyOpenGated}}
	at, _ := time.Parse(time.RFC3339, "2026-10-20T09:29:00-04:00")

	var buf bytes.Buffer
	if err := printWindow(&buf, cfg, at); err != nil {
		t.Fatalf("printWindow: %v", err)
	}
	var out dto.WindowResponse
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	// Before the open on Tuesday the anchor is Monday, which still lands on today.
	want := []string{"2026-10-20", "2026-10-21", "2026-10-22", "2026-10-23", "2026-10-26"}
	if len(out.Dates) != len(want) {
		t.Fatalf("dates=%v", out.Dates)
	}
	for i, d := range out.Dates {
		if d.Date != want[i] {
			t.Fatalf("dates[%d]=%s want %s", i, d.Date, want[i])
		}
	}
	if out.Anchor != "2026-10-19" || out.Policy != "open-gated" || out.Timezone != "America/New_York" {
		t.Fatalf("unexpected header: %+v", out)
	}
}
