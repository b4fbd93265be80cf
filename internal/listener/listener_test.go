// internal/listener/listener_test.go
//
// Unit-tests for the result listener.
//
// Handlers are driven through Routes() with httptest, so no socket is
// bound; Run is only exercised for the disabled-port path.
//
// Run: go test ./internal/listener -v

package listener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yanizio/vigil/internal/config"
)

func newTestListener(t *testing.T, port int) *Listener {
	t.Helper()
	cfg := config.Defaults()
	cfg.Listener.Port = port
	return New(&cfg, t.TempDir())
}

func TestResults_AcceptsAndSpools(t *testing.T) {
	l := newTestListener(t, 8080)

	body := `{"handler": "browser", "status": "ok",
		"detail": {"pages": 4}}`
	req := httptest.NewRequest(http.MethodPost, "/api/results", strings.NewReader(body))
	rr := httptest.NewRecorder()

	l.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rr.Code)
	}

	spooled, err := os.ReadFile(l.SpoolFile())
	if err != nil {
		t.Fatalf("read spool: %v", err)
	}
	line := strings.TrimSuffix(string(spooled), "\n")
	if strings.ContainsAny(line, "\n") {
		t.Fatalf("spool entry spans lines: %q", line)
	}
	if !strings.Contains(line, `"handler":"browser"`) {
		t.Fatalf("spool entry not compacted json: %q", line)
	}
}

func TestResults_AppendsOneLinePerPost(t *testing.T) {
	l := newTestListener(t, 8080)

	for _, body := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/results", strings.NewReader(body))
		rr := httptest.NewRecorder()
		l.Routes().ServeHTTP(rr, req)
		if rr.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want 202", rr.Code)
		}
	}

	spooled, err := os.ReadFile(l.SpoolFile())
	if err != nil {
		t.Fatalf("read spool: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(spooled), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("spool has %d lines, want 3", len(lines))
	}
	if lines[2] != `{"n":3}` {
		t.Fatalf("last line = %q", lines[2])
	}
}

func TestResults_RejectsEmptyBody(t *testing.T) {
	l := newTestListener(t, 8080)

	req := httptest.NewRequest(http.MethodPost, "/api/results", strings.NewReader(""))
	rr := httptest.NewRecorder()
	l.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if _, err := os.Stat(l.SpoolFile()); !os.IsNotExist(err) {
		t.Fatalf("spool file created for rejected post")
	}
}

func TestResults_RejectsNonJSON(t *testing.T) {
	l := newTestListener(t, 8080)

	req := httptest.NewRequest(http.MethodPost, "/api/results", strings.NewReader("plain text"))
	rr := httptest.NewRecorder()
	l.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	l := newTestListener(t, 8080)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	l.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestRun_DisabledPortNeverBinds(t *testing.T) {
	l := newTestListener(t, -1)

	if l.Enabled() {
		t.Fatalf("Enabled() = true for port -1")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v for disabled listener", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
