// internal/listener/listener.go
//
// Local result-posting listener.
//
// Context
// -------
// Automation handlers on the same box post their run results to this
// listener instead of talking to the server themselves.  Payloads are
// spooled, one compact JSON line each, to `<root>/spool/results.jsonl`;
// the result-posting cycle drains the spool on its own schedule.
//
// The listener is configuration-driven: `listener.port` below 1 (the
// shipped files use -1) disables it entirely, and cmd/agent never
// binds a socket.  The router also exposes /healthz for local probes
// and /metrics for Prometheus scrapes.
//
// Notes
// -----
//   • The spool file is append-only; a mutex serialises writers since
//     handlers post concurrently.
//   • Oxford commas, two spaces after periods.
package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/vigil/internal/config"
	"github.com/yanizio/vigil/internal/metrics"
	"github.com/yanizio/vigil/internal/server"
)

// maxResultBytes caps a single posted payload.
const maxResultBytes = 1 << 20 // 1 MiB

// shutdownGrace bounds drain time once the run context is cancelled.
const shutdownGrace = 5 * time.Second

// Listener serves the local results endpoint for one agent process.
type Listener struct {
	cfg      *config.Config
	spoolDir string

	mu sync.Mutex // serialises spool appends
}

// New builds a Listener from the loaded configuration.  Nothing binds
// until Run.
func New(cfg *config.Config, spoolDir string) *Listener {
	return &Listener{cfg: cfg, spoolDir: spoolDir}
}

// Enabled reports whether the configuration asks for a listener at all.
func (l *Listener) Enabled() bool { return l.cfg.Listener.Port >= 1 }

// Run binds the configured port and serves until ctx is cancelled,
// then drains in-flight requests.  A disabled listener never binds a
// socket; it parks on ctx so the agent stays resident either way.
func (l *Listener) Run(ctx context.Context) error {
	if !l.Enabled() {
		zap.S().Infow("listener disabled", "port", l.cfg.Listener.Port)
		<-ctx.Done()
		return nil
	}
	if err := os.MkdirAll(l.spoolDir, 0o755); err != nil {
		return fmt.Errorf("listener spool dir: %w", err)
	}

	srv := server.New(fmt.Sprintf(":%d", l.cfg.Listener.Port), l.Routes())

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("listener online", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			return err
		}
		// ListenAndServe returns ErrServerClosed after Shutdown.
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Routes builds the chi router.  Exposed separately so tests can drive
// handlers through httptest without binding a port.
func (l *Listener) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/results", l.handleResults)
	r.Get("/healthz", l.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

/*─────────────────────────────── handlers ─────────────────────────────────*/

func (l *Listener) handleResults(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxResultBytes))
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}
	if len(body) == 0 || !json.Valid(body) {
		http.Error(w, "body must be a json document", http.StatusBadRequest)
		return
	}

	if err := l.spool(body); err != nil {
		metrics.ResultsSpoolErrorsTotal.Inc()
		zap.S().Errorw("result spool failed", "err", err)
		http.Error(w, "spool failure", http.StatusInternalServerError)
		return
	}

	metrics.ResultsReceivedTotal.Inc()
	w.WriteHeader(http.StatusAccepted)
}

func (l *Listener) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// spool appends one compact JSON line to the spool file.
func (l *Listener) spool(body []byte) error {
	var compact json.RawMessage
	if err := json.Unmarshal(body, &compact); err != nil {
		return err
	}
	line, err := json.Marshal(compact)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.SpoolFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// SpoolFile returns the append-only results file path.
func (l *Listener) SpoolFile() string {
	return filepath.Join(l.spoolDir, "results.jsonl")
}
