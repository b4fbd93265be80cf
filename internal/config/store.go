// internal/config/store.go
//
// Configuration store and loader.
//
/*
Context
--------
`Store` owns the single configuration instance for one agent process.
`Get()` builds one immutable `Config` struct from two layers (highest
precedence last):

  1. The JSON application file at the path the store was built with.
  2. Environment variables prefixed `VIGIL_`, where `__` maps to “.”
     (e.g., `VIGIL_LISTENER__PORT → listener.port`).

The merged tree is decoded over Defaults() so absent keys keep their
table defaults, then cached.  A `sync.Once` guards cache population:
the file is read and parsed at most once per process, and every later
`Get()` is served from memory without touching the file system.

The loader is fail-fast.  A read failure wraps ErrFileAccess, a decode
failure wraps ErrParse, and both propagate to the caller; no partial
instance is ever cached.  The best-effort counterpart lives in
`override.go`.

Notes
-----
  • The store is an explicit object, not a package global.  cmd/agent
    constructs one and injects it into every collaborator.
  • Logs use the global sugared logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/vigil/internal/metrics"
)

// envPrefix scopes configuration overrides in the environment.
const envPrefix = "VIGIL_"

// Sentinel errors.  Callers match with errors.Is; the wrapped message
// carries the path or decode detail.
var (
	// ErrFileAccess marks a configuration file that is missing,
	// unreadable, or unwritable.
	ErrFileAccess = errors.New("config file access")

	// ErrParse marks content that is not well-formed JSON or not
	// structurally assignable to the schema.
	ErrParse = errors.New("config parse")

	// ErrBadEndpoint marks a configured endpoint value that is not a
	// well-formed URL.  Only the override routine produces it.
	ErrBadEndpoint = errors.New("config endpoint url")
)

/*─────────────────────────────── store ────────────────────────────────────*/

// Store serves the process-wide configuration instance.  The zero value
// is not usable; build one with NewStore.
type Store struct {
	path string

	once sync.Once
	cfg  *Config
	err  error
}

// NewStore returns a Store bound to the application file at path.
// Nothing is read until the first Get.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path the store was built with.
func (s *Store) Path() string { return s.path }

// Get returns the cached configuration, loading it on first call.  The
// load happens at most once per process; a failed load is also cached,
// so the process fails fast rather than retrying a broken file.
func (s *Store) Get() (*Config, error) {
	s.once.Do(func() {
		s.cfg, s.err = s.load()
	})
	return s.cfg, s.err
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// load reads the file, overlays the environment, and decodes over the
// default table.
func (s *Store) load() (*Config, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		metrics.ConfigLoadErrorsTotal.Inc()
		zap.S().Errorw("config read failed", "file", s.path, "err", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, s.path, err)
	}
	zap.S().Debugw("config file read", "file", s.path, "bytes", len(raw))

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(raw), kjson.Parser()); err != nil {
		metrics.ConfigLoadErrorsTotal.Inc()
		zap.S().Errorw("config json load failed", "file", s.path, "err", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, s.path, err)
	}

	// Env overrides: VIGIL_LISTENER__PORT → listener.port.  The provider
	// hands the callback the full variable name, prefix included, so the
	// prefix must be stripped here or the key lands under a dead node.
	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		key = strings.TrimPrefix(key, envPrefix)
		return strings.ToLower(strings.ReplaceAll(key, "__", "."))
	}), nil); err != nil {
		metrics.ConfigLoadErrorsTotal.Inc()
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("%w: env overlay: %v", ErrParse, err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		metrics.ConfigLoadErrorsTotal.Inc()
		zap.S().Errorw("config decode failed", "file", s.path, "err", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, s.path, err)
	}

	metrics.ConfigLoadTotal.Inc()
	zap.S().Infow("configuration loaded",
		"file", s.path,
		"listener_port", cfg.Listener.Port,
		"manage_processes", cfg.ResourceControl.ManageProcesses,
	)
	return &cfg, nil
}
