// internal/config/override.go
//
// Deployment-time base-URL override.
//
/*
Context
--------
Field boxes are imaged with a generic application file whose endpoint
URLs point at a placeholder server.  At first boot the deployment tool
sets BASE_URL (scheme://host[:port]) and the agent rewrites the four
endpoint fields in the persisted file so they point at the real server
while keeping each endpoint's original path:

  id_url, client_results.post_url, survey.post_url,
  client_updates.post_url

The routine is best effort by policy: a broken override must never stop
the agent from starting.  Every failure mode (missing file, malformed
JSON, malformed URL, write error) logs and returns, leaving the file
exactly as it was.  The rewrite is all-or-nothing: all four endpoints
must recompose before anything is assigned or written.

The applier works on its own scratch copy read straight from disk, so
fields outside the four targets keep whatever the file currently says.
It deliberately does not refresh the store's cached instance; callers
that want the rewritten values in memory must apply the override before
the first Get (cmd/agent does).

Notes
-----
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/vigil/internal/metrics"
)

// EnvBaseURL is the environment variable that triggers the override.
const EnvBaseURL = "BASE_URL"

// ApplyBaseURLOverride rewrites the four endpoint fields in the store's
// backing file to point at the BASE_URL host.  Unset or empty BASE_URL
// is a silent no-op.  Errors are logged and swallowed.
func ApplyBaseURLOverride(s *Store) {
	base := strings.TrimSpace(os.Getenv(EnvBaseURL))
	if base == "" {
		return
	}

	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		metrics.OverrideErrorsTotal.Inc()
		zap.S().Errorw("base url override skipped: bad base url",
			"base", base, "err", err)
		return
	}
	base = strings.TrimSuffix(base, "/")

	// The endpoint paths come from the cached instance; on a cold store
	// this performs the one-and-only load.
	cached, err := s.Get()
	if err != nil {
		metrics.OverrideErrorsTotal.Inc()
		zap.S().Errorw("base url override skipped: config unavailable", "err", err)
		return
	}

	// Scratch copy read straight from disk, independent of the cache.
	raw, err := os.ReadFile(s.path)
	if err != nil {
		metrics.OverrideErrorsTotal.Inc()
		zap.S().Errorw("base url override skipped: read failed",
			"file", s.path, "err", err)
		return
	}
	scratch := Defaults()
	if err := json.Unmarshal(raw, &scratch); err != nil {
		metrics.OverrideErrorsTotal.Inc()
		zap.S().Errorw("base url override skipped: parse failed",
			"file", s.path, "err", err)
		return
	}

	// Recompose all four endpoints before touching the scratch copy, so
	// one bad field aborts the whole rewrite.
	targets := []struct {
		key  string
		from string
		into *string
	}{
		{"id_url", cached.IDURL, &scratch.IDURL},
		{"client_results.post_url", cached.ClientResults.PostURL, &scratch.ClientResults.PostURL},
		{"survey.post_url", cached.Survey.PostURL, &scratch.Survey.PostURL},
		{"client_updates.post_url", cached.ClientUpdates.PostURL, &scratch.ClientUpdates.PostURL},
	}
	rewritten := make([]string, len(targets))
	for i, t := range targets {
		rewritten[i], err = rebase(base, t.from)
		if err != nil {
			metrics.OverrideErrorsTotal.Inc()
			zap.S().Errorw("base url override skipped: bad endpoint",
				"field", t.key, "err", err)
			return
		}
	}
	for i, t := range targets {
		*t.into = rewritten[i]
	}

	out, err := json.MarshalIndent(&scratch, "", "  ")
	if err != nil {
		metrics.OverrideErrorsTotal.Inc()
		zap.S().Errorw("base url override skipped: marshal failed", "err", err)
		return
	}
	if err := os.WriteFile(s.path, append(out, '\n'), 0o644); err != nil {
		metrics.OverrideErrorsTotal.Inc()
		zap.S().Errorw("base url override skipped: write failed",
			"file", s.path, "err", err)
		return
	}

	metrics.OverrideAppliedTotal.Inc()
	zap.S().Infow("base url override applied", "base", base, "file", s.path)
}

// rebase grafts raw's path and query onto base.  The configured value
// must be an absolute URL; anything else wraps ErrBadEndpoint.
func rebase(base, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBadEndpoint, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q: not an absolute url", ErrBadEndpoint, raw)
	}
	return base + u.RequestURI(), nil
}
