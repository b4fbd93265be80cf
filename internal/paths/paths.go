// internal/paths/paths.go
//
// Agent file-system layout resolution.
//
// Context
// -------
// Every on-disk artifact of the agent (application file, logs, result
// spool) hangs off one root directory.  Root() resolves it from
// VIGIL_ROOT when set, otherwise by climbing the cwd tree until it
// finds conf/application.json, with an executable-location heuristic
// as the production fallback.  The climb lets `go run ./cmd/agent`
// work from any sub-directory of a checkout.
//
// The rest of the package is thin path arithmetic on top of Root(), so
// collaborators never hard-code layout.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.
package paths

import (
	"os"
	"path/filepath"
)

// EnvRoot overrides root discovery entirely when set.
const EnvRoot = "VIGIL_ROOT"

// appConfigRel is the application file location relative to the root.
var appConfigRel = filepath.Join("conf", "application.json")

// Root resolves VIGIL_ROOT or climbs directories until the application
// file is found.  Falls back to the executable heuristic for installed
// layouts (<root>/bin/agent).
func Root() string {
	if r := os.Getenv(EnvRoot); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, appConfigRel)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

// AppConfig returns the application configuration file path.
func AppConfig() string { return filepath.Join(Root(), appConfigRel) }

// LogDir returns the directory daily logs rotate in.
func LogDir() string { return filepath.Join(Root(), "logs") }

// SpoolDir returns the directory the listener spools results into.
func SpoolDir() string { return filepath.Join(Root(), "spool") }
