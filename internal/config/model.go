// internal/config/model.go
//
// Typed configuration model for the Vigil agent.
//
// Context
// -------
// These structs define the shape of the agent configuration tree that
// `internal/config/store.go` builds from two overlay layers:
//
//   • `conf/application.json`                 – primary static file,
//   • `VIGIL_`-prefixed environment overrides – highest precedence.
//
// The JSON file is the single source of truth: every key below maps
// field-for-field onto the document, and the override routine in
// `override.go` rewrites a fixed subset of these keys on disk.
//
// Notes
// -----
//   • Struct tags use `json:"…"`; the store decodes through Koanf with
//     the tag name set to "json" so one tag set serves both directions
//     (Koanf read, encoding/json write-back).
//   • Defaults live in Defaults(), not in decode-time magic.  Any field
//     absent from the file keeps the value Defaults() gave it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// Content section
//

// Content names the corpora the agent draws generated material from.
// Values are paths or identifiers resolved by the content collaborators.
type Content struct {
	EmailContent string `json:"email_content"`
	BlogContent  string `json:"blog_content"`
	FileNames    string `json:"file_names"`
	Dictionary   string `json:"dictionary"`
}

//
// ClientResults section
//

// ClientResults controls the result-posting cycle.
type ClientResults struct {
	Enabled      bool   `json:"enabled"`
	Secure       bool   `json:"secure"`
	PostURL      string `json:"post_url"`
	CycleSleepMS int    `json:"cycle_sleep_ms"`
}

//
// ClientUpdates section
//

// ClientUpdates controls the update-polling cycle.
type ClientUpdates struct {
	Enabled      bool   `json:"enabled"`
	PostURL      string `json:"post_url"`
	CycleSleepMS int    `json:"cycle_sleep_ms"`
}

//
// Survey section
//

// Survey controls host-survey collection and posting.
type Survey struct {
	Enabled           bool   `json:"enabled"`
	Secure            bool   `json:"secure"`
	Frequency         string `json:"frequency"`
	OutputFormat      string `json:"output_format"`
	CycleSleepMinutes int    `json:"cycle_sleep_minutes"`
	PostURL           string `json:"post_url"`
}

//
// Email section
//

// Email bounds generated email traffic.  Each Min is expected to be
// ≤ its Max; the schema records the pair, the email collaborator
// enforces it.
type Email struct {
	AccountsFromConfig bool   `json:"accounts_from_config"`
	AccountsFromDomain bool   `json:"accounts_from_domain"`
	SaveToOutbox       bool   `json:"save_to_outbox"`
	SendAndReceive     bool   `json:"send_and_receive"`
	ToMin              int    `json:"to_min"`
	ToMax              int    `json:"to_max"`
	CcMin              int    `json:"cc_min"`
	CcMax              int    `json:"cc_max"`
	BccMin             int    `json:"bcc_min"`
	BccMax             int    `json:"bcc_max"`
	OutsideMin         int    `json:"outside_min"`
	OutsideMax         int    `json:"outside_max"`
	DomainSearchString string `json:"domain_search_string"`
}

//
// Listener section
//

// Listener holds the local result-posting listener port.  -1 (or any
// value below 1) disables the listener entirely.
type Listener struct {
	Port int `json:"port"`
}

//
// ResourceControl section
//

// ResourceControl gates the agent's process-management behaviour.
// ManageProcesses must default to true when the group or field is
// absent from the file; see Defaults().
type ResourceControl struct {
	ManageProcesses bool `json:"manage_processes"`
}

//
// Root aggregate
//

// Config is the root aggregate served by Store.Get().  Exactly one
// instance exists per process once loaded, and collaborators treat it
// as read-only.
type Config struct {
	IDEnabled     bool   `json:"id_enabled"`
	IDURL         string `json:"id_url"`
	IDFormat      string `json:"id_format"`
	IDFormatKey   string `json:"id_format_key"`
	IDFormatValue string `json:"id_format_value"`

	ToolsLocation   string `json:"tools_location"`
	HealthEnabled   bool   `json:"health_enabled"`
	HandlersEnabled bool   `json:"handlers_enabled"`
	StartupEnabled  bool   `json:"startup_enabled"`

	// Comma-separated list of Chrome extension paths.
	ChromeExtensions string `json:"chrome_extensions"`

	// Office documents older than this many hours are reaped; -1
	// disables reaping.
	OfficeDocsMaxAgeHours int `json:"office_docs_max_age_hours"`

	// Token → replacement applied to generated email content.
	EmailTokens map[string]string `json:"email_tokens"`

	Content         Content         `json:"content"`
	ClientResults   ClientResults   `json:"client_results"`
	ClientUpdates   ClientUpdates   `json:"client_updates"`
	Survey          Survey          `json:"survey"`
	Email           Email           `json:"email"`
	Listener        Listener        `json:"listener"`
	ResourceControl ResourceControl `json:"resource_control"`
}

//
// defaults
//

// Defaults is the explicit per-field default table.  The store decodes
// the file over a Defaults() value, so a key absent from the document
// keeps the default named here rather than an implicit zero.
//
// ManageProcesses is the only non-zero default: an agent whose file
// predates the resource_control group must still manage processes.
// Everything else deliberately zeroes, so absent toggles stay off and
// an absent listener group stays unbound (the listener treats any port
// below 1 as disabled).
func Defaults() Config {
	return Config{
		ResourceControl: ResourceControl{ManageProcesses: true},
	}
}
