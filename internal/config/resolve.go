package config

import (
	"net/url"
	"strings"
)

// Placeholder values shipped in example environments. They count as unset.
const (
	PlaceholderAPIKey        = "YOUR_API_KEY_HERE"
	PlaceholderSpreadsheetID = "YOUR_SPREADSHEET_ID_HERE"
)

// Mode selects how results leave the process.
type Mode int

const (
	Disabled Mode = iota // log locally, never send
	Webhook              // POST JSON to an endpoint URL
	Sheets               // append a row through the Sheets values API
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Webhook:
		return "webhook"
	case Sheets:
		return "sheets"
	default:
		return "disabled"
	}
}

// Resolved is the outcome of the one-time endpoint resolution step. A
// Disabled value carries the Reason it was disabled.
type Resolved struct {
	Mode   Mode
	Reason string

	EndpointURL string

	APIKey        string
	SpreadsheetID string
	SheetsRange   string
	SheetsBaseURL string
}

// Enabled reports whether results will be sent over the network.
func (r Resolved) Enabled() bool { return r.Mode != Disabled }

var devEnvironments = map[string]bool{
	"development": true,
	"dev":         true,
	"local":       true,
}

// Resolve decides, once, where results go. A development environment
// always disables sending. An endpoint URL takes precedence over Sheets
// credentials. Anything else is Disabled with a reason.
func Resolve(e Env) Resolved {
	if devEnvironments[strings.ToLower(strings.TrimSpace(e.Environment))] {
		return Resolved{Mode: Disabled, Reason: "development environment"}
	}

	if raw := strings.TrimSpace(e.EndpointURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return Resolved{Mode: Disabled, Reason: "invalid endpoint URL"}
		}
		return Resolved{Mode: Webhook, EndpointURL: raw}
	}

	key := strings.TrimSpace(e.APIKey)
	id := strings.TrimSpace(e.SpreadsheetID)
	if key == "" || id == "" || key == PlaceholderAPIKey || id == PlaceholderSpreadsheetID {
		return Resolved{Mode: Disabled, Reason: "not configured"}
	}

	rng := e.SheetsRange
	if rng == "" {
		rng = "Sheet1!A:H"
	}
	base := strings.TrimRight(e.SheetsBaseURL, "/")
	if base == "" {
		base = "https://sheets.googleapis.com"
	}
	return Resolved{
		Mode:          Sheets,
		APIKey:        key,
		SpreadsheetID: id,
		SheetsRange:   rng,
		SheetsBaseURL: base,
	}
}
