package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the endpoint configuration read from the process environment.
type Env struct {
	EndpointURL   string `env:"SWIPE_ENDPOINT_URL"`
	APIKey        string `env:"SWIPE_SHEETS_API_KEY"`
	SpreadsheetID string `env:"SWIPE_SPREADSHEET_ID"`
	SheetsRange   string `env:"SWIPE_SHEETS_RANGE"    envDefault:"Sheet1!A:H"`
	SheetsBaseURL string `env:"SWIPE_SHEETS_BASE_URL" envDefault:"https://sheets.googleapis.com"`
	Environment   string `env:"SWIPE_ENV"             envDefault:"production"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ParseEnvMap loads Env from an explicit variable map instead of the
// process environment.
func ParseEnvMap(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
