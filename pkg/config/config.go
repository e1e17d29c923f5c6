// Package config loads application configuration from the environment, with
// optional .env file support.
package config

// App holds the full application configuration.
//
// StrictLoad is a deliberate policy switch: when the snapshot file exists
// but cannot be read, true aborts startup and false falls back to a fresh
// empty ledger. A missing file always starts fresh.
type App struct {
	DataFile       string `envconfig:"ATM_DATA_FILE" default:"bank.json"`
	StrictLoad     bool   `envconfig:"ATM_STRICT_LOAD" default:"false"`
	MaxPINAttempts int    `envconfig:"ATM_MAX_PIN_ATTEMPTS" default:"3"`
}
