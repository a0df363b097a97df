package model

// Environment identifies the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries caller identity for logging and auditing.
type Scope struct {
	UserID string // e.g. "watcher", "shortcut_<device>"
	Source string // where the transcript came from: "inbox", "http", "cli"
}
