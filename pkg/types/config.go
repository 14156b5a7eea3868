// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for research-hub: the paper
// and workspace model, chat messages, AI analysis results, and the
// configuration structs each component is built from.
package types

import "time"

// AIConfig holds settings for the generative AI collaborator.
type AIConfig struct {
	// APIKey is the Gemini API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Model is used for search, summarization, and chat (default "gemini-3-flash-preview").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// LabModel is used for lab tools (default "gemini-3-pro-preview").
	LabModel string `json:"lab_model" yaml:"lab_model" mapstructure:"lab_model"`

	// ThinkingBudget is the reasoning token budget for lab tools (default 8000).
	ThinkingBudget int `json:"thinking_budget" yaml:"thinking_budget" mapstructure:"thinking_budget"`

	// SearchResults is the number of candidates discovery search asks for (default 5).
	SearchResults int `json:"search_results" yaml:"search_results" mapstructure:"search_results"`
}

// MirrorBackend identifies the durable mirror implementation.
type MirrorBackend string

const (
	MirrorMemory   MirrorBackend = "memory"
	MirrorFile     MirrorBackend = "file"
	MirrorSQLite   MirrorBackend = "sqlite"
	MirrorPostgres MirrorBackend = "postgres"
)

// MirrorConfig selects and configures the durable mirror.
type MirrorConfig struct {
	// Backend is one of memory, file, sqlite, postgres (default sqlite).
	Backend MirrorBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Dir is the data directory for the file and sqlite backends.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// DSN is the Postgres connection string for the postgres backend.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`
}

// TimeoutConfig holds the per-slot deadlines for AI calls. A zero value
// selects the default for that slot.
type TimeoutConfig struct {
	Search time.Duration `json:"search" yaml:"search" mapstructure:"search"`
	Ingest time.Duration `json:"ingest" yaml:"ingest" mapstructure:"ingest"`
	Lab    time.Duration `json:"lab" yaml:"lab" mapstructure:"lab"`
	Chat   time.Duration `json:"chat" yaml:"chat" mapstructure:"chat"`
}

// LogConfig controls the zap logger built by the CLI.
type LogConfig struct {
	// Level is debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// HubConfig groups all component configurations.
type HubConfig struct {
	AI       AIConfig      `json:"ai" yaml:"ai" mapstructure:"ai"`
	Mirror   MirrorConfig  `json:"mirror" yaml:"mirror" mapstructure:"mirror"`
	Timeouts TimeoutConfig `json:"timeouts" yaml:"timeouts" mapstructure:"timeouts"`
	Log      LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
