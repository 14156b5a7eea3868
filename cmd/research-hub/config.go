// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/research-hub/internal/ai"
	"github.com/pdiddy/research-hub/internal/orchestrator"
	"github.com/pdiddy/research-hub/pkg/types"
)

const defaultDataDir = ".research-hub"

// envKeyReplacer maps nested keys onto environment names, so mirror.dsn is
// read from RESEARCH_HUB_MIRROR_DSN.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", ai.DefaultModel)
	v.SetDefault("ai.lab_model", ai.DefaultLabModel)
	v.SetDefault("ai.thinking_budget", ai.DefaultThinkingBudget)
	v.SetDefault("ai.search_results", orchestrator.DefaultSearchResults)

	v.SetDefault("mirror.backend", string(types.MirrorSQLite))
	v.SetDefault("mirror.dir", defaultDataDir)
	v.SetDefault("mirror.dsn", "")

	v.SetDefault("timeouts.search", orchestrator.DefaultSearchTimeout)
	v.SetDefault("timeouts.ingest", orchestrator.DefaultIngestTimeout)
	v.SetDefault("timeouts.lab", orchestrator.DefaultLabTimeout)
	v.SetDefault("timeouts.chat", orchestrator.DefaultChatTimeout)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// loadConfig decodes the merged flags, environment and config file.
func loadConfig(v *viper.Viper) (types.HubConfig, error) {
	var cfg types.HubConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.HubConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Mirror.Dir == "" {
		cfg.Mirror.Dir = defaultDataDir
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Output goes to stderr so it never mixes
// with command output.
func newLogger(level, format string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if format == "console" || format == "" {
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	} else if format != "json" {
		return nil, fmt.Errorf("unsupported log format %q: use console or json", format)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	return config.Build()
}
