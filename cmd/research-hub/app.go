// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-hub/internal/ai"
	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/internal/mirror"
	"github.com/pdiddy/research-hub/internal/orchestrator"
	"github.com/pdiddy/research-hub/internal/secrets"
	"github.com/pdiddy/research-hub/pkg/types"
)

// errNoAPIKey is returned by commands that need Gemini when no key is set.
var errNoAPIKey = errors.New("Gemini API key not set: use ai.api_key, .secrets/" +
	secrets.GeminiKeyFile + " or " + secrets.GeminiKeyEnv)

// app is the state one command invocation works on.
type app struct {
	cfg    types.HubConfig
	mirror mirror.Mirror
	store  *library.Store
	prefs  *library.Preferences
	orch   *orchestrator.Orchestrator
}

// openApp loads config, opens the mirror and rehydrates the library. When
// withAI is set it also connects the Gemini collaborator.
func openApp(ctx context.Context, withAI bool) (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	m, err := mirror.Open(cfg.Mirror)
	if err != nil {
		return nil, err
	}

	store, err := library.Load(m, library.WithLogger(logger))
	if err != nil {
		m.Close()
		return nil, err
	}

	a := &app{cfg: cfg, mirror: m, store: store, prefs: library.NewPreferences(m)}

	if withAI {
		key := secrets.GeminiAPIKey(cfg.AI.APIKey, loadedSecrets, os.Getenv)
		if key == "" {
			m.Close()
			return nil, errNoAPIKey
		}
		collab, err := ai.NewGemini(ctx, key, cfg.AI.Model)
		if err != nil {
			m.Close()
			return nil, err
		}
		a.orch = orchestrator.New(collab, store,
			orchestrator.WithLogger(logger),
			orchestrator.WithAIConfig(cfg.AI),
			orchestrator.WithTimeouts(cfg.Timeouts))
	}
	return a, nil
}

func (a *app) Close() error {
	if err := a.mirror.Close(); err != nil {
		return fmt.Errorf("closing mirror: %w", err)
	}
	return nil
}
