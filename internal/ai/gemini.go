// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	// DefaultModel serves search, summarization, and chat.
	DefaultModel = "gemini-3-flash-preview"

	// DefaultLabModel serves the long-form lab tools.
	DefaultLabModel = "gemini-3-pro-preview"

	// DefaultThinkingBudget is the reasoning budget for lab tools.
	DefaultThinkingBudget = 8000
)

// generateFunc matches genai's Models.GenerateContent so tests can stand in
// for the API.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Gemini is a Collaborator backed by the Gemini API.
type Gemini struct {
	model    string
	generate generateFunc
}

// NewGemini creates a Gemini collaborator. model is used for requests that
// do not name their own.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GenAI client: %w", err)
	}

	return &Gemini{
		model:    model,
		generate: client.Models.GenerateContent,
	}, nil
}

// Generate sends the prompt with the tools and thinking settings the request
// asks for and returns the concatenated text of the first candidate.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = g.model
	}

	resp, err := g.generate(ctx, model, genai.Text(req.Prompt), generateConfig(req))
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", model, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%s returned no response", model)
	}
	return resp.Text(), nil
}

// generateConfig maps the request mode flags onto the GenAI config. It
// returns nil when no flag is set.
func generateConfig(req Request) *genai.GenerateContentConfig {
	if !req.WebSearch && !req.ExtendedThinking {
		return nil
	}

	cfg := &genai.GenerateContentConfig{}
	if req.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.ExtendedThinking {
		budget := req.ThinkingBudget
		if budget <= 0 {
			budget = DefaultThinkingBudget
		}
		cfg.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(budget)),
		}
	}
	return cfg
}
