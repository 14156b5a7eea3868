// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai wraps the external generative AI service. The rest of the
// system sees it as a Collaborator: one free-text prompt in, free text out.
// Structured operations recover JSON from that text with the two-stage
// Extract/Decode helpers in this package.
package ai

import "context"

// Request is a single collaborator call.
type Request struct {
	// Prompt is the complete free-text prompt.
	Prompt string

	// Model overrides the collaborator's default model when set.
	Model string

	// WebSearch grounds the generation on live web search results.
	WebSearch bool

	// ExtendedThinking enables a reasoning budget before the answer.
	ExtendedThinking bool

	// ThinkingBudget is the reasoning token budget when ExtendedThinking is set.
	ThinkingBudget int
}

// Collaborator abstracts the generative AI service so tests can supply a
// scripted fake. Implementations must honor ctx cancellation.
type Collaborator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// CollaboratorFunc adapts a function to the Collaborator interface.
type CollaboratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f CollaboratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
