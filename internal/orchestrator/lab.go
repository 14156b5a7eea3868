// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/ai"
)

// Lab tool fallbacks.
const (
	labEmptyReply = "No analysis available."
	labFailure    = "Error executing analysis. Please check system logs."
)

// RunLabTool runs a synthesis over the entire library, whatever view is
// active, using the lab model with extended thinking. It returns the
// collaborator's Markdown, or a fallback message on an empty reply or a
// failure. The only error is ErrUnknownTool. A newer run supersedes an older
// one; the transient lab result holds the newest run's output and is empty
// while that run is in flight.
func (o *Orchestrator) RunLabTool(ctx context.Context, tool LabTool) (string, error) {
	if !tool.Valid() {
		return "", fmt.Errorf("%q: %w", tool, ErrUnknownTool)
	}

	c, err := o.labSlot.begin(ctx)
	if err != nil {
		return labFailure, nil
	}
	defer c.done()

	o.labSlot.commit(c.ticket, func() {
		o.mu.Lock()
		o.labResult = ""
		o.mu.Unlock()
	})

	result := o.runLab(c, tool)

	if !o.labSlot.commit(c.ticket, func() {
		o.mu.Lock()
		o.labResult = result
		o.mu.Unlock()
	}) {
		o.logger.Debug("discarding stale lab result",
			zap.Uint64("ticket", c.ticket), zap.String("tool", string(tool)))
	}
	return result, nil
}

func (o *Orchestrator) runLab(c call, tool LabTool) string {
	prompt, err := renderLabPrompt(tool, o.store.Papers())
	if err != nil {
		o.logger.Error("building lab prompt", zap.Error(err))
		return labFailure
	}

	text, err := o.generate(c, SlotLab, ai.Request{
		Prompt:           prompt,
		Model:            o.ai.LabModel,
		ExtendedThinking: true,
		ThinkingBudget:   o.ai.ThinkingBudget,
	})
	if err != nil {
		return labFailure
	}
	if text == "" {
		return labEmptyReply
	}
	return text
}
