// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/ai"
	"github.com/pdiddy/research-hub/internal/chat"
	"github.com/pdiddy/research-hub/internal/scope"
	"github.com/pdiddy/research-hub/pkg/types"
)

// Chat fallbacks.
const (
	brainyEmptyReply    = "I'm listening."
	brainyFailure       = "Brainy is currently offline due to a neural link error. (RPC Error)"
	workspaceEmptyReply = "Synthesis failed."
	workspaceFailure    = "Error connecting to the research agent."
)

// thread binds a chat log to its slot, prompt and fallbacks.
type thread struct {
	slot       *slot
	log        *chat.Log
	prompt     func(query string, papers []types.Paper, history []chat.Turn) (string, error)
	emptyReply string
	failure    string
}

// ChatBrainy sends input to the assistant. The prompt lists the titles of
// the whole library. A blank input is a no-op and returns ok == false.
func (o *Orchestrator) ChatBrainy(ctx context.Context, input string) (reply types.ChatMessage, ok bool, err error) {
	t := thread{
		slot:       o.brainySlot,
		log:        o.brainyLog,
		prompt:     chat.BrainyPrompt,
		emptyReply: brainyEmptyReply,
		failure:    brainyFailure,
	}
	return o.converse(ctx, t, input, func() []types.Paper { return o.store.Papers() })
}

// ChatWorkspace sends input to the research agent with the papers of view
// as context. A blank input is a no-op and returns ok == false.
func (o *Orchestrator) ChatWorkspace(ctx context.Context, view scope.View, input string) (reply types.ChatMessage, ok bool, err error) {
	t := thread{
		slot:       o.workspaceSlot,
		log:        o.workspaceLog,
		prompt:     chat.WorkspacePrompt,
		emptyReply: workspaceEmptyReply,
		failure:    workspaceFailure,
	}
	return o.converse(ctx, t, input, func() []types.Paper {
		snap := o.store.Snapshot()
		return scope.Resolve(view, snap.Papers, snap.Workspaces)
	})
}

// converse runs one turn. Turns on the same thread queue, so the log always
// alternates user and assistant messages. The user message is appended and
// the typing flag raised before the collaborator is called; the reply, or a
// fallback, is appended and the flag lowered afterwards. err is non-nil only
// when ctx ends while the turn is queued, in which case nothing is appended.
func (o *Orchestrator) converse(ctx context.Context, t thread, input string, papers func() []types.Paper) (types.ChatMessage, bool, error) {
	if strings.TrimSpace(input) == "" {
		return types.ChatMessage{}, false, nil
	}

	c, err := t.slot.begin(ctx)
	if err != nil {
		return types.ChatMessage{}, false, err
	}
	defer c.done()

	history := t.log.History()
	t.log.Append(types.RoleUser, input)
	t.log.SetTyping(true)
	defer t.log.SetTyping(false)

	content := t.failure
	prompt, err := t.prompt(input, papers(), history)
	if err != nil {
		o.logger.Error("building chat prompt", zap.String("slot", string(t.slot.name)), zap.Error(err))
	} else if text, err := o.generate(c, t.slot.name, ai.Request{Prompt: prompt, Model: o.ai.Model}); err == nil {
		content = text
		if content == "" {
			content = t.emptyReply
		}
	}

	return t.log.Append(types.RoleAssistant, content), true, nil
}
