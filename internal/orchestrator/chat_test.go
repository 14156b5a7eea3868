// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-hub/internal/ai/aitest"
	"github.com/pdiddy/research-hub/internal/scope"
	"github.com/pdiddy/research-hub/pkg/types"
)

func roles(msgs []types.ChatMessage) []types.Role {
	out := make([]types.Role, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

func TestChatBrainy(t *testing.T) {
	fake := aitest.New(aitest.Text("Transformers replaced recurrence."), aitest.Text("AlexNet used GPUs."))
	o := newOrchestrator(t, fake, newStore(t))

	reply, ok, err := o.ChatBrainy(context.Background(), "What changed in 2017?")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.RoleAssistant, reply.Role)
	assert.Equal(t, "Transformers replaced recurrence.", reply.Content)

	_, _, err = o.ChatBrainy(context.Background(), "And in 2012?")
	require.NoError(t, err)

	msgs := o.BrainyLog().Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "What changed in 2017?", msgs[0].Content)
	assert.False(t, o.BrainyLog().Typing())
	assert.Zero(t, o.WorkspaceLog().Len(), "threads never share messages")

	reqs := fake.Requests()
	assert.Contains(t, reqs[0].Prompt, "- Attention Is All You Need\n- ImageNet Classification with Deep CNNs")
	assert.Contains(t, reqs[0].Prompt, "HISTORY:\n\n\nUSER: What changed in 2017?")
	assert.Contains(t, reqs[1].Prompt, "HISTORY:\nUser: What changed in 2017?\nAssistant: Transformers replaced recurrence.\n\nUSER: And in 2012?")
	assert.False(t, reqs[0].WebSearch)
}

func TestChatFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		reply     aitest.Reply
		workspace bool
		want      string
	}{
		{"brainy empty", aitest.Text(""), false, "I'm listening."},
		{"brainy failure", aitest.Fail(errNetwork), false, "Brainy is currently offline due to a neural link error. (RPC Error)"},
		{"workspace empty", aitest.Text(""), true, "Synthesis failed."},
		{"workspace failure", aitest.Fail(errNetwork), true, "Error connecting to the research agent."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(t, aitest.New(tt.reply), newStore(t))

			var reply types.ChatMessage
			var err error
			if tt.workspace {
				reply, _, err = o.ChatWorkspace(context.Background(), scope.ParseView("ws-1"), "Summarize")
			} else {
				reply, _, err = o.ChatBrainy(context.Background(), "Hello")
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Content)
		})
	}
}

func TestChatBlankInputIsNoop(t *testing.T) {
	fake := aitest.New()
	o := newOrchestrator(t, fake, newStore(t))

	_, ok, err := o.ChatBrainy(context.Background(), " \n\t")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = o.ChatWorkspace(context.Background(), scope.ParseView("dashboard"), "")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Zero(t, fake.Calls())
	assert.Zero(t, o.BrainyLog().Len())
	assert.Zero(t, o.WorkspaceLog().Len())
}

func TestChatWorkspaceUsesScopedPapers(t *testing.T) {
	store := newStore(t)
	_, _, err := store.AddPaper(types.Candidate{Title: "Unrelated Survey", Abstract: "Not in the workspace."})
	require.NoError(t, err)

	fake := aitest.New(aitest.Text("Scoped."), aitest.Text("Everything."), aitest.Text("Nothing."))
	o := newOrchestrator(t, fake, store)

	_, _, err = o.ChatWorkspace(context.Background(), scope.ParseView("ws-1"), "Compare")
	require.NoError(t, err)
	_, _, err = o.ChatWorkspace(context.Background(), scope.ParseView("dashboard"), "Compare all")
	require.NoError(t, err)
	_, _, err = o.ChatWorkspace(context.Background(), scope.ParseView("ws-missing"), "Anything?")
	require.NoError(t, err)

	reqs := fake.Requests()
	assert.Contains(t, reqs[0].Prompt, "[Attention Is All You Need]\nThe dominant sequence")
	assert.NotContains(t, reqs[0].Prompt, "Unrelated Survey")
	assert.Contains(t, reqs[1].Prompt, "[Unrelated Survey]\nNot in the workspace.")
	assert.Contains(t, reqs[2].Prompt, "CONTEXT:\n\n\nHISTORY:")
}

func TestChatBrainyIgnoresScope(t *testing.T) {
	store := newStore(t)
	_, _, err := store.AddPaper(types.Candidate{Title: "Unrelated Survey"})
	require.NoError(t, err)

	fake := aitest.New(aitest.Text("ok"))
	o := newOrchestrator(t, fake, store)
	_, _, err = o.ChatBrainy(context.Background(), "What do I have?")
	require.NoError(t, err)

	assert.Contains(t, fake.Requests()[0].Prompt, "- Unrelated Survey")
}

func TestChatQueuedTurnsAlternate(t *testing.T) {
	block := make(chan struct{})
	fake := aitest.New(aitest.Reply{Text: "first answer", Block: block}, aitest.Text("second answer"))
	o := newOrchestrator(t, fake, newStore(t))
	log := o.BrainyLog()

	var g errgroup.Group
	g.Go(func() error {
		_, _, err := o.ChatBrainy(context.Background(), "first question")
		return err
	})
	waitCalls(t, fake, 1)
	assert.True(t, log.Typing())
	assert.Equal(t, 1, log.Len(), "user message is visible before the reply")

	g.Go(func() error {
		_, _, err := o.ChatBrainy(context.Background(), "second question")
		return err
	})
	require.Eventually(t, func() bool { return inflight(o.brainySlot) == 2 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, 1, log.Len(), "queued turn has not been appended yet")

	close(block)
	require.NoError(t, g.Wait())

	msgs := log.Messages()
	assert.Equal(t, []types.Role{types.RoleUser, types.RoleAssistant, types.RoleUser, types.RoleAssistant}, roles(msgs))
	assert.Equal(t, "first answer", msgs[1].Content)
	assert.Equal(t, "second answer", msgs[3].Content)
	assert.False(t, log.Typing())
	assert.False(t, o.Busy(SlotBrainy))
}

func TestChatThreadsRunIndependently(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	fake := aitest.New(aitest.Reply{Block: block}, aitest.Text("workspace answer"))
	o := newOrchestrator(t, fake, newStore(t))

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error {
		_, _, err := o.ChatBrainy(ctx, "slow")
		return err
	})
	waitCalls(t, fake, 1)

	reply, _, err := o.ChatWorkspace(context.Background(), scope.ParseView("ws-1"), "fast")
	require.NoError(t, err)
	assert.Equal(t, "workspace answer", reply.Content)
	assert.True(t, o.Busy(SlotBrainy))

	cancel()
	require.NoError(t, g.Wait())
	assert.Equal(t, brainyFailure, o.BrainyLog().Messages()[1].Content, "cancellation takes the failure path")
}

func TestChatCancelWhileQueued(t *testing.T) {
	block := make(chan struct{})
	fake := aitest.New(aitest.Reply{Text: "done", Block: block})
	o := newOrchestrator(t, fake, newStore(t))

	var g errgroup.Group
	g.Go(func() error {
		_, _, err := o.ChatBrainy(context.Background(), "first")
		return err
	})
	waitCalls(t, fake, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := o.ChatBrainy(ctx, "abandoned")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)

	close(block)
	require.NoError(t, g.Wait())
	assert.Equal(t, 2, o.BrainyLog().Len())
}

func TestChatDeadlineClearsTyping(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	o := newOrchestrator(t, aitest.New(aitest.Reply{Block: block}), newStore(t),
		WithTimeouts(types.TimeoutConfig{Chat: 20 * time.Millisecond}))

	reply, ok, err := o.ChatWorkspace(context.Background(), scope.ParseView("ws-1"), "hello?")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, workspaceFailure, reply.Content)
	assert.False(t, o.WorkspaceLog().Typing())
	assert.False(t, o.Busy(SlotWorkspace))
}
