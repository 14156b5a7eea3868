// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/internal/orchestrator"
	"github.com/pdiddy/research-hub/internal/scope"
	"github.com/pdiddy/research-hub/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Talk to Brainy or to a workspace's research agent",
	Long: `Chat sends a message to Brainy, the research assistant that knows every
title in the library. With --thread workspace the message goes to the
workspace agent instead, which answers from the abstracts of the papers in
--view (the whole library by default). A workspace view selects the
workspace agent on its own.

Without a message, chat reads one message per line from stdin until EOF or
/exit. Conversations last for the session only.`,
	RunE: runChat,
}

// chatFunc sends one message and returns the reply.
type chatFunc func(ctx context.Context, input string) (types.ChatMessage, bool, error)

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	thread, _ := cmd.Flags().GetString("thread")
	view, _ := cmd.Flags().GetString("view")
	send, name, err := chatTarget(a.orch, thread, view)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return chatTurn(ctx, cmd.OutOrStdout(), send, name, strings.Join(args, " "))
	}
	return chatLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), send, name)
}

func chatTarget(o *orchestrator.Orchestrator, thread, viewID string) (chatFunc, string, error) {
	v := scope.ParseView(viewID)
	if thread == "" {
		thread = "brainy"
		if v.Kind == scope.Workspace {
			thread = "workspace"
		}
	}

	switch thread {
	case "brainy":
		return o.ChatBrainy, "Brainy", nil
	case "workspace":
		return func(ctx context.Context, input string) (types.ChatMessage, bool, error) {
			return o.ChatWorkspace(ctx, v, input)
		}, "Agent", nil
	}
	return nil, "", fmt.Errorf("unsupported thread %q: use brainy or workspace", thread)
}

func chatTurn(ctx context.Context, w io.Writer, send chatFunc, name, input string) error {
	reply, ok, err := send(ctx, input)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(w, "[%s] %s: %s\n", reply.Timestamp, name, reply.Content)
	}
	return nil
}

func chatLoop(ctx context.Context, r io.Reader, w io.Writer, send chatFunc, name string) error {
	scanner := bufio.NewScanner(r)
	fmt.Fprint(w, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "/exit" {
			return nil
		}
		if err := chatTurn(ctx, w, send, name, line); err != nil {
			return err
		}
		fmt.Fprint(w, "> ")
	}
	fmt.Fprintln(w)
	return scanner.Err()
}

func init() {
	chatCmd.Flags().String("thread", "", "conversation: brainy or workspace (default brainy, or workspace for a ws- view)")
	chatCmd.Flags().String("view", "dashboard", "view whose papers the workspace agent uses, e.g. ws-1")

	rootCmd.AddCommand(chatCmd)
}
