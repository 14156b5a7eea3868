// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/internal/orchestrator"
)

var labCmd = &cobra.Command{
	Use:   "lab <tool>",
	Short: "Run a multi-paper synthesis tool over the whole library",
	Long: `Lab runs one of the synthesis tools over every paper in the library,
whatever workspace is active, using the lab model with extended thinking.

Tools: Semantic Weaver, Conflict Resolver, Synthesis Engine, Citation Forecaster.`,
	RunE: runLab,
}

func runLab(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, t := range orchestrator.LabTools {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("provide a tool name; see lab --list")
	}

	tool, err := orchestrator.ParseLabTool(strings.Join(args, " "))
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.orch.RunLabTool(ctx, tool)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

func init() {
	labCmd.Flags().Bool("list", false, "list the available tools")

	rootCmd.AddCommand(labCmd)
}
