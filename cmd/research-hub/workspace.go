// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspaces",
	Long: `Workspace groups papers by reference. Deleting a workspace keeps its
papers in the library. Use the ws-<id> view with papers list, chat and
export to work inside one workspace.`,
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces in creation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		workspaces := a.store.Workspaces()
		w := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(workspaces)
		}
		if len(workspaces) == 0 {
			fmt.Fprintln(w, "No workspaces.")
			return nil
		}
		fmt.Fprintf(w, "%-38s  %-24s  %-6s  %s\n", "ID", "Name", "Papers", "Description")
		fmt.Fprintln(w, strings.Repeat("-", 100))
		for _, ws := range workspaces {
			fmt.Fprintf(w, "%-38s  %-24s  %-6d  %s\n",
				ws.ID, truncate(ws.Name, 24), len(ws.PaperIDs), truncate(ws.Description, 30))
		}
		return nil
	},
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an empty workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		description, _ := cmd.Flags().GetString("description")
		color, _ := cmd.Flags().GetString("color")

		ws, err := a.store.AddWorkspace(name, description, color)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created workspace %s  %s\n", ws.ID, ws.Name)
		return nil
	},
}

var workspaceRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.store.RenameWorkspace(args[0], args[1])
	},
}

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workspace; its papers stay in the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.store.DeleteWorkspace(args[0])
	},
}

var workspaceAddCmd = &cobra.Command{
	Use:   "add <workspace-id> <paper-id...>",
	Short: "Add papers to a workspace",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(context.Background(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, paperID := range args[1:] {
			if _, ok := a.store.Paper(paperID); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: paper %s is not in the library\n", paperID)
			}
			if err := a.store.AddToWorkspace(args[0], paperID); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	workspaceListCmd.Flags().Bool("json", false, "output workspaces as JSON")
	workspaceCreateCmd.Flags().String("description", "", "workspace description")
	workspaceCreateCmd.Flags().String("color", "", "color tag such as bg-indigo-500 (default: next palette color)")

	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceRenameCmd)
	workspaceCmd.AddCommand(workspaceDeleteCmd)
	workspaceCmd.AddCommand(workspaceAddCmd)

	rootCmd.AddCommand(workspaceCmd)
}
