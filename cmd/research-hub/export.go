// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/internal/scope"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export papers to YAML, JSON or CSL-YAML",
	Long: `Export writes the library, or the papers of one view, to stdout or to
--output. The csl format is CSL-YAML, readable by Pandoc and reference
managers.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	view, _ := cmd.Flags().GetString("view")
	output, _ := cmd.Flags().GetString("output")

	a, err := openApp(context.Background(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	snap := a.store.Snapshot()
	papers := scope.Resolve(scope.ParseView(view), snap.Papers, snap.Workspaces)

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml", "":
		err = library.ExportYAML(w, papers, snap.Workspaces)
	case "json":
		err = library.ExportJSON(w, papers, snap.Workspaces)
	case "csl":
		err = library.FormatCSL(w, papers)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json or csl", format)
	}
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d papers to %s\n", len(papers), output)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml, json or csl")
	exportCmd.Flags().String("view", "dashboard", "view to export: dashboard or ws-<workspace id>")
	exportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
