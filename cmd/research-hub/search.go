// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Discover papers with web-grounded AI search",
	Long: `Search asks Gemini, grounded on Google Search, for papers on a topic and
prints the candidates. Candidates whose title is already in the library are
marked. Use --import with 1-based positions, or --import-all, to add them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.Join(args, " ")
	results := a.orch.Search(ctx, query)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := formatCandidates(cmd.OutOrStdout(), a.store, results, jsonOutput); err != nil {
		return err
	}

	picks, _ := cmd.Flags().GetIntSlice("import")
	if all, _ := cmd.Flags().GetBool("import-all"); all {
		picks = picks[:0]
		for i := range results {
			picks = append(picks, i+1)
		}
	}
	if len(picks) == 0 {
		return nil
	}

	selected := make([]types.Candidate, 0, len(picks))
	for _, n := range picks {
		if n < 1 || n > len(results) {
			return fmt.Errorf("--import %d: choose between 1 and %d", n, len(results))
		}
		selected = append(selected, results[n-1])
	}
	workspaceID, _ := cmd.Flags().GetString("workspace")
	return importCandidates(cmd.OutOrStdout(), a, selected, workspaceID)
}

func formatCandidates(w io.Writer, store *library.Store, results []types.Candidate, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []types.Candidate{}
		}
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %-4s  %-9s  %s\n", "#", "Title", "Authors", "Year", "Citations", "")
	fmt.Fprintln(w, strings.Repeat("-", 104))
	for i, c := range results {
		citations := "-"
		if c.Citations != nil {
			citations = fmt.Sprint(*c.Citations)
		}
		marker := ""
		if store.HasTitle(c.Title) {
			marker = "in library"
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %-4d  %-9s  %s\n",
			i+1, truncate(c.Title, 50), truncate(strings.Join(c.Authors, ", "), 20), c.Year, citations, marker)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func init() {
	searchCmd.Flags().Bool("json", false, "output candidates as JSON")
	searchCmd.Flags().IntSlice("import", nil, "import the candidates at these 1-based positions")
	searchCmd.Flags().Bool("import-all", false, "import every candidate")
	searchCmd.Flags().String("workspace", "", "also add imported papers to this workspace ID")

	rootCmd.AddCommand(searchCmd)
}
