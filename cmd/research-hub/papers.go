// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/internal/scope"
	"github.com/pdiddy/research-hub/pkg/types"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List, inspect and import library papers",
	Long: `Papers manages the library. Papers are listed most recently added
first. A title is unique: importing a paper whose title is already in the
library does nothing.`,
}

// --- list subcommand ---

var papersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in the library or in one view",
	RunE:  runPapersList,
}

func runPapersList(cmd *cobra.Command, args []string) error {
	a, err := openApp(context.Background(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	view, _ := cmd.Flags().GetString("view")
	tag, _ := cmd.Flags().GetString("tag")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	snap := a.store.Snapshot()
	papers := scope.Resolve(scope.ParseView(view), snap.Papers, snap.Workspaces)
	if tag != "" {
		filtered := papers[:0:0]
		for _, p := range papers {
			if p.HasTag(tag) {
				filtered = append(filtered, p)
			}
		}
		papers = filtered
	}
	return formatPapers(cmd.OutOrStdout(), papers, jsonOutput)
}

func formatPapers(w io.Writer, papers []types.Paper, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return nil
	}

	fmt.Fprintf(w, "%-14s  %-50s  %-20s  %-4s  %s\n", "ID", "Title", "Authors", "Year", "Citations")
	fmt.Fprintln(w, strings.Repeat("-", 104))
	for _, p := range papers {
		fmt.Fprintf(w, "%-14s  %-50s  %-20s  %-4d  %d\n",
			truncate(p.ID, 14), truncate(p.Title, 50), truncate(strings.Join(p.Authors, ", "), 20), p.Year, p.Citations)
	}
	fmt.Fprintf(w, "\n%d papers\n", len(papers))
	return nil
}

// --- show subcommand ---

var papersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one paper with its analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runPapersShow,
}

func runPapersShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(context.Background(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	p, ok := a.store.Paper(args[0])
	if !ok {
		return fmt.Errorf("paper %s not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	printPaper(cmd.OutOrStdout(), p)
	return nil
}

func printPaper(w io.Writer, p types.Paper) {
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "  ID:        %s\n", p.ID)
	fmt.Fprintf(w, "  Authors:   %s\n", strings.Join(p.Authors, ", "))
	fmt.Fprintf(w, "  Year:      %d\n", p.Year)
	if p.Journal != "" {
		fmt.Fprintf(w, "  Journal:   %s\n", p.Journal)
	}
	fmt.Fprintf(w, "  Citations: %d\n", p.Citations)
	if p.URL != "" {
		fmt.Fprintf(w, "  URL:       %s\n", p.URL)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:      %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(w, "  Added:     %s\n", p.AddedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "\n%s\n", p.Abstract)
	if p.Analysis != nil {
		fmt.Fprintln(w)
		printAnalysis(w, *p.Analysis)
	}
}

func printAnalysis(w io.Writer, a types.AnalysisResult) {
	if a.ExecutiveSummary != "" {
		fmt.Fprintf(w, "Executive summary:\n  %s\n", a.ExecutiveSummary)
	}
	if len(a.KeyFindings) > 0 {
		fmt.Fprintln(w, "Key findings:")
		for _, f := range a.KeyFindings {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	if a.Methodology != "" {
		fmt.Fprintf(w, "Methodology:\n  %s\n", a.Methodology)
	}
	if len(a.Limitations) > 0 {
		fmt.Fprintln(w, "Limitations:")
		for _, l := range a.Limitations {
			fmt.Fprintf(w, "  - %s\n", l)
		}
	}
	if a.FutureWork != "" {
		fmt.Fprintf(w, "Future work:\n  %s\n", a.FutureWork)
	}
	if a.SignificanceScore > 0 {
		fmt.Fprintf(w, "Significance: %d/100\n", a.SignificanceScore)
	}
}

// --- import subcommand ---

var papersImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a paper, or a JSON array of candidates with --file",
	Long: `Import adds papers to the library. Describe one paper with --title and
the metadata flags, or pass --file with a JSON array of candidates (as
printed by search --json; use - for stdin). Titles already in the library
are skipped.`,
	RunE: runPapersImport,
}

func runPapersImport(cmd *cobra.Command, args []string) error {
	candidates, err := candidatesFromFlags(cmd)
	if err != nil {
		return err
	}

	a, err := openApp(context.Background(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	workspaceID, _ := cmd.Flags().GetString("workspace")
	return importCandidates(cmd.OutOrStdout(), a, candidates, workspaceID)
}

func candidatesFromFlags(cmd *cobra.Command) ([]types.Candidate, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		var data []byte
		var err error
		if file == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, fmt.Errorf("reading candidates: %w", err)
		}
		var candidates []types.Candidate
		if err := json.Unmarshal(data, &candidates); err != nil {
			return nil, fmt.Errorf("parsing candidates: %w", err)
		}
		return candidates, nil
	}

	title, _ := cmd.Flags().GetString("title")
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("provide --title or --file")
	}
	authors, _ := cmd.Flags().GetStringSlice("author")
	year, _ := cmd.Flags().GetInt("year")
	abstract, _ := cmd.Flags().GetString("abstract")
	journal, _ := cmd.Flags().GetString("journal")
	url, _ := cmd.Flags().GetString("url")
	tags, _ := cmd.Flags().GetStringSlice("tag")

	c := types.Candidate{
		Title:    strings.TrimSpace(title),
		Authors:  authors,
		Year:     year,
		Abstract: abstract,
		Journal:  journal,
		URL:      url,
		Tags:     tags,
	}
	if cmd.Flags().Changed("citations") {
		n, _ := cmd.Flags().GetInt("citations")
		c.Citations = &n
	}
	return []types.Candidate{c}, nil
}

// importCandidates adds each candidate and reports what happened. When
// workspaceID is set, imported and already-present papers join it.
func importCandidates(w io.Writer, a *app, candidates []types.Candidate, workspaceID string) error {
	for _, c := range candidates {
		p, added, err := a.store.AddPaper(c)
		if err != nil {
			return fmt.Errorf("importing %q: %w", c.Title, err)
		}
		if added {
			fmt.Fprintf(w, "Imported %s  %s\n", p.ID, p.Title)
		} else {
			fmt.Fprintf(w, "Already in library: %s\n", p.Title)
		}
		if workspaceID != "" {
			if err := a.store.AddToWorkspace(workspaceID, p.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	papersListCmd.Flags().String("view", "dashboard", "view to list: dashboard or ws-<workspace id>")
	papersListCmd.Flags().String("tag", "", "only papers with this tag")
	papersListCmd.Flags().Bool("json", false, "output papers as JSON")

	papersShowCmd.Flags().Bool("json", false, "output the paper as JSON")

	papersImportCmd.Flags().String("file", "", "JSON array of candidates to import (- for stdin)")
	papersImportCmd.Flags().String("title", "", "paper title")
	papersImportCmd.Flags().StringSlice("author", nil, "author name (repeatable)")
	papersImportCmd.Flags().Int("year", 0, "publication year")
	papersImportCmd.Flags().String("abstract", "", "paper abstract")
	papersImportCmd.Flags().String("journal", "", "journal or venue")
	papersImportCmd.Flags().Int("citations", 0, "citation count")
	papersImportCmd.Flags().String("url", "", "source URL")
	papersImportCmd.Flags().StringSlice("tag", nil, "tag (repeatable)")
	papersImportCmd.Flags().String("workspace", "", "also add the papers to this workspace ID")

	papersCmd.AddCommand(papersListCmd)
	papersCmd.AddCommand(papersShowCmd)
	papersCmd.AddCommand(papersImportCmd)

	rootCmd.AddCommand(papersCmd)
}
