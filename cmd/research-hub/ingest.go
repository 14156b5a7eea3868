// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.pdf|url>",
	Short: "Summarize a PDF and add it to the library",
	Long: `Ingest derives a title from the PDF filename (my-cool-paper.pdf becomes
"My Cool Paper"), asks Gemini for a structured summary and adds the document
to the library. A paper is created even when the summary fails. Only PDF
files are accepted. An http or https URL is downloaded first, retrying when
the server is rate limiting.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	doc, err := openDocument(ctx, args[0])
	if err != nil {
		return err
	}
	if err := ingest.Validate(doc); err != nil {
		return err
	}

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	paper, _, err := a.orch.Ingest(ctx, doc)
	if err != nil {
		return err
	}

	if archive, _ := cmd.Flags().GetBool("archive"); archive {
		path, err := ingest.Archive(filepath.Join(a.cfg.Mirror.Dir, "uploads"), paper.ID, doc)
		if err != nil {
			return err
		}
		logger.Info("document archived", zap.String("path", path))
	}

	if workspaceID, _ := cmd.Flags().GetString("workspace"); workspaceID != "" {
		if err := a.store.AddToWorkspace(workspaceID, paper.ID); err != nil {
			return err
		}
	}

	active, _ := a.orch.ActiveAnalysis()
	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Paper   any `json:"paper"`
			Summary any `json:"summary"`
		}{paper, active.Summary})
	}

	fmt.Fprintf(w, "Ingested %s  %s\n\n", paper.ID, paper.Title)
	printAnalysis(w, active.Summary)
	return nil
}

func openDocument(ctx context.Context, source string) (ingest.Document, error) {
	if !ingest.IsURL(source) {
		return ingest.Open(source)
	}
	logger.Info("downloading document", zap.String("url", source))
	return ingest.Fetch(ctx, &http.Client{Timeout: 2 * time.Minute}, source)
}

func init() {
	ingestCmd.Flags().String("workspace", "", "also add the paper to this workspace ID")
	ingestCmd.Flags().Bool("archive", false, "keep a copy of the PDF under <data-dir>/uploads")
	ingestCmd.Flags().Bool("json", false, "output the paper and summary as JSON")

	rootCmd.AddCommand(ingestCmd)
}
