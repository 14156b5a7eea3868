// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-hub/pkg/types"
)

// ExportEntry is one paper as written by ExportYAML and ExportJSON. It
// flattens the analysis and adds the names of the workspaces holding the
// paper.
type ExportEntry struct {
	ID         string                `json:"id" yaml:"id"`
	Title      string                `json:"title" yaml:"title"`
	Authors    []string              `json:"authors" yaml:"authors"`
	Year       int                   `json:"year" yaml:"year"`
	Journal    string                `json:"journal,omitempty" yaml:"journal,omitempty"`
	Citations  int                   `json:"citations" yaml:"citations"`
	URL        string                `json:"url,omitempty" yaml:"url,omitempty"`
	Tags       []string              `json:"tags" yaml:"tags"`
	AddedAt    string                `json:"added_at" yaml:"added_at"`
	Abstract   string                `json:"abstract" yaml:"abstract"`
	Workspaces []string              `json:"workspaces,omitempty" yaml:"workspaces,omitempty"`
	Analysis   *types.AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// ExportYAML writes papers as a YAML list to w.
func ExportYAML(w io.Writer, papers []types.Paper, workspaces []types.Workspace) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportEntries(papers, workspaces)); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes papers as an indented JSON array to w.
func ExportJSON(w io.Writer, papers []types.Paper, workspaces []types.Workspace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportEntries(papers, workspaces)); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func exportEntries(papers []types.Paper, workspaces []types.Workspace) []ExportEntry {
	membership := make(map[string][]string)
	for _, w := range workspaces {
		seen := make(map[string]bool, len(w.PaperIDs))
		for _, id := range w.PaperIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			membership[id] = append(membership[id], w.Name)
		}
	}

	entries := make([]ExportEntry, len(papers))
	for i, p := range papers {
		entries[i] = ExportEntry{
			ID:         p.ID,
			Title:      p.Title,
			Authors:    nonNil(p.Authors),
			Year:       p.Year,
			Journal:    p.Journal,
			Citations:  p.Citations,
			URL:        p.URL,
			Tags:       nonNil(p.Tags),
			AddedAt:    p.AddedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Abstract:   p.Abstract,
			Workspaces: membership[p.ID],
		}
		if !p.Analysis.IsEmpty() {
			entries[i].Analysis = p.Analysis
		}
	}
	return entries
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
