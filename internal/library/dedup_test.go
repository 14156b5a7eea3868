// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-hub/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		in            types.Candidate
		wantCitations int
	}{
		{name: "missing citations", in: types.Candidate{Title: "A"}, wantCitations: 0},
		{name: "zero citations", in: types.Candidate{Title: "A", Citations: ptr(0)}, wantCitations: 0},
		{name: "negative citations", in: types.Candidate{Title: "A", Citations: ptr(-4)}, wantCitations: 0},
		{name: "positive citations", in: types.Candidate{Title: "A", Citations: ptr(42)}, wantCitations: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.in, testNow, "p-x")
			assert.Equal(t, tt.wantCitations, p.Citations)
			assert.Equal(t, "p-x", p.ID)
			assert.Equal(t, testNow, p.AddedAt)
			assert.NotNil(t, p.Tags)
			assert.Empty(t, p.Tags)
			assert.NotNil(t, p.Authors)
			assert.Empty(t, p.Authors)
		})
	}
}

func TestNormalizeKeepsFields(t *testing.T) {
	analysis := &types.AnalysisResult{ExecutiveSummary: "Short.", KeyFindings: []string{"graphs"}}
	c := types.Candidate{
		Title:    "Graph Attention Networks",
		Authors:  []string{"Velickovic"},
		Year:     2018,
		Abstract: "Attention on graphs.",
		Journal:  "ICLR",
		URL:      "https://arxiv.org/abs/1710.10903",
		Tags:     []string{"gnn"},
		Analysis: analysis,
	}

	p := Normalize(c, testNow, "p-1")
	assert.Equal(t, c.Title, p.Title)
	assert.Equal(t, c.Authors, p.Authors)
	assert.Equal(t, 2018, p.Year)
	assert.Equal(t, c.Abstract, p.Abstract)
	assert.Equal(t, "ICLR", p.Journal)
	assert.Equal(t, c.URL, p.URL)
	assert.Equal(t, []string{"gnn"}, p.Tags)
	require.NotNil(t, p.Analysis)
	assert.Equal(t, *analysis, *p.Analysis)
	assert.NotSame(t, analysis, p.Analysis)

	c.Tags[0] = "mutated"
	analysis.ExecutiveSummary = "Changed."
	analysis.KeyFindings[0] = "mutated"
	assert.Equal(t, "gnn", p.Tags[0], "normalized paper must not alias the candidate")
	assert.Equal(t, "Short.", p.Analysis.ExecutiveSummary)
	assert.Equal(t, []string{"graphs"}, p.Analysis.KeyFindings)
}
