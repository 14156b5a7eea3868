// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-hub/internal/ai/aitest"
	"github.com/pdiddy/research-hub/internal/ingest"
	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/pkg/types"
)

const summaryReply = "```json\n" + `{
  "keyFindings": ["Sparse attention scales linearly."],
  "methodology": "Benchmarks on long-document tasks.",
  "limitations": ["English only."],
  "futureWork": "Multilingual evaluation.",
  "significanceScore": 140,
  "executiveSummary": "A linear-time attention variant."
}` + "\n```"

func pdf(name string) ingest.Document {
	return ingest.Document{Name: name, Content: []byte("%PDF-1.7 test")}
}

func TestIngestCreatesPaper(t *testing.T) {
	store := newStore(t)
	fake := aitest.New(aitest.Text(summaryReply))
	o := newOrchestrator(t, fake, store)

	paper, analysis, err := o.Ingest(context.Background(), pdf("sparse-attention_at-scale.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "Sparse Attention At Scale", paper.Title)
	assert.Equal(t, []string{"Uploaded Asset"}, paper.Authors)
	assert.Equal(t, 2026, paper.Year)
	assert.Equal(t, "A linear-time attention variant.", paper.Abstract)
	assert.Equal(t, "Personal Repository", paper.Journal)
	assert.Equal(t, 0, paper.Citations)
	assert.Empty(t, paper.URL)
	assert.Equal(t, []string{"uploaded", "private"}, paper.Tags)

	require.NotNil(t, analysis)
	assert.Equal(t, 100, analysis.SignificanceScore, "scores are clamped")
	assert.Equal(t, analysis, paper.Analysis)

	assert.Equal(t, paper.ID, store.Papers()[0].ID, "ingested paper goes to the head")

	active, ok := o.ActiveAnalysis()
	require.True(t, ok)
	assert.Equal(t, paper.ID, active.Paper.ID)
	assert.Equal(t, *analysis, active.Summary)

	req := fake.Requests()[0]
	assert.True(t, req.WebSearch)
	assert.Contains(t, req.Prompt, `paper titled: "Sparse Attention At Scale"`)
	assert.False(t, o.Busy(SlotIngest))
}

func TestIngestSummaryFailureStillCreatesPaper(t *testing.T) {
	for name, reply := range map[string]aitest.Reply{
		"transport": aitest.Fail(errNetwork),
		"no json":   aitest.Text("Sorry, I cannot summarize that."),
	} {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			o := newOrchestrator(t, aitest.New(reply), store)

			paper, analysis, err := o.Ingest(context.Background(), pdf("notes.pdf"))
			require.NoError(t, err)
			assert.Nil(t, analysis)
			assert.Nil(t, paper.Analysis)
			assert.Equal(t, "Document ingested and indexed for workspace analysis.", paper.Abstract)
			assert.True(t, store.HasTitle("Notes"))

			active, ok := o.ActiveAnalysis()
			require.True(t, ok)
			assert.Equal(t, []string{"No structured summary generated."}, active.Summary.KeyFindings)
			assert.False(t, o.Busy(SlotIngest))

			o.ClearActiveAnalysis()
			_, ok = o.ActiveAnalysis()
			assert.False(t, ok)
		})
	}
}

func TestIngestRejectsNonPDF(t *testing.T) {
	store := newStore(t)
	fake := aitest.New()
	o := newOrchestrator(t, fake, store)

	_, _, err := o.Ingest(context.Background(), ingest.Document{Name: "draft.docx", Content: []byte("PK")})
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)
	assert.Zero(t, fake.Calls())
	assert.Len(t, store.Papers(), 2)

	_, _, err = o.Ingest(context.Background(), pdf(".pdf"))
	assert.ErrorIs(t, err, library.ErrEmptyTitle)
	assert.Zero(t, fake.Calls())
}

func TestIngestCollidingTitlesAreSuffixed(t *testing.T) {
	store := newStore(t)
	fake := aitest.New()
	fake.Default = aitest.Text(summaryReply)
	o := newOrchestrator(t, fake, store)

	first, _, err := o.Ingest(context.Background(), pdf("report.pdf"))
	require.NoError(t, err)
	second, _, err := o.Ingest(context.Background(), pdf("report.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "Report", first.Title)
	assert.Equal(t, "Report (2)", second.Title)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestIngestConcurrentUploadsAreAllKept(t *testing.T) {
	store := newStore(t)
	fake := aitest.New()
	fake.Default = aitest.Text(summaryReply)
	o := newOrchestrator(t, fake, store)

	var g errgroup.Group
	for i := range 5 {
		g.Go(func() error {
			_, _, err := o.Ingest(context.Background(), pdf(fmt.Sprintf("upload-%d.pdf", i)))
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, store.Papers(), 7)
	assert.Equal(t, 5, fake.Calls())
	assert.False(t, o.Busy(SlotIngest))

	uploaded := 0
	for _, p := range store.Papers() {
		if p.HasTag("uploaded") {
			uploaded++
		}
	}
	assert.Equal(t, 5, uploaded)
}

func TestIngestKeepsEmptyAnalysisVerbatim(t *testing.T) {
	o := newOrchestrator(t, aitest.New(aitest.Text("{}")), newStore(t))

	paper, analysis, err := o.Ingest(context.Background(), pdf("blank.pdf"))
	require.NoError(t, err)
	require.NotNil(t, analysis)
	assert.True(t, analysis.IsEmpty())
	assert.Equal(t, "Document ingested and indexed for workspace analysis.", paper.Abstract)

	active, _ := o.ActiveAnalysis()
	assert.Equal(t, types.AnalysisResult{}, active.Summary)
}

func TestIngestAnalysisIsDetachedFromStore(t *testing.T) {
	store := newStore(t)
	o := newOrchestrator(t, aitest.New(aitest.Text(summaryReply)), store)

	paper, analysis, err := o.Ingest(context.Background(), pdf("sparse-attention.pdf"))
	require.NoError(t, err)
	require.NotNil(t, analysis)

	analysis.ExecutiveSummary = "edited by caller"
	analysis.KeyFindings[0] = "edited by caller"

	stored, ok := store.Paper(paper.ID)
	require.True(t, ok)
	require.NotNil(t, stored.Analysis)
	assert.Equal(t, "A linear-time attention variant.", stored.Analysis.ExecutiveSummary)
	assert.Equal(t, []string{"Sparse attention scales linearly."}, stored.Analysis.KeyFindings)
}
