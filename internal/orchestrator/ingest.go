// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/ai"
	"github.com/pdiddy/research-hub/internal/ingest"
	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/pkg/types"
)

// Fields stamped on every ingested paper.
const (
	uploadAuthor      = "Uploaded Asset"
	uploadJournal     = "Personal Repository"
	uploadAbstract    = "Document ingested and indexed for workspace analysis."
	noSummaryFinding  = "No structured summary generated."
	uploadTagUploaded = "uploaded"
	uploadTagPrivate  = "private"
)

// Ingest summarizes an uploaded document and adds it to the library. The
// document must be a PDF; anything else returns ingest.ErrUnsupportedFormat
// without calling the collaborator. A paper is created even when the
// summary fails, in which case the returned analysis is nil. Ingestions
// queue behind each other so none is lost. The returned error is non-nil
// only for rejected input, cancellation while queued, or a failed library
// write.
func (o *Orchestrator) Ingest(ctx context.Context, doc ingest.Document) (types.Paper, *types.AnalysisResult, error) {
	if err := ingest.Validate(doc); err != nil {
		return types.Paper{}, nil, err
	}
	title := doc.Title()
	if title == "" {
		return types.Paper{}, nil, library.ErrEmptyTitle
	}

	c, err := o.ingestSlot.begin(ctx)
	if err != nil {
		return types.Paper{}, nil, err
	}
	defer c.done()

	analysis := o.summarize(c, title)

	abstract := uploadAbstract
	if analysis != nil && analysis.ExecutiveSummary != "" {
		abstract = analysis.ExecutiveSummary
	}
	zero := 0
	paper, err := o.store.AddUpload(types.Candidate{
		Title:     title,
		Authors:   []string{uploadAuthor},
		Year:      o.now().Year(),
		Abstract:  abstract,
		Journal:   uploadJournal,
		Citations: &zero,
		Tags:      []string{uploadTagUploaded, uploadTagPrivate},
		Analysis:  analysis,
	})
	if paper.ID == "" {
		return types.Paper{}, analysis, err
	}

	summary := types.AnalysisResult{KeyFindings: []string{noSummaryFinding}}
	if analysis != nil {
		summary = *analysis
	}
	o.mu.Lock()
	o.activeAnalysis = &ActiveAnalysis{Paper: paper, Summary: summary}
	o.mu.Unlock()

	o.logger.Info("document ingested",
		zap.String("id", paper.ID),
		zap.String("title", paper.Title),
		zap.Bool("summarized", analysis != nil))
	return paper, analysis, err
}

func (o *Orchestrator) summarize(c call, title string) *types.AnalysisResult {
	prompt, err := renderSummarizePrompt(title)
	if err != nil {
		o.logger.Error("building summary prompt", zap.Error(err))
		return nil
	}

	text, err := o.generate(c, SlotIngest, ai.Request{
		Prompt:    prompt,
		Model:     o.ai.Model,
		WebSearch: true,
	})
	if err != nil {
		return nil
	}

	analysis, err := ai.DecodeObject[types.AnalysisResult](text)
	if err != nil {
		o.logger.Warn("unparseable summary response", zap.String("title", title), zap.Error(err))
		return nil
	}
	return analysis
}
