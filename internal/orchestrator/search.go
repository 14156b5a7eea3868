// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/ai"
	"github.com/pdiddy/research-hub/pkg/types"
)

// Search asks the collaborator, grounded on web search, for candidate papers
// matching query. A blank query is a no-op. Any failure yields an empty
// list. The newest search replaces the transient results; a search
// superseded by a newer one is canceled and its results are discarded.
func (o *Orchestrator) Search(ctx context.Context, query string) []types.Candidate {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	c, err := o.searchSlot.begin(ctx)
	if err != nil {
		return []types.Candidate{}
	}
	defer c.done()

	results := o.search(c, query)

	if !o.searchSlot.commit(c.ticket, func() {
		o.mu.Lock()
		o.searchResults = results
		o.mu.Unlock()
	}) {
		o.logger.Debug("discarding stale search results",
			zap.Uint64("ticket", c.ticket), zap.String("query", query))
	}
	return results
}

func (o *Orchestrator) search(c call, query string) []types.Candidate {
	prompt, err := renderSearchPrompt(query, o.ai.SearchResults)
	if err != nil {
		o.logger.Error("building search prompt", zap.Error(err))
		return []types.Candidate{}
	}

	text, err := o.generate(c, SlotSearch, ai.Request{
		Prompt:    prompt,
		Model:     o.ai.Model,
		WebSearch: true,
	})
	if err != nil {
		return []types.Candidate{}
	}

	decoded, skipped, err := ai.DecodeArray[types.Candidate](text)
	if err != nil {
		o.logger.Warn("unparseable search response", zap.Error(err))
		return []types.Candidate{}
	}
	if skipped > 0 {
		o.logger.Warn("skipping malformed search candidates", zap.Int("skipped", skipped))
	}

	results := make([]types.Candidate, 0, len(decoded))
	for _, cand := range decoded {
		if cand.Title == "" {
			o.logger.Debug("dropping untitled search candidate")
			continue
		}
		results = append(results, cand)
		if len(results) == o.ai.SearchResults {
			break
		}
	}
	return results
}

// Import adds a search candidate to the library. A title already present is
// a no-op reported by added == false.
func (o *Orchestrator) Import(c types.Candidate) (paper types.Paper, added bool, err error) {
	return o.store.AddPaper(c)
}
