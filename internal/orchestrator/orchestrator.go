// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrator runs the AI-backed operations against the library:
// discovery search, document ingestion, lab tools, and the two chat
// threads. Each runs in its own slot with its own busy state, ticketing and
// deadline. Collaborator failures never escape: they are logged and turned
// into empty or fallback results.
package orchestrator

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/ai"
	"github.com/pdiddy/research-hub/internal/chat"
	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/pkg/types"
)

// Default slot deadlines.
const (
	DefaultSearchTimeout = 60 * time.Second
	DefaultIngestTimeout = 90 * time.Second
	DefaultLabTimeout    = 180 * time.Second
	DefaultChatTimeout   = 60 * time.Second
)

// DefaultSearchResults is how many candidates discovery search asks for.
const DefaultSearchResults = 5

// ActiveAnalysis is the most recent ingestion, as shown after an upload.
type ActiveAnalysis struct {
	Paper   types.Paper
	Summary types.AnalysisResult
}

// Orchestrator coordinates collaborator calls. It is safe for concurrent use;
// calls on different slots never wait on each other.
type Orchestrator struct {
	collab ai.Collaborator
	store  *library.Store
	logger *zap.Logger
	now    func() time.Time
	ai     types.AIConfig

	searchSlot    *slot
	ingestSlot    *slot
	labSlot       *slot
	brainySlot    *slot
	workspaceSlot *slot

	brainyLog    *chat.Log
	workspaceLog *chat.Log

	mu             sync.RWMutex
	searchResults  []types.Candidate
	labResult      string
	activeAnalysis *ActiveAnalysis
}

// Option configures an Orchestrator.
type Option func(*settings)

type settings struct {
	logger   *zap.Logger
	now      func() time.Time
	ai       types.AIConfig
	timeouts types.TimeoutConfig
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock overrides the time source used for the ingestion year.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithAIConfig sets models, thinking budget and search result count. Zero
// fields keep their defaults.
func WithAIConfig(cfg types.AIConfig) Option {
	return func(s *settings) { s.ai = cfg }
}

// WithTimeouts sets the per-slot deadlines. Zero fields keep their defaults.
func WithTimeouts(cfg types.TimeoutConfig) Option {
	return func(s *settings) { s.timeouts = cfg }
}

// New returns an Orchestrator that calls collab and imports into store.
func New(collab ai.Collaborator, store *library.Store, opts ...Option) *Orchestrator {
	s := settings{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}

	cfg := s.ai
	if cfg.Model == "" {
		cfg.Model = ai.DefaultModel
	}
	if cfg.LabModel == "" {
		cfg.LabModel = ai.DefaultLabModel
	}
	if cfg.ThinkingBudget <= 0 {
		cfg.ThinkingBudget = ai.DefaultThinkingBudget
	}
	if cfg.SearchResults <= 0 {
		cfg.SearchResults = DefaultSearchResults
	}

	t := s.timeouts
	return &Orchestrator{
		collab:        collab,
		store:         store,
		logger:        s.logger,
		now:           s.now,
		ai:            cfg,
		searchSlot:    newSlot(SlotSearch, supersede, orDefault(t.Search, DefaultSearchTimeout)),
		ingestSlot:    newSlot(SlotIngest, serialize, orDefault(t.Ingest, DefaultIngestTimeout)),
		labSlot:       newSlot(SlotLab, supersede, orDefault(t.Lab, DefaultLabTimeout)),
		brainySlot:    newSlot(SlotBrainy, serialize, orDefault(t.Chat, DefaultChatTimeout)),
		workspaceSlot: newSlot(SlotWorkspace, serialize, orDefault(t.Chat, DefaultChatTimeout)),
		brainyLog:     chat.NewLog(),
		workspaceLog:  chat.NewLog(),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Busy reports whether slot has a call in flight or queued.
func (o *Orchestrator) Busy(slot Slot) bool {
	switch slot {
	case SlotSearch:
		return o.searchSlot.busy()
	case SlotIngest:
		return o.ingestSlot.busy()
	case SlotLab:
		return o.labSlot.busy()
	case SlotBrainy:
		return o.brainySlot.busy()
	case SlotWorkspace:
		return o.workspaceSlot.busy()
	}
	return false
}

// SearchResults returns the transient results of the newest search.
func (o *Orchestrator) SearchResults() []types.Candidate {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]types.Candidate(nil), o.searchResults...)
}

// LabResult returns the output of the newest lab tool run, or "" while one
// is running.
func (o *Orchestrator) LabResult() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.labResult
}

// ActiveAnalysis returns the most recent ingestion, if any.
func (o *Orchestrator) ActiveAnalysis() (ActiveAnalysis, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.activeAnalysis == nil {
		return ActiveAnalysis{}, false
	}
	return *o.activeAnalysis, true
}

// ClearActiveAnalysis dismisses the active analysis.
func (o *Orchestrator) ClearActiveAnalysis() {
	o.mu.Lock()
	o.activeAnalysis = nil
	o.mu.Unlock()
}

// BrainyLog returns the assistant conversation.
func (o *Orchestrator) BrainyLog() *chat.Log { return o.brainyLog }

// WorkspaceLog returns the workspace conversation.
func (o *Orchestrator) WorkspaceLog() *chat.Log { return o.workspaceLog }

// generate calls the collaborator and logs failures against slot.
func (o *Orchestrator) generate(c call, slot Slot, req ai.Request) (string, error) {
	start := time.Now()
	text, err := o.collab.Generate(c.ctx, req)
	if err != nil {
		o.logger.Warn("collaborator call failed",
			zap.String("slot", string(slot)),
			zap.Uint64("ticket", c.ticket),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}
	o.logger.Debug("collaborator replied",
		zap.String("slot", string(slot)),
		zap.Uint64("ticket", c.ticket),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(text)))
	return text, nil
}
