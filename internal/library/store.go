// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library owns the paper and workspace collections. Store is the
// only legal way to change them: every successful mutation writes the full
// affected collection back to the durable mirror before returning.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/mirror"
	"github.com/pdiddy/research-hub/pkg/types"
)

// Mirror keys. Values are JSON except the theme and auth flags, which are
// plain strings.
const (
	KeyPapers     = "rh_papers"
	KeyWorkspaces = "rh_workspaces"
	KeyTheme      = "rh_theme"
	KeyAuth       = "rh_auth"
)

var (
	// ErrEmptyTitle is returned when a candidate has no title.
	ErrEmptyTitle = errors.New("paper title is empty")

	// ErrWorkspaceNotFound is returned for an unknown workspace ID.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrEmptyName is returned when a workspace would be given a blank name.
	ErrEmptyName = errors.New("workspace name is empty")
)

// Snapshot is a point-in-time copy of both collections.
type Snapshot struct {
	Papers     []types.Paper     `json:"papers" yaml:"papers"`
	Workspaces []types.Workspace `json:"workspaces" yaml:"workspaces"`
}

// Store holds the authoritative paper and workspace collections. Papers are
// kept most-recent-first; workspaces in creation order. It is safe for
// concurrent use.
type Store struct {
	mu         sync.RWMutex
	mirror     mirror.Mirror
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
	papers     []types.Paper
	workspaces []types.Workspace
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used for AddedAt and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the identity source. IDs must never repeat.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Load rehydrates a Store from m. A collection whose key is absent or
// unreadable is replaced by the seed data and written back.
func Load(m mirror.Mirror, opts ...Option) (*Store, error) {
	s := &Store{
		mirror: m,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	papers, ok, err := loadCollection[types.Paper](m, KeyPapers, s.logger)
	if err != nil {
		return nil, err
	}
	seedPapers := !ok
	if seedPapers {
		papers = defaultPapers()
	}

	workspaces, ok, err := loadCollection[types.Workspace](m, KeyWorkspaces, s.logger)
	if err != nil {
		return nil, err
	}
	seedWorkspaces := !ok
	if seedWorkspaces {
		workspaces = defaultWorkspaces()
	}

	s.papers = papers
	s.workspaces = workspaces

	if seedPapers {
		if err := s.writePapersLocked(); err != nil {
			return nil, err
		}
	}
	if seedWorkspaces {
		if err := s.writeWorkspacesLocked(); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("library loaded",
		zap.Int("papers", len(papers)),
		zap.Int("workspaces", len(workspaces)),
		zap.Bool("seeded_papers", seedPapers),
		zap.Bool("seeded_workspaces", seedWorkspaces))
	return s, nil
}

// loadCollection reads a JSON array from key. ok is false when the key is
// absent or its value cannot be parsed; a mirror read failure is an error.
func loadCollection[T any](m mirror.Mirror, key string, logger *zap.Logger) ([]T, bool, error) {
	raw, ok, err := m.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("discarding unreadable collection", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, true, nil
}

// Papers returns a copy of the paper collection, most recent first.
func (s *Store) Papers() []types.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePapers(s.papers)
}

// Paper returns the paper with id.
func (s *Store) Paper(id string) (types.Paper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.papers {
		if p.ID == id {
			return clonePaper(p), true
		}
	}
	return types.Paper{}, false
}

// HasTitle reports whether a paper with exactly this title is in the library.
func (s *Store) HasTitle(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOfTitleLocked(title) >= 0
}

// Snapshot returns copies of both collections taken under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Papers:     clonePapers(s.papers),
		Workspaces: cloneWorkspaces(s.workspaces),
	}
}

// AddPaper imports a candidate. When a paper with the identical title
// already exists the call is a no-op: it returns that paper and false.
// Otherwise the new paper is placed at the head of the collection and
// persisted.
func (s *Store) AddPaper(c types.Candidate) (types.Paper, bool, error) {
	if isBlank(c.Title) {
		return types.Paper{}, false, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOfTitleLocked(c.Title); i >= 0 {
		s.logger.Debug("skipping duplicate paper", zap.String("title", c.Title))
		return clonePaper(s.papers[i]), false, nil
	}

	p := s.insertLocked(c)
	if err := s.writePapersLocked(); err != nil {
		return clonePaper(p), true, err
	}
	return clonePaper(p), true, nil
}

// AddUpload imports a candidate that must always produce a new paper, as an
// uploaded document does. A colliding title gets a " (n)" suffix so titles
// stay unique.
func (s *Store) AddUpload(c types.Candidate) (types.Paper, error) {
	if isBlank(c.Title) {
		return types.Paper{}, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := c.Title
	for n := 2; s.indexOfTitleLocked(c.Title) >= 0; n++ {
		c.Title = fmt.Sprintf("%s (%d)", base, n)
	}

	p := s.insertLocked(c)
	if err := s.writePapersLocked(); err != nil {
		return clonePaper(p), err
	}
	return clonePaper(p), nil
}

func (s *Store) insertLocked(c types.Candidate) types.Paper {
	p := Normalize(c, s.now(), "p-"+s.newID())
	s.papers = append([]types.Paper{p}, s.papers...)
	s.logger.Info("paper added", zap.String("id", p.ID), zap.String("title", p.Title))
	return p
}

func (s *Store) indexOfTitleLocked(title string) int {
	for i, p := range s.papers {
		if p.Title == title {
			return i
		}
	}
	return -1
}

func (s *Store) writePapersLocked() error {
	return s.writeLocked(KeyPapers, s.papers)
}

func (s *Store) writeWorkspacesLocked() error {
	return s.writeLocked(KeyWorkspaces, s.workspaces)
}

func (s *Store) writeLocked(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	if err := s.mirror.Set(key, string(data)); err != nil {
		s.logger.Error("mirror write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func clonePaper(p types.Paper) types.Paper {
	p.Authors = cloneStrings(p.Authors)
	p.Tags = cloneStrings(p.Tags)
	p.Analysis = cloneAnalysis(p.Analysis)
	return p
}

func cloneAnalysis(a *types.AnalysisResult) *types.AnalysisResult {
	if a == nil {
		return nil
	}
	c := *a
	c.KeyFindings = cloneStrings(c.KeyFindings)
	c.Limitations = cloneStrings(c.Limitations)
	return &c
}

func clonePapers(papers []types.Paper) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		out[i] = clonePaper(p)
	}
	return out
}

func cloneWorkspace(w types.Workspace) types.Workspace {
	w.PaperIDs = cloneStrings(w.PaperIDs)
	return w
}

func cloneWorkspaces(workspaces []types.Workspace) []types.Workspace {
	out := make([]types.Workspace, len(workspaces))
	for i, w := range workspaces {
		out[i] = cloneWorkspace(w)
	}
	return out
}
