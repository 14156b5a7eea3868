// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/research-hub/internal/ai/aitest"
	"github.com/pdiddy/research-hub/internal/ingest"
	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/internal/mirror"
	"github.com/pdiddy/research-hub/internal/orchestrator"
	"github.com/pdiddy/research-hub/pkg/types"
)

func newTestServer(t *testing.T, fake *aitest.Fake) (*Server, *library.Store) {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	store, err := library.Load(mirror.NewMemory(), library.WithClock(clock))
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)
	orch := orchestrator.New(fake, store, orchestrator.WithLogger(logger), orchestrator.WithClock(clock))
	return NewServer(store, orch, logger, "test"), store
}

func TestListPapers(t *testing.T) {
	server, store := newTestServer(t, aitest.New())
	_, _, err := store.AddPaper(tagged("Loose Paper", "survey"))
	require.NoError(t, err)

	_, all, err := server.handleListPapers(context.Background(), nil, ListPapersInput{})
	require.NoError(t, err)
	require.Len(t, all.Papers, 3)
	assert.Equal(t, "Loose Paper", all.Papers[0].Title)
	assert.Equal(t, "2026-03-14T09:30:00Z", all.Papers[0].AddedAt)

	_, scoped, err := server.handleListPapers(context.Background(), nil, ListPapersInput{View: "ws-1"})
	require.NoError(t, err)
	assert.Len(t, scoped.Papers, 2)

	_, byTag, err := server.handleListPapers(context.Background(), nil, ListPapersInput{Tag: "nlp"})
	require.NoError(t, err)
	require.Len(t, byTag.Papers, 1)
	assert.Equal(t, "p1", byTag.Papers[0].ID)
}

func TestSearchPapersMarksImported(t *testing.T) {
	fake := aitest.New(aitest.Text(`[{"title": "Attention Is All You Need", "citations": 5}, {"title": "Mamba"}]`))
	server, _ := newTestServer(t, fake)

	_, out, err := server.handleSearchPapers(context.Background(), nil, SearchPapersInput{Query: "sequence models"})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.True(t, out.Results[0].InLibrary)
	assert.Equal(t, 5, out.Results[0].Citations)
	assert.False(t, out.Results[1].InLibrary)
	assert.Equal(t, []string{}, out.Results[1].Tags)

	_, _, err = server.handleSearchPapers(context.Background(), nil, SearchPapersInput{Query: " "})
	assert.Error(t, err)
	assert.Equal(t, 1, fake.Calls())
}

func TestImportPaper(t *testing.T) {
	server, store := newTestServer(t, aitest.New())

	_, out, err := server.handleImportPaper(context.Background(), nil, ImportPaperInput{Title: "Mamba", WorkspaceID: "1"})
	require.NoError(t, err)
	assert.True(t, out.Added)

	w, ok := store.Workspace("1")
	require.True(t, ok)
	assert.Contains(t, w.PaperIDs, out.Paper.ID)

	_, again, err := server.handleImportPaper(context.Background(), nil, ImportPaperInput{Title: "Mamba"})
	require.NoError(t, err)
	assert.False(t, again.Added)
	assert.Equal(t, out.Paper.ID, again.Paper.ID)

	_, _, err = server.handleImportPaper(context.Background(), nil, ImportPaperInput{Title: ""})
	assert.ErrorIs(t, err, library.ErrEmptyTitle)

	_, _, err = server.handleImportPaper(context.Background(), nil, ImportPaperInput{Title: "Other", WorkspaceID: "missing"})
	assert.ErrorIs(t, err, library.ErrWorkspaceNotFound)
}

func TestIngestDocument(t *testing.T) {
	server, store := newTestServer(t, aitest.New(aitest.Text(`{"executiveSummary": "Summary."}`)))

	dir := t.TempDir()
	path := filepath.Join(dir, "state-space_models.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.5"), 0o644))

	_, out, err := server.handleIngestDocument(context.Background(), nil, IngestDocumentInput{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "State Space Models", out.Paper.Title)
	assert.Equal(t, "Summary.", out.Paper.Abstract)
	assert.True(t, store.HasTitle("State Space Models"))

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain"), 0o644))
	_, _, err = server.handleIngestDocument(context.Background(), nil, IngestDocumentInput{Path: txt})
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)
}

func TestWorkspaces(t *testing.T) {
	server, _ := newTestServer(t, aitest.New())

	_, created, err := server.handleCreateWorkspace(context.Background(), nil, CreateWorkspaceInput{Name: "Vision"})
	require.NoError(t, err)
	assert.Equal(t, "Vision", created.Name)
	assert.Equal(t, []string{}, created.PaperIDs)

	_, list, err := server.handleListWorkspaces(context.Background(), nil, ListWorkspacesInput{})
	require.NoError(t, err)
	require.Len(t, list.Workspaces, 2)
	assert.Equal(t, "Neural Networks", list.Workspaces[0].Name)
	assert.Equal(t, created.ID, list.Workspaces[1].ID)
}

func TestAskTools(t *testing.T) {
	fake := aitest.New(aitest.Text("Hello from Brainy."), aitest.Text(""))
	server, _ := newTestServer(t, fake)

	_, brainy, err := server.handleAskBrainy(context.Background(), nil, AskBrainyInput{Message: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hello from Brainy.", brainy.Reply)

	_, ws, err := server.handleAskWorkspace(context.Background(), nil, AskWorkspaceInput{View: "ws-1", Message: "Summarize"})
	require.NoError(t, err)
	assert.Equal(t, "Synthesis failed.", ws.Reply)

	_, _, err = server.handleAskBrainy(context.Background(), nil, AskBrainyInput{Message: ""})
	assert.Error(t, err)
}

func TestRunLabTool(t *testing.T) {
	fake := aitest.New(aitest.Text("# Themes"))
	server, _ := newTestServer(t, fake)

	_, out, err := server.handleRunLabTool(context.Background(), nil, RunLabToolInput{Tool: "Synthesis Engine"})
	require.NoError(t, err)
	assert.Equal(t, "# Themes", out.Reply)

	_, _, err = server.handleRunLabTool(context.Background(), nil, RunLabToolInput{Tool: "Telepathy"})
	assert.ErrorIs(t, err, orchestrator.ErrUnknownTool)
	assert.Equal(t, 1, fake.Calls())
}

func tagged(title string, tags ...string) types.Candidate {
	return types.Candidate{Title: title, Tags: tags}
}
