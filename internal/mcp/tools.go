// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/research-hub/internal/ingest"
	"github.com/pdiddy/research-hub/internal/orchestrator"
	"github.com/pdiddy/research-hub/internal/scope"
	"github.com/pdiddy/research-hub/pkg/types"
)

type ListPapersInput struct {
	View string `json:"view,omitempty" jsonschema:"view id such as dashboard or ws-<workspace id>; defaults to the whole library"`
	Tag  string `json:"tag,omitempty" jsonschema:"only papers carrying this tag"`
}

type SearchPapersInput struct {
	Query string `json:"query" jsonschema:"research topic to search for"`
}

type ImportPaperInput struct {
	Title       string   `json:"title" jsonschema:"paper title; an existing identical title is not imported again"`
	Authors     []string `json:"authors,omitempty" jsonschema:"author names in order"`
	Year        int      `json:"year,omitempty" jsonschema:"publication year"`
	Abstract    string   `json:"abstract,omitempty" jsonschema:"paper abstract"`
	Journal     string   `json:"journal,omitempty" jsonschema:"journal or venue"`
	Citations   *int     `json:"citations,omitempty" jsonschema:"citation count"`
	URL         string   `json:"url,omitempty" jsonschema:"source URL"`
	Tags        []string `json:"tags,omitempty" jsonschema:"free-form labels"`
	WorkspaceID string   `json:"workspace_id,omitempty" jsonschema:"also add the paper to this workspace"`
}

type IngestDocumentInput struct {
	Path string `json:"path" jsonschema:"path of a PDF file to ingest"`
}

type ListWorkspacesInput struct{}

type CreateWorkspaceInput struct {
	Name        string `json:"name,omitempty" jsonschema:"workspace name; defaults to New Workspace"`
	Description string `json:"description,omitempty" jsonschema:"what the workspace collects"`
	Color       string `json:"color,omitempty" jsonschema:"color tag such as bg-indigo-500"`
}

type AskBrainyInput struct {
	Message string `json:"message" jsonschema:"question for the research assistant"`
}

type AskWorkspaceInput struct {
	View    string `json:"view,omitempty" jsonschema:"view id whose papers form the context, e.g. ws-1"`
	Message string `json:"message" jsonschema:"research query"`
}

type RunLabToolInput struct {
	Tool string `json:"tool" jsonschema:"one of Semantic Weaver, Conflict Resolver, Synthesis Engine, Citation Forecaster"`
}

type PaperOutput struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Authors   []string              `json:"authors"`
	Year      int                   `json:"year"`
	Abstract  string                `json:"abstract"`
	Journal   string                `json:"journal,omitempty"`
	Citations int                   `json:"citations"`
	URL       string                `json:"url,omitempty"`
	Tags      []string              `json:"tags"`
	AddedAt   string                `json:"added_at"`
	Analysis  *types.AnalysisResult `json:"analysis,omitempty"`
}

type ListPapersOutput struct {
	Papers []PaperOutput `json:"papers"`
}

type CandidateOutput struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Year      int      `json:"year,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	Journal   string   `json:"journal,omitempty"`
	Citations int      `json:"citations"`
	URL       string   `json:"url,omitempty"`
	Tags      []string `json:"tags"`
	InLibrary bool     `json:"in_library"`
}

type SearchPapersOutput struct {
	Results []CandidateOutput `json:"results"`
}

type ImportPaperOutput struct {
	Paper PaperOutput `json:"paper"`
	Added bool        `json:"added"`
}

type IngestDocumentOutput struct {
	Paper PaperOutput `json:"paper"`
}

type WorkspaceOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PaperIDs    []string `json:"paper_ids"`
	CreatedAt   string   `json:"created_at"`
	Color       string   `json:"color"`
}

type ListWorkspacesOutput struct {
	Workspaces []WorkspaceOutput `json:"workspaces"`
}

type ReplyOutput struct {
	Reply string `json:"reply"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_papers",
		Description: "List library papers, most recently added first",
	}, s.handleListPapers)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_papers",
		Description: "Discover papers on a topic with web-grounded AI search",
	}, s.handleSearchPapers)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "import_paper",
		Description: "Add a paper to the library unless its title is already present",
	}, s.handleImportPaper)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "ingest_document",
		Description: "Summarize a local PDF and add it to the library",
	}, s.handleIngestDocument)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_workspaces",
		Description: "List workspaces in creation order",
	}, s.handleListWorkspaces)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "create_workspace",
		Description: "Create an empty workspace",
	}, s.handleCreateWorkspace)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "ask_brainy",
		Description: "Ask the research assistant, which knows every paper title in the library",
	}, s.handleAskBrainy)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "ask_workspace",
		Description: "Ask a question answered from the abstracts of one view's papers",
	}, s.handleAskWorkspace)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "run_lab_tool",
		Description: "Run a multi-paper synthesis over the whole library",
	}, s.handleRunLabTool)
}

func (s *Server) handleListPapers(ctx context.Context, req *sdk.CallToolRequest, input ListPapersInput) (*sdk.CallToolResult, ListPapersOutput, error) {
	snap := s.store.Snapshot()
	papers := scope.Resolve(scope.ParseView(input.View), snap.Papers, snap.Workspaces)

	output := make([]PaperOutput, 0, len(papers))
	for _, p := range papers {
		if input.Tag != "" && !p.HasTag(input.Tag) {
			continue
		}
		output = append(output, paperOutput(p))
	}
	return nil, ListPapersOutput{Papers: output}, nil
}

func (s *Server) handleSearchPapers(ctx context.Context, req *sdk.CallToolRequest, input SearchPapersInput) (*sdk.CallToolResult, SearchPapersOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchPapersOutput{}, fmt.Errorf("query is required")
	}
	results := s.orch.Search(ctx, input.Query)

	output := make([]CandidateOutput, 0, len(results))
	for _, c := range results {
		output = append(output, s.candidateOutput(c))
	}
	return nil, SearchPapersOutput{Results: output}, nil
}

func (s *Server) handleImportPaper(ctx context.Context, req *sdk.CallToolRequest, input ImportPaperInput) (*sdk.CallToolResult, ImportPaperOutput, error) {
	paper, added, err := s.orch.Import(types.Candidate{
		Title:     strings.TrimSpace(input.Title),
		Authors:   input.Authors,
		Year:      input.Year,
		Abstract:  input.Abstract,
		Journal:   input.Journal,
		Citations: input.Citations,
		URL:       input.URL,
		Tags:      input.Tags,
	})
	if err != nil {
		return nil, ImportPaperOutput{}, err
	}
	if input.WorkspaceID != "" {
		if err := s.store.AddToWorkspace(input.WorkspaceID, paper.ID); err != nil {
			return nil, ImportPaperOutput{}, err
		}
	}
	return nil, ImportPaperOutput{Paper: paperOutput(paper), Added: added}, nil
}

func (s *Server) handleIngestDocument(ctx context.Context, req *sdk.CallToolRequest, input IngestDocumentInput) (*sdk.CallToolResult, IngestDocumentOutput, error) {
	if input.Path == "" {
		return nil, IngestDocumentOutput{}, fmt.Errorf("path is required")
	}
	doc, err := ingest.Open(input.Path)
	if err != nil {
		return nil, IngestDocumentOutput{}, err
	}
	paper, _, err := s.orch.Ingest(ctx, doc)
	if err != nil {
		return nil, IngestDocumentOutput{}, err
	}
	return nil, IngestDocumentOutput{Paper: paperOutput(paper)}, nil
}

func (s *Server) handleListWorkspaces(ctx context.Context, req *sdk.CallToolRequest, input ListWorkspacesInput) (*sdk.CallToolResult, ListWorkspacesOutput, error) {
	workspaces := s.store.Workspaces()
	output := make([]WorkspaceOutput, 0, len(workspaces))
	for _, w := range workspaces {
		output = append(output, workspaceOutput(w))
	}
	return nil, ListWorkspacesOutput{Workspaces: output}, nil
}

func (s *Server) handleCreateWorkspace(ctx context.Context, req *sdk.CallToolRequest, input CreateWorkspaceInput) (*sdk.CallToolResult, WorkspaceOutput, error) {
	w, err := s.store.AddWorkspace(input.Name, input.Description, input.Color)
	if err != nil {
		return nil, WorkspaceOutput{}, err
	}
	return nil, workspaceOutput(w), nil
}

func (s *Server) handleAskBrainy(ctx context.Context, req *sdk.CallToolRequest, input AskBrainyInput) (*sdk.CallToolResult, ReplyOutput, error) {
	reply, ok, err := s.orch.ChatBrainy(ctx, input.Message)
	if err != nil {
		return nil, ReplyOutput{}, err
	}
	if !ok {
		return nil, ReplyOutput{}, fmt.Errorf("message is required")
	}
	return nil, ReplyOutput{Reply: reply.Content}, nil
}

func (s *Server) handleAskWorkspace(ctx context.Context, req *sdk.CallToolRequest, input AskWorkspaceInput) (*sdk.CallToolResult, ReplyOutput, error) {
	reply, ok, err := s.orch.ChatWorkspace(ctx, scope.ParseView(input.View), input.Message)
	if err != nil {
		return nil, ReplyOutput{}, err
	}
	if !ok {
		return nil, ReplyOutput{}, fmt.Errorf("message is required")
	}
	return nil, ReplyOutput{Reply: reply.Content}, nil
}

func (s *Server) handleRunLabTool(ctx context.Context, req *sdk.CallToolRequest, input RunLabToolInput) (*sdk.CallToolResult, ReplyOutput, error) {
	tool, err := orchestrator.ParseLabTool(input.Tool)
	if err != nil {
		return nil, ReplyOutput{}, err
	}
	result, err := s.orch.RunLabTool(ctx, tool)
	if err != nil {
		return nil, ReplyOutput{}, err
	}
	return nil, ReplyOutput{Reply: result}, nil
}

func paperOutput(p types.Paper) PaperOutput {
	return PaperOutput{
		ID:        p.ID,
		Title:     p.Title,
		Authors:   nonNil(p.Authors),
		Year:      p.Year,
		Abstract:  p.Abstract,
		Journal:   p.Journal,
		Citations: p.Citations,
		URL:       p.URL,
		Tags:      nonNil(p.Tags),
		AddedAt:   p.AddedAt.UTC().Format(time.RFC3339),
		Analysis:  p.Analysis,
	}
}

func (s *Server) candidateOutput(c types.Candidate) CandidateOutput {
	out := CandidateOutput{
		Title:     c.Title,
		Authors:   nonNil(c.Authors),
		Year:      c.Year,
		Abstract:  c.Abstract,
		Journal:   c.Journal,
		URL:       c.URL,
		Tags:      nonNil(c.Tags),
		InLibrary: s.store.HasTitle(c.Title),
	}
	if c.Citations != nil {
		out.Citations = *c.Citations
	}
	return out
}

func workspaceOutput(w types.Workspace) WorkspaceOutput {
	return WorkspaceOutput{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		PaperIDs:    nonNil(w.PaperIDs),
		CreatedAt:   w.CreatedAt.UTC().Format(time.RFC3339),
		Color:       w.Color,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
