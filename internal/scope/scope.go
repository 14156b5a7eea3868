// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scope computes which papers are in context for the current view.
package scope

import (
	"strings"

	"github.com/pdiddy/research-hub/pkg/types"
)

// Kind enumerates the views the workspace can show.
type Kind int

const (
	Dashboard Kind = iota
	Search
	Docs
	Tools
	Workspace
)

// workspacePrefix marks a workspace view id, as in "ws-1".
const workspacePrefix = "ws-"

// View is a parsed view identifier. WorkspaceID is set only for Workspace.
type View struct {
	Kind        Kind
	WorkspaceID string
}

// ParseView maps a view id to a View. Unrecognized ids are treated as the
// dashboard.
func ParseView(id string) View {
	switch id {
	case "dashboard":
		return View{Kind: Dashboard}
	case "search":
		return View{Kind: Search}
	case "docs":
		return View{Kind: Docs}
	case "tools":
		return View{Kind: Tools}
	}
	if ws, ok := strings.CutPrefix(id, workspacePrefix); ok && ws != "" {
		return View{Kind: Workspace, WorkspaceID: ws}
	}
	return View{Kind: Dashboard}
}

// ForWorkspace returns the view of workspace id.
func ForWorkspace(id string) View {
	return View{Kind: Workspace, WorkspaceID: id}
}

// String returns the view id ParseView accepts.
func (v View) String() string {
	switch v.Kind {
	case Search:
		return "search"
	case Docs:
		return "docs"
	case Tools:
		return "tools"
	case Workspace:
		return workspacePrefix + v.WorkspaceID
	default:
		return "dashboard"
	}
}

// Resolve returns the papers in context for v. A workspace view yields the
// members that still resolve, in library order, each once; an unknown
// workspace yields nothing. Every other view yields the whole library.
func Resolve(v View, papers []types.Paper, workspaces []types.Workspace) []types.Paper {
	if v.Kind != Workspace {
		return papers
	}

	var members map[string]bool
	for _, w := range workspaces {
		if w.ID == v.WorkspaceID {
			members = make(map[string]bool, len(w.PaperIDs))
			for _, id := range w.PaperIDs {
				members[id] = true
			}
			break
		}
	}
	if len(members) == 0 {
		return []types.Paper{}
	}

	out := make([]types.Paper, 0, len(members))
	for _, p := range papers {
		if members[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
