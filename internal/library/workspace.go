// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/pkg/types"
)

// defaultWorkspaceName is used when a workspace is created without a name.
const defaultWorkspaceName = "New Workspace"

// workspaceColors is cycled through for workspaces created without a color.
var workspaceColors = []string{
	"bg-indigo-500",
	"bg-purple-500",
	"bg-emerald-500",
	"bg-blue-500",
	"bg-rose-500",
	"bg-amber-500",
}

// Workspaces returns a copy of the workspace list in creation order.
func (s *Store) Workspaces() []types.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWorkspaces(s.workspaces)
}

// Workspace returns the workspace with id.
func (s *Store) Workspace(id string) (types.Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOfWorkspaceLocked(id); i >= 0 {
		return cloneWorkspace(s.workspaces[i]), true
	}
	return types.Workspace{}, false
}

// AddWorkspace creates an empty workspace and appends it to the list.
func (s *Store) AddWorkspace(name, description, color string) (types.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultWorkspaceName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		color = workspaceColors[len(s.workspaces)%len(workspaceColors)]
	}

	w := types.Workspace{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		PaperIDs:    []string{},
		CreatedAt:   s.now(),
		Color:       color,
	}
	s.workspaces = append(s.workspaces, w)
	s.logger.Info("workspace added", zap.String("id", w.ID), zap.String("name", w.Name))

	if err := s.writeWorkspacesLocked(); err != nil {
		return cloneWorkspace(w), err
	}
	return cloneWorkspace(w), nil
}

// RenameWorkspace changes a workspace's display name.
func (s *Store) RenameWorkspace(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfWorkspaceLocked(id)
	if i < 0 {
		return fmt.Errorf("renaming %s: %w", id, ErrWorkspaceNotFound)
	}
	if s.workspaces[i].Name == name {
		return nil
	}
	s.workspaces[i].Name = name
	return s.writeWorkspacesLocked()
}

// DeleteWorkspace removes a workspace. Its papers stay in the library.
func (s *Store) DeleteWorkspace(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfWorkspaceLocked(id)
	if i < 0 {
		return fmt.Errorf("deleting %s: %w", id, ErrWorkspaceNotFound)
	}
	s.workspaces = append(s.workspaces[:i:i], s.workspaces[i+1:]...)
	s.logger.Info("workspace deleted", zap.String("id", id))
	return s.writeWorkspacesLocked()
}

// AddToWorkspace appends paperID to a workspace's membership. The paper is
// not required to exist and duplicates are kept; readers resolve membership
// against the live collection.
func (s *Store) AddToWorkspace(workspaceID, paperID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfWorkspaceLocked(workspaceID)
	if i < 0 {
		return fmt.Errorf("adding to %s: %w", workspaceID, ErrWorkspaceNotFound)
	}
	s.workspaces[i].PaperIDs = append(s.workspaces[i].PaperIDs, paperID)
	return s.writeWorkspacesLocked()
}

func (s *Store) indexOfWorkspaceLocked(id string) int {
	for i, w := range s.workspaces {
		if w.ID == id {
			return i
		}
	}
	return -1
}
