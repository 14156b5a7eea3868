// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcp exposes the library and the orchestrator as Model Context
// Protocol tools so an MCP client can browse, import and ask about papers.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pdiddy/research-hub/internal/library"
	"github.com/pdiddy/research-hub/internal/orchestrator"
)

type Server struct {
	store  *library.Store
	orch   *orchestrator.Orchestrator
	logger *zap.Logger
	mcp    *sdk.Server
}

func NewServer(store *library.Store, orch *orchestrator.Orchestrator, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		store:  store,
		orch:   orch,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "research-hub",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	s.logger.Info("mcp server starting")
	return s.mcp.Run(ctx, transport)
}
