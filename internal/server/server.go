// Package server runs the ideascope MCP server over stdio.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ideascope/internal/tools"
)

// Name is the implementation name announced to MCP clients.
const Name = "ideascope"

// instructions is sent to clients during initialization.
const instructions = `Ideascope assesses software project ideas.
Call analyze_idea with a one or two sentence idea to get feasibility scores,
a tech stack, a roadmap and supporting research papers. Use stage2 for an
executive summary with quick wins. Pass save=true to get a report ID that
get_report can load later.`

// Server is the MCP server with the ideascope tools installed.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New builds the server. Without deps only the protocol surface exists,
// which is enough for handshake tests.
func New(version string, logger *slog.Logger, deps *tools.Dependencies) *Server {
	srv := mcp.NewServer(
		&mcp.Implementation{Name: Name, Version: version},
		&mcp.ServerOptions{Instructions: instructions},
	)
	srv.AddReceivingMiddleware(LoggingMiddleware(logger))
	if deps != nil {
		tools.RegisterAll(srv, deps)
	}
	return &Server{mcp: srv, logger: logger}
}

// Run serves stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server listening", "transport", "stdio", "name", Name)
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve runs the server on an arbitrary transport.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	return s.mcp.Run(ctx, transport)
}
