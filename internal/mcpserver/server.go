package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"lizard-economy/internal/app"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server exposes read-only views of the economy as MCP tools.
type Server struct {
	svcs *app.Services

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(svcs *app.Services) *Server {
	mcpSrv := server.NewMCPServer(
		"lizard-economy",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	)
	s := &Server{
		svcs:       svcs,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerAccountTools()
	s.registerGameTools()
	s.registerResources()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"duel://{duel_id}",
			"open_duel",
			mcp.WithTemplateDescription("Open dice duel by id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			raw := string(request.Params.URI)
			if !strings.HasPrefix(raw, "duel://") {
				return nil, nil
			}
			duelID := strings.TrimPrefix(raw, "duel://")
			if duelID == "" {
				return nil, nil
			}
			d, err := s.svcs.Duels.Get(duelID)
			if err != nil {
				return nil, err
			}
			payload, err := json.Marshal(d)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      raw,
					MIMEType: "application/json",
					Text:     string(payload),
				},
			}, nil
		},
	)
}
