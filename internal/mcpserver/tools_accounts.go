package mcpserver

import (
	"context"

	"lizard-economy/internal/app/account"
	"lizard-economy/internal/app/pets"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerAccountTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_profile",
			mcp.WithDescription("Get an account profile as another member would see it"),
			mcp.WithNumber("user_id", mcp.Required(), mcp.Description("Chat platform user id")),
			mcp.WithNumber("viewer_id", mcp.Description("Viewer user id; privacy settings apply when it differs from user_id")),
		),
		s.handleGetProfile,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_leaderboard",
			mcp.WithDescription("Get the richest or quiz leaderboard"),
			mcp.WithString("kind", mcp.Description("richest|quiz")),
			mcp.WithNumber("limit", mcp.Description("Rows, default 10, max 50")),
		),
		s.handleGetLeaderboard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_shop",
			mcp.WithDescription("List perk tiers and egg prices"),
		),
		s.handleGetShop,
	)
}

func (s *Server) handleGetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(request.GetInt("user_id", 0))
	if userID <= 0 {
		return toolError("invalid_request", "user_id is required"), nil
	}
	viewerID := int64(request.GetInt("viewer_id", 0))
	resp, err := s.svcs.Accounts.Profile(ctx, userID, viewerID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := normalizeLeaderboardKind(request.GetString("kind", ""))
	if !isAllowedLeaderboardKind(kind) {
		return toolError("invalid_request", "kind must be richest|quiz"), nil
	}
	limit := clampLimit(request.GetInt("limit", defaultLeaderboardLimit))
	resp, err := s.svcs.Accounts.Leaderboard(ctx, kind, limit)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleGetShop(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(map[string]any{
		"perks": account.Catalogue(),
		"eggs":  pets.EggCatalogue(),
	}), nil
}
