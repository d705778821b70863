package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerGameTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_casino_stats",
			mcp.WithDescription("Aggregate roulette results for one player, or for everyone"),
			mcp.WithNumber("user_id", mcp.Description("Optional user id; omit for the whole chat")),
		),
		s.handleGetCasinoStats,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_pets",
			mcp.WithDescription("List living pets and unhatched eggs of a player"),
			mcp.WithNumber("user_id", mcp.Required(), mcp.Description("Owner user id")),
		),
		s.handleListPets,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_duel",
			mcp.WithDescription("Get an open dice duel"),
			mcp.WithString("duel_id", mcp.Required(), mcp.Description("Duel id")),
		),
		s.handleGetDuel,
	)
}

func (s *Server) handleGetCasinoStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(request.GetInt("user_id", 0))
	if userID < 0 {
		return toolError("invalid_request", "user_id must be positive"), nil
	}
	resp, err := s.svcs.Casino.Stats(ctx, userID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleListPets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := int64(request.GetInt("user_id", 0))
	if userID <= 0 {
		return toolError("invalid_request", "user_id is required"), nil
	}
	items, err := s.svcs.Pets.List(ctx, userID)
	if err != nil {
		return mapDomainError(err), nil
	}
	eggs, err := s.svcs.Pets.Eggs(ctx, userID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"pets": items, "eggs": eggs}), nil
}

func (s *Server) handleGetDuel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	duelID, err := request.RequireString("duel_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	d, svcErr := s.svcs.Duels.Get(duelID)
	if svcErr != nil {
		return mapDomainError(svcErr), nil
	}
	return toolResult(d), nil
}
