package mcpserver

import (
	"errors"
	"fmt"

	"lizard-economy/internal/app/account"
	"lizard-economy/internal/app/casino"
	"lizard-economy/internal/app/duel"
	"lizard-economy/internal/app/pets"
	"lizard-economy/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolResult(data any) *mcp.CallToolResult {
	return mcp.NewToolResultStructuredOnly(data)
}

func toolError(code, message string) *mcp.CallToolResult {
	result := mcp.NewToolResultStructured(
		map[string]any{
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
		fmt.Sprintf("%s: %s", code, message),
	)
	result.IsError = true
	return result
}

// knownErrors are reported with their own code; anything else is internal.
var knownErrors = []error{
	account.ErrAccountNotFound,
	account.ErrInvalidRequest,
	pets.ErrAccountNotFound,
	casino.ErrAccountNotFound,
	duel.ErrDuelNotFound,
	duel.ErrDuelExpired,
	store.ErrNotFound,
}

func mapDomainError(err error) *mcp.CallToolResult {
	if err == nil {
		return toolError("internal_error", "unknown error")
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return toolError(known.Error(), err.Error())
		}
	}
	return toolError("internal_error", err.Error())
}
