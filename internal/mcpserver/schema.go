package mcpserver

import "lizard-economy/internal/app/account"

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return limit
}

func normalizeLeaderboardKind(v string) account.LeaderboardKind {
	if v == "" {
		return account.LeaderboardRichest
	}
	return account.LeaderboardKind(v)
}

func isAllowedLeaderboardKind(k account.LeaderboardKind) bool {
	return k == account.LeaderboardRichest || k == account.LeaderboardQuiz
}
