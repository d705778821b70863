package testutil

import (
	"time"

	"lizard-economy/internal/config"
)

// Economy returns the production defaults without reading the environment.
func Economy() config.EconomyConfig {
	return config.EconomyConfig{
		HuntCooldown:             24 * time.Hour,
		HuntRewardMin:            1,
		HuntRewardMax:            10,
		QuizShortCooldown:        30 * time.Minute,
		QuizLongCooldown:         12 * time.Hour,
		QuizQuestionTimeout:      20 * time.Second,
		QuizTargetStreak:         3,
		QuizReward:               15,
		MarriageCost:             250,
		MarriageMinLevel:         1,
		MarriageProposalCooldown: 10 * time.Minute,
		HandshakeTTL:             10 * time.Minute,
		DuelExpiry:               10 * time.Minute,
		PetCap:                   5,
		PetUnlockLevel:           2,
		PetNeglectTTL:            48 * time.Hour,
		CasinoMinBet:             10,
		CasinoMaxBet:             10000,
		CasinoCooldown:           time.Minute,
		TopUpMin:                 20,
		TopUpMax:                 10000,
		TopUpUnitsPerStar:        3,
		PingCooldown:             15 * time.Minute,
		PingMinIdle:              time.Hour,
		PingMaxIdle:              72 * time.Hour,
		PingMaxCandidates:        20,
	}
}
