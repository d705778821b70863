package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EconomyConfig holds the tunable rules of the game economy.
type EconomyConfig struct {
	HuntCooldown  time.Duration `env:"HUNT_COOLDOWN" envDefault:"24h"`
	HuntRewardMin int64         `env:"HUNT_REWARD_MIN" envDefault:"1"`
	HuntRewardMax int64         `env:"HUNT_REWARD_MAX" envDefault:"10"`

	QuizShortCooldown   time.Duration `env:"QUIZ_SHORT_COOLDOWN" envDefault:"30m"`
	QuizLongCooldown    time.Duration `env:"QUIZ_LONG_COOLDOWN" envDefault:"12h"`
	QuizQuestionTimeout time.Duration `env:"QUIZ_QUESTION_TIMEOUT" envDefault:"20s"`
	QuizTargetStreak    int           `env:"QUIZ_TARGET_STREAK" envDefault:"3"`
	QuizReward          int64         `env:"QUIZ_REWARD" envDefault:"15"`

	MarriageCost             int64         `env:"MARRIAGE_COST" envDefault:"250"`
	MarriageMinLevel         int           `env:"MARRIAGE_MIN_LEVEL" envDefault:"1"`
	MarriageProposalCooldown time.Duration `env:"MARRIAGE_PROPOSAL_COOLDOWN" envDefault:"10m"`
	HandshakeTTL             time.Duration `env:"HANDSHAKE_TTL" envDefault:"10m"`

	DuelExpiry     time.Duration `env:"DUEL_EXPIRY" envDefault:"10m"`
	DuelRollPacing time.Duration `env:"DUEL_ROLL_PACING" envDefault:"0s"`

	PetCap         int           `env:"PET_CAP" envDefault:"5"`
	PetUnlockLevel int           `env:"PET_UNLOCK_LEVEL" envDefault:"2"`
	PetNeglectTTL  time.Duration `env:"PET_NEGLECT_TTL" envDefault:"48h"`

	CasinoMinBet   int64         `env:"CASINO_MIN_BET" envDefault:"10"`
	CasinoMaxBet   int64         `env:"CASINO_MAX_BET" envDefault:"10000"`
	CasinoCooldown time.Duration `env:"CASINO_COOLDOWN" envDefault:"1m"`

	TopUpMin          int64 `env:"TOPUP_MIN" envDefault:"20"`
	TopUpMax          int64 `env:"TOPUP_MAX" envDefault:"10000"`
	TopUpUnitsPerStar int64 `env:"TOPUP_UNITS_PER_STAR" envDefault:"3"`

	PingCooldown      time.Duration `env:"PING_COOLDOWN" envDefault:"15m"`
	PingMinIdle       time.Duration `env:"PING_MIN_IDLE" envDefault:"1h"`
	PingMaxIdle       time.Duration `env:"PING_MAX_IDLE" envDefault:"72h"`
	PingMaxCandidates int           `env:"PING_MAX_CANDIDATES" envDefault:"20"`
}

func LoadEconomy() (EconomyConfig, error) {
	var cfg EconomyConfig
	err := env.Parse(&cfg)
	return cfg, err
}
