package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`
	BotAPIKey   string `env:"BOT_API_KEY"`

	DBMaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`

	TelegramToken string  `env:"TELEGRAM_TOKEN"`
	AdminChatIDs  []int64 `env:"ADMIN_CHAT_IDS" envSeparator:","`

	NotifyEnabled        bool   `env:"NOTIFY_ENABLED" envDefault:"true"`
	NotifyWorkers        int    `env:"NOTIFY_WORKERS" envDefault:"2"`
	NotifyRetryMax       int    `env:"NOTIFY_RETRY_MAX" envDefault:"3"`
	NotifyRetryBaseMS    int    `env:"NOTIFY_RETRY_BASE_MS" envDefault:"500"`
	NotifyDiscordWebhook string `env:"NOTIFY_DISCORD_WEBHOOK"`

	QuizSeedPath    string        `env:"QUIZ_SEED_PATH"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"1m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
