package notify

import (
	"strings"
	"time"

	"lizard-economy/internal/config"
)

// ConfigFromServer enables delivery as soon as a platform is configured.
// NOTIFY_ENABLED=false switches it off.
func ConfigFromServer(cfg config.ServerConfig) Config {
	webhook := strings.TrimSpace(cfg.NotifyDiscordWebhook)
	hasTarget := strings.TrimSpace(cfg.TelegramToken) != "" || webhook != ""
	out := Config{
		Enabled:             cfg.NotifyEnabled && hasTarget,
		AdminChatIDs:        append([]int64(nil), cfg.AdminChatIDs...),
		DiscordWebhook:      webhook,
		Workers:             cfg.NotifyWorkers,
		RetryMax:            cfg.NotifyRetryMax,
		RetryBase:           time.Duration(cfg.NotifyRetryBaseMS) * time.Millisecond,
		FailureThreshold:    3,
		CircuitOpenDuration: 30 * time.Second,
		RequestTimeout:      5 * time.Second,
		DispatchBuffer:      1024,
	}
	if out.Workers <= 0 {
		out.Workers = 2
	}
	if out.RetryMax < 0 {
		out.RetryMax = 0
	}
	if out.RetryBase <= 0 {
		out.RetryBase = 500 * time.Millisecond
	}
	return out
}
