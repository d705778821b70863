package activity

import (
	"context"
	"errors"
	"sync"
	"time"

	"lizard-economy/internal/config"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/rng"

	"github.com/rs/zerolog/log"
)

var (
	ErrNotChatAdmin = errors.New("not_chat_admin")
	ErrNoCandidates = errors.New("no_ping_candidates")
)

var pingPhrases = []string{
	"чем занимаешься?",
	"заходи на игру?",
	"как насчет катки?",
	"го общаться!",
	"скучно, давай поговорим?",
	"какие планы на вечер?",
	"что нового?",
	"мы скучаем по тебе!",
	"пора вернуться в строй!",
	"расскажи анекдот!",
	"какой фильм посоветуешь?",
	"ты где пропал(а)?",
	"давно не виделись!",
	"заглядывай к нам почаще!",
	"есть минутка?",
	"какую музыку слушаешь?",
	"как настроение?",
	"давай поболтаем?",
	"кто хочет в пати?",
	"расскажи, как прошел твой день?",
}

type PingRequest struct {
	ChatID       int64
	CallerID     int64
	CallerAdmin  bool
	ChatAdminIDs []int64
}

type PingResult struct {
	ChatID  int64   `json:"chat_id"`
	UserIDs []int64 `json:"user_ids"`
	Phrase  string  `json:"phrase"`
}

// Pinger selects idle members of a chat to mention.
type Pinger struct {
	tracker Tracker
	policy  cooldown.Policy
	minIdle time.Duration
	maxIdle time.Duration
	limit   int
	rnd     rng.Source
	now     func() time.Time

	mu       sync.Mutex
	lastPing map[int64]time.Time
}

func NewPinger(tracker Tracker, cfg config.EconomyConfig, rnd rng.Source, now func() time.Time) *Pinger {
	if rnd == nil {
		rnd = rng.Global
	}
	if now == nil {
		now = time.Now
	}
	limit := cfg.PingMaxCandidates
	if limit <= 0 {
		limit = 20
	}
	return &Pinger{
		tracker:  tracker,
		policy:   cooldown.Policy{Kind: cooldown.KindPing, Duration: cfg.PingCooldown},
		minIdle:  cfg.PingMinIdle,
		maxIdle:  cfg.PingMaxIdle,
		limit:    limit,
		rnd:      rnd,
		now:      now,
		lastPing: map[int64]time.Time{},
	}
}

// Touch records a non-bot group message.
func (p *Pinger) Touch(chatID, userID int64) {
	p.tracker.Touch(chatID, userID, p.now())
}

func (p *Pinger) Ping(_ context.Context, req PingRequest) (PingResult, error) {
	if !req.CallerAdmin {
		return PingResult{}, ErrNotChatAdmin
	}
	now := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.policy.Enforce(p.lastPing[req.ChatID], now); err != nil {
		return PingResult{}, err
	}

	admins := make(map[int64]struct{}, len(req.ChatAdminIDs)+1)
	for _, id := range req.ChatAdminIDs {
		admins[id] = struct{}{}
	}
	admins[req.CallerID] = struct{}{}
	var eligible []int64
	for _, id := range p.tracker.Idle(req.ChatID, now, p.minIdle, p.maxIdle) {
		if _, isAdmin := admins[id]; !isAdmin {
			eligible = append(eligible, id)
		}
	}
	if len(eligible) == 0 {
		return PingResult{}, ErrNoCandidates
	}

	p.lastPing[req.ChatID] = now
	res := PingResult{
		ChatID:  req.ChatID,
		UserIDs: rng.Sample(p.rnd, eligible, p.limit),
		Phrase:  rng.Pick(p.rnd, pingPhrases),
	}
	log.Info().Int64("chat_id", req.ChatID).Int64("caller_id", req.CallerID).Int("pinged", len(res.UserIDs)).Msg("ping issued")
	return res, nil
}

// StartJanitor drops activity older than the idle window on every tick.
func (p *Pinger) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := p.tracker.Prune(p.now().Add(-p.maxIdle)); n > 0 {
					log.Debug().Int("entries", n).Msg("activity pruned")
				}
			}
		}
	}()
}
