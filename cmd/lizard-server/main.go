package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lizard-economy/internal/app"
	"lizard-economy/internal/app/quiz"
	"lizard-economy/internal/config"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/logging"
	"lizard-economy/internal/notify"
	"lizard-economy/internal/notify/platforms"
	"lizard-economy/internal/store"
	httptransport "lizard-economy/internal/transport/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer func() { _ = logging.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg.Server.PostgresDSN, store.PoolConfig{
		MaxConns:        cfg.Server.DBMaxConns,
		MinConns:        cfg.Server.DBMinConns,
		MaxConnLifetime: cfg.Server.DBMaxConnLifetime,
		MaxConnIdleTime: cfg.Server.DBMaxConnIdleTime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	if err := seedQuiz(ctx, st, cfg.Server.QuizSeedPath); err != nil {
		log.Fatal().Err(err).Msg("seed quiz questions failed")
	}

	notifier := newNotifier(ctx, cfg.Server)
	svcs := app.NewServices(st, cfg.Economy, app.Options{Notifier: notifier})
	defer svcs.Shutdown()
	if err := svcs.Quiz.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("load quiz questions failed")
	}
	svcs.Quiz.OnTimeout(func(ev quiz.TimeoutEvent) {
		notifier.Notify(notify.ToUser(ev.UserID, notify.KindQuizTimeout,
			"Quiz over",
			"Time ran out. Next quiz in "+cooldown.FormatRemaining(time.Until(ev.NextAt)),
			notify.IntField("streak", int64(ev.Streak)),
		))
	})
	svcs.StartBackground(ctx, cfg.Server.JanitorInterval)

	r := httptransport.NewRouter(st, cfg.Server, svcs)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func seedQuiz(ctx context.Context, st *store.Store, path string) error {
	questions := quiz.DefaultQuestions()
	if path != "" {
		loaded, err := quiz.LoadQuestions(path)
		if err != nil {
			return err
		}
		questions = loaded
	}
	return quiz.Seed(ctx, st, questions)
}

// newNotifier builds the delivery pipeline for every configured platform.
// Without any platform notices are dropped.
func newNotifier(ctx context.Context, cfg config.ServerConfig) notify.Notifier {
	var adapters []platforms.Adapter
	if cfg.TelegramToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			log.Error().Err(err).Msg("telegram bot init failed; telegram notices disabled")
		} else {
			log.Info().Str("bot", bot.Self.UserName).Msg("telegram bot ready")
			adapters = append(adapters, platforms.NewTelegramAdapter(bot))
		}
	}
	if cfg.NotifyDiscordWebhook != "" {
		adapters = append(adapters, platforms.NewDiscordAdapter(platforms.NewHTTPClient(5*time.Second)))
	}
	if len(adapters) == 0 {
		return notify.Discard{}
	}
	ncfg := notify.ConfigFromServer(cfg)
	if !ncfg.Enabled {
		log.Warn().Int("platforms", len(adapters)).Msg("NOTIFY_ENABLED=false; notices will be dropped")
	}
	m := notify.NewManager(ncfg, adapters...)
	if err := m.Start(ctx); err != nil {
		log.Error().Err(err).Msg("notifier start failed")
		return notify.Discard{}
	}
	return m
}
