package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"lizard-economy/internal/app"
	"lizard-economy/internal/config"
	"lizard-economy/internal/mcpserver"
	"lizard-economy/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, cfg config.ServerConfig, svcs *app.Services) *chi.Mux {
	mcpSrv := mcpserver.New(svcs)

	accountHandlers := NewAccountHandlers(svcs.Accounts)
	socialHandlers := NewSocialHandlers(svcs.Marriage, svcs.Duels)
	petHandlers := NewPetHandlers(svcs.Pets)
	gameHandlers := NewGameHandlers(svcs.Quiz, svcs.Casino, svcs.Ping)
	adminHandlers := NewAdminHandlers(st, svcs.Accounts)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())
	r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	})
	r.Group(func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Use(BotAuthMiddleware(cfg.BotAPIKey))
		r.Method(http.MethodPost, "/mcp", mcpSrv.Handler())
		r.Method(http.MethodGet, "/mcp", mcpSrv.Handler())
		r.Method(http.MethodDelete, "/mcp", mcpSrv.Handler())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Route("/v1", func(r chi.Router) {
			r.Use(BotAuthMiddleware(cfg.BotAPIKey))
			r.Get("/shop", accountHandlers.Shop())
			r.Get("/leaderboard", accountHandlers.Leaderboard())
			r.Post("/topup/confirm", accountHandlers.TopUpConfirm())
			r.Get("/casino/stats", gameHandlers.CasinoStats())

			r.Route("/accounts/{user_id}", func(r chi.Router) {
				r.Put("/", accountHandlers.Ensure())
				r.Get("/", accountHandlers.Profile())
				r.Post("/hunt", accountHandlers.Hunt())
				r.Post("/transfer", accountHandlers.Transfer())
				r.Put("/nickname", accountHandlers.Nickname())
				r.Put("/privacy", accountHandlers.Privacy())
				r.Post("/perks", accountHandlers.PurchasePerk())
				r.Post("/topup/quote", accountHandlers.TopUpQuote())

				r.Get("/pets", petHandlers.List())
				r.Post("/pets/{pet_id}/{action}", petHandlers.Care())
				r.Get("/eggs", petHandlers.Eggs())
				r.Post("/eggs", petHandlers.BuyEgg())
				r.Post("/eggs/{egg_id}/hatch", petHandlers.Hatch())

				r.Post("/quiz", gameHandlers.StartQuiz())
				r.Post("/quiz/answer", gameHandlers.AnswerQuiz())
				r.Post("/casino", gameHandlers.PlayCasino())
			})

			r.Route("/marriage", func(r chi.Router) {
				r.Post("/propose", socialHandlers.Propose())
				r.Post("/confirm", socialHandlers.ConfirmProposal())
				r.Post("/cancel", socialHandlers.CancelProposal())
				r.Post("/withdraw", socialHandlers.WithdrawProposal())
				r.Post("/decline", socialHandlers.DeclineProposal())
				r.Post("/accept", socialHandlers.AcceptProposal())
				r.Post("/divorce", socialHandlers.RequestDivorce())
				r.Post("/divorce/confirm", socialHandlers.ConfirmDivorce())
				r.Post("/divorce/cancel", socialHandlers.CancelDivorce())
			})

			r.Route("/duels", func(r chi.Router) {
				r.Post("/", socialHandlers.StartDuel())
				r.Get("/{duel_id}", socialHandlers.GetDuel())
				r.Post("/{duel_id}/accept", socialHandlers.AcceptDuel())
				r.Post("/{duel_id}/cancel", socialHandlers.CancelDuel())
			})

			r.Post("/chats/{chat_id}/activity", gameHandlers.Activity())
			r.Post("/chats/{chat_id}/ping", gameHandlers.Ping())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Post("/give", adminHandlers.Give())
			r.Post("/topup", adminHandlers.Topup())
			r.Get("/ledger", adminHandlers.Ledger())

			r.Route("/debug", func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(4096))
				r.Get("/vars", expvar.Handler().ServeHTTP)
			})
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 64)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	fmt.Fprintf(&b, "Registered routes (%d):\n", len(routes))
	for _, rt := range routes {
		fmt.Fprintf(&b, "  %-6s %s\n", rt.Method, rt.Path)
	}
	log.Info().Msg(b.String())
}
