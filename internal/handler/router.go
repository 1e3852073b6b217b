package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/hanji/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// エントリ読み取り
	EntryService EntryServiceInterface

	// 今日の単語
	WordOfDayService WordOfDayServiceInterface

	// 提案ワークフロー
	SuggestionService SuggestionServiceInterface

	// 運用系
	Pinger         Pinger
	MetricsHandler http.Handler
	StartedAt      time.Time
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → RequestID → Logging → Recovery → RateLimit
//
// 運用系ルート（/health、/uptime、/metrics）はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())

	entryHandler := NewEntryHandler(deps.EntryService)
	wodHandler := NewWordOfDayHandler(deps.WordOfDayService)
	suggestionHandler := NewSuggestionHandler(deps.SuggestionService)
	healthHandler := NewHealthHandler(deps.Pinger, deps.StartedAt)

	// --- 運用系ルート ---

	r.Get("/health", healthHandler.Health)
	r.Get("/uptime", healthHandler.Uptime)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- APIルート ---
	// ミドルウェアスタック: RateLimit
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.Middleware())

		// エントリ読み取り
		r.Route("/api/entries", func(r chi.Router) {
			r.Get("/", entryHandler.ListEntries)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", entryHandler.GetEntry)
				r.Get("/examples", entryHandler.GetExamples)
			})
		})

		// 全文検索
		r.Get("/api/search", entryHandler.Search)

		// 今日の単語
		r.Get("/api/word-of-day", wodHandler.Get)

		// 提案ワークフロー
		r.Route("/api/suggestions", func(r chi.Router) {
			r.Get("/", suggestionHandler.List)
			r.Post("/", suggestionHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", suggestionHandler.Get)
				r.Put("/", suggestionHandler.Edit)
				r.Post("/apply", suggestionHandler.Apply)
			})
		})
	})

	return r
}
