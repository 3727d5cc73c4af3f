package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/rollcall/internal/metrics"
	"github.com/hitoshi/rollcall/internal/middleware"
	"github.com/hitoshi/rollcall/internal/model"
)

// maxBodyBytes はリクエストボディの上限サイズ（10KB）。
const maxBodyBytes = 10 << 10

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CookieName        string
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 管理
	UserLister UserListerInterface

	// メトリクス（nil可）
	Gatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → (認証ルート: MaxBytes + AuthRateLimit)
//	                                            → (保護ルート: Auth → GeneralRateLimit → RoleGate)
//
// 認証エンドポイントのレート制限は失敗応答のみをカウントするため、
// ハンドラーの外側（レスポンス観測可能な位置）に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	adminHandler := NewAdminHandler(deps.UserLister)
	authMW := middleware.NewAuthMiddleware(deps.TokenVerifier, deps.CookieName)

	// --- 認証不要のルート ---

	r.Get("/api/health", healthCheck)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.NewMaxBytesMiddleware(maxBodyBytes))

		// 登録・ログインは失敗試行のみをカウントする専用レート制限の内側に置く
		r.With(deps.RateLimiter.AuthMiddleware()).Post("/register", authHandler.Register)
		r.With(deps.RateLimiter.AuthMiddleware()).Post("/login", authHandler.Login)

		// ログアウトは冪等のためレート制限・認証とも不要
		r.Post("/logout", authHandler.Logout)

		r.With(authMW).Get("/me", authHandler.Me)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General) → RoleGate
	// ロールゲートは必ず認証の後に評価する（未認証は403ではなく401を返す）
	r.Group(func(r chi.Router) {
		r.Use(authMW)
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/me", authHandler.Me)

		// 管理者専用
		r.With(middleware.RequireRoles(model.RoleAdmin)).
			Get("/api/admin/users", adminHandler.ListUsers)

		// 管理者・教師向け
		r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleTeacher)).
			Get("/api/attendance", Attendance)
	})

	return r
}

// healthCheck はサーバーの稼働状態を返す。
// GET /api/health
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
