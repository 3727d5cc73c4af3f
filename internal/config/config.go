// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hitoshi/rollcall/internal/model"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// 署名シークレットとハッシュコストはプロセス全体で共有される読み取り専用の値であり、
// リクエスト処理中に変更してはならない。
type Config struct {
	// Database
	DatabaseURL string

	// Token / Cookie
	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string

	// Environment ("production" でCookieのSecure/SameSite=Noneが有効になる)
	Env string

	// Password
	PasswordMinLength int
	BcryptCost        int

	// Registration policy
	SelfRegisterRoles []model.Role

	// Rate Limit
	RateLimitGeneral int           // 一般APIの上限（req/window/IP）
	RateLimitAuth    int           // 認証エンドポイントの上限（失敗回数/window/IP）
	RateLimitWindow  time.Duration // レート制限ウィンドウ

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 7*24*time.Hour)
	cfg.CookieName = getEnvString("COOKIE_NAME", "att_token")
	cfg.Env = getEnvString("APP_ENV", "development")
	cfg.PasswordMinLength = getEnvInt("PASSWORD_MIN_LENGTH", 6)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", 12)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 100)
	cfg.RateLimitAuth = getEnvInt("RATE_LIMIT_AUTH", 5)
	cfg.RateLimitWindow = getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:5173")

	roles, err := parseRoleList(getEnvString("SELF_REGISTER_ROLES", "admin,teacher,student"))
	if err != nil {
		return nil, err
	}
	cfg.SelfRegisterRoles = roles

	return cfg, nil
}

// IsProduction は本番環境かどうかを返す。
// CookieのSecure属性とSameSite=Noneの切り替えに使用する。
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// parseRoleList はカンマ区切りのロール指定をパースする。
// 閉じた列挙に含まれない値が含まれる場合はエラーを返す。
func parseRoleList(s string) ([]model.Role, error) {
	var roles []model.Role
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		role, ok := model.ParseRole(part)
		if !ok {
			return nil, fmt.Errorf("invalid role in SELF_REGISTER_ROLES: %q", part)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
