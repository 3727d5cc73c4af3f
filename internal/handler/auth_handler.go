// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/rollcall/internal/auth"
	"github.com/hitoshi/rollcall/internal/middleware"
	"github.com/hitoshi/rollcall/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, email, password, requestedRole string) (*model.User, string, error)
	Login(ctx context.Context, email, password, selectedRole string) (*auth.LoginResult, error)
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieName   string
	CookieMaxAge int  // セッションCookieの有効期間（秒）。トークンTTLと一致させる
	Production   bool // trueでSecure属性とSameSite=Noneを有効にする
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	SelectedRole string `json:"selectedRole"`
}

// Register は新規アカウントを登録し、セッションCookieを設定する。
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの形式が正しくありません。"))
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"user":    user.Public(),
	})
}

// Login は資格情報とロール選択を検証し、セッションCookieを設定する。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの形式が正しくありません。"))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password, req.SelectedRole)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 二要素認証の完了待ち。クレームは未発行のため、Cookieは設定しない
	if result.Status == auth.LoginChallengePending {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":           false,
			"twoFactorRequired": true,
			"challengeId":       result.ChallengeID,
		})
		return
	}

	h.setSessionCookie(w, result.Token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"user":    result.User.Public(),
	})
}

// Logout はセッションCookieをクリアする。
// セッションが存在しない場合も成功を返す（冪等）。
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "ログアウトしました。",
	})
}

// Me は現在のログインユーザー情報を返す。
// クレームの値をそのまま返さず、DBから最新のアカウント状態を再取得する。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewInvalidSessionError())
		return
	}

	user, err := h.service.CurrentUser(r.Context(), claims.UserID())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"user":    user.Public(),
	})
}

// setSessionCookie はセッショントークンをHTTP Only Cookieとして設定する。
// 本番環境ではSecure属性とSameSite=Noneを使用し、
// それ以外の環境ではSameSite=Laxに緩和する。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.config.CookieMaxAge,
		HttpOnly: true,
		Secure:   h.config.Production,
		SameSite: h.sameSite(),
	})
}

// clearSessionCookie はセッションCookieを削除する。
// ブラウザが確実に削除するよう、設定時と同じ属性を使用する。
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.Production,
		SameSite: h.sameSite(),
	})
}

func (h *AuthHandler) sameSite() http.SameSite {
	if h.config.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// writeAPIErrorResponse は統一エラーフォーマットでレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidation, model.ErrCodeDuplicateAccount, model.ErrCodeInvalidRole:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials, model.ErrCodeInvalidSession:
		return http.StatusUnauthorized
	case model.ErrCodeRoleMismatch, model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
