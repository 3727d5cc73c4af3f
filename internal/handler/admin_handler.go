package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/rollcall/internal/middleware"
	"github.com/hitoshi/rollcall/internal/model"
)

// UserListerInterface は管理ハンドラーが必要とするアカウント一覧取得インターフェース。
type UserListerInterface interface {
	List(ctx context.Context) ([]*model.User, error)
}

// AdminHandler は管理者向けのHTTPハンドラー。
// ルーティング側でRequireRoles(RoleAdmin)の内側に配置すること。
type AdminHandler struct {
	users UserListerInterface
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(users UserListerInterface) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers は全アカウントの公開ビュー一覧を返す。
// GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	publics := make([]model.PublicUser, 0, len(users))
	for _, user := range users {
		publics = append(publics, user.Public())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"users":   publics,
	})
}

// Attendance は出欠データへのアクセス例を返す。
// 出欠データ本体の管理はこのコアの範囲外のため、認可が通ったことと
// 本人情報のみを返す。
// GET /api/attendance
func Attendance(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewInvalidSessionError())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "出欠データへのアクセスが許可されました。",
		"user": map[string]any{
			"id":    claims.UserID(),
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}
