package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/rollcall/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// 原因カテゴリと対処方法を含む。
// ActualRole/SelectedRoleはロール不一致エラー（本人確認済みの呼び出し元にのみ
// 返る）の場合だけ設定される。
type ErrorResponseBody struct {
	Success      bool       `json:"success"`
	Code         string     `json:"code"`
	Message      string     `json:"message"`
	Category     string     `json:"category"`
	Action       string     `json:"action"`
	ActualRole   model.Role `json:"actualRole,omitempty"`
	SelectedRole model.Role `json:"selectedRole,omitempty"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Success:      false,
		Code:         apiErr.Code,
		Message:      apiErr.Message,
		Category:     apiErr.Category,
		Action:       apiErr.Action,
		ActualRole:   apiErr.ActualRole,
		SelectedRole: apiErr.SelectedRole,
	})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}
