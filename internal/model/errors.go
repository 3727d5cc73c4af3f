// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// ActualRole/SelectedRoleはロール不一致エラーの場合のみ設定される。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, system
	Action   string // ユーザー向け対処方法

	ActualRole   Role // ロール不一致時のみ: DBに保存されている実際のロール
	SelectedRole Role // ロール不一致時のみ: クライアントが選択したロール
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDuplicateAccount   = "DUPLICATE_ACCOUNT"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidRole        = "INVALID_ROLE"
	ErrCodeRoleMismatch       = "ROLE_MISMATCH"
	ErrCodeInvalidSession     = "INVALID_SESSION"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
)

// NewValidationError は入力検証エラーを生成する。
// メッセージは項目に依存しない一般的な文言に留める。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewDuplicateAccountError はメールアドレス重複エラーを生成する。
func NewDuplicateAccountError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateAccount,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "validation",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレス未登録とパスワード不一致を区別できないよう、常に同一の内容を返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewInvalidRoleError はロール列挙に含まれない値が指定された場合のエラーを生成する。
func NewInvalidRoleError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  "無効なロールが指定されました。",
		Category: "validation",
		Action:   "admin、teacher、student のいずれかを指定してください。",
	}
}

// NewRoleMismatchError はロール不一致エラーを生成する。
// パスワードによる本人確認が済んでいる呼び出し元にのみ返すため、
// 意図的に実際のロールを含む詳細なエラーとしている。
func NewRoleMismatchError(actual, selected Role) *APIError {
	return &APIError{
		Code:         ErrCodeRoleMismatch,
		Message:      fmt.Sprintf("ロールが一致しません。アカウントのロールは %q ですが、%q が選択されました。", actual, selected),
		Category:     "auth",
		Action:       "正しいロールを選択して再度ログインしてください。",
		ActualRole:   actual,
		SelectedRole: selected,
	}
}

// NewInvalidSessionError はセッション無効エラーを生成する。
// 未設定・期限切れ・改ざんのいずれの場合も同一のエラーに集約し、理由を区別しない。
func NewInvalidSessionError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSession,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewForbiddenError は認証済みだがロールが許可されていない場合のエラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このリソースへのアクセス権限がありません。",
		Category: "auth",
		Action:   "必要な権限を持つアカウントでログインしてください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
