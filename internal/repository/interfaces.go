// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/rollcall/internal/model"
)

// ErrDuplicateEmail は正規化済みメールアドレスの一意制約違反を表す。
// 一意性の最終的な保証はストレージ層のユニークインデックスが担うため、
// アプリケーション側の事前チェックをすり抜けた同時登録もこのエラーに集約される。
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository はアカウントデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は正規化済みメールアドレスでアカウントを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Create はアカウントを作成する。
	// メールアドレスの一意制約に違反した場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error

	// SetActive はアカウントの有効フラグを更新する（ソフト無効化）。
	SetActive(ctx context.Context, id string, active bool) error

	// UpdatePassword はアカウントのパスワードハッシュを更新する。
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// List は全アカウントの一覧をメールアドレス昇順で返す。管理画面用。
	List(ctx context.Context) ([]*model.User, error)
}
