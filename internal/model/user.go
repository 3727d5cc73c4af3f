// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// Role はアカウントの役割を表す閉じた列挙型。
// 認可判定は必ずこの型を介して行い、リクエスト由来の文字列を直接比較しない。
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole は文字列をRoleに変換する。
// 閉じた列挙に含まれない値の場合はfalseを返す。
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(s), true
	}
	return "", false
}

// Valid はRoleが閉じた列挙のメンバーかどうかを返す。
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User はアカウントを表す。
// PasswordHashはレスポンス・ログに出力してはならない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser はAPIレスポンス用のアカウント公開ビュー。
// パスワードハッシュを含まないフィールドのみを公開する。
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public はUserの公開ビューを返す。
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}

// NormalizeEmail はメールアドレスを比較・保存用に正規化する（trim + 小文字化）。
// 一意性判定は正規化後のメールアドレスでのみ行う。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
