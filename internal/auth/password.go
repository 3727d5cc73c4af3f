package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinCost はパスワードハッシュのコスト下限。この値未満には決して下げない。
	MinCost = 10
	// DefaultInteractiveCost は対話的な登録パスで使用するデフォルトコスト。
	DefaultInteractiveCost = 12
	// SeedCost は一括シード用のコスト。対話パスより低いレイテンシを優先する。
	SeedCost = 10
)

// PasswordHasher はパスワードの一方向ハッシュ化と検証を提供する。
// bcryptの出力はアルゴリズム・ソルト・コストを自己記述するため、
// 検証時にコスト設定などの追加情報は不要。
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher は指定コストのPasswordHasherを生成する。
// costがMinCost未満の場合はMinCostに引き上げる。
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < MinCost {
		cost = MinCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost は設定されたコストを返す。
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash は呼び出しごとに新しいランダムソルトでplaintextをハッシュ化する。
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify はplaintextと保存済みハッシュを定数時間で比較する。
// 不正な形式のハッシュに対してもエラーは返さず、falseを返す。
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
