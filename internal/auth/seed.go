package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/rollcall/internal/model"
	"github.com/hitoshi/rollcall/internal/repository"
)

// seedAccounts は動作確認用の初期アカウント。
var seedAccounts = []struct {
	email    string
	password string
	role     model.Role
}{
	{"admin@example.com", "admin123", model.RoleAdmin},
	{"teacher@example.com", "teacher123", model.RoleTeacher},
	{"student@example.com", "student123", model.RoleStudent},
}

// Seed は動作確認用の初期アカウントを作成する。
// 既に存在するメールアドレスはスキップする。
// 一括処理のため対話パスより低いコスト（SeedCost）でハッシュ化する。
func Seed(ctx context.Context, users repository.UserRepository) error {
	hasher := NewPasswordHasher(SeedCost)

	for _, account := range seedAccounts {
		existing, err := users.FindByEmail(ctx, account.email)
		if err != nil {
			return fmt.Errorf("failed to check existing account %s: %w", account.email, err)
		}
		if existing != nil {
			slog.Info("seed account already exists", slog.String("email", account.email))
			continue
		}

		hash, err := hasher.Hash(account.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		now := time.Now()
		user := &model.User{
			ID:           uuid.New().String(),
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := users.Create(ctx, user); err != nil {
			if err == repository.ErrDuplicateEmail {
				slog.Info("seed account already exists", slog.String("email", account.email))
				continue
			}
			return fmt.Errorf("failed to create seed account %s: %w", account.email, err)
		}

		slog.Info("seed account created",
			slog.String("email", account.email),
			slog.String("role", string(account.role)),
		)
	}

	return nil
}
