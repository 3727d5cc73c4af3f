package auth

import (
	"context"
	"testing"

	"github.com/hitoshi/rollcall/internal/model"
	"github.com/hitoshi/rollcall/internal/repository"
)

func TestSeedCreatesAllAccounts(t *testing.T) {
	var created []*model.User
	repo := &mockUserRepo{
		createFn: func(_ context.Context, user *model.User) error {
			created = append(created, user)
			return nil
		},
	}

	if err := Seed(context.Background(), repo); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	if len(created) != 3 {
		t.Fatalf("created %d accounts, want 3", len(created))
	}

	roles := map[string]model.Role{}
	for _, user := range created {
		roles[user.Email] = user.Role
		if !user.IsActive {
			t.Errorf("seed account %s should be active", user.Email)
		}
		if user.PasswordHash == "" {
			t.Errorf("seed account %s should have hashed password", user.Email)
		}
	}

	if roles["admin@example.com"] != model.RoleAdmin {
		t.Errorf("admin@example.com role = %q, want admin", roles["admin@example.com"])
	}
	if roles["teacher@example.com"] != model.RoleTeacher {
		t.Errorf("teacher@example.com role = %q, want teacher", roles["teacher@example.com"])
	}
	if roles["student@example.com"] != model.RoleStudent {
		t.Errorf("student@example.com role = %q, want student", roles["student@example.com"])
	}
}

func TestSeedSkipsExistingAccounts(t *testing.T) {
	var created []*model.User
	repo := &mockUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.User, error) {
			if email == "admin@example.com" {
				return &model.User{ID: "existing", Email: email}, nil
			}
			return nil, nil
		},
		createFn: func(_ context.Context, user *model.User) error {
			created = append(created, user)
			return nil
		},
	}

	if err := Seed(context.Background(), repo); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	if len(created) != 2 {
		t.Fatalf("created %d accounts, want 2", len(created))
	}
	for _, user := range created {
		if user.Email == "admin@example.com" {
			t.Error("existing admin account should be skipped")
		}
	}
}

func TestSeedToleratesDuplicateRace(t *testing.T) {
	// 事前チェック後に別プロセスが同じアカウントを作成した場合も失敗しない
	repo := &mockUserRepo{
		createFn: func(_ context.Context, user *model.User) error {
			if user.Email == "teacher@example.com" {
				return repository.ErrDuplicateEmail
			}
			return nil
		},
	}

	if err := Seed(context.Background(), repo); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
}
