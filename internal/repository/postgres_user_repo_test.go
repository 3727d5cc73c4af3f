package repository

import (
	"testing"
	"time"

	"github.com/hitoshi/rollcall/internal/model"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// Userモデルのフィールドが正しく構築されることを検証
func TestPostgresUserRepo_UserModel_Fields(t *testing.T) {
	now := time.Now()
	user := &model.User{
		ID:           "user-id-1",
		Email:        "teacher@school.jp",
		PasswordHash: "$2a$12$hash",
		Role:         model.RoleTeacher,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if user.ID != "user-id-1" {
		t.Errorf("user.ID = %q, want %q", user.ID, "user-id-1")
	}
	if user.Email != "teacher@school.jp" {
		t.Errorf("user.Email = %q, want %q", user.Email, "teacher@school.jp")
	}
	if user.Role != model.RoleTeacher {
		t.Errorf("user.Role = %q, want %q", user.Role, model.RoleTeacher)
	}
	if !user.IsActive {
		t.Error("user.IsActive should be true")
	}
}

// ErrDuplicateEmailがセンチネルエラーとして比較可能なことを検証
func TestErrDuplicateEmail_Sentinel(t *testing.T) {
	if ErrDuplicateEmail == nil {
		t.Fatal("ErrDuplicateEmail should be defined")
	}
	if ErrDuplicateEmail.Error() != "email already registered" {
		t.Errorf("ErrDuplicateEmail = %q, want %q", ErrDuplicateEmail.Error(), "email already registered")
	}
}
