package auth

import (
	"testing"

	"github.com/hitoshi/rollcall/internal/model"
)

func TestRegistrationRolePolicyResolve(t *testing.T) {
	policy := NewRegistrationRolePolicy([]model.Role{
		model.RoleAdmin, model.RoleTeacher, model.RoleStudent,
	})

	tests := []struct {
		name      string
		requested string
		want      model.Role
	}{
		{"admin allowed", "admin", model.RoleAdmin},
		{"teacher allowed", "teacher", model.RoleTeacher},
		{"student allowed", "student", model.RoleStudent},
		{"empty falls back to student", "", model.RoleStudent},
		{"unknown falls back to student", "superuser", model.RoleStudent},
		{"case sensitive", "Admin", model.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Resolve(tt.requested); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestRegistrationRolePolicyRestrictedSet(t *testing.T) {
	// 許可セットを絞った場合、列挙上は正当なロールでもstudentに落ちる
	policy := NewRegistrationRolePolicy([]model.Role{model.RoleStudent})

	if got := policy.Resolve("admin"); got != model.RoleStudent {
		t.Errorf("Resolve(admin) = %q, want %q", got, model.RoleStudent)
	}
	if got := policy.Resolve("teacher"); got != model.RoleStudent {
		t.Errorf("Resolve(teacher) = %q, want %q", got, model.RoleStudent)
	}
	if got := policy.Resolve("student"); got != model.RoleStudent {
		t.Errorf("Resolve(student) = %q, want %q", got, model.RoleStudent)
	}
}
