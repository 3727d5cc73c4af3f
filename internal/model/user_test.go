package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input  string
		want   Role
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{"teacher", RoleTeacher, true},
		{"student", RoleStudent, true},
		{"", "", false},
		{"superuser", "", false},
		{"Admin", "", false},
		{" admin", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleTeacher.Valid() || !RoleStudent.Valid() {
		t.Error("enum members should be valid")
	}
	if Role("superuser").Valid() {
		t.Error("values outside the closed enum should be invalid")
	}
	if Role("").Valid() {
		t.Error("empty role should be invalid")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com  ", "user@example.com"},
		{"\tUser@Example.com\n", "user@example.com"},
		{"already@normal.jp", "already@normal.jp"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUserPublicExcludesPasswordHash(t *testing.T) {
	user := &User{
		ID:           "user-1",
		Email:        "a@b.com",
		PasswordHash: "$2a$12$secret-hash",
		Role:         RoleTeacher,
		IsActive:     true,
	}

	data, err := json.Marshal(user.Public())
	if err != nil {
		t.Fatalf("failed to marshal public view: %v", err)
	}
	if strings.Contains(string(data), "secret-hash") {
		t.Errorf("public view should not contain the password hash: %s", data)
	}

	public := user.Public()
	if public.ID != "user-1" || public.Email != "a@b.com" || public.Role != RoleTeacher {
		t.Errorf("Public() = %+v, want id/email/role copied", public)
	}
}

func TestAPIErrorImplementsError(t *testing.T) {
	err := NewRoleMismatchError(RoleStudent, RoleTeacher)

	if err.Error() == "" {
		t.Error("Error() should return a message")
	}
	if !strings.Contains(err.Error(), ErrCodeRoleMismatch) {
		t.Errorf("Error() = %q, should contain the error code", err.Error())
	}
}
