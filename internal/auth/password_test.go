package auth

import (
	"strings"
	"testing"
)

func TestPasswordHasherHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(MinCost)

	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "secret123" {
		t.Error("hash should not equal plaintext")
	}

	if !hasher.Verify("secret123", hash) {
		t.Error("Verify should succeed for correct password")
	}
	if hasher.Verify("wrong-password", hash) {
		t.Error("Verify should fail for wrong password")
	}
}

func TestPasswordHasherSaltedPerCall(t *testing.T) {
	hasher := NewPasswordHasher(MinCost)

	hash1, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	hash2, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// ソルトが毎回変わるため、同じ平文でもハッシュは一致しない
	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ")
	}
	if !hasher.Verify("secret123", hash1) || !hasher.Verify("secret123", hash2) {
		t.Error("both hashes should verify against the original password")
	}
}

func TestPasswordHasherVerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(MinCost)

	if hasher.Verify("secret123", "not-a-bcrypt-hash") {
		t.Error("Verify should return false for malformed hash")
	}
	if hasher.Verify("secret123", "") {
		t.Error("Verify should return false for empty hash")
	}
}

func TestNewPasswordHasherEnforcesMinCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum", 4, MinCost},
		{"zero", 0, MinCost},
		{"negative", -1, MinCost},
		{"at minimum", MinCost, MinCost},
		{"above minimum", DefaultInteractiveCost, DefaultInteractiveCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewPasswordHasher(tt.cost)
			if hasher.Cost() != tt.want {
				t.Errorf("Cost() = %d, want %d", hasher.Cost(), tt.want)
			}
		})
	}
}

func TestPasswordHashEncodesCost(t *testing.T) {
	hasher := NewPasswordHasher(MinCost)

	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// bcryptの出力はコストを自己記述する（例: $2a$10$...）
	if !strings.Contains(hash, "$10$") {
		t.Errorf("hash %q should encode cost 10", hash)
	}
}
