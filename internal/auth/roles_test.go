package auth

import (
	"testing"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

func TestNormalizeRole(t *testing.T) {
	if got := NormalizeRole("AdminRole"); got != "ROLE_AdminRole" {
		t.Errorf("NormalizeRole(AdminRole) = %q", got)
	}
	// already prefixed names pass through unchanged
	if got := NormalizeRole("ROLE_AdminRole"); got != "ROLE_AdminRole" {
		t.Errorf("NormalizeRole(ROLE_AdminRole) = %q", got)
	}
}

func TestGrantedAuthorities(t *testing.T) {
	roles := []domain.Role{{Name: "UserRole"}, {Name: "AdminRole"}}
	got := GrantedAuthorities(roles)
	want := []string{"ROLE_UserRole", "ROLE_AdminRole"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("authority[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if out := GrantedAuthorities(nil); len(out) != 0 {
		t.Errorf("nil roles produced %v", out)
	}
}
