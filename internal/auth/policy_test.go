package auth

import "testing"

func TestAuthorizeFirstMatchWins(t *testing.T) {
	// a public read rule declared before the admin write rule
	policy := NewPolicy(
		PermitMethod("GET", "/api/v1/product/**"),
		Require(AdminRole, "/api/v1/product/**"),
	)

	if got := policy.Authorize("/api/v1/product/7", "GET", nil); got != Allow {
		t.Errorf("anonymous GET = %v, want Allow", got)
	}
	if got := policy.Authorize("/api/v1/product/7", "PUT", nil); got != DenyUnauthenticated {
		t.Errorf("anonymous PUT = %v, want DenyUnauthenticated", got)
	}

	user := &Principal{Username: "alice", Authorities: []string{"ROLE_UserRole"}}
	if got := policy.Authorize("/api/v1/product/7", "PUT", user); got != DenyForbidden {
		t.Errorf("user PUT = %v, want DenyForbidden", got)
	}

	admin := &Principal{Username: "root", Authorities: []string{"ROLE_AdminRole"}}
	if got := policy.Authorize("/api/v1/product/7", "PUT", admin); got != Allow {
		t.Errorf("admin PUT = %v, want Allow", got)
	}
}

func TestAuthorizeOrderMatters(t *testing.T) {
	// reversing the declaration order flips the anonymous GET outcome:
	// the admin rule now shadows the public read rule
	reversed := NewPolicy(
		Require(AdminRole, "/api/v1/product/**"),
		PermitMethod("GET", "/api/v1/product/**"),
	)
	if got := reversed.Authorize("/api/v1/product/7", "GET", nil); got != DenyUnauthenticated {
		t.Errorf("anonymous GET under reversed table = %v, want DenyUnauthenticated", got)
	}
}

func TestAuthorizeCatchAll(t *testing.T) {
	policy := NewPolicy(Permit("/health/**"))

	if got := policy.Authorize("/api/v1/getCartDetails", "GET", nil); got != DenyUnauthenticated {
		t.Errorf("anonymous unmatched = %v, want DenyUnauthenticated", got)
	}
	user := &Principal{Username: "alice", Authorities: []string{"ROLE_UserRole"}}
	if got := policy.Authorize("/api/v1/getCartDetails", "GET", user); got != Allow {
		t.Errorf("authenticated unmatched = %v, want Allow", got)
	}
}

func TestAuthorizeRoleNormalization(t *testing.T) {
	// Require accepts a bare role name and matches the prefixed authority
	policy := NewPolicy(Require("AdminRole", "/admin/**"))
	admin := &Principal{Username: "root", Authorities: []string{"ROLE_AdminRole"}}
	if got := policy.Authorize("/admin/tools", "GET", admin); got != Allow {
		t.Errorf("prefixed authority = %v, want Allow", got)
	}
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/a/b", "/a/b", true},
		{"/a/b", "/a/b/c", false},
		{"/a/*", "/a/b", true},
		{"/a/*", "/a/b/c", false},
		{"/a/**", "/a", true},
		{"/a/**", "/a/b/c", true},
		{"/a/**", "/ab", false},
		{"/**", "/anything/at/all", true},
		{"/a/*/c", "/a/b/c", true},
		{"/a/*/c", "/a/b/d", false},
	}
	for _, tc := range cases {
		if got := matchPattern(tc.pattern, tc.path); got != tc.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func TestHasAuthority(t *testing.T) {
	var nilPrincipal *Principal
	if nilPrincipal.HasAuthority("ROLE_UserRole") {
		t.Error("nil principal must not hold authorities")
	}
	p := &Principal{Authorities: []string{"ROLE_UserRole", "ROLE_AdminRole"}}
	if !p.HasAuthority("ROLE_AdminRole") {
		t.Error("expected ROLE_AdminRole")
	}
	if p.HasAuthority("ROLE_Other") {
		t.Error("unexpected ROLE_Other")
	}
}
