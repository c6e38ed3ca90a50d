package domain

import "testing"

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	state := AuthState{Authenticated: false}

	if got := Decide(state, nil); got != RedirectLogin {
		t.Fatalf("unauthenticated on open route: got %s, want redirect_login", got)
	}
	if got := Decide(state, []Role{RoleVendor}); got != RedirectLogin {
		t.Fatalf("unauthenticated on vendor route: got %s, want redirect_login", got)
	}
	if got := Decide(state, []Role{RoleAdmin}); got != RedirectLogin {
		t.Fatalf("unauthenticated on admin route: got %s, want redirect_login", got)
	}
}

func TestDecide_AuthCheckPrecedesRoleCheck(t *testing.T) {
	// An anonymous visitor hitting an admin route must be sent to login,
	// never to home: without a session there is no role to judge.
	state := AuthState{Authenticated: false, Role: RoleAdmin}
	if got := Decide(state, []Role{RoleVendor}); got != RedirectLogin {
		t.Fatalf("got %s, want redirect_login", got)
	}
}

func TestDecide_EmptyAllowedSetAdmitsAnyRole(t *testing.T) {
	for _, role := range []Role{RoleCustomer, RoleVendor, RoleAdmin} {
		state := AuthState{Authenticated: true, Role: role}
		if got := Decide(state, nil); got != Allow {
			t.Fatalf("role %s on session-only route: got %s, want allow", role, got)
		}
	}
}

func TestDecide_RoleMatch(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed []Role
		want    Decision
	}{
		{"vendor on vendor route", RoleVendor, []Role{RoleVendor}, Allow},
		{"admin on admin route", RoleAdmin, []Role{RoleAdmin}, Allow},
		{"customer on vendor route", RoleCustomer, []Role{RoleVendor}, RedirectHome},
		{"admin on vendor route", RoleAdmin, []Role{RoleVendor}, RedirectHome},
		{"vendor on admin route", RoleVendor, []Role{RoleAdmin}, RedirectHome},
		{"vendor on multi-role route", RoleVendor, []Role{RoleVendor, RoleAdmin}, Allow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := AuthState{Authenticated: true, Role: tc.role}
			if got := Decide(state, tc.allowed); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("CUSTOMER"); err != nil {
		t.Fatalf("CUSTOMER should parse: %v", err)
	}
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
