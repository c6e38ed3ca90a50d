package domain

// AuthState is the per-request authorization input: whether a session is
// held and, if so, which role it carries.
type AuthState struct {
	Authenticated bool
	Role          Role
}

// Decision is the outcome of an access check for a guarded route.
type Decision int

const (
	// Allow renders the guarded subtree.
	Allow Decision = iota
	// RedirectLogin sends an unauthenticated visitor to the login route,
	// preserving the originally requested path.
	RedirectLogin
	// RedirectHome sends an authenticated but under-privileged visitor home.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Decide computes the access decision for a route guarded by the given
// allowed-role set. An empty set means any authenticated identity passes.
// The authentication check strictly precedes the role check: an
// unauthenticated visitor is always sent to login, never home.
func Decide(state AuthState, allowed []Role) Decision {
	if !state.Authenticated {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Allow
	}
	for _, r := range allowed {
		if state.Role == r {
			return Allow
		}
	}
	return RedirectHome
}
