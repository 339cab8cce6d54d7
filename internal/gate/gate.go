// Package gate holds the one access policy shared by the router middleware
// and the page-level guard endpoint, so the two layers can never drift apart.
package gate

import "strings"

// Roles recognized on a profile.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session describes the requesting principal. A nil Session is anonymous.
type Session struct {
	UserID   string
	Role     string
	Approved bool
}

// IsAdmin reports whether the session carries the admin role. An admin is
// implicitly approved regardless of the approved flag.
func (s *Session) IsAdmin() bool {
	return s != nil && strings.EqualFold(s.Role, RoleAdmin)
}

// IsApproved reports whether the session may see member content.
func (s *Session) IsApproved() bool {
	return s != nil && (s.Approved || s.IsAdmin())
}

// Action is the gate verdict for one request.
type Action int

const (
	Allow Action = iota
	RedirectSignIn
	RedirectPending
	RedirectHome
)

// Decision is the full verdict: what to do and, for redirects, where to go.
type Decision struct {
	Action   Action
	Location string
}

const (
	signInPath  = "/auth/sign-in"
	pendingPath = "/pending-approval"
	homePath    = "/"
)

// Decide evaluates the access policy for a path. Member content requires an
// approved (or admin) session; the admin area requires the admin role. Every
// other path is public.
func Decide(sess *Session, path string) Decision {
	switch {
	case isAdminPath(path):
		if sess == nil {
			return Decision{Action: RedirectSignIn, Location: signInURL(path)}
		}
		if !sess.IsAdmin() {
			return Decision{Action: RedirectHome, Location: homePath}
		}
		return Decision{Action: Allow}
	case isMemberPath(path):
		if sess == nil {
			return Decision{Action: RedirectSignIn, Location: signInURL(path)}
		}
		if !sess.IsApproved() {
			return Decision{Action: RedirectPending, Location: pendingPath}
		}
		return Decision{Action: Allow}
	default:
		return Decision{Action: Allow}
	}
}

// signInURL carries the intended destination so sign-in can bounce back.
func signInURL(path string) string {
	return signInPath + "?redirect=" + path
}

func isMemberPath(path string) bool {
	return path == "/articles" || strings.HasPrefix(path, "/articles/")
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}
