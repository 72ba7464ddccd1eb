// Package auth holds the session model of the API: who the caller is, how
// that is read from cookies, and where a page navigation should go.
package auth

import (
	"net/url"
	"strings"

	"github.com/binna/binna-backend/types"
)

// SessionSource records which credential produced a session.
type SessionSource string

const (
	SourceSupabase   SessionSource = "supabase"
	SourceTempCookie SessionSource = "temp_cookie"
)

// Session is an authenticated caller.
type Session struct {
	UserID      string            `json:"user_id"`
	Email       string            `json:"email,omitempty"`
	AccountType types.AccountType `json:"account_type"`
	Source      SessionSource     `json:"source"`
}

// Claims are the verified contents of a Supabase access token.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt int64
}

// TokenValidator verifies Supabase access tokens.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

type Action string

const (
	ActionAllow    Action = "allow"
	ActionRedirect Action = "redirect"
)

// Decision is the outcome of gating one page navigation.
type Decision struct {
	Action   Action `json:"action"`
	Location string `json:"location,omitempty"`
}

// LoginPath is where anonymous visitors of protected areas are sent.
const LoginPath = "/login"

var authPages = []string{LoginPath, "/register"}

func allow() Decision { return Decision{Action: ActionAllow} }

func redirect(location string) Decision {
	return Decision{Action: ActionRedirect, Location: location}
}

// hasSegmentPrefix reports whether path is prefix itself or lies below it.
// "/user" matches "/user" and "/user/orders" but not "/users".
func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// IsAuthPage reports whether path is the login or register page.
func IsAuthPage(path string) bool {
	for _, p := range authPages {
		if hasSegmentPrefix(path, p) {
			return true
		}
	}
	return false
}

// ProtectedArea returns the account type whose area contains path.
func ProtectedArea(path string) (types.AccountType, bool) {
	for _, at := range types.AccountTypes {
		if hasSegmentPrefix(path, at.AreaPrefix()) {
			return at, true
		}
	}
	return "", false
}

// Decide gates a page navigation. A nil session is an anonymous visitor.
func Decide(path string, session *Session) Decision {
	if path == "" {
		path = "/"
	}

	if IsAuthPage(path) {
		if session != nil {
			return redirect(session.AccountType.DashboardPath())
		}
		return allow()
	}

	area, protected := ProtectedArea(path)
	if !protected {
		return allow()
	}
	if session == nil {
		return redirect(LoginPath + "?redirect=" + url.QueryEscape(path))
	}
	if types.ParseAccountType(string(session.AccountType)) != area {
		return redirect(session.AccountType.DashboardPath())
	}
	return allow()
}
