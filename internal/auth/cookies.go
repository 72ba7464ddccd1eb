package auth

import (
	"net/http"
	"time"

	"github.com/binna/binna-backend/types"
)

const (
	CookieAccessToken   = "sb-access-token"
	CookieRefreshToken  = "sb-refresh-token"
	CookieSessionActive = "auth_session_active"
	CookieAccountType   = "account_type"
	CookieTempAuthUser  = "temp_auth_user"
)

// AllCookies lists every cookie the jar writes.
var AllCookies = []string{CookieAccessToken, CookieRefreshToken, CookieSessionActive, CookieAccountType, CookieTempAuthUser}

// IssuedSession is everything written on sign-in or refresh.
type IssuedSession struct {
	AccessToken  string
	RefreshToken string
	// AccessTTL is the access token lifetime reported by Supabase.
	AccessTTL time.Duration
	Session   *Session
}

// CookieJar is the only writer of auth cookies.
type CookieJar struct {
	Domain     string
	Secure     bool
	SessionTTL time.Duration
}

func NewCookieJar(domain string, secure bool, sessionTTL time.Duration) *CookieJar {
	return &CookieJar{Domain: domain, Secure: secure, SessionTTL: sessionTTL}
}

func (j *CookieJar) cookie(name, value string, maxAge time.Duration, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   j.Domain,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   j.Secure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	}
}

// Write sets the five session cookies. signed is the temp_auth_user value
// produced by SessionSigner.
func (j *CookieJar) Write(w http.ResponseWriter, issued *IssuedSession, signed string) {
	accessTTL := issued.AccessTTL
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	accountType := types.ParseAccountType(string(issued.Session.AccountType))

	http.SetCookie(w, j.cookie(CookieAccessToken, issued.AccessToken, accessTTL, true))
	if issued.RefreshToken != "" {
		http.SetCookie(w, j.cookie(CookieRefreshToken, issued.RefreshToken, j.SessionTTL, true))
	}
	http.SetCookie(w, j.cookie(CookieSessionActive, "true", j.SessionTTL, false))
	http.SetCookie(w, j.cookie(CookieAccountType, string(accountType), j.SessionTTL, false))
	http.SetCookie(w, j.cookie(CookieTempAuthUser, signed, j.SessionTTL, true))
}

// Clear expires every auth cookie.
func (j *CookieJar) Clear(w http.ResponseWriter) {
	for _, name := range AllCookies {
		httpOnly := name != CookieSessionActive && name != CookieAccountType
		c := j.cookie(name, "", 0, httpOnly)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

// Read returns the named cookie's value or "".
func Read(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
