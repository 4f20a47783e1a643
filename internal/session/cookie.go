package session

import (
	"net/http"
	"time"
)

// CookieOptions controls the attributes shared by the session and token cookies.
type CookieOptions struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetCookie issues an HttpOnly cookie that expires at expiresAt.
func SetCookie(w http.ResponseWriter, name string, value string, expiresAt time.Time, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie tells the client to drop name immediately.
func ClearCookie(w http.ResponseWriter, name string, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// CookieValue returns the value of name, or "" when the request does not carry it.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
