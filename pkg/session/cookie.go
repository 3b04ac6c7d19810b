package session

import (
	"net/http"
	"time"

	"anitrack/pkg/token"
)

const CookieName = "ani_token"

// CookieManager turns session tokens into Set-Cookie values and back.
type CookieManager struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// NewCookieManager returns a manager for the session cookie. secure should
// be true only when the site is served over HTTPS.
func NewCookieManager(secure bool) *CookieManager {
	return &CookieManager{
		Name:   CookieName,
		Secure: secure,
		MaxAge: token.DefaultTTL,
	}
}

func (m *CookieManager) Serialize(value string) string {
	c := m.cookie(value)
	c.MaxAge = int(m.MaxAge / time.Second)
	return c.String()
}

// SerializeClear returns a Set-Cookie value that makes the browser drop the
// session cookie.
func (m *CookieManager) SerializeClear() string {
	c := m.cookie("")
	c.Expires = time.Unix(0, 0)
	c.MaxAge = -1
	return c.String()
}

// Parse maps cookie names to values. Malformed pairs are skipped and an
// empty header yields an empty map.
func (m *CookieManager) Parse(header string) map[string]string {
	out := make(map[string]string)
	if header == "" {
		return out
	}

	r := http.Request{Header: http.Header{"Cookie": {header}}}
	for _, c := range r.Cookies() {
		if _, ok := out[c.Name]; !ok {
			out[c.Name] = c.Value
		}
	}
	return out
}

// Token returns the session value from a Cookie header.
func (m *CookieManager) Token(header string) (string, bool) {
	v, ok := m.Parse(header)[m.Name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (m *CookieManager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
