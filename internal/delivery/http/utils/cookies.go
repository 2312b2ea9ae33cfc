package utils

import (
	"net/http"
	"time"
)

type Cookie interface {
	SetSessionCookie(token string, expires time.Time) *http.Cookie
	ClearSessionCookie() *http.Cookie
}

type CookieManager struct {
	secureCookies bool
}

func NewCookieManager(secureCookies bool) *CookieManager {
	return &CookieManager{secureCookies: secureCookies}
}

func (c *CookieManager) SetSessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}
}

// ClearSessionCookie возвращает просроченную куку, браузер удалит её
func (c *CookieManager) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}
}
