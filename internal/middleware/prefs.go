// Package middleware holds the request-scoped preference middlewares.
package middleware

import (
	"context"
	"net/http"

	"github.com/diewo77/gmao/internal/i18n"
)

const (
	LangCookie   = "lang"
	ClientCookie = "client_id"

	cookieMaxAge = 86400 * 365
)

// Preferences injects the display language from the query, the cookie or Accept-Language.
// A supported ?lang= value is persisted in a cookie.
func Preferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if c, err := r.Cookie(LangCookie); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     LangCookie,
				Value:    lang,
				Path:     "/",
				MaxAge:   cookieMaxAge,
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

type clientKey struct{}

// ActiveClient exposes the client selected for the session through the request context.
func ActiveClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(ClientCookie)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), clientKey{}, c.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActiveClientID returns the selected client id, if any.
func ActiveClientID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientKey{}).(string)
	return id, ok && id != ""
}

// SetActiveClient persists the selected client. An empty id clears the selection.
func SetActiveClient(w http.ResponseWriter, id string) {
	c := &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if id == "" {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
