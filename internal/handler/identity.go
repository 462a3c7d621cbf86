package handler

import (
	"net/http"
	"strconv"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/middleware"
)

const (
	// CartCookieName stores the anonymous cart session ID for guest visitors.
	CartCookieName = "cart_session"

	// cartCookieMaxAge keeps anonymous carts alive for 30 days.
	cartCookieMaxAge = 30 * 24 * 60 * 60
)

// setCartCookie pins an anonymous session ID to the browser.
func setCartCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   cartCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearCartCookie expires the anonymous session cookie, used after the cart
// has been merged into a user account.
func clearCartCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// cookieSessionID returns the anonymous session ID from the request cookie,
// or empty when absent.
func cookieSessionID(r *http.Request) string {
	c, err := r.Cookie(CartCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// resolveIdentity picks the cart owner for a request. An authenticated user
// always wins; otherwise an explicit user_id from the payload, then the
// session cookie, then an explicit session_id. The zero Identity means the
// request carries no identity at all.
func resolveIdentity(r *http.Request, userID int64, sessionID string) domain.Identity {
	if id := middleware.AuthenticatedUser(r.Context()); id > 0 {
		return domain.ForUser(id)
	}
	if userID > 0 {
		return domain.ForUser(userID)
	}
	if cookie := cookieSessionID(r); cookie != "" {
		return domain.ForSession(cookie)
	}
	if sessionID != "" {
		return domain.ForSession(sessionID)
	}
	return domain.Identity{}
}

// queryIdentity reads identity hints from query parameters, used by GET
// endpoints that have no body.
func queryIdentity(r *http.Request) (int64, string) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	return userID, r.URL.Query().Get("session_id")
}
