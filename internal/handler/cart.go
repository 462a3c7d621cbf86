package handler

import (
	"net/http"
	"strconv"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/middleware"
	"github.com/eliteshop/eliteshop/internal/service"
)

// CartHandler serves the shopping cart endpoints.
type CartHandler struct {
	carts  service.CartService
	secure bool
}

// NewCartHandler creates a new CartHandler. secure controls the Secure flag
// on session cookies and should be true behind TLS.
func NewCartHandler(carts service.CartService, secure bool) *CartHandler {
	return &CartHandler{carts: carts, secure: secure}
}

// cartItemRequest is the payload for add and update operations. Identity
// fields are fallbacks for clients that do not carry the session cookie.
type cartItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := queryIdentity(r)
	identity := resolveIdentity(r, userID, sessionID)

	cart, err := h.carts.GetCart(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Add handles POST /api/cart/add. A request with no identity at all starts a
// new anonymous session and pins it to the browser with a cookie.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	identity := resolveIdentity(r, req.UserID, req.SessionID)
	var newSession string
	if !identity.Valid() {
		sessionID, err := service.GenerateSessionID()
		if err != nil {
			writeError(w, r, domain.Internal(err, "cart.add", "failed to generate session"))
			return
		}
		identity = domain.ForSession(sessionID)
		newSession = sessionID
	}

	cart, err := h.carts.AddItem(r.Context(), identity, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Only pin the session once the add succeeded; a rejected add should not
	// leave an empty session behind.
	if newSession != "" {
		setCartCookie(w, newSession, h.secure)
	}

	writeJSON(w, http.StatusOK, cart)
}

// Update handles PUT /api/cart/update. Quantity zero removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	identity := resolveIdentity(r, req.UserID, req.SessionID)
	cart, err := h.carts.UpdateQuantity(r.Context(), identity, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Remove handles DELETE /api/cart/remove/{productID}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.ParseInt(r.PathValue("productID"), 10, 64)

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	identity := resolveIdentity(r, req.UserID, req.SessionID)
	cart, err := h.carts.RemoveItem(r.Context(), identity, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	identity := resolveIdentity(r, req.UserID, req.SessionID)
	if err := h.carts.ClearCart(r.Context(), identity); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

// mergeRequest is the payload for POST /api/cart/merge. SessionID is a
// fallback for clients without the session cookie.
type mergeRequest struct {
	SessionID string `json:"session_id"`
}

// Merge handles POST /api/cart/merge. The caller must be authenticated; the
// anonymous session comes from the cookie or the payload. On success the
// session cookie is cleared since the session cart no longer exists.
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	userID := middleware.AuthenticatedUser(r.Context())
	if userID == 0 {
		writeError(w, r, domain.Unauthorized("cart.merge", "Authentication required"))
		return
	}

	var req mergeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sessionID := cookieSessionID(r)
	if sessionID == "" {
		sessionID = req.SessionID
	}

	cart, err := h.carts.MergeCarts(r.Context(), sessionID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	clearCartCookie(w)
	writeJSON(w, http.StatusOK, cart)
}
