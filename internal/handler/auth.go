package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eliteshop/eliteshop/internal/auth"
	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/middleware"
	"github.com/eliteshop/eliteshop/internal/service"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users    service.UserService
	carts    service.CartService
	tokens   *auth.TokenIssuer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. The cart service is used to fold
// an anonymous cart into the account on login.
func NewAuthHandler(users service.UserService, carts service.CartService, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		carts:    carts,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse carries the issued token and the account it belongs to.
type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, domain.Invalid("auth.register", validationMessage(err)))
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		writeError(w, r, domain.Internal(err, "auth.register", "failed to issue token"))
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login. When the request carries an anonymous
// cart session cookie, that cart is merged into the account and the cookie
// cleared.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if sessionID := cookieSessionID(r); sessionID != "" {
		// Best effort: a failed merge should not block the login.
		if _, err := h.carts.MergeCarts(r.Context(), sessionID, user.ID); err != nil {
			h.logger.Error("failed to merge cart on login", "user_id", user.ID, "error", err)
		} else {
			clearCartCookie(w)
		}
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		writeError(w, r, domain.Internal(err, "auth.login", "failed to issue token"))
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me handles GET /api/auth/me for an authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.AuthenticatedUser(r.Context())
	if userID == 0 {
		writeError(w, r, domain.Unauthorized("auth.me", "Authentication required"))
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
