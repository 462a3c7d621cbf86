package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/middleware"
	"github.com/eliteshop/eliteshop/internal/service"
)

// OrderHandler serves the order endpoints.
type OrderHandler struct {
	orders   service.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// createOrderRequest is the payload for POST /api/orders. Items is the
// caller's cart snapshot with the prices it saw.
type createOrderRequest struct {
	UserID          int64                   `json:"user_id"`
	SessionID       string                  `json:"session_id"`
	Items           []domain.OrderLineInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64                 `json:"total_amount"`
	ShippingAddress string                  `json:"shipping_address" validate:"required"`
	BillingAddress  string                  `json:"billing_address"`
	PaymentMethod   string                  `json:"payment_method" validate:"required"`
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, domain.Invalid("order.create", validationMessage(err)))
		return
	}

	if req.BillingAddress == "" {
		req.BillingAddress = req.ShippingAddress
	}

	confirmation, err := h.orders.CreateOrder(r.Context(), service.CreateOrderParams{
		Identity:        resolveIdentity(r, req.UserID, req.SessionID),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		Lines:           req.Items,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, confirmation)
}

// Get handles GET /api/orders/{orderID}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.PathValue("orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		writeError(w, r, domain.Invalid("order.get", "Invalid order ID"))
		return
	}

	order, getErr := h.orders.GetOrder(r.Context(), orderID)
	if getErr != nil {
		writeError(w, r, getErr)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListUser handles GET /api/orders/user/{userID} with optional limit and
// offset query parameters. An authenticated caller may only list their own
// orders.
func (h *OrderHandler) ListUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, r, domain.Invalid("order.list", "Invalid user ID"))
		return
	}

	if authed := middleware.AuthenticatedUser(r.Context()); authed > 0 && authed != userID {
		writeError(w, r, domain.Errorf(domain.EFORBIDDEN, "order.list", "Cannot view another user's orders"))
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 32)

	orders, listErr := h.orders.ListUserOrders(r.Context(), userID, int32(limit), int32(offset))
	if listErr != nil {
		writeError(w, r, listErr)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// statusRequest is the payload for status updates.
type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/orders/{orderID}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.PathValue("orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		writeError(w, r, domain.Invalid("order.update_status", "Invalid order ID"))
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}

// validationMessage flattens validator errors into a single user-facing
// message naming the first failing field.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required", "min":
		return "Missing required field: " + fe.Field()
	case "gt", "gte":
		return "Field out of range: " + fe.Field()
	}
	return "Invalid field: " + fe.Field()
}
