package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/repository"
)

// CartService provides business logic for shopping cart operations.
// Every operation is keyed by a resolved identity: an authenticated user or
// an anonymous session, never both.
type CartService interface {
	GetCart(ctx context.Context, identity domain.Identity) (*domain.CartSummary, error)
	AddItem(ctx context.Context, identity domain.Identity, productID int64, quantity int32) (*domain.CartSummary, error)
	UpdateQuantity(ctx context.Context, identity domain.Identity, productID int64, quantity int32) (*domain.CartSummary, error)
	RemoveItem(ctx context.Context, identity domain.Identity, productID int64) (*domain.CartSummary, error)
	ClearCart(ctx context.Context, identity domain.Identity) error
	MergeCarts(ctx context.Context, sessionID string, userID int64) (*domain.CartSummary, error)
}

type cartService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewCartService creates a new CartService instance.
func NewCartService(store repository.Store, logger *slog.Logger) CartService {
	return &cartService{
		store:  store,
		logger: logger,
	}
}

// GetCart retrieves the cart with product details and calculated totals.
// The total is the sum of unit price times quantity over all lines, rounded
// to 2 decimals; the item count counts lines, not summed quantities.
func (s *cartService) GetCart(ctx context.Context, identity domain.Identity) (*domain.CartSummary, error) {
	if !identity.Valid() {
		return nil, ErrIdentityRequired
	}

	lines, err := s.store.GetCartLines(ctx, identity)
	if err != nil {
		return nil, domain.Internal(err, "cart.get", "failed to fetch cart")
	}

	return summarize(lines), nil
}

// AddItem adds a product to the cart, accumulating quantity when a line for
// the product already exists. The resulting line quantity must not exceed
// the product's available stock.
func (s *cartService) AddItem(ctx context.Context, identity domain.Identity, productID int64, quantity int32) (*domain.CartSummary, error) {
	if !identity.Valid() {
		return nil, ErrIdentityRequired
	}
	if productID <= 0 {
		return nil, ErrProductRequired
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if err := addItem(ctx, s.store, identity, productID, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, identity)
}

// addItem performs the stock-checked upsert against the given querier so
// MergeCarts can reuse it inside a transaction.
func addItem(ctx context.Context, q repository.Querier, identity domain.Identity, productID int64, quantity int32) error {
	product, err := q.GetActiveProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return domain.Internal(err, "cart.add_item", "failed to fetch product")
	}

	if product.StockQuantity < quantity {
		return ErrInsufficientStock
	}

	line, err := q.GetCartLineForProduct(ctx, identity, productID)
	switch {
	case err == nil:
		newQuantity := line.Quantity + quantity
		// Repeated adds accumulate; the combined quantity is held to the
		// same stock ceiling as a fresh add.
		if newQuantity > product.StockQuantity {
			return ErrInsufficientStock
		}
		if err := q.UpdateCartLineQuantity(ctx, line.ID, newQuantity); err != nil {
			return domain.Internal(err, "cart.add_item", "failed to update cart item")
		}
	case errors.Is(err, pgx.ErrNoRows):
		if err := q.InsertCartLine(ctx, identity, productID, quantity); err != nil {
			return domain.Internal(err, "cart.add_item", "failed to insert cart item")
		}
	default:
		return domain.Internal(err, "cart.add_item", "failed to fetch cart item")
	}

	return nil
}

// UpdateQuantity overwrites a line's quantity after revalidating stock.
// A quantity of zero or less removes the line; that is deliberate policy,
// not an error.
func (s *cartService) UpdateQuantity(ctx context.Context, identity domain.Identity, productID int64, quantity int32) (*domain.CartSummary, error) {
	if !identity.Valid() {
		return nil, ErrIdentityRequired
	}
	if productID <= 0 {
		return nil, ErrProductRequired
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, identity, productID)
	}

	product, err := s.store.GetActiveProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal(err, "cart.update", "failed to fetch product")
	}

	if product.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}

	line, err := s.store.GetCartLineForProduct(ctx, identity, productID)
	switch {
	case err == nil:
		if err := s.store.UpdateCartLineQuantity(ctx, line.ID, quantity); err != nil {
			return nil, domain.Internal(err, "cart.update", "failed to update cart item")
		}
	case errors.Is(err, pgx.ErrNoRows):
		// Updating an absent line is a no-op; the refreshed cart shows the
		// caller nothing changed.
	default:
		return nil, domain.Internal(err, "cart.update", "failed to fetch cart item")
	}

	return s.GetCart(ctx, identity)
}

// RemoveItem deletes a line from the cart. Removing an absent line is not an
// error; the unchanged cart is returned.
func (s *cartService) RemoveItem(ctx context.Context, identity domain.Identity, productID int64) (*domain.CartSummary, error) {
	if !identity.Valid() {
		return nil, ErrIdentityRequired
	}
	if productID <= 0 {
		return nil, ErrProductRequired
	}

	if err := s.store.DeleteCartLine(ctx, identity, productID); err != nil {
		return nil, domain.Internal(err, "cart.remove", "failed to remove cart item")
	}

	return s.GetCart(ctx, identity)
}

// ClearCart removes all lines for the identity. Idempotent.
func (s *cartService) ClearCart(ctx context.Context, identity domain.Identity) error {
	if !identity.Valid() {
		return ErrIdentityRequired
	}

	if err := s.store.DeleteCartLinesForIdentity(ctx, identity); err != nil {
		return domain.Internal(err, "cart.clear", "failed to clear cart")
	}

	return nil
}

// MergeCarts folds an anonymous session cart into a user cart, typically on
// login. Quantities accumulate with any pre-existing user line, subject to
// the usual stock ceiling. Lines that cannot migrate (stock exceeded,
// product gone inactive) are dropped rather than failing the merge; the
// session cart is always emptied. The whole merge runs in one transaction so
// a failure leaves no half-migrated state.
func (s *cartService) MergeCarts(ctx context.Context, sessionID string, userID int64) (*domain.CartSummary, error) {
	if sessionID == "" || userID == 0 {
		return nil, ErrBothIdentitiesRequired
	}

	sessionIdentity := domain.ForSession(sessionID)
	userIdentity := domain.ForUser(userID)

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		lines, err := q.GetCartLines(ctx, sessionIdentity)
		if err != nil {
			return domain.Internal(err, "cart.merge", "failed to fetch session cart")
		}

		for _, line := range lines {
			err := addItem(ctx, q, userIdentity, line.ProductID, line.Quantity)
			if err != nil {
				code := domain.ErrorCode(err)
				if code == domain.ECONFLICT || code == domain.ENOTFOUND {
					// Lossy by policy: the anonymous line is dropped when it
					// no longer fits the user's cart.
					s.logger.Warn("dropping unmergeable cart line",
						"session_id", sessionID,
						"user_id", userID,
						"product_id", line.ProductID,
						"quantity", line.Quantity,
						"reason", domain.ErrorMessage(err),
					)
					continue
				}
				return err
			}
		}

		if err := q.DeleteCartLinesForIdentity(ctx, sessionIdentity); err != nil {
			return domain.Internal(err, "cart.merge", "failed to clear session cart")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userIdentity)
}

// summarize computes cart totals from joined lines.
func summarize(lines []domain.CartLine) *domain.CartSummary {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}

	if lines == nil {
		lines = []domain.CartLine{}
	}

	return &domain.CartSummary{
		Items:     lines,
		Total:     domain.RoundMoney(total),
		ItemCount: len(lines),
	}
}
