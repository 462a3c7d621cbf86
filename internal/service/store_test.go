package service

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/repository"
)

// fakeStore is an in-memory repository.Store. ExecTx snapshots the state and
// restores it when the callback fails, mirroring a rolled-back transaction, so
// atomicity tests can inject failures mid-flight.
type fakeStore struct {
	nextLineID  int64
	nextOrderID int64
	nextUserID  int64

	products   map[int64]domain.Product
	lines      []fakeLine
	orders     map[int64]domain.Order
	orderItems map[int64][]domain.OrderItem
	users      map[int64]domain.User

	// failOn makes the named method return the given error.
	failOn map[string]error
}

type fakeLine struct {
	id        int64
	userID    int64
	sessionID string
	productID int64
	quantity  int32
	createdAt time.Time
}

func newFakeStore(products ...domain.Product) *fakeStore {
	s := &fakeStore{
		products:   make(map[int64]domain.Product),
		orders:     make(map[int64]domain.Order),
		orderItems: make(map[int64][]domain.OrderItem),
		users:      make(map[int64]domain.User),
		failOn:     make(map[string]error),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

var _ repository.Store = (*fakeStore)(nil)

func (s *fakeStore) fail(method string) error {
	return s.failOn[method]
}

func (s *fakeStore) matches(l fakeLine, identity domain.Identity) bool {
	if identity.IsUser() {
		return l.userID == identity.UserID()
	}
	return l.sessionID == identity.SessionID() && l.userID == 0
}

// ExecTx runs fn against the store itself, restoring a snapshot on error.
func (s *fakeStore) ExecTx(_ context.Context, fn func(repository.Querier) error) error {
	snapLines := slices.Clone(s.lines)
	snapProducts := maps.Clone(s.products)
	snapOrders := maps.Clone(s.orders)
	snapItems := make(map[int64][]domain.OrderItem, len(s.orderItems))
	for id, items := range s.orderItems {
		snapItems[id] = slices.Clone(items)
	}

	if err := fn(s); err != nil {
		s.lines = snapLines
		s.products = snapProducts
		s.orders = snapOrders
		s.orderItems = snapItems
		return err
	}
	return nil
}

// Cart

func (s *fakeStore) GetCartLines(_ context.Context, identity domain.Identity) ([]domain.CartLine, error) {
	if err := s.fail("GetCartLines"); err != nil {
		return nil, err
	}
	var lines []domain.CartLine
	for _, l := range s.lines {
		if !s.matches(l, identity) {
			continue
		}
		p := s.products[l.productID]
		lines = append(lines, domain.CartLine{
			ID:           l.id,
			ProductID:    l.productID,
			Quantity:     l.quantity,
			ProductName:  p.Name,
			UnitPrice:    p.Price,
			ImageURL:     p.ImageURL,
			CategoryName: p.CategoryName,
			TotalPrice:   domain.RoundMoney(p.Price * float64(l.quantity)),
			CreatedAt:    l.createdAt,
		})
	}
	return lines, nil
}

func (s *fakeStore) GetCartLineForProduct(_ context.Context, identity domain.Identity, productID int64) (repository.CartLineRef, error) {
	if err := s.fail("GetCartLineForProduct"); err != nil {
		return repository.CartLineRef{}, err
	}
	for _, l := range s.lines {
		if s.matches(l, identity) && l.productID == productID {
			return repository.CartLineRef{ID: l.id, Quantity: l.quantity}, nil
		}
	}
	return repository.CartLineRef{}, pgx.ErrNoRows
}

func (s *fakeStore) InsertCartLine(_ context.Context, identity domain.Identity, productID int64, quantity int32) error {
	if err := s.fail("InsertCartLine"); err != nil {
		return err
	}
	s.nextLineID++
	s.lines = append(s.lines, fakeLine{
		id:        s.nextLineID,
		userID:    identity.UserID(),
		sessionID: identity.SessionID(),
		productID: productID,
		quantity:  quantity,
		createdAt: time.Now(),
	})
	return nil
}

func (s *fakeStore) UpdateCartLineQuantity(_ context.Context, lineID int64, quantity int32) error {
	if err := s.fail("UpdateCartLineQuantity"); err != nil {
		return err
	}
	for i := range s.lines {
		if s.lines[i].id == lineID {
			s.lines[i].quantity = quantity
		}
	}
	return nil
}

func (s *fakeStore) DeleteCartLine(_ context.Context, identity domain.Identity, productID int64) error {
	if err := s.fail("DeleteCartLine"); err != nil {
		return err
	}
	s.lines = slices.DeleteFunc(s.lines, func(l fakeLine) bool {
		return s.matches(l, identity) && l.productID == productID
	})
	return nil
}

func (s *fakeStore) DeleteCartLinesForIdentity(_ context.Context, identity domain.Identity) error {
	if err := s.fail("DeleteCartLinesForIdentity"); err != nil {
		return err
	}
	s.lines = slices.DeleteFunc(s.lines, func(l fakeLine) bool {
		return s.matches(l, identity)
	})
	return nil
}

// Catalog

func (s *fakeStore) GetActiveProduct(_ context.Context, productID int64) (domain.Product, error) {
	if err := s.fail("GetActiveProduct"); err != nil {
		return domain.Product{}, err
	}
	p, ok := s.products[productID]
	if !ok || p.Status != domain.ProductStatusActive {
		return domain.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return domain.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) ListActiveProducts(_ context.Context, categoryID int64) ([]domain.Product, error) {
	if err := s.fail("ListActiveProducts"); err != nil {
		return nil, err
	}
	var products []domain.Product
	for _, p := range s.products {
		if p.Status != domain.ProductStatusActive {
			continue
		}
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b domain.Product) int {
		return int(a.ID - b.ID)
	})
	return products, nil
}

func (s *fakeStore) ListCategories(context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *fakeStore) DecrementProductStock(_ context.Context, productID int64, quantity int32) (int64, error) {
	if err := s.fail("DecrementProductStock"); err != nil {
		return 0, err
	}
	p, ok := s.products[productID]
	if !ok || p.StockQuantity < quantity {
		return 0, nil
	}
	p.StockQuantity -= quantity
	s.products[productID] = p
	return 1, nil
}

// Orders

func (s *fakeStore) InsertOrder(_ context.Context, params repository.InsertOrderParams) (int64, error) {
	if err := s.fail("InsertOrder"); err != nil {
		return 0, err
	}
	s.nextOrderID++
	s.orders[s.nextOrderID] = domain.Order{
		ID:              s.nextOrderID,
		UserID:          params.UserID,
		OrderNumber:     params.OrderNumber,
		TotalAmount:     params.TotalAmount,
		Status:          domain.OrderStatusPending,
		ShippingAddress: params.ShippingAddress,
		BillingAddress:  params.BillingAddress,
		PaymentMethod:   params.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		CreatedAt:       time.Now(),
	}
	return s.nextOrderID, nil
}

func (s *fakeStore) InsertOrderItem(_ context.Context, params repository.InsertOrderItemParams) error {
	if err := s.fail("InsertOrderItem"); err != nil {
		return err
	}
	items := s.orderItems[params.OrderID]
	s.orderItems[params.OrderID] = append(items, domain.OrderItem{
		ID:        int64(len(items) + 1),
		OrderID:   params.OrderID,
		ProductID: params.ProductID,
		Quantity:  params.Quantity,
		Price:     params.Price,
	})
	return nil
}

func (s *fakeStore) UpdateOrderStatus(_ context.Context, orderID int64, status string) (int64, error) {
	if err := s.fail("UpdateOrderStatus"); err != nil {
		return 0, err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return 0, nil
	}
	o.Status = status
	s.orders[orderID] = o
	return 1, nil
}

func (s *fakeStore) GetOrder(_ context.Context, orderID int64) (domain.Order, error) {
	if err := s.fail("GetOrder"); err != nil {
		return domain.Order{}, err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (s *fakeStore) GetOrderItems(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	if err := s.fail("GetOrderItems"); err != nil {
		return nil, err
	}
	return slices.Clone(s.orderItems[orderID]), nil
}

func (s *fakeStore) ListOrdersByUser(_ context.Context, userID int64, limit, offset int32) ([]domain.Order, error) {
	if err := s.fail("ListOrdersByUser"); err != nil {
		return nil, err
	}
	var orders []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		return int(b.ID - a.ID)
	})
	if int(offset) >= len(orders) {
		return nil, nil
	}
	orders = orders[offset:]
	if int(limit) < len(orders) {
		orders = orders[:limit]
	}
	return orders, nil
}

// Users

func (s *fakeStore) InsertUser(_ context.Context, params repository.InsertUserParams) (int64, error) {
	if err := s.fail("InsertUser"); err != nil {
		return 0, err
	}
	s.nextUserID++
	s.users[s.nextUserID] = domain.User{
		ID:        s.nextUserID,
		Email:     params.Email,
		Password:  params.Password,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
	}
	return s.nextUserID, nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	if err := s.fail("GetUserByEmail"); err != nil {
		return domain.User{}, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (s *fakeStore) GetUserByID(_ context.Context, userID int64) (domain.User, error) {
	if err := s.fail("GetUserByID"); err != nil {
		return domain.User{}, err
	}
	u, ok := s.users[userID]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

// stockOf is a test helper reading current stock.
func (s *fakeStore) stockOf(productID int64) int32 {
	return s.products[productID].StockQuantity
}

// cartOf is a test helper returning the lines an identity owns.
func (s *fakeStore) cartOf(identity domain.Identity) []fakeLine {
	var lines []fakeLine
	for _, l := range s.lines {
		if s.matches(l, identity) {
			lines = append(lines, l)
		}
	}
	return lines
}
