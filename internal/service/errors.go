package service

import (
	"github.com/eliteshop/eliteshop/internal/domain"
)

// Identity and validation errors - domain.EINVALID
var (
	ErrIdentityRequired       = domain.Errorf(domain.EINVALID, "", "Session ID or User ID required")
	ErrBothIdentitiesRequired = domain.Errorf(domain.EINVALID, "", "Both User ID and Session ID required for merging")
	ErrProductRequired        = domain.Errorf(domain.EINVALID, "", "Product ID required")
	ErrInvalidQuantity        = domain.Errorf(domain.EINVALID, "", "Quantity must be greater than 0")
	ErrEmptyOrder             = domain.Errorf(domain.EINVALID, "", "No items in order")
	ErrInvalidStatus          = domain.Errorf(domain.EINVALID, "", "Invalid status")
)

// Lookup errors - domain.ENOTFOUND
var (
	ErrProductNotFound = domain.Errorf(domain.ENOTFOUND, "", "Product not found or inactive")
	ErrOrderNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Order not found")
	ErrUserNotFound    = domain.Errorf(domain.ENOTFOUND, "", "User not found")
)

// Conflict errors - domain.ECONFLICT
var (
	ErrInsufficientStock = domain.Errorf(domain.ECONFLICT, "", "Requested quantity exceeds available stock")
	ErrEmailTaken        = domain.Errorf(domain.ECONFLICT, "", "User already exists")
)

// Auth errors
var (
	ErrInvalidCredentials = domain.Unauthorized("", "Invalid credentials")
)
