package domain

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrPromoNotFound      = errors.New("promo code not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTotal       = errors.New("order total out of range")
	ErrInvalidSelection   = errors.New("size or color not offered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationErrors maps a form field to a user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Save(ctx context.Context, p *Product) error
}

// CartRepo loads carts by visitor. Load returns an empty cart for unknown visitors.
type CartRepo interface {
	Load(ctx context.Context, visitorID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, visitorID string) error
}

// OrderRepo lists are ordered most recent first.
type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	FindByNumber(ctx context.Context, number string) (*Order, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Order, error)
	ListAll(ctx context.Context, limit int) ([]Order, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type ProfileRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

// OrderNotifier is told about every placed order. Failures never affect checkout.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, o *Order) error
}
