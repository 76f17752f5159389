package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/fightshop/internal/domain"
)

const recentOrders = 5

type ProfileUC struct {
	Profiles domain.ProfileRepo
	Orders   domain.OrderRepo
}

func (uc *ProfileUC) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	p, err := uc.Profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Profile{UserID: userID}, nil
	}
	return p, err
}

// Update replaces the editable fields of the profile.
func (uc *ProfileUC) Update(ctx context.Context, userID uuid.UUID, in domain.Profile) (*domain.Profile, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	f := NormalizeForm(domain.ContactForm{
		FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone,
		City: in.City, Address: in.Address, ZipCode: in.ZipCode,
	})
	p := &domain.Profile{
		UserID:    userID,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		City:      f.City,
		Address:   f.Address,
		ZipCode:   f.ZipCode,
		UpdatedAt: time.Now(),
	}
	if err := uc.Profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Overview summarises the orders placed from this visitor.
func (uc *ProfileUC) Overview(ctx context.Context, ownerID string) (*domain.ProfileOverview, error) {
	orders, err := uc.Orders.ListByOwner(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	return Summarize(orders), nil
}

// Summarize counts orders by state; orders must be most recent first.
func Summarize(orders []domain.Order) *domain.ProfileOverview {
	ov := &domain.ProfileOverview{TotalOrders: len(orders), RecentOrders: []domain.Order{}}
	for _, o := range orders {
		if o.Status.Active() {
			ov.ActiveOrders++
		}
		if o.Status == domain.OrderStatusDelivered {
			ov.DeliveredOrders++
		}
	}
	n := len(orders)
	if n > recentOrders {
		n = recentOrders
	}
	ov.RecentOrders = append(ov.RecentOrders, orders[:n]...)
	return ov
}
