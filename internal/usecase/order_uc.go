package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fightshop/internal/domain"
)

const numberAttempts = 5

var deliveryOptions = []domain.DeliveryOption{
	{ID: domain.DeliveryCourier, Name: "Курьерская доставка", Price: 500, Time: "1-3 дня", Days: 3},
	{ID: domain.DeliveryPickup, Name: "Самовывоз", Price: 0, Time: "Сегодня", Days: 0},
	{ID: domain.DeliveryPost, Name: "Почта России", Price: 350, Time: "5-10 дней", Days: 10},
}

var paymentOptions = []domain.PaymentOption{
	{ID: domain.PaymentCard, Name: "Банковская карта"},
	{ID: domain.PaymentCash, Name: "Наличные при получении"},
	{ID: domain.PaymentSBP, Name: "СБП (Система быстрых платежей)"},
}

func DeliveryOptions() []domain.DeliveryOption {
	return append([]domain.DeliveryOption(nil), deliveryOptions...)
}

func PaymentOptions() []domain.PaymentOption {
	return append([]domain.PaymentOption(nil), paymentOptions...)
}

// deliveryFor returns the option for m. Unknown methods cost nothing and arrive today.
func deliveryFor(m domain.DeliveryMethod) domain.DeliveryOption {
	for _, d := range deliveryOptions {
		if d.ID == m {
			return d
		}
	}
	return domain.DeliveryOption{ID: m}
}

func paymentFor(m domain.PaymentMethod) domain.PaymentMethod {
	for _, p := range paymentOptions {
		if p.ID == m {
			return m
		}
	}
	return domain.PaymentCard
}

// NewOrderNumber returns ORD- followed by 12 uppercase hex characters.
func NewOrderNumber() string {
	id := uuid.New()
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}

type OrderUC struct {
	Orders   domain.OrderRepo
	Cart     *CartUC
	Notifier domain.OrderNotifier
	Now      func() time.Time
	// NewNumber overrides the order number generator.
	NewNumber func() string
}

func (uc *OrderUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// place stores o under a fresh order number. A number found taken, either by the lookup
// or by the insert, is regenerated, up to numberAttempts times.
func (uc *OrderUC) place(ctx context.Context, o *domain.Order) error {
	gen := uc.NewNumber
	if gen == nil {
		gen = NewOrderNumber
	}
	for i := 0; i < numberAttempts; i++ {
		n := gen()
		_, err := uc.Orders.FindByNumber(ctx, n)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		o.Number = n
		err = uc.Orders.Create(ctx, o)
		if errors.Is(err, domain.ErrDuplicate) {
			log.Warn().Str("order", n).Msg("order number taken on insert, regenerating")
			continue
		}
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	}
	return fmt.Errorf("order number: no free number after %d attempts", numberAttempts)
}

// Submit validates the form, snapshots the visitor's cart into a pending order, stores it
// and empties the cart. Notification runs in the background and never fails the checkout.
func (uc *OrderUC) Submit(ctx context.Context, ownerID string, userID *uuid.UUID, req domain.CheckoutRequest) (*domain.Order, error) {
	if err := ValidateCheckout(req); err != nil {
		return nil, err
	}
	view, err := uc.Cart.View(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	now := uc.now()
	delivery := deliveryFor(req.DeliveryMethod)
	o := &domain.Order{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		UserID:            userID,
		Status:            domain.OrderStatusPending,
		Form:              NormalizeForm(req.Form),
		DeliveryMethod:    req.DeliveryMethod,
		PaymentMethod:     paymentFor(req.PaymentMethod),
		PromoCode:         view.PromoCode,
		Date:              LongDate(now),
		EstimatedDelivery: now.AddDate(0, 0, delivery.Days),
		CreatedAt:         now,
	}
	for i, l := range view.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			Position:  i,
			ProductID: l.ProductID,
			Name:      l.Name,
			Image:     l.Image,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Size:      l.Size,
			Color:     l.Color,
		})
	}
	o.Subtotal = o.ItemsTotal()
	o.Discount = view.Totals.Discount
	o.DeliveryPrice = delivery.Price
	o.Total = o.Subtotal - o.Discount + o.DeliveryPrice
	if o.Subtotal <= 0 || o.Total < 0 || o.Subtotal != view.Totals.Subtotal {
		return nil, domain.ErrInvalidTotal
	}

	if err := uc.place(ctx, o); err != nil {
		return nil, err
	}
	if err := uc.Cart.Discard(ctx, ownerID); err != nil {
		log.Error().Err(err).Str("order", o.Number).Msg("clear cart after checkout")
	}
	log.Info().Str("order", o.Number).Int64("total", o.Total).Int("items", len(o.Items)).Msg("order placed")

	if uc.Notifier != nil {
		snapshot := *o
		go func() {
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
			defer cancel()
			if err := uc.Notifier.OrderPlaced(nctx, &snapshot); err != nil {
				log.Error().Err(err).Str("order", snapshot.Number).Msg("notify order placed")
			}
		}()
	}
	return o, nil
}

// Track looks an order up by its number and projects the delivery timeline.
func (uc *OrderUC) Track(ctx context.Context, number string) (*domain.Tracking, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.ValidationErrors{"orderNumber": "Введите номер заказа"}
	}
	o, err := uc.Orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return &domain.Tracking{
		Order: o,
		Badge: Badge(o.Status),
		Steps: TrackingSteps(o.Status, uc.now()),
	}, nil
}

// ListMine returns the visitor's orders, most recent first.
func (uc *OrderUC) ListMine(ctx context.Context, ownerID string) ([]domain.Order, error) {
	list, err := uc.Orders.ListByOwner(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Order{}
	}
	return list, nil
}

// Export returns up to limit orders for the admin spreadsheet.
func (uc *OrderUC) Export(ctx context.Context, limit int) ([]domain.Order, error) {
	return uc.Orders.ListAll(ctx, limit)
}
