// Package notify tells the shop staff about placed orders by email and Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phenrril/fightshop/internal/domain"
)

var deliveryLabels = map[domain.DeliveryMethod]string{
	domain.DeliveryCourier: "Курьерская доставка",
	domain.DeliveryPickup:  "Самовывоз",
	domain.DeliveryPost:    "Почта России",
}

// Subject is the email subject line for o.
func Subject(o *domain.Order) string {
	return fmt.Sprintf("Новый заказ %s на %d ₽", o.Number, o.Total)
}

// Body renders the plain-text order summary shared by every channel.
func Body(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Заказ %s от %s\n", o.Number, o.Date)
	f := o.Form
	fmt.Fprintf(&b, "Покупатель: %s %s\nEmail: %s\nТелефон: %s\n", f.FirstName, f.LastName, f.Email, f.Phone)
	label := deliveryLabels[o.DeliveryMethod]
	if label == "" {
		label = string(o.DeliveryMethod)
	}
	if o.DeliveryMethod == domain.DeliveryPickup {
		fmt.Fprintf(&b, "Доставка: %s\n", label)
	} else {
		fmt.Fprintf(&b, "Доставка: %s, %s, %s, %s\n", label, f.City, f.Address, f.ZipCode)
	}
	fmt.Fprintf(&b, "Оплата: %s\n", o.PaymentMethod)
	if f.Comment != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", f.Comment)
	}
	b.WriteString("Товары:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d, %d ₽", it.Name, it.Quantity, it.Price)
		var opts []string
		if it.Size != "" {
			opts = append(opts, "размер "+it.Size)
		}
		if it.Color != "" {
			opts = append(opts, "цвет "+it.Color)
		}
		if len(opts) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(opts, ", "))
		}
		b.WriteString("\n")
	}
	if o.Discount > 0 {
		fmt.Fprintf(&b, "Скидка (%s): -%d ₽\n", o.PromoCode, o.Discount)
	}
	fmt.Fprintf(&b, "Доставка: %d ₽\nИтого: %d ₽\n", o.DeliveryPrice, o.Total)
	return b.String()
}

// Multi fans an order out to every notifier and joins their errors.
type Multi []domain.OrderNotifier

func (m Multi) OrderPlaced(ctx context.Context, o *domain.Order) error {
	var errs []error
	for _, n := range m {
		if err := n.OrderPlaced(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
