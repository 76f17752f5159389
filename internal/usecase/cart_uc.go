package usecase

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/phenrril/fightshop/internal/domain"
)

const (
	FreeShippingThreshold int64 = 5000
	FlatDeliveryFee       int64 = 500
	// MaxQuantity caps a single cart line.
	MaxQuantity = 99
)

func clampQuantity(q int) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// CartUC owns every cart mutation. Each mutation loads the whole cart, changes it and
// saves it back.
type CartUC struct {
	Carts    domain.CartRepo
	Products *ProductUC
	Now      func() time.Time

	mu sync.Mutex
}

func (uc *CartUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Totals computes the cart amounts. An empty cart has no delivery fee.
func Totals(lines []domain.LineItem, promoPercent int) domain.CartTotals {
	var t domain.CartTotals
	if len(lines) == 0 {
		return t
	}
	for _, l := range lines {
		t.Subtotal += l.Price * int64(l.Quantity)
	}
	t.Discount = int64(math.Round(float64(t.Subtotal) * float64(promoPercent) / 100))
	if t.Subtotal > FreeShippingThreshold {
		t.Delivery = 0
	} else {
		t.Delivery = FlatDeliveryFee
	}
	t.Total = t.Subtotal - t.Discount + t.Delivery
	return t
}

// LineItems joins cart items with the catalog. Items whose product no longer exists are
// skipped but stay in the stored cart. Stored quantities above MaxQuantity are capped.
func LineItems(items []domain.CartItem, products map[string]*domain.Product) []domain.LineItem {
	lines := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		qty := clampQuantity(it.Quantity)
		lines = append(lines, domain.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Brand:     p.Brand,
			Category:  p.Category,
			Image:     p.Image(),
			InStock:   p.InStock,
			Price:     p.Price,
			Quantity:  qty,
			Size:      it.Size,
			Color:     it.Color,
			Subtotal:  p.Price * int64(qty),
		})
	}
	return lines
}

func (uc *CartUC) view(ctx context.Context, c *domain.Cart) (*domain.CartView, error) {
	products, err := uc.Products.lookup(ctx)
	if err != nil {
		return nil, err
	}
	lines := LineItems(c.Items, products)
	return &domain.CartView{
		Items:        lines,
		PromoCode:    c.PromoCode,
		PromoPercent: c.PromoPercent,
		Count:        c.Count(),
		Totals:       Totals(lines, c.PromoPercent),
	}, nil
}

func (uc *CartUC) View(ctx context.Context, visitorID string) (*domain.CartView, error) {
	c, err := uc.Carts.Load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, c)
}

func (uc *CartUC) mutate(ctx context.Context, visitorID string, fn func(c *domain.Cart) error) (*domain.CartView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	c, err := uc.Carts.Load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	c.VisitorID = visitorID
	if err := fn(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now()
	if err := uc.Carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.view(ctx, c)
}

// AddItem adds one unit of productID.
func (uc *CartUC) AddItem(ctx context.Context, visitorID, productID, size, color string) (*domain.CartView, error) {
	return uc.AddUnits(ctx, visitorID, productID, size, color, 1)
}

// AddUnits adds n units of productID (at least one). Repeated adds bump the quantity of the
// existing line, up to MaxQuantity, and keep its position. Size and color are optional;
// when given they must be offered by the product and replace the previous selection.
func (uc *CartUC) AddUnits(ctx context.Context, visitorID, productID, size, color string, n int) (*domain.CartView, error) {
	if n < 1 {
		n = 1
	}
	p, err := uc.Products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	size, color = strings.TrimSpace(size), strings.TrimSpace(color)
	if size != "" && !p.HasSize(size) {
		return nil, domain.ErrInvalidSelection
	}
	if color != "" && !p.HasAvailableColor(color) {
		return nil, domain.ErrInvalidSelection
	}
	return uc.mutate(ctx, visitorID, func(c *domain.Cart) error {
		if i := c.Find(p.ID); i >= 0 {
			c.Items[i].Quantity = clampQuantity(clampQuantity(c.Items[i].Quantity) + clampQuantity(n))
			if size != "" {
				c.Items[i].Size = size
			}
			if color != "" {
				c.Items[i].Color = color
			}
			return nil
		}
		c.Items = append(c.Items, domain.CartItem{ProductID: p.ID, Quantity: clampQuantity(n), Size: size, Color: color})
		return nil
	})
}

// SetQuantity replaces the quantity in place, capped at MaxQuantity; qty <= 0 removes the
// item.
func (uc *CartUC) SetQuantity(ctx context.Context, visitorID, productID string, qty int) (*domain.CartView, error) {
	if qty <= 0 {
		return uc.RemoveItem(ctx, visitorID, productID)
	}
	return uc.mutate(ctx, visitorID, func(c *domain.Cart) error {
		if i := c.Find(productID); i >= 0 {
			c.Items[i].Quantity = clampQuantity(qty)
		}
		return nil
	})
}

// RemoveItem drops productID from the cart; absent ids are a no-op.
func (uc *CartUC) RemoveItem(ctx context.Context, visitorID, productID string) (*domain.CartView, error) {
	return uc.mutate(ctx, visitorID, func(c *domain.Cart) error {
		kept := c.Items[:0]
		for _, it := range c.Items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		c.Items = kept
		return nil
	})
}

// Clear empties the cart and drops the applied promo code.
func (uc *CartUC) Clear(ctx context.Context, visitorID string) (*domain.CartView, error) {
	return uc.mutate(ctx, visitorID, func(c *domain.Cart) error {
		c.Items = []domain.CartItem{}
		c.PromoCode = ""
		c.PromoPercent = 0
		return nil
	})
}

// ApplyPromo replaces any active code. An unknown code returns ErrPromoNotFound and leaves
// the cart untouched.
func (uc *CartUC) ApplyPromo(ctx context.Context, visitorID, code string) (*domain.CartView, error) {
	promo, err := ResolvePromo(code)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, visitorID, func(c *domain.Cart) error {
		c.PromoCode = promo.Code
		c.PromoPercent = promo.Percent
		return nil
	})
}

func (uc *CartUC) RemovePromo(ctx context.Context, visitorID string) (*domain.CartView, error) {
	return uc.mutate(ctx, visitorID, func(c *domain.Cart) error {
		c.PromoCode = ""
		c.PromoPercent = 0
		return nil
	})
}

// Discard deletes the stored cart, used after a successful checkout.
func (uc *CartUC) Discard(ctx context.Context, visitorID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.Carts.Delete(ctx, visitorID)
}
