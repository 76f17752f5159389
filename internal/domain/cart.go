package domain

import "time"

// CartItem is a product reference with a quantity. Size and Color keep the last selection
// made on the product page and may be empty.
type CartItem struct {
	ProductID string `json:"productId" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
	Size      string `json:"size,omitempty" bson:"size,omitempty"`
	Color     string `json:"color,omitempty" bson:"color,omitempty"`
}

// Cart belongs to one visitor. Promo state is part of the cart and goes away with it.
type Cart struct {
	VisitorID    string     `gorm:"size:64;primaryKey" json:"-" bson:"_id"`
	Items        []CartItem `gorm:"type:jsonb;serializer:json" json:"items" bson:"items"`
	PromoCode    string     `gorm:"size:40" json:"promoCode,omitempty" bson:"promo_code,omitempty"`
	PromoPercent int        `gorm:"default:0" json:"promoPercent" bson:"promo_percent"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at"`
}

// Find returns the index of the item for productID or -1.
func (c *Cart) Find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Count is the number of units in the cart, shown on the header badge.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Clone returns a deep copy so stores never share slices with callers.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = append([]CartItem(nil), c.Items...)
	return &cp
}

// LineItem is a cart entry joined with the live product table.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	InStock   bool   `json:"inStock"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Subtotal  int64  `json:"subtotal"`
}

type CartTotals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Delivery int64 `json:"delivery"`
	Total    int64 `json:"total"`
}

// CartView is what the cart page renders.
type CartView struct {
	Items        []LineItem `json:"items"`
	PromoCode    string     `json:"promoCode,omitempty"`
	PromoPercent int        `json:"promoPercent"`
	Count        int        `json:"count"`
	Totals       CartTotals `json:"totals"`
}

type Promo struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}
