package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Active reports whether the order is still on its way to the customer.
func (s OrderStatus) Active() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusShipped:
		return true
	}
	return false
}

type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "courier"
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryPost    DeliveryMethod = "post"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
	PaymentSBP  PaymentMethod = "sbp"
)

// ContactForm is the contact and address part of the checkout form.
type ContactForm struct {
	FirstName string `gorm:"size:120" json:"firstName" bson:"first_name"`
	LastName  string `gorm:"size:120" json:"lastName" bson:"last_name"`
	Email     string `gorm:"size:140" json:"email" bson:"email"`
	Phone     string `gorm:"size:60" json:"phone" bson:"phone"`
	City      string `gorm:"size:120" json:"city" bson:"city"`
	Address   string `gorm:"size:255" json:"address" bson:"address"`
	ZipCode   string `gorm:"size:20" json:"zipCode" bson:"zip_code"`
	Comment   string `gorm:"type:text" json:"comment" bson:"comment"`
}

// Order is an immutable snapshot of a completed checkout.
type Order struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Number            string         `gorm:"size:40;uniqueIndex" json:"orderNumber" bson:"number"`
	OwnerID           string         `gorm:"size:64;index" json:"-" bson:"owner_id"`
	UserID            *uuid.UUID     `gorm:"type:uuid;index" json:"userId,omitempty" bson:"user_id,omitempty"`
	Status            OrderStatus    `gorm:"type:varchar(30);index" json:"status" bson:"status"`
	Form              ContactForm    `gorm:"embedded;embeddedPrefix:contact_" json:"formData" bson:"form"`
	DeliveryMethod    DeliveryMethod `gorm:"size:30" json:"deliveryMethod" bson:"delivery_method"`
	PaymentMethod     PaymentMethod  `gorm:"size:30" json:"paymentMethod" bson:"payment_method"`
	Items             []OrderItem    `json:"items" bson:"items"`
	Subtotal          int64          `json:"subtotal" bson:"subtotal"`
	PromoCode         string         `gorm:"size:40" json:"promoCode,omitempty" bson:"promo_code,omitempty"`
	Discount          int64          `gorm:"default:0" json:"discount" bson:"discount"`
	DeliveryPrice     int64          `json:"deliveryPrice" bson:"delivery_price"`
	Total             int64          `json:"total" bson:"total"`
	Date              string         `gorm:"size:60" json:"date" bson:"date"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery" bson:"estimated_delivery"`
	CreatedAt         time.Time      `gorm:"index" json:"createdAt" bson:"created_at"`
}

// OrderItem is a line-item snapshot, decoupled from the live product.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-" bson:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"-" bson:"-"`
	Position  int       `gorm:"not null;default:0" json:"-" bson:"-"`
	ProductID string    `gorm:"size:64" json:"productId" bson:"product_id"`
	Name      string    `gorm:"size:180" json:"name" bson:"name"`
	Image     string    `gorm:"size:255" json:"image" bson:"image"`
	Price     int64     `json:"price" bson:"price"`
	Quantity  int       `gorm:"not null" json:"quantity" bson:"quantity"`
	Size      string    `gorm:"size:40" json:"size,omitempty" bson:"size,omitempty"`
	Color     string    `gorm:"size:60" json:"color,omitempty" bson:"color,omitempty"`
}

// ItemsTotal is the sum of price * quantity over the snapshot lines.
func (o *Order) ItemsTotal() int64 {
	var sum int64
	for _, it := range o.Items {
		sum += it.Price * int64(it.Quantity)
	}
	return sum
}

// CheckoutRequest carries everything the checkout form submits.
type CheckoutRequest struct {
	Form           ContactForm    `json:"formData"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	AgreeTerms     bool           `json:"agreeTerms"`
}

type DeliveryOption struct {
	ID    DeliveryMethod `json:"id"`
	Name  string         `json:"name"`
	Price int64          `json:"price"`
	Time  string         `json:"time"`
	Days  int            `json:"-"`
}

type PaymentOption struct {
	ID   PaymentMethod `json:"id"`
	Name string        `json:"name"`
}

type StatusBadge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

// TrackingStep is one checkpoint of the projected delivery timeline.
type TrackingStep struct {
	Status      OrderStatus `json:"status"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
}

type Tracking struct {
	Order *Order         `json:"order"`
	Badge StatusBadge    `json:"badge"`
	Steps []TrackingStep `json:"trackingSteps"`
}
