package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Email        string    `gorm:"size:140;uniqueIndex" json:"email" bson:"email"`
	PasswordHash string    `gorm:"size:100" json:"-" bson:"password_hash"`
	FirstName    string    `gorm:"size:120" json:"firstName" bson:"first_name"`
	LastName     string    `gorm:"size:120" json:"lastName" bson:"last_name"`
	Phone        string    `gorm:"size:60" json:"phone" bson:"phone"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// Profile is the editable contact data shown on the profile page.
type Profile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"-" bson:"_id"`
	FirstName string    `gorm:"size:120" json:"firstName" bson:"first_name"`
	LastName  string    `gorm:"size:120" json:"lastName" bson:"last_name"`
	Email     string    `gorm:"size:140" json:"email" bson:"email"`
	Phone     string    `gorm:"size:60" json:"phone" bson:"phone"`
	City      string    `gorm:"size:120" json:"city" bson:"city"`
	Address   string    `gorm:"size:255" json:"address" bson:"address"`
	ZipCode   string    `gorm:"size:20" json:"zipCode" bson:"zip_code"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

type SessionUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
}

type Session struct {
	IsAuthenticated bool        `json:"isAuthenticated"`
	User            SessionUser `json:"user"`
	RememberMe      bool        `json:"rememberMe"`
}

type RegisterRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ProfileOverview struct {
	TotalOrders     int     `json:"totalOrders"`
	ActiveOrders    int     `json:"activeOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	RecentOrders    []Order `json:"recentOrders"`
}
