package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phenrril/fightshop/internal/domain"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) Load(ctx context.Context, visitorID string) (*domain.Cart, error) {
	var c domain.Cart
	if err := r.db.WithContext(ctx).First(&c, "visitor_id = ?", visitorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.Cart{VisitorID: visitorID, Items: []domain.CartItem{}}, nil
		}
		return nil, err
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return &c, nil
}

func (r *CartRepo) Save(ctx context.Context, c *domain.Cart) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CartRepo) Delete(ctx context.Context, visitorID string) error {
	return r.db.WithContext(ctx).Where("visitor_id = ?", visitorID).Delete(&domain.Cart{}).Error
}
