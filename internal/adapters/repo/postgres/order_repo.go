package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phenrril/fightshop/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// itemsInCheckoutOrder keeps preloaded line items in the order they were in the cart.
func itemsInCheckoutOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position asc").Order("id asc")
}

// Create inserts the order and its items in one transaction.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *OrderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items", itemsInCheckoutOrder).First(&o, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) list(ctx context.Context, q *gorm.DB, limit int) ([]domain.Order, error) {
	var list []domain.Order
	q = q.Preload("Items", itemsInCheckoutOrder).Order("created_at desc").Order("number desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Order, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("owner_id = ?", ownerID), limit)
}

func (r *OrderRepo) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.list(ctx, r.db.WithContext(ctx), limit)
}
