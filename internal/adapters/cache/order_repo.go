package cache

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/fightshop/internal/domain"
)

// OrderRepo caches FindByNumber results. Orders never change after checkout, so entries
// are only evicted by size.
type OrderRepo struct {
	domain.OrderRepo
	lru *LRU[domain.Order]
}

func NewOrderRepo(next domain.OrderRepo, capacity int) *OrderRepo {
	return &OrderRepo{OrderRepo: next, lru: NewLRU[domain.Order](capacity)}
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if err := r.OrderRepo.Create(ctx, o); err != nil {
		return err
	}
	r.lru.Add(o.Number, copyOrder(o))
	return nil
}

func (r *OrderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	if o, ok := r.lru.Get(number); ok {
		log.Debug().Str("order", number).Msg("order cache hit")
		cp := copyOrder(&o)
		return &cp, nil
	}
	o, err := r.OrderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	r.lru.Add(number, copyOrder(o))
	return o, nil
}

func copyOrder(o *domain.Order) domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return cp
}
