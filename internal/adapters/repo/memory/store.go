// Package memory keeps every repository in process memory. It is the default store and
// the fake used by tests. Values are copied on the way in and out.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/phenrril/fightshop/internal/domain"
)

type ProductRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.Product
}

func NewProductRepo(seed ...domain.Product) *ProductRepo {
	r := &ProductRepo{items: map[string]domain.Product{}}
	for i := range seed {
		_ = r.Save(context.Background(), &seed[i])
	}
	return r
}

func cloneProduct(p domain.Product) domain.Product {
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Colors = append([]domain.ColorVariant(nil), p.Colors...)
	p.Images = append([]string(nil), p.Images...)
	p.Features = append([]string(nil), p.Features...)
	if p.Specifications != nil {
		specs := make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			specs[k] = v
		}
		p.Specifications = specs
	}
	return p
}

// List returns products in insertion order.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneProduct(r.items[id]))
	}
	return out, nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := cloneProduct(p)
	return &cp, nil
}

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.items[p.ID] = cloneProduct(*p)
	return nil
}

type CartRepo struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: map[string]*domain.Cart{}}
}

func (r *CartRepo) Load(ctx context.Context, visitorID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.carts[visitorID]; ok {
		return c.Clone(), nil
	}
	return &domain.Cart{VisitorID: visitorID, Items: []domain.CartItem{}}, nil
}

func (r *CartRepo) Save(ctx context.Context, c *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.VisitorID] = c.Clone()
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, visitorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, visitorID)
	return nil
}

type OrderRepo struct {
	mu       sync.RWMutex
	byNumber map[string]domain.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{byNumber: map[string]domain.Order{}}
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	if o.UserID != nil {
		id := *o.UserID
		o.UserID = &id
	}
	return o
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byNumber[o.Number]; ok {
		return domain.ErrDuplicate
	}
	r.byNumber[o.Number] = cloneOrder(*o)
	return nil
}

func (r *OrderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byNumber[number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := cloneOrder(o)
	return &cp, nil
}

func (r *OrderRepo) list(match func(o *domain.Order) bool, limit int) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range r.byNumber {
		if match(&o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Number > out[j].Number
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *OrderRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.OwnerID == ownerID }, limit), nil
}

func (r *OrderRepo) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.list(func(*domain.Order) bool { return true }, limit), nil
}

type UserRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: map[uuid.UUID]domain.User{}, byEmail: map[string]uuid.UUID{}}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: map[uuid.UUID]domain.Profile{}}
}

func (r *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = *p
	return nil
}
