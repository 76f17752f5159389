package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phenrril/fightshop/internal/domain"
)

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

type ProductRepo struct{ col *mongo.Collection }

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{col: db.Collection(colProducts)}
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []domain.Product{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	return err
}

type CartRepo struct{ col *mongo.Collection }

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{col: db.Collection(colCarts)}
}

func (r *CartRepo) Load(ctx context.Context, visitorID string) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c domain.Cart
	err := r.col.FindOne(ctx, bson.M{"_id": visitorID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &domain.Cart{VisitorID: visitorID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return &c, nil
}

func (r *CartRepo) Save(ctx context.Context, c *domain.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.VisitorID}, c, options.Replace().SetUpsert(true))
	return err
}

func (r *CartRepo) Delete(ctx context.Context, visitorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": visitorID})
	return err
}

type OrderRepo struct{ col *mongo.Collection }

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{col: db.Collection(colOrders)}
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.col.InsertOne(ctx, o)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *OrderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var o domain.Order
	if err := r.col.FindOne(ctx, bson.M{"number": number}).Decode(&o); err != nil {
		return nil, notFound(err)
	}
	o.Items = withOrderID(o.ID, o.Items)
	return &o, nil
}

func (r *OrderRepo) find(ctx context.Context, filter bson.M, limit int) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "number", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []domain.Order{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Items = withOrderID(list[i].ID, list[i].Items)
	}
	return list, nil
}

func (r *OrderRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, limit)
}

func (r *OrderRepo) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.find(ctx, bson.M{}, limit)
}

// items are embedded, so the back reference is restored on read
func withOrderID(id uuid.UUID, items []domain.OrderItem) []domain.OrderItem {
	for i := range items {
		items[i].OrderID = id
	}
	return items
}

type UserRepo struct{ col *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection(colUsers)}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

type ProfileRepo struct{ col *mongo.Collection }

func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{col: db.Collection(colProfiles)}
}

func (r *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.UserID}, p, options.Replace().SetUpsert(true))
	return err
}
