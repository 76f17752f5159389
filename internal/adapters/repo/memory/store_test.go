package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/fightshop/internal/domain"
)

func TestProductRepoKeepsInsertionOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo(
		domain.Product{ID: "b", Sizes: []string{"M"}},
		domain.Product{ID: "a"},
	)
	require.NoError(t, r.Save(ctx, &domain.Product{ID: "c"}))
	require.NoError(t, r.Save(ctx, &domain.Product{ID: "b", Name: "updated"}))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "updated", list[0].Name)

	p, err := r.FindByID(ctx, "a")
	require.NoError(t, err)
	p.Name = "mutated"
	again, _ := r.FindByID(ctx, "a")
	assert.Empty(t, again.Name)

	_, err = r.FindByID(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartRepoLoadsEmptyCart(t *testing.T) {
	ctx := context.Background()
	r := NewCartRepo()

	c, err := r.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	c.Items = append(c.Items, domain.CartItem{ProductID: "1", Quantity: 2})
	require.NoError(t, r.Save(ctx, c))
	c.Items[0].Quantity = 99

	stored, err := r.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Items[0].Quantity)

	require.NoError(t, r.Delete(ctx, "v1"))
	stored, err = r.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
}

func TestOrderRepoOrderingAndDuplicates(t *testing.T) {
	ctx := context.Background()
	r := NewOrderRepo()
	base := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	for i, n := range []string{"ORD-A", "ORD-B", "ORD-C"} {
		owner := "v1"
		if n == "ORD-B" {
			owner = "v2"
		}
		require.NoError(t, r.Create(ctx, &domain.Order{ID: uuid.New(), Number: n, OwnerID: owner, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}
	assert.ErrorIs(t, r.Create(ctx, &domain.Order{Number: "ORD-A"}), domain.ErrDuplicate)

	mine, err := r.ListByOwner(ctx, "v1", 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "ORD-C", mine[0].Number)
	assert.Equal(t, "ORD-A", mine[1].Number)

	all, err := r.ListAll(ctx, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ORD-C", all[0].Number)
	assert.Equal(t, "ORD-B", all[1].Number)

	none, err := r.ListByOwner(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUserRepoRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo()
	u := &domain.User{ID: uuid.New(), Email: "a@b.ru"}
	require.NoError(t, r.Create(ctx, u))
	assert.ErrorIs(t, r.Create(ctx, &domain.User{ID: uuid.New(), Email: "a@b.ru"}), domain.ErrEmailTaken)

	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.ru", got.Email)
}
