package usecase

import (
	"context"
	"math"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/fightshop/internal/adapters/repo/memory"
	"github.com/phenrril/fightshop/internal/domain"
)

type recordingNotifier struct {
	mu     sync.Mutex
	orders []string
	done   chan struct{}
}

func (n *recordingNotifier) OrderPlaced(ctx context.Context, o *domain.Order) error {
	n.mu.Lock()
	n.orders = append(n.orders, o.Number)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func newOrderUC(t *testing.T) (*OrderUC, *memory.OrderRepo) {
	t.Helper()
	cart, _ := newCartUC(t)
	orders := memory.NewOrderRepo()
	return &OrderUC{Orders: orders, Cart: cart, Now: func() time.Time { return fixedNow }}, orders
}

func TestSubmitBuildsOrderFromCart(t *testing.T) {
	ctx := context.Background()
	uc, orders := newOrderUC(t)
	notifier := &recordingNotifier{done: make(chan struct{}, 1)}
	uc.Notifier = notifier

	_, err := uc.Cart.AddItem(ctx, "v1", "1", "12 oz", "Черный")
	require.NoError(t, err)
	_, err = uc.Cart.SetQuantity(ctx, "v1", "1", 2)
	require.NoError(t, err)
	_, err = uc.Cart.ApplyPromo(ctx, "v1", "SPORT10")
	require.NoError(t, err)

	uid := uuid.New()
	req := validCheckout()
	req.Form.FirstName = "  Иван "
	o, err := uc.Submit(ctx, "v1", &uid, req)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-F]{12}$`), o.Number)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, "Иван", o.Form.FirstName)
	assert.Equal(t, "19 октября 2026 г.", o.Date)
	assert.Equal(t, fixedNow.AddDate(0, 0, 3), o.EstimatedDelivery)
	require.Len(t, o.Items, 1)
	assert.Equal(t, domain.OrderItem{
		ID: o.Items[0].ID, OrderID: o.ID, ProductID: "1", Name: "Боксерские перчатки Pro",
		Image: "/img/gloves.jpg", Price: 4500, Quantity: 2, Size: "12 oz", Color: "Черный",
	}, o.Items[0])
	assert.Equal(t, int64(9000), o.Subtotal)
	assert.Equal(t, o.ItemsTotal(), o.Subtotal)
	assert.Equal(t, int64(900), o.Discount)
	assert.Equal(t, int64(500), o.DeliveryPrice)
	assert.Equal(t, o.Subtotal-o.Discount+o.DeliveryPrice, o.Total)
	assert.Equal(t, "SPORT10", o.PromoCode)

	stored, err := orders.FindByNumber(ctx, o.Number)
	require.NoError(t, err)
	assert.Equal(t, o.Total, stored.Total)

	view, err := uc.Cart.View(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Empty(t, view.PromoCode)

	select {
	case <-notifier.done:
	case <-time.After(time.Second):
		t.Fatal("notifier not called")
	}
	assert.Equal(t, []string{o.Number}, notifier.orders)
}

func TestSubmitRejectsInvalidFormWithoutCreatingOrder(t *testing.T) {
	ctx := context.Background()
	uc, orders := newOrderUC(t)
	_, err := uc.Cart.AddItem(ctx, "v1", "2", "", "")
	require.NoError(t, err)

	_, err = uc.Submit(ctx, "v1", nil, domain.CheckoutRequest{DeliveryMethod: domain.DeliveryCourier})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 8)

	all, err := orders.ListAll(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)

	view, err := uc.Cart.View(ctx, "v1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestSubmitEmptyCart(t *testing.T) {
	uc, _ := newOrderUC(t)
	_, err := uc.Submit(context.Background(), "v1", nil, validCheckout())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestSubmitPickupAndUnknownPayment(t *testing.T) {
	ctx := context.Background()
	uc, _ := newOrderUC(t)
	_, err := uc.Cart.AddItem(ctx, "v1", "3", "", "")
	require.NoError(t, err)

	req := validCheckout()
	req.DeliveryMethod = domain.DeliveryPickup
	req.PaymentMethod = "barter"
	req.Form.City, req.Form.Address, req.Form.ZipCode = "", "", ""
	o, err := uc.Submit(ctx, "v1", nil, req)
	require.NoError(t, err)
	assert.Zero(t, o.DeliveryPrice)
	assert.Equal(t, int64(6800), o.Total)
	assert.Equal(t, domain.PaymentCard, o.PaymentMethod)
	assert.Equal(t, fixedNow, o.EstimatedDelivery)
	assert.Nil(t, o.UserID)
}

func TestSubmitRegeneratesTakenNumber(t *testing.T) {
	ctx := context.Background()
	uc, orders := newOrderUC(t)
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: uuid.New(), Number: "ORD-TAKEN"}))

	numbers := []string{"ORD-TAKEN", "ORD-FREE"}
	uc.NewNumber = func() string {
		n := numbers[0]
		numbers = numbers[1:]
		return n
	}
	_, err := uc.Cart.AddItem(ctx, "v1", "2", "", "")
	require.NoError(t, err)

	o, err := uc.Submit(ctx, "v1", nil, validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "ORD-FREE", o.Number)
}

func TestSubmitGivesUpWhenNumbersKeepColliding(t *testing.T) {
	ctx := context.Background()
	uc, orders := newOrderUC(t)
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: uuid.New(), Number: "ORD-TAKEN"}))
	uc.NewNumber = func() string { return "ORD-TAKEN" }
	_, err := uc.Cart.AddItem(ctx, "v1", "2", "", "")
	require.NoError(t, err)

	_, err = uc.Submit(ctx, "v1", nil, validCheckout())
	assert.Error(t, err)
}

// numberTakenOnInsert hides one taken number from lookups, so the collision only shows up
// when the order is inserted.
type numberTakenOnInsert struct {
	*memory.OrderRepo
	hidden string
}

func (r *numberTakenOnInsert) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	if number == r.hidden {
		return nil, domain.ErrNotFound
	}
	return r.OrderRepo.FindByNumber(ctx, number)
}

func TestSubmitRegeneratesNumberTakenOnInsert(t *testing.T) {
	ctx := context.Background()
	uc, orders := newOrderUC(t)
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: uuid.New(), Number: "ORD-RACE"}))
	uc.Orders = &numberTakenOnInsert{OrderRepo: orders, hidden: "ORD-RACE"}

	numbers := []string{"ORD-RACE", "ORD-NEXT"}
	uc.NewNumber = func() string {
		n := numbers[0]
		numbers = numbers[1:]
		return n
	}
	_, err := uc.Cart.AddItem(ctx, "v1", "2", "", "")
	require.NoError(t, err)

	o, err := uc.Submit(ctx, "v1", nil, validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "ORD-NEXT", o.Number)

	stored, err := orders.FindByNumber(ctx, "ORD-NEXT")
	require.NoError(t, err)
	assert.Equal(t, o.Total, stored.Total)
}

func TestSubmitWithHugeQuantityKeepsTotalsPositive(t *testing.T) {
	ctx := context.Background()
	uc, _ := newOrderUC(t)
	_, err := uc.Cart.AddItem(ctx, "v1", "7", "", "")
	require.NoError(t, err)
	_, err = uc.Cart.SetQuantity(ctx, "v1", "7", math.MaxInt64/8000)
	require.NoError(t, err)

	o, err := uc.Submit(ctx, "v1", nil, validCheckout())
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, o.Items[0].Quantity)
	assert.Equal(t, int64(8900*MaxQuantity), o.Subtotal)
	assert.Equal(t, o.Subtotal-o.Discount+o.DeliveryPrice, o.Total)
	assert.Positive(t, o.Total)
}

func TestSubmitRejectsNonPositiveTotal(t *testing.T) {
	ctx := context.Background()
	products := &ProductUC{Products: memory.NewProductRepo(domain.Product{ID: "x", Name: "Ошибка цены", Price: -100, InStock: true})}
	cart := &CartUC{Carts: memory.NewCartRepo(), Products: products}
	orders := memory.NewOrderRepo()
	uc := &OrderUC{Orders: orders, Cart: cart, Now: func() time.Time { return fixedNow }}
	_, err := cart.AddItem(ctx, "v1", "x", "", "")
	require.NoError(t, err)

	_, err = uc.Submit(ctx, "v1", nil, validCheckout())
	assert.ErrorIs(t, err, domain.ErrInvalidTotal)
	all, err := orders.ListAll(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmitNumbersItemsInCartOrder(t *testing.T) {
	ctx := context.Background()
	uc, _ := newOrderUC(t)
	for _, id := range []string{"7", "1", "3"} {
		_, err := uc.Cart.AddItem(ctx, "v1", id, "", "")
		require.NoError(t, err)
	}

	o, err := uc.Submit(ctx, "v1", nil, validCheckout())
	require.NoError(t, err)
	require.Len(t, o.Items, 3)
	for i, want := range []string{"7", "1", "3"} {
		assert.Equal(t, want, o.Items[i].ProductID)
		assert.Equal(t, i, o.Items[i].Position)
	}
}

func TestTrack(t *testing.T) {
	ctx := context.Background()
	uc, orders := newOrderUC(t)
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: uuid.New(), Number: "ORD-1", Status: domain.OrderStatusShipped}))

	tr, err := uc.Track(ctx, "  ORD-1 ")
	require.NoError(t, err)
	assert.Equal(t, "Отправлен", tr.Badge.Label)
	require.Len(t, tr.Steps, 5)

	_, err = uc.Track(ctx, "ORD-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Track(ctx, " ")
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Введите номер заказа", verrs["orderNumber"])
}

func TestListMineIsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	uc, orders := newOrderUC(t)
	for i, n := range []string{"ORD-A", "ORD-B", "ORD-C"} {
		require.NoError(t, orders.Create(ctx, &domain.Order{
			ID: uuid.New(), Number: n, OwnerID: "v1", CreatedAt: fixedNow.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: uuid.New(), Number: "ORD-X", OwnerID: "v2"}))

	list, err := uc.ListMine(ctx, "v1")
	require.NoError(t, err)
	got := []string{}
	for _, o := range list {
		got = append(got, o.Number)
	}
	assert.Equal(t, []string{"ORD-C", "ORD-B", "ORD-A"}, got)

	none, err := uc.ListMine(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
