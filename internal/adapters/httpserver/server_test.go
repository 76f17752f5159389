package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/phenrril/fightshop/internal/adapters/repo/memory"
	"github.com/phenrril/fightshop/internal/catalog"
	"github.com/phenrril/fightshop/internal/domain"
	"github.com/phenrril/fightshop/internal/usecase"
)

const testAdminKey = "admin-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	seed, err := catalog.Products()
	require.NoError(t, err)

	products := &usecase.ProductUC{Products: memory.NewProductRepo(seed...)}
	orders := memory.NewOrderRepo()
	users, profiles := memory.NewUserRepo(), memory.NewProfileRepo()
	cart := &usecase.CartUC{Carts: memory.NewCartRepo(), Products: products}

	h := New(Deps{
		Products: products,
		Cart:     cart,
		Orders:   &usecase.OrderUC{Orders: orders, Cart: cart},
		Auth:     &usecase.AuthUC{Users: users, Profiles: profiles, Cost: bcrypt.MinCost},
		Profiles: &usecase.ProfileUC{Profiles: profiles, Orders: orders},
	}, Options{SessionKey: []byte("test-key"), AdminKey: testAdminKey})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func do(t *testing.T, c *http.Client, method, url string, body any, out any) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, newClient(t), http.MethodGet, srv.URL+"/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestProductsFilterAndSort(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	var all usecase.Catalog
	resp := do(t, c, http.MethodGet, srv.URL+"/api/products", nil, &all)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, all.Total, all.Filtered)
	assert.Zero(t, all.ActiveFilters)

	var boxing usecase.Catalog
	do(t, c, http.MethodGet, srv.URL+"/api/products?category=boxing&sort=price-asc", nil, &boxing)
	require.NotEmpty(t, boxing.Items)
	assert.Less(t, boxing.Filtered, boxing.Total)
	assert.Equal(t, 1, boxing.ActiveFilters)
	for i, p := range boxing.Items {
		assert.Equal(t, "boxing", p.Category)
		if i > 0 {
			assert.LessOrEqual(t, boxing.Items[i-1].Price, p.Price)
		}
	}
}

func TestProductByID(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	var body struct {
		Product domain.Product   `json:"product"`
		Related []domain.Product `json:"related"`
	}
	resp := do(t, c, http.MethodGet, srv.URL+"/api/products/1", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Боксерские перчатки Pro", body.Product.Name)
	assert.LessOrEqual(t, len(body.Related), relatedCount)
	for _, p := range body.Related {
		assert.NotEqual(t, "1", p.ID)
	}

	var e map[string]string
	resp = do(t, c, http.MethodGet, srv.URL+"/api/products/nope", nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Не найдено", e["error"])
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	var view domain.CartView
	resp := do(t, c, http.MethodPost, srv.URL+"/api/cart/items", addItemRequest{ProductID: "1", Size: "12 oz", Color: "Черный"}, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Count)

	do(t, c, http.MethodPut, srv.URL+"/api/cart/items/1", map[string]int{"quantity": 2}, &view)
	assert.Equal(t, int64(9000), view.Totals.Subtotal)
	assert.Equal(t, int64(0), view.Totals.Delivery)

	resp = do(t, c, http.MethodPost, srv.URL+"/api/cart/promo", map[string]string{"code": "sport10"}, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SPORT10", view.PromoCode)
	assert.Equal(t, int64(900), view.Totals.Discount)
	assert.Equal(t, int64(8100), view.Totals.Total)

	var e map[string]string
	resp = do(t, c, http.MethodPost, srv.URL+"/api/cart/promo", map[string]string{"code": "FAKE"}, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Промокод не найден", e["error"])

	resp = do(t, c, http.MethodPost, srv.URL+"/api/cart/items", addItemRequest{ProductID: "1", Size: "99 oz"}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	do(t, c, http.MethodDelete, srv.URL+"/api/cart/items/1", nil, &view)
	assert.Empty(t, view.Items)
	assert.Equal(t, domain.CartTotals{}, view.Totals)
}

func TestCartAddQuantityAccumulates(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	var view domain.CartView
	do(t, c, http.MethodPost, srv.URL+"/api/cart/items", addItemRequest{ProductID: "1", Quantity: 5}, &view)
	resp := do(t, c, http.MethodPost, srv.URL+"/api/cart/items", addItemRequest{ProductID: "1", Quantity: 2}, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 7, view.Items[0].Quantity)

	do(t, c, http.MethodPut, srv.URL+"/api/cart/items/1", map[string]int64{"quantity": 1 << 50}, &view)
	assert.Equal(t, usecase.MaxQuantity, view.Items[0].Quantity)
	assert.Positive(t, view.Totals.Total)
}

func TestCartIsPerVisitor(t *testing.T) {
	srv := newTestServer(t)
	a, b := newClient(t), newClient(t)

	do(t, a, http.MethodPost, srv.URL+"/api/cart/items", addItemRequest{ProductID: "1"}, nil)

	var view domain.CartView
	do(t, b, http.MethodGet, srv.URL+"/api/cart", nil, &view)
	assert.Empty(t, view.Items)
}

func TestCheckoutAndTracking(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	checkout := domain.CheckoutRequest{
		Form: domain.ContactForm{
			FirstName: "Иван", LastName: "Петров", Email: "ivan@example.ru",
			Phone: "+7 900 123-45-67", City: "Москва", Address: "ул. Ленина, 1",
		},
		DeliveryMethod: domain.DeliveryPickup,
		PaymentMethod:  domain.PaymentCash,
		AgreeTerms:     true,
	}

	var e map[string]string
	resp := do(t, c, http.MethodPost, srv.URL+"/api/checkout", checkout, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Корзина пуста", e["error"])

	do(t, c, http.MethodPost, srv.URL+"/api/cart/items", addItemRequest{ProductID: "1", Quantity: 2}, nil)

	var order domain.Order
	resp = do(t, c, http.MethodPost, srv.URL+"/api/checkout", checkout, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, strings.HasPrefix(order.Number, "ORD-"))
	assert.Equal(t, int64(9000), order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	var view domain.CartView
	do(t, c, http.MethodGet, srv.URL+"/api/cart", nil, &view)
	assert.Empty(t, view.Items)

	var tracking domain.Tracking
	resp = do(t, newClient(t), http.MethodGet, srv.URL+"/api/orders/"+order.Number, nil, &tracking)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Обрабатывается", tracking.Badge.Label)
	require.Len(t, tracking.Steps, 5)
	assert.True(t, tracking.Steps[0].Completed)
	assert.False(t, tracking.Steps[1].Completed)

	resp = do(t, c, http.MethodGet, srv.URL+"/api/orders/ORD-000000000000", nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Заказ с таким номером не найден", e["error"])

	var mine []domain.Order
	do(t, c, http.MethodGet, srv.URL+"/api/orders", nil, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, order.Number, mine[0].Number)
}

func TestCheckoutValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)
	do(t, c, http.MethodPost, srv.URL+"/api/cart/items", addItemRequest{ProductID: "1"}, nil)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	resp := do(t, c, http.MethodPost, srv.URL+"/api/checkout", domain.CheckoutRequest{DeliveryMethod: domain.DeliveryCourier}, &body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "address")
}

func TestAuthSessionAndProfile(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	var e map[string]string
	resp := do(t, c, http.MethodGet, srv.URL+"/api/profile", nil, &e)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	reg := domain.RegisterRequest{
		FirstName: "Анна", LastName: "Ли", Email: "anna@example.ru",
		Password: "secret1", ConfirmPassword: "secret1",
	}
	var sess domain.Session
	resp = do(t, c, http.MethodPost, srv.URL+"/api/auth/register", reg, &sess)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, sess.IsAuthenticated)

	resp = do(t, newClient(t), http.MethodPost, srv.URL+"/api/auth/register", reg, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var me domain.Session
	do(t, c, http.MethodGet, srv.URL+"/api/auth/me", nil, &me)
	assert.Equal(t, "anna@example.ru", me.User.Email)

	var p domain.Profile
	resp = do(t, c, http.MethodPut, srv.URL+"/api/profile", domain.Profile{FirstName: "Анна", City: " Казань "}, &p)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Казань", p.City)

	var ov domain.ProfileOverview
	resp = do(t, c, http.MethodGet, srv.URL+"/api/profile/overview", nil, &ov)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, ov.RecentOrders)

	do(t, c, http.MethodPost, srv.URL+"/api/auth/logout", nil, nil)
	do(t, c, http.MethodGet, srv.URL+"/api/auth/me", nil, &me)
	assert.False(t, me.IsAuthenticated)

	other := newClient(t)
	resp = do(t, other, http.MethodPost, srv.URL+"/api/auth/login", loginRequest{Email: "anna@example.ru", Password: "wrong"}, &e)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Неверный email или пароль", e["error"])

	resp = do(t, other, http.MethodPost, srv.URL+"/api/auth/login", loginRequest{Email: "ANNA@example.ru", Password: "secret1"}, &sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	do(t, other, http.MethodGet, srv.URL+"/api/profile", nil, &p)
	assert.Equal(t, "Казань", p.City)
}

func TestTamperedSessionIsIgnored(t *testing.T) {
	s := &Server{cookies: signer{key: []byte("k")}}
	sess := usecase.SessionFor(&domain.User{Email: "a@b.ru"}, false)
	sess.User.ID[0] = 1

	rec := httptest.NewRecorder()
	s.writeSession(rec, sess)
	cookie := rec.Result().Cookies()[0]
	assert.Zero(t, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	require.NotNil(t, s.readSession(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	cookie.Value = "x" + cookie.Value
	req.AddCookie(cookie)
	assert.Nil(t, s.readSession(req))
}

func TestAdminExport(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	resp := do(t, c, http.MethodGet, srv.URL+"/admin/orders/export", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/admin/orders/export", nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Key", testAdminKey)
	resp, err = c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Заказы")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
