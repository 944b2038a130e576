package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/01moynul/stockroom-golang/internal/auth"
	"github.com/01moynul/stockroom-golang/internal/cart"
	"github.com/01moynul/stockroom-golang/internal/catalog"
	"github.com/01moynul/stockroom-golang/internal/config"
	"github.com/01moynul/stockroom-golang/internal/database"
	"github.com/01moynul/stockroom-golang/internal/handlers"
	"github.com/01moynul/stockroom-golang/internal/middleware"
	"github.com/01moynul/stockroom-golang/internal/models"
	"github.com/01moynul/stockroom-golang/internal/session"
	"github.com/01moynul/stockroom-golang/internal/shaper"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router  *gin.Engine
	catalog *catalog.Service
	config  *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenDB(database.DriverSQLite, filepath.Join(t.TempDir(), "api.db"), "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var pw auth.Password
	require.NoError(t, pw.Set("s3cret-pass"))

	cfg := &config.Config{
		SessionTTL:        time.Hour,
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		AdminUsername:     "admin",
		AdminPasswordHash: pw.Hash,
		MediaRoot:         t.TempDir(),
		MediaURL:          "/media/",
		GalleryLimit:      4,
		CategorySeparator: " :: ",
		AllowedOrigins:    []string{"http://localhost:5173"},
	}
	svc := catalog.NewService(db, cfg.GalleryLimit)
	h := &handlers.Handlers{
		Catalog: svc,
		Carts:   cart.NewManager(db),
		Shaper:  shaper.New(cfg),
		Tokens:  auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Config:  cfg,
	}
	return &testServer{router: SetupRouter(h, session.NewMemoryStore()), catalog: svc, config: cfg}
}

func (s *testServer) do(t *testing.T, method, target string, body any, cookie *http.Cookie, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// seedStock creates a product priced at 10.00 and one variant of it.
func (s *testServer) seedStock(t *testing.T, qty int, override string) *models.StockItem {
	t.Helper()
	ctx := context.Background()

	m := &models.Manufacturer{Name: "Acme"}
	require.NoError(t, s.catalog.CreateManufacturer(ctx, m))
	b := &models.Brand{Name: "Acme Basics", ManufacturerID: m.ID}
	require.NoError(t, s.catalog.CreateBrand(ctx, b))
	p := &models.Product{
		Title:   "Widget",
		BrandID: b.ID,
		Price:   decimal.NewNullDecimal(decimal.RequireFromString("10.00")),
	}
	require.NoError(t, s.catalog.CreateProduct(ctx, p))

	item := &models.StockItem{ProductID: p.ID, Quantity: qty, ForSale: true}
	if override != "" {
		item.Price = decimal.NewNullDecimal(decimal.RequireFromString(override))
	}
	require.NoError(t, s.catalog.CreateStockItem(ctx, item))
	return item
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatalf("response carries no %s cookie", middleware.SessionCookie)
	return nil
}

// login signs in as the configured admin and returns the bearer token.
func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/v1/admin/login", gin.H{"username": "admin", "password": "s3cret-pass"}, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

type cartBody struct {
	Cart shaper.CartDTO `json:"cart"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) shaper.CartDTO {
	t.Helper()
	var body cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Cart
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/v1/ping", nil, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong!")
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)
	item := s.seedStock(t, 5, "12.50")

	// A fresh visitor gets an empty cart and a session cookie.
	w := s.do(t, http.MethodGet, "/v1/cart", nil, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	first := decodeCart(t, w)
	assert.Empty(t, first.Items)

	// Same cookie, same cart.
	w = s.do(t, http.MethodPost, "/v1/cart/items", gin.H{"stock_item_id": item.ID, "quantity": 2}, cookie, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	added := decodeCart(t, w)
	assert.Equal(t, first.ID, added.ID)
	require.Len(t, added.Items, 1)
	assert.Equal(t, 2, added.Items[0].Quantity)
	require.NotNil(t, added.Subtotal)
	assert.Equal(t, "25.00", *added.Subtotal)

	// More than is in stock.
	w = s.do(t, http.MethodPost, "/v1/cart/items", gin.H{"stock_item_id": item.ID, "quantity": 6}, cookie, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Adding again replaces the quantity.
	w = s.do(t, http.MethodPost, "/v1/cart/items", gin.H{"stock_item_id": item.ID, "quantity": 3}, cookie, "")
	require.Equal(t, http.StatusCreated, w.Code)
	replaced := decodeCart(t, w)
	assert.Equal(t, 3, replaced.TotalQuantity)
	assert.Equal(t, "37.50", *replaced.Subtotal)

	// Checkout closes the cart; the next request starts a new one.
	w = s.do(t, http.MethodPost, "/v1/cart/checkout", nil, cookie, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decodeCart(t, w).CheckedOut)

	w = s.do(t, http.MethodGet, "/v1/cart", nil, cookie, "")
	require.Equal(t, http.StatusOK, w.Code)
	next := decodeCart(t, w)
	assert.NotEqual(t, first.ID, next.ID)
	assert.Empty(t, next.Items)
}

func TestCartUpdateAndRemove(t *testing.T) {
	s := newTestServer(t)
	item := s.seedStock(t, 10, "")

	w := s.do(t, http.MethodPost, "/v1/cart/items", gin.H{"stock_item_id": item.ID, "quantity": 1}, nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cookie := sessionCookie(t, w)
	assert.Equal(t, "10.00", *decodeCart(t, w).Subtotal)

	w = s.do(t, http.MethodPut, "/v1/cart", gin.H{"items": []gin.H{{"stock_item_id": item.ID, "quantity": 4}}}, cookie, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeCart(t, w)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 4, updated.Items[0].Quantity)

	lineID := updated.Items[0].ID
	w = s.do(t, http.MethodGet, fmt.Sprintf("/v1/cart/items/%d", lineID), nil, cookie, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/v1/cart/items/%d", lineID), nil, cookie, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Items)

	w = s.do(t, http.MethodPost, "/v1/cart/checkout", nil, cookie, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductDetail(t *testing.T) {
	s := newTestServer(t)
	item := s.seedStock(t, 3, "")

	w := s.do(t, http.MethodGet, "/v1/products/999", nil, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/v1/products/abc", nil, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/v1/products/%d", item.ProductID), nil, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Product shaper.ProductDTO `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Widget", body.Product.Title)
	require.NotNil(t, body.Product.Price)
	assert.Equal(t, "10.00", *body.Product.Price)
	require.Len(t, body.Product.Inventory, 1)
	assert.Equal(t, 3, body.Product.Inventory[0].Available)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/admin/categories", gin.H{"name": "Shoes"}, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/v1/admin/login", gin.H{"username": "admin", "password": "wrong"}, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(t)

	w = s.do(t, http.MethodPost, "/v1/admin/categories", gin.H{"name": "Shoes", "active": true}, nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/v1/categories/shoes", nil, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/admin/cache/stats", nil, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"enabled":false`)
}

func TestAdminDeleteConflicts(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	item := s.seedStock(t, 5, "")

	w := s.do(t, http.MethodPost, "/v1/admin/categories", gin.H{"name": "!!!"}, nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A sold variant cannot be deleted.
	w = s.do(t, http.MethodPost, "/v1/cart/items", gin.H{"stock_item_id": item.ID, "quantity": 1}, nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cookie := sessionCookie(t, w)
	w = s.do(t, http.MethodPost, "/v1/cart/checkout", nil, cookie, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/v1/admin/stock/%d", item.ID), nil, nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do(t, http.MethodDelete, fmt.Sprintf("/v1/admin/products/%d", item.ProductID), nil, nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/v1/products/%d", item.ProductID), nil, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
