package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"infinity-realms-shop/internal/catalog"
	"infinity-realms-shop/internal/logger"
	"infinity-realms-shop/internal/model"
	"infinity-realms-shop/internal/service"
)

type memUserRepo struct {
	users []*model.User
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*model.User, error) { return r.users, nil }
func (r *memUserRepo) DeleteAll(_ context.Context) error             { r.users = nil; return nil }

type memPurchaseRepo struct {
	purchases []*model.Purchase
}

func (r *memPurchaseRepo) Create(_ context.Context, purchase *model.Purchase) error {
	stored := *purchase
	r.purchases = append(r.purchases, &stored)
	return nil
}

func (r *memPurchaseRepo) FindByID(_ context.Context, id string) (*model.Purchase, error) {
	for _, p := range r.purchases {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memPurchaseRepo) MarkVerified(_ context.Context, id string) (*model.Purchase, error) {
	for _, p := range r.purchases {
		if p.ID == id {
			p.Status = model.StatusVerified
			p.VerificationStatus = model.StatusVerified
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memPurchaseRepo) List(_ context.Context) ([]*model.Purchase, error) {
	return r.purchases, nil
}

func (r *memPurchaseRepo) ListByUsername(_ context.Context, username string) ([]*model.Purchase, error) {
	var out []*model.Purchase
	for _, p := range r.purchases {
		if p.Username == username {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPurchaseRepo) DeleteAll(_ context.Context) error { r.purchases = nil; return nil }

type noopDiscord struct{}

func (noopDiscord) NotifyPurchase(_ context.Context, _ *model.Purchase, _ bool) error { return nil }

type staticExchange struct{}

func (staticExchange) USDRate(_ context.Context) (float64, error) { return 135.0, nil }

func newTestServer(t *testing.T) (*Server, *memPurchaseRepo) {
	t.Helper()
	log, err := logger.New("dev")
	require.NoError(t, err)

	userRepo := &memUserRepo{}
	purchaseRepo := &memPurchaseRepo{}
	discounts := catalog.NewDiscountStore()

	userService := service.NewUserService(log, userRepo, "test_secret")
	shopService := service.NewShopService(log, discounts, staticExchange{})
	purchaseService := service.NewPurchaseService(log, purchaseRepo, noopDiscord{})
	adminService := service.NewAdminService(log, userRepo, purchaseRepo, discounts, "hunter2", "test_secret")

	return NewServer(userService, shopService, purchaseService, adminService), purchaseRepo
}

func doJSON(t *testing.T, s *Server, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func adminLogin(t *testing.T, s *Server) string {
	t.Helper()
	rec, body := doJSON(t, s, http.MethodPost, "/api/admin/login", `{"password":"hunter2"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAdminLoginEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doJSON(t, s, http.MethodPost, "/api/admin/login", `{"password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["ok"])

	adminLogin(t, s)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s, _ := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/admin/purchases"},
		{http.MethodPost, "/api/admin/verify-purchase"},
		{http.MethodPost, "/api/admin/clear-database"},
	} {
		rec, _ := doJSON(t, s, route.method, route.path, "{}", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

func TestProcessPayment_MissingFields(t *testing.T) {
	s, repo := newTestServer(t)

	rec, _ := doJSON(t, s, http.MethodPost, "/api/process-payment",
		`{"method":"esewa","username":"steve"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.purchases)
}

func TestCheckoutAndVerifyFlow(t *testing.T) {
	s, repo := newTestServer(t)

	payment := `{
		"method": "esewa",
		"transactionId": "TXN123",
		"username": "steve",
		"email": "steve@example.com",
		"amount": 240,
		"currency": "NPR",
		"items": [{"id": "vip", "name": "VIP Rank", "quantity": 3, "unit_price": 80}]
	}`
	rec, body := doJSON(t, s, http.MethodPost, "/api/process-payment", payment, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	require.Len(t, repo.purchases, 1)
	purchase := repo.purchases[0]
	assert.Equal(t, model.StatusUnverified, purchase.Status)
	assert.Equal(t, model.StatusUnverified, purchase.VerificationStatus)

	token := adminLogin(t, s)
	auth := map[string]string{"Authorization": "Bearer " + token}

	verifyBody := fmt.Sprintf(`{"purchaseId":%q}`, purchase.ID)
	rec, body = doJSON(t, s, http.MethodPost, "/api/admin/verify-purchase", verifyBody, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, model.StatusVerified, purchase.Status)
	assert.Equal(t, model.StatusVerified, purchase.VerificationStatus)

	// verifying again is still a success
	rec, body = doJSON(t, s, http.MethodPost, "/api/admin/verify-purchase", verifyBody, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])

	// unknown id is a failure, never ok:true
	rec, body = doJSON(t, s, http.MethodPost, "/api/admin/verify-purchase", `{"purchaseId":"nope"}`, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["ok"])
}

func TestPurchaseHistoryAuth(t *testing.T) {
	s, _ := newTestServer(t)

	rec, _ := doJSON(t, s, http.MethodGet, "/api/purchase-history", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// alternative-login headers are accepted as identity
	rec, body := doJSON(t, s, http.MethodGet, "/api/purchase-history", "", map[string]string{
		"x-username": "steve",
		"x-email":    "steve@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "purchases")
}

func TestProductSaleVisibleInListing(t *testing.T) {
	s, _ := newTestServer(t)
	token := adminLogin(t, s)
	auth := map[string]string{"Authorization": "Bearer " + token}

	rec, _ := doJSON(t, s, http.MethodPost, "/api/admin/apply-product-sale",
		`{"productId":"vip","percentage":20}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, s, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	products, ok := body["products"].([]interface{})
	require.True(t, ok)
	var found bool
	for _, raw := range products {
		p := raw.(map[string]interface{})
		if p["id"] == "vip" {
			found = true
			assert.Equal(t, float64(80), p["priceNPR"])
			assert.Equal(t, float64(100), p["originalPrice"])
			assert.Equal(t, float64(20), p["salePercentage"])
		}
	}
	assert.True(t, found)

	// out-of-range percentage is rejected, not clamped
	rec, _ = doJSON(t, s, http.MethodPost, "/api/admin/apply-product-sale",
		`{"productId":"vip","percentage":95}`, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartTotalReflectsSale(t *testing.T) {
	s, _ := newTestServer(t)

	cart := `{"items":[{"id":"vip","quantity":3}]}`
	rec, body := doJSON(t, s, http.MethodPost, "/api/cart-total", cart, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "300", body["total"])

	token := adminLogin(t, s)
	rec, _ = doJSON(t, s, http.MethodPost, "/api/admin/apply-product-sale",
		`{"productId":"vip","percentage":20}`, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, s, http.MethodPost, "/api/cart-total", cart, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "240", body["total"])

	rec, _ = doJSON(t, s, http.MethodPost, "/api/cart-total",
		`{"items":[{"id":"vip","quantity":0}]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doJSON(t, s, http.MethodPost, "/api/register",
		`{"username":"steve","email":"steve@example.com"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])

	rec, _ = doJSON(t, s, http.MethodPost, "/api/register",
		`{"username":"steve","email":"other@example.com"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
