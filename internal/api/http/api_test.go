package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/gift-registry/internal/api/http"
	"github.com/spec-kit/gift-registry/internal/api/http/handlers"
	"github.com/spec-kit/gift-registry/internal/auth"
	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/cache"
	"github.com/spec-kit/gift-registry/internal/config"
	"github.com/spec-kit/gift-registry/internal/domain"
	"github.com/spec-kit/gift-registry/internal/events"
	"github.com/spec-kit/gift-registry/internal/observability"
	"github.com/spec-kit/gift-registry/internal/repository"
	"github.com/spec-kit/gift-registry/internal/service"
)

type apiFixture struct {
	app   *fiber.App
	store blob.Store
	users repository.UserRepository
	index repository.PhoneIndex
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := blob.NewMemoryStore()

	index := repository.NewPhoneIndex(store)
	users := repository.NewUserRepository(store, index)
	gifts := repository.NewGiftRepository(store)
	carts := repository.NewCartRepository(store)

	dispatcher := events.NewInMemoryDispatcher()
	usersCache := cache.NewUsers(0, nil)

	giftService := service.NewGiftService(gifts, users, usersCache, dispatcher)
	accountService := service.NewAccountService(users, index, dispatcher, 4)
	cartService := service.NewCartService(carts, gifts, users, logger)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	apihttp.RegisterMiddlewares(app, logger, metrics, 0, config.CORSConfig{})
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health: handlers.NewHealthHandler("gift-registry", "test", nil),
		Gifts:  handlers.NewGiftsHandler(giftService),
		Users:  handlers.NewUsersHandler(accountService),
		Cart:   handlers.NewCartHandler(cartService),
	})

	return &apiFixture{app: app, store: store, users: users, index: index}
}

func (f *apiFixture) seedAdmin(t *testing.T) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword("admin123", 4)
	require.NoError(t, err)
	admin := &domain.User{
		FirstName:    "Admin",
		LastName:     "Sistema",
		PhoneNumber:  "11999999999",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, f.users.Create(context.Background(), admin))
	_, err = f.index.Claim(context.Background(), admin.PhoneNumber, admin.ID)
	require.NoError(t, err)
	return admin
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := f.doRaw(t, method, path, body)
	if len(raw) == 0 {
		return status, nil
	}
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return status, decoded
}

func (f *apiFixture) doRaw(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.do(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "gift-registry", body["service"])

	status, _ = f.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRegisterEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.do(t, http.MethodPost, "/users/register", map[string]any{
		"firstName":       "Alice",
		"lastName":        "Silva",
		"phoneNumber":     "11911111111",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Alice Silva", body["fullName"])
	assert.Equal(t, float64(0), body["role"])
	assert.Equal(t, false, body["isAdmin"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")

	// same phone again
	status, body = f.do(t, http.MethodPost, "/users/register", map[string]any{
		"firstName":       "Bob",
		"lastName":        "Costa",
		"phoneNumber":     "11911111111",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "a user with this phone number already exists", body["error"])
}

func TestRegisterValidation(t *testing.T) {
	f := newAPIFixture(t)

	cases := []struct {
		payload map[string]any
		message string
	}{
		{map[string]any{"lastName": "Silva", "phoneNumber": "1", "password": "secret123", "confirmPassword": "secret123"}, "first name is required"},
		{map[string]any{"firstName": "Alice", "phoneNumber": "1", "password": "secret123", "confirmPassword": "secret123"}, "last name is required"},
		{map[string]any{"firstName": "Alice", "lastName": "Silva", "password": "secret123", "confirmPassword": "secret123"}, "phone number is required"},
		{map[string]any{"firstName": "Alice", "lastName": "Silva", "phoneNumber": "1", "password": "short", "confirmPassword": "short"}, "password must be at least 6 characters long"},
		{map[string]any{"firstName": "Alice", "lastName": "Silva", "phoneNumber": "1", "password": "secret123", "confirmPassword": "other1"}, "password and confirm password do not match"},
	}
	for _, tc := range cases {
		status, body := f.do(t, http.MethodPost, "/users/register", tc.payload)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, tc.message, body["error"])
	}
}

func TestLoginEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.seedAdmin(t)

	status, body := f.do(t, http.MethodPost, "/users/login", map[string]any{
		"phoneNumber": "11999999999",
		"password":    "admin123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["isAdmin"])

	status, body = f.do(t, http.MethodPost, "/users/login", map[string]any{
		"phoneNumber": "11999999999",
		"password":    "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid phone number or password", body["error"])
	assert.Len(t, body, 1)
}

func TestGiftCatalogEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.seedAdmin(t)

	status, body := f.do(t, http.MethodPost, "/users/register", map[string]any{
		"firstName": "Alice", "lastName": "Silva", "phoneNumber": "11911111111",
		"password": "secret123", "confirmPassword": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)
	shopperID := int(body["id"].(float64))

	// non-admin cannot create
	status, body = f.do(t, http.MethodPost, "/gifts/?userId=2", map[string]any{
		"name": "Toaster", "imageUrl": "http://x/t.png",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "only admins can create gifts", body["error"])

	// missing fields
	status, body = f.do(t, http.MethodPost, "/gifts/?userId=1", map[string]any{"name": "Toaster"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name and imageUrl are required", body["error"])

	status, body = f.do(t, http.MethodPost, "/gifts/?userId=1", map[string]any{
		"name": "Toaster", "imageUrl": "http://x/t.png", "averagePrice": 4999,
	})
	require.Equal(t, http.StatusCreated, status)
	giftID := int(body["id"].(float64))
	assert.Equal(t, false, body["isPurchased"])
	assert.Nil(t, body["purchasedByUserId"])
	assert.Nil(t, body["purchasedBy"])
	assert.Equal(t, float64(4999), body["averagePrice"])

	// purchase as shopper
	status, body = f.do(t, http.MethodPost, "/gifts/1/purchase", map[string]any{
		"userId": shopperID, "paymentMethod": "pix",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	// double purchase is rejected
	status, body = f.do(t, http.MethodPost, "/gifts/1/purchase", map[string]any{"userId": shopperID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "gift is already purchased", body["error"])

	// admins cannot purchase
	status, body = f.do(t, http.MethodPost, "/gifts/1/unpurchase?userId="+itoa(shopperID), nil)
	require.Equal(t, http.StatusOK, status)
	status, body = f.do(t, http.MethodPost, "/gifts/1/purchase", map[string]any{"userId": admin.ID})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "admins cannot purchase gifts", body["error"])

	// repurchase and list with purchaser name joined
	status, _ = f.do(t, http.MethodPost, "/gifts/1/purchase", map[string]any{"userId": shopperID})
	require.Equal(t, http.StatusOK, status)

	status, raw := f.doRaw(t, http.MethodGet, "/gifts/", nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0]["isPurchased"])
	assert.Equal(t, float64(shopperID), list[0]["purchasedByUserId"])
	assert.Equal(t, "Alice Silva", list[0]["purchasedBy"])

	// delete requires the actor id
	status, body = f.do(t, http.MethodDelete, "/gifts/"+itoa(giftID), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "userId is required", body["error"])

	status, body = f.do(t, http.MethodDelete, "/gifts/"+itoa(giftID)+"?userId=1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = f.do(t, http.MethodGet, "/gifts/"+itoa(giftID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "gift not found", body["error"])
}

func TestCartEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.seedAdmin(t)

	for _, phone := range []string{"11911111111", "11922222222"} {
		status, _ := f.do(t, http.MethodPost, "/users/register", map[string]any{
			"firstName": "User", "lastName": phone, "phoneNumber": phone,
			"password": "secret123", "confirmPassword": "secret123",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := f.do(t, http.MethodPost, "/gifts/?userId="+itoa(admin.ID), map[string]any{
		"name": "Toaster", "imageUrl": "http://x/t.png",
	})
	require.Equal(t, http.StatusCreated, status)
	giftID := int(body["id"].(float64))

	status, body = f.do(t, http.MethodPost, "/cart/", map[string]any{"userId": 2, "giftId": giftID})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["otherUsersCount"])

	status, body = f.do(t, http.MethodPost, "/cart/", map[string]any{"userId": 3, "giftId": giftID})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["otherUsersCount"])

	status, raw := f.doRaw(t, http.MethodGet, "/cart/?userId=2", nil)
	require.Equal(t, http.StatusOK, status)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, float64(giftID), entries[0]["giftId"])

	// contention counts for the cart page
	status, body = f.do(t, http.MethodPost, "/cart/others", map[string]any{
		"userId": 2, "giftIds": []int{giftID, 99},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body[itoa(giftID)])
	assert.Equal(t, float64(0), body["99"])

	// purchased-by-someone-else check
	status, _ = f.do(t, http.MethodPost, "/gifts/"+itoa(giftID)+"/purchase", map[string]any{"userId": 3})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, http.MethodPost, "/cart/check", map[string]any{
		"userId": 2, "giftIds": []int{giftID},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["hasUnavailableItems"])
	assert.Equal(t, []any{float64(giftID)}, body["purchasedItems"])

	// the buyer's own reservation is not flagged
	status, body = f.do(t, http.MethodPost, "/cart/check", map[string]any{
		"userId": 3, "giftIds": []int{giftID},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["hasUnavailableItems"])

	status, body = f.do(t, http.MethodDelete, "/cart/?userId=2&giftId="+itoa(giftID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = f.do(t, http.MethodPost, "/cart/check", map[string]any{"userId": 2})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "userId and giftIds array are required", body["error"])

	status, body = f.do(t, http.MethodPost, "/cart/", map[string]any{"userId": 99, "giftId": giftID})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "user not found", body["error"])
}

func TestUsersListRequiresAdmin(t *testing.T) {
	f := newAPIFixture(t)
	f.seedAdmin(t)

	status, _ := f.do(t, http.MethodPost, "/users/register", map[string]any{
		"firstName": "Alice", "lastName": "Silva", "phoneNumber": "11911111111",
		"password": "secret123", "confirmPassword": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := f.do(t, http.MethodGet, "/users/?userId=2", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "only admins can list users", body["error"])

	status, raw := f.doRaw(t, http.MethodGet, "/users/?userId=1", nil)
	require.Equal(t, http.StatusOK, status)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Len(t, users, 2)
}

func TestPasswordRecoveryEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	status, _ := f.do(t, http.MethodPost, "/users/register", map[string]any{
		"firstName": "Alice", "lastName": "Silva", "phoneNumber": "11911111111",
		"password": "secret123", "confirmPassword": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	// forgot-password never reveals whether the phone is registered
	for _, phone := range []string{"11911111111", "11900000000"} {
		status, body := f.do(t, http.MethodPost, "/users/forgot-password", map[string]any{"phoneNumber": phone})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])
	}

	status, body := f.do(t, http.MethodPost, "/users/reset-password", map[string]any{
		"phoneNumber": "11911111111", "newPassword": "changed1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _ = f.do(t, http.MethodPost, "/users/login", map[string]any{
		"phoneNumber": "11911111111", "password": "changed1",
	})
	assert.Equal(t, http.StatusOK, status)

	status, body = f.do(t, http.MethodPost, "/users/reset-password", map[string]any{
		"phoneNumber": "11900000000", "newPassword": "changed1",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "user not found", body["error"])
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
