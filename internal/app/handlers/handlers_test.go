package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/secondhand-shop/internal/app/handlers"
	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/security/jwtmiddleware"
	"github.com/linemk/secondhand-shop/internal/service"
	"github.com/linemk/secondhand-shop/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env), "Response decoding should succeed")
	assert.Equal(t, rr.Code, env.Code, "HTTP status mirrors the envelope code")
	return env
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// fakeAuthService — фиктивная реализация для тестирования.
type fakeAuthService struct {
	resp *models.LoginResponse
	err  error
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	return f.resp, f.err
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserInfo{ID: 1, Username: req.Username, Email: req.Email, Status: 1}, nil
}

type fakeOrderService struct {
	err     error
	lastUID int64
	order   *models.Order
}

func (f *fakeOrderService) Create(ctx context.Context, buyerID int64, req models.CreateOrderRequest) (*models.Order, error) {
	f.lastUID = buyerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: 1, BuyerID: buyerID, ProductID: req.ProductID, Quantity: req.Quantity,
		TotalAmount: req.TotalPrice, Status: models.StatusPending}, nil
}

func (f *fakeOrderService) Get(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) Pay(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	f.lastUID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: orderID, BuyerID: userID, Status: models.StatusPaid}, nil
}

func (f *fakeOrderService) Cancel(ctx context.Context, userID, orderID int64) error {
	return f.err
}

func (f *fakeOrderService) Ship(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) Finish(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) ListByBuyer(ctx context.Context, userID, buyerID int64) ([]models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Order{}, nil
}

func (f *fakeOrderService) ListBySeller(ctx context.Context, userID, sellerID int64) ([]models.Order, error) {
	return f.ListByBuyer(ctx, userID, sellerID)
}

type fakeCommentService struct {
	err error
}

func (f *fakeCommentService) Create(ctx context.Context, userID int64, req models.CreateCommentRequest) (*models.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Comment{ID: 1, ProductID: req.ProductID, UserID: userID, Content: req.Content, Rating: req.Rating}, nil
}

func (f *fakeCommentService) ListByProduct(ctx context.Context, productID int64) ([]models.Comment, error) {
	return []models.Comment{}, f.err
}

// serve прогоняет запрос через chi, чтобы работали параметры пути.
func serve(method, pattern, target, body string, userID int64, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req = req.WithContext(jwtmiddleware.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestLoginHandler_Success(t *testing.T) {
	fakeSvc := &fakeAuthService{resp: &models.LoginResponse{Token: "test-token", Username: "alice", UserID: 3}}
	rr := serve(http.MethodPost, "/api/auth/login", "/api/auth/login",
		`{"username":"alice","password":"secret1"}`, 0, handlers.LoginHandler(testLogger(), fakeSvc))

	assert.Equal(t, http.StatusOK, rr.Code, "Expected status 200 OK")
	env := decodeEnvelope(t, rr)

	var data models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "test-token", data.Token, "Returned token should match fake token")
	assert.Equal(t, int64(3), data.UserID)
}

func TestLoginHandler_InvalidJSON(t *testing.T) {
	rr := serve(http.MethodPost, "/api/auth/login", "/api/auth/login",
		`{"username": "alice", "password":`, 0, handlers.LoginHandler(testLogger(), &fakeAuthService{}))

	assert.Equal(t, http.StatusBadRequest, rr.Code, "Expected status 400 for invalid JSON")
	decodeEnvelope(t, rr)
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	fakeSvc := &fakeAuthService{err: fmt.Errorf("service.AuthService.Login: %w", service.ErrInvalidCredentials)}
	rr := serve(http.MethodPost, "/api/auth/login", "/api/auth/login",
		`{"username":"alice","password":"nope"}`, 0, handlers.LoginHandler(testLogger(), fakeSvc))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "用户名或密码错误", env.Message)
}

func TestRegisterHandler_Validation(t *testing.T) {
	h := handlers.RegisterHandler(testLogger(), &fakeAuthService{})

	rr := serve(http.MethodPost, "/api/auth/register", "/api/auth/register",
		`{"username":"al","email":"bad","password":"1"}`, 0, h)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(http.MethodPost, "/api/auth/register", "/api/auth/register",
		`{"username":"alice","email":"a@example.com","password":"secret1"}`, 0, h)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRegisterHandler_Taken(t *testing.T) {
	h := handlers.RegisterHandler(testLogger(), &fakeAuthService{err: fmt.Errorf("op: %w", storage.ErrUserExists)})
	rr := serve(http.MethodPost, "/api/auth/register", "/api/auth/register",
		`{"username":"alice","email":"a@example.com","password":"secret1"}`, 0, h)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, storage.ErrUserExists.Error(), env.Message, "op prefixes are not leaked")
}

func TestCreateOrderHandler_BuyerFromToken(t *testing.T) {
	fakeSvc := &fakeOrderService{}
	rr := serve(http.MethodPost, "/api/order", "/api/order",
		`{"userId":3,"productId":7,"quantity":1,"totalPrice":99.5,"shippingAddress":"默认地址","contactPhone":"13800138000"}`,
		3, handlers.CreateOrderHandler(testLogger(), fakeSvc))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(3), fakeSvc.lastUID)

	env := decodeEnvelope(t, rr)
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("99.5")))
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestCreateOrderHandler_Unauthorized(t *testing.T) {
	rr := serve(http.MethodPost, "/api/order", "/api/order", `{"productId":7}`, 0,
		handlers.CreateOrderHandler(testLogger(), &fakeOrderService{}))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPayOrderHandler_Conflict(t *testing.T) {
	fakeSvc := &fakeOrderService{err: fmt.Errorf("op: %w", &service.TransitionError{Action: "paid", From: models.StatusPaid})}
	rr := serve(http.MethodPut, "/api/order/{id}/pay", "/api/order/12/pay", "", 3,
		handlers.PayOrderHandler(testLogger(), fakeSvc))

	assert.Equal(t, http.StatusConflict, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, "Order cannot be paid", env.Message)
}

func TestPayOrderHandler_BadID(t *testing.T) {
	rr := serve(http.MethodPut, "/api/order/{id}/pay", "/api/order/abc/pay", "", 3,
		handlers.PayOrderHandler(testLogger(), &fakeOrderService{}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCancelOrderHandler(t *testing.T) {
	rr := serve(http.MethodDelete, "/api/order/{id}", "/api/order/12", "", 3,
		handlers.CancelOrderHandler(testLogger(), &fakeOrderService{}))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(http.MethodDelete, "/api/order/{id}", "/api/order/12", "", 3,
		handlers.CancelOrderHandler(testLogger(), &fakeOrderService{err: fmt.Errorf("op: %w", service.ErrForbidden)}))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = serve(http.MethodDelete, "/api/order/{id}", "/api/order/12", "", 3,
		handlers.CancelOrderHandler(testLogger(), &fakeOrderService{err: fmt.Errorf("op: %w", storage.ErrOrderNotFound)}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListBuyerOrdersHandler_EmptyIsArray(t *testing.T) {
	rr := serve(http.MethodGet, "/api/order/buyer/{id}", "/api/order/buyer/3", "", 3,
		handlers.ListBuyerOrdersHandler(testLogger(), &fakeOrderService{}))

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestCreateCommentHandler(t *testing.T) {
	h := handlers.CreateCommentHandler(testLogger(), &fakeCommentService{})

	rr := serve(http.MethodPost, "/api/comment", "/api/comment",
		`{"productId":7,"userId":3,"orderId":0,"content":"great","rating":6}`, 3, h)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "rating above 5 is rejected")

	rr = serve(http.MethodPost, "/api/comment", "/api/comment",
		`{"productId":7,"userId":3,"orderId":0,"content":"   ","rating":5}`, 3, h)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "blank content is rejected")

	rr = serve(http.MethodPost, "/api/comment", "/api/comment",
		`{"productId":7,"userId":3,"orderId":0,"content":"great","rating":5}`, 3, h)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateCommentHandler_NotEligible(t *testing.T) {
	h := handlers.CreateCommentHandler(testLogger(), &fakeCommentService{err: fmt.Errorf("op: %w", service.ErrNotEligible)})
	rr := serve(http.MethodPost, "/api/comment", "/api/comment",
		`{"productId":7,"userId":3,"orderId":0,"content":"great","rating":5}`, 3, h)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, service.ErrNotEligible.Error(), env.Message)
}

func TestHealth(t *testing.T) {
	rr := serve(http.MethodGet, "/healthz", "/healthz", "", 0, handlers.Health)
	assert.Equal(t, http.StatusOK, rr.Code)
}
