package workflow_test

import (
	"context"
	"sync"
	"time"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/domain/models"
)

// fakeAPI — фиктивный сервер в памяти, соблюдающий переходы статусов заказа.
type fakeAPI struct {
	mu       sync.Mutex
	products map[int64]models.Product
	orders   map[int64]*models.Order
	comments []models.Comment
	users    map[int64]models.UserInfo
	nextID   int64

	calls      int
	listErr    error
	lastUpdate *models.UpdateUserRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		products: map[int64]models.Product{},
		orders:   map[int64]*models.Order{},
		users:    map[int64]models.UserInfo{},
	}
}

func (f *fakeAPI) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeAPI) CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p, ok := f.products[req.ProductID]
	if !ok {
		return nil, apperr.Protocol("fake.CreateOrder", 404, "product not found")
	}
	o := &models.Order{
		ID:              f.id(),
		OrderNo:         "ORD-TEST",
		BuyerID:         req.UserID,
		SellerID:        p.SellerID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TotalAmount:     req.TotalPrice,
		ShippingAddress: req.ShippingAddress,
		ContactPhone:    req.ContactPhone,
		Status:          models.StatusPending,
		CreateTime:      time.Now(),
	}
	f.orders[o.ID] = o
	cp := *o
	return &cp, nil
}

func (f *fakeAPI) PayOrder(ctx context.Context, token string, orderID int64) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	o, ok := f.orders[orderID]
	if !ok {
		return nil, apperr.Protocol("fake.PayOrder", 404, "order not found")
	}
	if !o.CanPay() {
		return nil, apperr.InvalidState("fake.PayOrder", 409, "Order cannot be paid")
	}
	o.Status = models.StatusPaid
	cp := *o
	return &cp, nil
}

func (f *fakeAPI) CancelOrder(ctx context.Context, token string, orderID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	o, ok := f.orders[orderID]
	if !ok {
		return apperr.Protocol("fake.CancelOrder", 404, "order not found")
	}
	if !o.CanCancel() {
		return apperr.InvalidState("fake.CancelOrder", 409, "Order cannot be cancelled")
	}
	o.Status = models.StatusCancelled
	return nil
}

func (f *fakeAPI) ListBuyerOrders(ctx context.Context, token string, buyerID int64) ([]models.Order, error) {
	return f.list(func(o *models.Order) bool { return o.BuyerID == buyerID })
}

func (f *fakeAPI) ListSellerOrders(ctx context.Context, token string, sellerID int64) ([]models.Order, error) {
	return f.list(func(o *models.Order) bool { return o.SellerID == sellerID })
}

func (f *fakeAPI) list(match func(*models.Order) bool) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Order
	for _, o := range f.orders {
		if match(o) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeAPI) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []models.Comment
	for _, c := range f.comments {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, token string, req models.CreateCommentRequest) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	c := models.Comment{
		ID:         f.id(),
		ProductID:  req.ProductID,
		UserID:     req.UserID,
		OrderID:    req.OrderID,
		Content:    req.Content,
		Rating:     req.Rating,
		CreateTime: time.Now().Add(time.Duration(f.nextID) * time.Second),
	}
	f.comments = append(f.comments, c)
	return &c, nil
}

func (f *fakeAPI) GetUser(ctx context.Context, token string, userID int64) (*models.UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[userID]
	if !ok {
		return nil, apperr.Protocol("fake.GetUser", 404, "user not found")
	}
	return &u, nil
}

func (f *fakeAPI) UpdateUser(ctx context.Context, token string, userID int64, req models.UpdateUserRequest) (*models.UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastUpdate = &req
	u := f.users[userID]
	u.ID = userID
	u.Username, u.Email = req.Username, req.Email
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	f.users[userID] = u
	return &u, nil
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p, ok := f.products[id]
	if !ok {
		return nil, apperr.Protocol("fake.GetProduct", 404, "product not found")
	}
	return &p, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p := models.Product{
		ID:          100 + f.id(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		SellerID:    req.SellerID,
		CreateTime:  time.Now(),
	}
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeAPI) ListSellerProducts(ctx context.Context, token string, sellerID int64) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []models.Product
	for _, p := range f.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeRegistrar struct {
	got   *models.RegisterRequest
	err   error
	calls int
}

func (f *fakeRegistrar) Register(ctx context.Context, req models.RegisterRequest) error {
	f.calls++
	f.got = &req
	return f.err
}
