package service_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/linemk/secondhand-shop/internal/broker"
	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/storage"
)

type fakeUserRepo struct {
	users map[int64]*models.User
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, storage.ErrUserExists
		}
	}
	user.ID = int64(len(f.users) + 1)
	user.CreateTime = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakeProductRepo struct {
	products map[int64]*models.Product
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[int64]*models.Product)}
	for i := range products {
		p := products[i]
		f.products[p.ID] = &p
	}
	return f
}

func (f *fakeProductRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) ListBySeller(ctx context.Context, sellerID int64) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range f.products {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.ID = int64(len(f.products) + 100)
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) LockProductTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	return f.GetProduct(ctx, id)
}

func (f *fakeProductRepo) UpdateStockTx(ctx context.Context, tx *sql.Tx, id int64, stock int) error {
	p, ok := f.products[id]
	if !ok {
		return storage.ErrProductNotFound
	}
	p.Stock = stock
	return nil
}

type fakeOrderRepo struct {
	orders map[int64]*models.Order
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*models.Order)}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	o.ID = int64(len(f.orders) + 1)
	o.CreateTime = time.Now()
	cp := *o
	f.orders[o.ID] = &cp
	return o, nil
}

func (f *fakeOrderRepo) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) LockOrderTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Order, error) {
	return f.GetOrder(ctx, id)
}

func (f *fakeOrderRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int64, status models.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return storage.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) ListByBuyer(ctx context.Context, buyerID int64) ([]models.Order, error) {
	out := make([]models.Order, 0)
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListBySeller(ctx context.Context, sellerID int64) ([]models.Order, error) {
	out := make([]models.Order, 0)
	for _, o := range f.orders {
		if o.SellerID == sellerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) HasPaidOrder(ctx context.Context, buyerID, productID int64) (bool, error) {
	for _, o := range f.orders {
		if o.BuyerID == buyerID && o.ProductID == productID && o.Status.HasPaid() {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	comments []models.Comment
}

var _ storage.CommentStorage = (*fakeCommentRepo)(nil)

func (f *fakeCommentRepo) CreateComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	c.ID = int64(len(f.comments) + 1)
	c.CreateTime = time.Now()
	f.comments = append(f.comments, *c)
	return c, nil
}

func (f *fakeCommentRepo) ListByProduct(ctx context.Context, productID int64) ([]models.Comment, error) {
	out := make([]models.Comment, 0)
	for _, c := range f.comments {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []broker.OrderCreated
	fail   bool
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, event broker.OrderCreated) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }
