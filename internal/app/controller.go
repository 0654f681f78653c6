package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/lib/staleguard"
	"github.com/linemk/secondhand-shop/internal/session"
	"github.com/linemk/secondhand-shop/internal/viewmodel"
	"github.com/linemk/secondhand-shop/internal/workflow"
	"github.com/shopspring/decimal"
)

// API — всё, что контроллеру нужно от сервера (apiclient.Client).
type API interface {
	session.Authenticator
	workflow.Registrar
	workflow.OrderAPI
	workflow.CommentAPI
	workflow.UserAPI
	workflow.ProductAPI
}

// Представления для staleguard.
const (
	viewProducts = "products"
	viewProduct  = "product"
	viewOrders   = "orders"
	viewSales    = "sales"
	viewProfile  = "profile"
	viewMine     = "my-products"
)

var ErrCommentNotAllowed = errors.New("only buyers who paid for the product can comment")

// RefreshError — изменение заказа прошло, но список после него перечитать не удалось.
type RefreshError struct {
	Done string
	Err  error
}

func (e *RefreshError) Error() string {
	return "order " + e.Done + ", but the order list could not be refreshed: " + apperr.UserMessage(e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

// Controller — корень клиента. Владеет сессией (создаётся при входе, сбрасывается при
// выходе или истечении токена) и передаёт её в сценарии через контекст.
type Controller struct {
	log      *slog.Logger
	locale   string
	api      API
	sessions *session.Manager
	orders   workflow.OrderManager
	elig     *workflow.Eligibility
	comments workflow.CommentService
	profile  workflow.ProfileService
	products workflow.ProductService
	guard    *staleguard.Guard

	// изменяющие вызовы идут строго по одному
	mu sync.Mutex

	infoMu sync.RWMutex
	info   *models.UserInfo
}

func NewController(log *slog.Logger, locale string, api API, store session.Store, defaults workflow.OrderDefaults) *Controller {
	return &Controller{
		log:      log,
		locale:   locale,
		api:      api,
		sessions: session.NewManager(log, api, store),
		orders:   workflow.NewOrderManager(log, api, defaults),
		elig:     workflow.NewEligibility(log, api),
		comments: workflow.NewCommentService(log, api),
		profile:  workflow.NewProfileService(log, api, api, api),
		products: workflow.NewProductService(log, api),
		guard:    staleguard.New(),
	}
}

func (c *Controller) Login(ctx context.Context, username, password string) (models.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetState()
	return c.sessions.Login(ctx, username, password)
}

func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetState()
	return c.sessions.Logout(ctx)
}

// Restore поднимает сохранённую сессию; ok=false — пользователь не вошёл.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	_, ok, err := c.sessions.Restore(ctx)
	return ok, err
}

func (c *Controller) Current() (models.Session, bool) {
	return c.sessions.Current()
}

func (c *Controller) Register(ctx context.Context, username, email, password string) error {
	return workflow.Register(ctx, c.log, c.api, username, email, password)
}

func (c *Controller) Products(ctx context.Context) ([]viewmodel.ProductCard, error) {
	gen := c.guard.Begin(viewProducts)

	products, err := c.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.guard.Check(viewProducts, gen); err != nil {
		return nil, err
	}
	return viewmodel.Products(products), nil
}

// ProductDetail — товар, отзывы и право оставить отзыв. Для гостя CanComment всегда false.
func (c *Controller) ProductDetail(ctx context.Context, productID int64) (viewmodel.ProductDetail, error) {
	gen := c.guard.Begin(viewProduct)
	ctx, sess, _ := c.withSession(ctx)

	product, err := c.products.GetProduct(ctx, productID)
	if err != nil {
		return viewmodel.ProductDetail{}, c.handle(ctx, err)
	}
	comments, err := c.comments.ListComments(ctx, productID)
	if err != nil {
		return viewmodel.ProductDetail{}, c.handle(ctx, err)
	}
	canComment := c.elig.CanComment(ctx, sess.UserID, productID)

	if err := c.guard.Check(viewProduct, gen); err != nil {
		return viewmodel.ProductDetail{}, err
	}
	return viewmodel.NewProductDetail(*product, comments, canComment, sess.UserID), nil
}

// Buy заново читает товар и создаёт заказ по текущей цене.
func (c *Controller) Buy(ctx context.Context, productID int64) (*models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, _, err := c.requireSession(ctx, "app.Controller.Buy")
	if err != nil {
		return nil, err
	}
	product, err := c.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, c.handle(ctx, err)
	}
	order, err := c.orders.CreateOrder(ctx, product.ID, product.Price)
	if err != nil {
		return nil, c.handle(ctx, err)
	}
	return order, nil
}

// Orders — заказы текущего пользователя как покупателя.
func (c *Controller) Orders(ctx context.Context) ([]viewmodel.OrderCard, error) {
	return c.listOrders(ctx, viewOrders, true)
}

// Sales — заказы на товары текущего пользователя.
func (c *Controller) Sales(ctx context.Context) ([]viewmodel.OrderCard, error) {
	return c.listOrders(ctx, viewSales, false)
}

func (c *Controller) listOrders(ctx context.Context, view string, buyer bool) ([]viewmodel.OrderCard, error) {
	gen := c.guard.Begin(view)
	ctx, sess, err := c.requireSession(ctx, "app.Controller."+view)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if buyer {
		orders, err = c.orders.ListOrdersForBuyer(ctx, sess.UserID)
	} else {
		orders, err = c.orders.ListOrdersForSeller(ctx, sess.UserID)
	}
	if err != nil {
		return nil, c.handle(ctx, err)
	}
	if err := c.guard.Check(view, gen); err != nil {
		return nil, err
	}
	return viewmodel.Orders(orders, c.locale, buyer)
}

// PayOrder оплачивает заказ и только после ответа перечитывает список.
func (c *Controller) PayOrder(ctx context.Context, orderID int64) ([]viewmodel.OrderCard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, _, err := c.requireSession(ctx, "app.Controller.PayOrder")
	if err != nil {
		return nil, err
	}
	if _, err := c.orders.PayOrder(ctx, orderID); err != nil {
		return nil, c.handle(ctx, err)
	}
	return c.refreshOrders(ctx, "paid")
}

func (c *Controller) CancelOrder(ctx context.Context, orderID int64) ([]viewmodel.OrderCard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, _, err := c.requireSession(ctx, "app.Controller.CancelOrder")
	if err != nil {
		return nil, err
	}
	if err := c.orders.CancelOrder(ctx, orderID); err != nil {
		return nil, c.handle(ctx, err)
	}
	return c.refreshOrders(ctx, "cancelled")
}

func (c *Controller) refreshOrders(ctx context.Context, done string) ([]viewmodel.OrderCard, error) {
	cards, err := c.Orders(ctx)
	if err != nil {
		return nil, &RefreshError{Done: done, Err: err}
	}
	return cards, nil
}

// SubmitComment отправляет отзыв и возвращает перечитанную страницу товара.
func (c *Controller) SubmitComment(ctx context.Context, productID int64, content string, rating int) (viewmodel.ProductDetail, error) {
	const op = "app.Controller.SubmitComment"

	c.mu.Lock()
	ctx, sess, err := c.requireSession(ctx, op)
	if err != nil {
		c.mu.Unlock()
		return viewmodel.ProductDetail{}, err
	}
	if err := workflow.ValidateComment(productID, sess.UserID, content, rating); err != nil {
		c.mu.Unlock()
		return viewmodel.ProductDetail{}, err
	}
	eligible, err := c.elig.Check(ctx, sess.UserID, productID)
	if err != nil {
		c.mu.Unlock()
		return viewmodel.ProductDetail{}, c.handle(ctx, err)
	}
	if !eligible {
		c.mu.Unlock()
		return viewmodel.ProductDetail{}, &apperr.Error{Kind: apperr.ErrValidation, Op: op, Message: ErrCommentNotAllowed.Error(), Err: ErrCommentNotAllowed}
	}
	_, err = c.comments.SubmitComment(ctx, productID, sess.UserID, content, rating)
	c.mu.Unlock()
	if err != nil {
		return viewmodel.ProductDetail{}, c.handle(ctx, err)
	}
	return c.ProductDetail(ctx, productID)
}

// Profile загружает профиль и счётчики; профиль кэшируется для UpdateProfile.
func (c *Controller) Profile(ctx context.Context) (viewmodel.Profile, error) {
	gen := c.guard.Begin(viewProfile)
	ctx, _, err := c.requireSession(ctx, "app.Controller.Profile")
	if err != nil {
		return viewmodel.Profile{}, err
	}

	info, err := c.profile.LoadProfile(ctx)
	if err != nil {
		return viewmodel.Profile{}, c.handle(ctx, err)
	}
	stats := c.profile.Stats(ctx)
	if err := c.guard.Check(viewProfile, gen); err != nil {
		return viewmodel.Profile{}, err
	}

	c.setInfo(info)
	return viewmodel.NewProfile(*info, stats.Bought, stats.Sold, stats.Listed, c.locale), nil
}

// UpdateProfile меняет телефон и/или адрес и заменяет кэшированный профиль ответом сервера.
func (c *Controller) UpdateProfile(ctx context.Context, upd workflow.ProfileUpdate) (*models.UserInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, _, err := c.requireSession(ctx, "app.Controller.UpdateProfile")
	if err != nil {
		return nil, err
	}

	current, ok := c.cachedInfo()
	if !ok {
		info, err := c.profile.LoadProfile(ctx)
		if err != nil {
			return nil, c.handle(ctx, err)
		}
		current = *info
	}

	updated, err := c.profile.UpdateProfile(ctx, current, upd)
	if err != nil {
		return nil, c.handle(ctx, err)
	}
	c.setInfo(updated)
	return updated, nil
}

func (c *Controller) Publish(ctx context.Context, draft workflow.ProductDraft) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, _, err := c.requireSession(ctx, "app.Controller.Publish")
	if err != nil {
		return nil, err
	}
	p, err := c.products.PublishProduct(ctx, draft)
	if err != nil {
		return nil, c.handle(ctx, err)
	}
	return p, nil
}

func (c *Controller) MyProducts(ctx context.Context) ([]viewmodel.ProductCard, error) {
	gen := c.guard.Begin(viewMine)
	ctx, _, err := c.requireSession(ctx, "app.Controller.MyProducts")
	if err != nil {
		return nil, err
	}
	products, err := c.products.ListMyProducts(ctx)
	if err != nil {
		return nil, c.handle(ctx, err)
	}
	if err := c.guard.Check(viewMine, gen); err != nil {
		return nil, err
	}
	return viewmodel.Products(products), nil
}

// withSession кладёт текущую сессию в контекст, если она есть.
func (c *Controller) withSession(ctx context.Context) (context.Context, models.Session, bool) {
	sess, ok := c.sessions.Current()
	if !ok {
		return ctx, models.Session{}, false
	}
	return session.NewContext(ctx, sess), sess, true
}

func (c *Controller) requireSession(ctx context.Context, op string) (context.Context, models.Session, error) {
	ctx, sess, ok := c.withSession(ctx)
	if !ok {
		return ctx, models.Session{}, apperr.Validation(op, "please log in first")
	}
	return ctx, sess, nil
}

// handle: ErrAuth на авторизованном вызове значит, что токен истёк, — выходим.
func (c *Controller) handle(ctx context.Context, err error) error {
	if !errors.Is(err, apperr.ErrAuth) {
		return err
	}
	if _, ok := session.FromContext(ctx); !ok {
		return err
	}
	c.log.Warn("credential rejected, logging out", slog.Any("error", err))
	c.resetState()
	if lerr := c.sessions.Logout(context.WithoutCancel(ctx)); lerr != nil {
		c.log.Error("failed to clear session", slog.Any("error", lerr))
	}
	return err
}

// resetState сбрасывает кэш профиля и отбрасывает ответы запросов, начатых до смены пользователя.
func (c *Controller) resetState() {
	c.guard.Invalidate()
	c.setInfo(nil)
}

func (c *Controller) cachedInfo() (models.UserInfo, bool) {
	c.infoMu.RLock()
	defer c.infoMu.RUnlock()
	if c.info == nil {
		return models.UserInfo{}, false
	}
	return *c.info, true
}

func (c *Controller) setInfo(info *models.UserInfo) {
	c.infoMu.Lock()
	defer c.infoMu.Unlock()
	c.info = info
}

// Price — текущая цена товара для подтверждения покупки.
func (c *Controller) Price(ctx context.Context, productID int64) (decimal.Decimal, string, error) {
	p, err := c.products.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, "", err
	}
	return p.Price, p.Name, nil
}
