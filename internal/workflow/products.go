package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ProductDraft — данные нового объявления; продавец берётся из сессии.
type ProductDraft struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
}

var productMessages = map[string]string{
	"Name":  "product name is required",
	"Stock": "stock must not be negative",
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	PublishProduct(ctx context.Context, draft ProductDraft) (*models.Product, error)
	ListMyProducts(ctx context.Context) ([]models.Product, error)
}

type productService struct {
	log *slog.Logger
	api ProductAPI
}

func NewProductService(log *slog.Logger, api ProductAPI) ProductService {
	return &productService{log: log, api: api}
}

func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.api.ListProducts(ctx)
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.api.GetProduct(ctx, id)
}

func (s *productService) PublishProduct(ctx context.Context, draft ProductDraft) (*models.Product, error) {
	const op = "workflow.ProductService.PublishProduct"
	logger := s.log.With(slog.String("op", op))

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}

	req := models.CreateProductRequest{
		Name:        strings.TrimSpace(draft.Name),
		Description: strings.TrimSpace(draft.Description),
		Price:       draft.Price,
		Stock:       draft.Stock,
		Category:    strings.TrimSpace(draft.Category),
		SellerID:    sess.UserID,
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationError(op, err, productMessages)
	}
	if req.Price.IsNegative() {
		return nil, validationError(op, errNegativeAmount, nil)
	}

	product, err := s.api.CreateProduct(ctx, sess.Token, req)
	if err != nil {
		logger.Info("publish product failed", slog.Any("error", err))
		return nil, err
	}
	logger.Info("product published", slog.Int64("product_id", product.ID))
	return product, nil
}

func (s *productService) ListMyProducts(ctx context.Context) ([]models.Product, error) {
	const op = "workflow.ProductService.ListMyProducts"

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}
	return s.api.ListSellerProducts(ctx, sess.Token, sess.UserID)
}
