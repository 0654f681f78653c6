package viewmodel

import (
	"strings"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/shopspring/decimal"
)

type ProductCard struct {
	ID       int64
	Name     string
	Price    string
	Stock    int
	Category string
	InStock  bool
}

type CommentView struct {
	UserID    int64
	Content   string
	Rating    int
	Stars     string
	CreatedAt string
}

// ProductDetail — страница товара: отзывы новые сверху, форма отзыва только при CanComment.
type ProductDetail struct {
	ProductCard
	Description   string
	SellerID      int64
	Comments      []CommentView
	AverageRating string
	CanComment    bool
	CanBuy        bool
}

func Products(products []models.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, productCard(p))
	}
	return cards
}

// NewProductDetail; viewerID == 0 — гость, покупать нельзя. Свой товар тоже купить нельзя.
func NewProductDetail(p models.Product, comments []models.Comment, canComment bool, viewerID int64) ProductDetail {
	sorted := make([]models.Comment, len(comments))
	copy(sorted, comments)
	models.SortCommentsNewestFirst(sorted)

	views := make([]CommentView, 0, len(sorted))
	sum := 0
	for _, c := range sorted {
		sum += c.Rating
		views = append(views, CommentView{
			UserID:    c.UserID,
			Content:   c.Content,
			Rating:    c.Rating,
			Stars:     Stars(c.Rating),
			CreatedAt: formatTime(c.CreateTime),
		})
	}

	avg := ""
	if len(views) > 0 {
		avg = decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(len(views))), 1).StringFixed(1)
	}

	return ProductDetail{
		ProductCard:   productCard(p),
		Description:   p.Description,
		SellerID:      p.SellerID,
		Comments:      views,
		AverageRating: avg,
		CanComment:    canComment,
		CanBuy:        viewerID > 0 && viewerID != p.SellerID && p.Stock > 0,
	}
}

// Stars рисует оценку 1..5 звёздами; значения вне диапазона обрезаются.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func productCard(p models.Product) ProductCard {
	return ProductCard{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		Stock:    p.Stock,
		Category: p.Category,
		InStock:  p.Stock > 0,
	}
}
