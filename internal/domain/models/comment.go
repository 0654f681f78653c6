package models

import (
	"sort"
	"time"
)

// Comment — отзыв о товаре, после создания не меняется.
type Comment struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"productId"`
	UserID     int64     `json:"userId"`
	OrderID    int64     `json:"orderId"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	CreateTime time.Time `json:"createTime"`
}

// CreateCommentRequest — тело POST /comment.
// OrderID клиент отправляет как 0: привязки отзыва к заказу нет.
type CreateCommentRequest struct {
	ProductID int64  `json:"productId" validate:"gt=0"`
	UserID    int64  `json:"userId" validate:"gt=0"`
	OrderID   int64  `json:"orderId" validate:"gte=0"`
	Content   string `json:"content" validate:"required,max=2000"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
}

// SortCommentsNewestFirst сортирует по времени создания по убыванию, при равенстве — по id.
func SortCommentsNewestFirst(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreateTime.Equal(comments[j].CreateTime) {
			return comments[i].CreateTime.After(comments[j].CreateTime)
		}
		return comments[i].ID > comments[j].ID
	})
}
