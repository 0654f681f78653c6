package viewmodel

import (
	"github.com/linemk/secondhand-shop/internal/domain/models"
)

type Profile struct {
	ID         int64
	Username   string
	Email      string
	Phone      string
	Address    string
	StatusText string
	Active     bool
	Since      string
	Bought     int
	Sold       int
	Listed     int
}

// NewProfile собирает профиль и счётчики; пустые телефон и адрес показываются как "-".
func NewProfile(u models.UserInfo, bought, sold, listed int, locale string) Profile {
	labels, ok := userStatusLabels[locale]
	if !ok {
		labels = userStatusLabels[LocaleEN]
	}
	active := u.Status == 1
	text := labels[0]
	if active {
		text = labels[1]
	}
	return Profile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Phone:      orDash(u.Phone),
		Address:    orDash(u.Address),
		StatusText: text,
		Active:     active,
		Since:      formatTime(u.CreateTime),
		Bought:     bought,
		Sold:       sold,
		Listed:     listed,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
