package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

// ProfileUpdate — изменяемые поля профиля; nil — поле не трогаем.
type ProfileUpdate struct {
	Phone   *string
	Address *string
}

type profileForm struct {
	Phone   string `validate:"omitempty,mobile"`
	Address string `validate:"max=200"`
}

var profileMessages = map[string]string{
	"Phone":   "invalid phone number format",
	"Address": "address is too long",
}

// ProfileStats — счётчики страницы профиля.
type ProfileStats struct {
	Bought int
	Sold   int
	Listed int
}

type ProfileService interface {
	LoadProfile(ctx context.Context) (*models.UserInfo, error)
	UpdateProfile(ctx context.Context, current models.UserInfo, upd ProfileUpdate) (*models.UserInfo, error)
	Stats(ctx context.Context) ProfileStats
}

type profileService struct {
	log      *slog.Logger
	users    UserAPI
	orders   OrderAPI
	products ProductAPI
}

func NewProfileService(log *slog.Logger, users UserAPI, orders OrderAPI, products ProductAPI) ProfileService {
	return &profileService{log: log, users: users, orders: orders, products: products}
}

func (s *profileService) LoadProfile(ctx context.Context) (*models.UserInfo, error) {
	const op = "workflow.ProfileService.LoadProfile"

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, sess.Token, sess.UserID)
}

// UpdateProfile меняет телефон и адрес. Имя и email уходят без изменений,
// пароль — пустой строкой, что для сервера значит «не менять».
func (s *profileService) UpdateProfile(ctx context.Context, current models.UserInfo, upd ProfileUpdate) (*models.UserInfo, error) {
	const op = "workflow.ProfileService.UpdateProfile"
	logger := s.log.With(slog.String("op", op), slog.Int64("user_id", current.ID))

	phone, address := current.Phone, current.Address
	if upd.Phone != nil {
		phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Address != nil {
		address = strings.TrimSpace(*upd.Address)
	}
	if err := validate.Struct(profileForm{Phone: phone, Address: address}); err != nil {
		return nil, validationError(op, err, profileMessages)
	}

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}

	req := models.UpdateUserRequest{
		Username: current.Username,
		Email:    current.Email,
		Phone:    &phone,
		Address:  &address,
		Password: "",
	}
	info, err := s.users.UpdateUser(ctx, sess.Token, current.ID, req)
	if err != nil {
		logger.Info("update profile failed", slog.Any("error", err))
		return nil, err
	}
	logger.Info("profile updated")
	return info, nil
}

// Stats считает покупки, продажи и товары. Неудачный запрос даёт 0 в своём счётчике.
func (s *profileService) Stats(ctx context.Context) ProfileStats {
	const op = "workflow.ProfileService.Stats"
	logger := s.log.With(slog.String("op", op))

	var stats ProfileStats
	sess, err := requireSession(ctx, op)
	if err != nil {
		return stats
	}

	if bought, err := s.orders.ListBuyerOrders(ctx, sess.Token, sess.UserID); err == nil {
		stats.Bought = len(bought)
	} else {
		logger.Debug("buyer orders unavailable", slog.Any("error", err))
	}
	if sold, err := s.orders.ListSellerOrders(ctx, sess.Token, sess.UserID); err == nil {
		stats.Sold = len(sold)
	} else {
		logger.Debug("seller orders unavailable", slog.Any("error", err))
	}
	if listed, err := s.products.ListSellerProducts(ctx, sess.Token, sess.UserID); err == nil {
		stats.Listed = len(listed)
	} else {
		logger.Debug("seller products unavailable", slog.Any("error", err))
	}
	return stats
}
