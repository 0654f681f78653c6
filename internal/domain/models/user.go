package models

import "time"

// User — пользователь в хранилище эталонного API
type User struct {
	ID         int64
	Username   string
	Email      string
	PassHash   []byte
	Phone      string
	Address    string
	Status     int
	CreateTime time.Time
}

// UserInfo — публичное представление пользователя, GET /users/{id}.
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Status     int       `json:"status"`
	CreateTime time.Time `json:"createTime"`
}

// Info превращает пользователя в его публичное представление без хэша пароля.
func (u *User) Info() *UserInfo {
	return &UserInfo{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Phone:      u.Phone,
		Address:    u.Address,
		Status:     u.Status,
		CreateTime: u.CreateTime,
	}
}

// UpdateUserRequest — тело PUT /users/{id}. Пустой Password значит «пароль не менять».
type UpdateUserRequest struct {
	Username string  `json:"username" validate:"required,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password string  `json:"password"`
}

// RegisterRequest — тело POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest — тело POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse — данные ответа POST /auth/login.
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	UserID    int64  `json:"userId"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
}
