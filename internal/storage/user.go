package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

type UserStorage interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserStorage {
	return &userRepository{db: db}
}

const userColumns = "id, username, email, pass_hash, phone, address, status, create_time"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PassHash,
		&user.Phone, &user.Address, &user.Status, &user.CreateTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return scanUser(row)
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

// CreateUser; занятые username или email дают ErrUserExists.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, pass_hash, phone, address, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, create_time`,
		user.Username, user.Email, user.PassHash, user.Phone, user.Address, user.Status,
	).Scan(&user.ID, &user.CreateTime)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = $1, email = $2, pass_hash = $3, phone = $4, address = $5 WHERE id = $6`,
		user.Username, user.Email, user.PassHash, user.Phone, user.Address, user.ID,
	)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return ErrUserExists
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
