package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (User, error) {
	var out User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, password_hash, role, created_at
    FROM users
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Email, &out.Name, &out.PasswordHash, &out.Role, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (User, error) {
	var out User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, password_hash, role, created_at
    FROM users
    WHERE id = $1
  `, id).Scan(&out.ID, &out.Email, &out.Name, &out.PasswordHash, &out.Role, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, email, name, passwordHash, role string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, name, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, email, name, passwordHash, role).Scan(&id)
	return id, err
}
