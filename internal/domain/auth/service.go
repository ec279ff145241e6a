package auth

import (
	"context"
	"errors"
	"time"
)

const tokenTTL = 8 * time.Hour

type StoreAPI interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Insert(ctx context.Context, email, name, passwordHash, role string) (string, error)
}

type Service struct {
	Store  StoreAPI
	Secret string
}

func NewService(store StoreAPI, secret string) *Service {
	return &Service{Store: store, Secret: secret}
}

// Login verifies the credentials and issues a signed token. A missing user and
// a wrong password both come back as ErrInvalidCredentials so the response
// does not leak which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.Store.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{UserID: user.ID, Name: user.Name, Role: user.Role}, tokenTTL)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	return s.Store.FindByID(ctx, userID)
}
