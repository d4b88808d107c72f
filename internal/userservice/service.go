// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/splitpot/splitpot/internal/domain"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.User) (domain.User, error)
	Get(ctx context.Context, email string) (domain.User, error)
	GetByName(ctx context.Context, name string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Register creates and returns the user.
func (s *Service) Register(ctx context.Context, email, name string) (domain.User, error) {
	return s.repo.Create(ctx, domain.User{Email: email, Name: name})
}

// Get returns the user with the given email.
func (s *Service) Get(ctx context.Context, email string) (domain.User, error) {
	return s.repo.Get(ctx, email)
}

// GetByName resolves a display name to the user registered under it.
func (s *Service) GetByName(ctx context.Context, name string) (domain.User, error) {
	return s.repo.GetByName(ctx, name)
}
