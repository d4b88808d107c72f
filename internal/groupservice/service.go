// Package groupservice manages business logic layer of groups.
package groupservice

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
)

// Repo provides data access layer interface needed by group service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package groupservice
type Repo interface {
	Create(ctx context.Context, arg domain.Group) (domain.Group, error)
	Get(ctx context.Context, name string) (domain.Group, error)
}

// UserRepo provides the user mutation needed when a group is created.
type UserRepo interface {
	AddToGroup(ctx context.Context, emails []string, groupName string) error
}

// Service facilitates group service layer logic.
type Service struct {
	repo     Repo
	userRepo UserRepo
}

// New returns group service struct to manage group business logic.
func New(gr Repo, ur UserRepo) *Service {
	return &Service{
		repo:     gr,
		userRepo: ur,
	}
}

// Create creates the group with a fixed member list and records the
// membership on every registered member user. Member emails are
// trimmed; membership is not otherwise validated, so a group may list
// emails that were never registered.
func (s *Service) Create(ctx context.Context, name string, members []string) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	trimmed := make([]string, 0, len(members))
	for _, member := range members {
		trimmed = append(trimmed, strings.TrimSpace(member))
	}

	group, err := s.repo.Create(ctx, domain.Group{Name: name, Members: trimmed})
	if err != nil {
		return domain.Group{}, err
	}

	if err := s.userRepo.AddToGroup(ctx, trimmed, name); err != nil {
		l.Error().Err(err).Str("group", name).Msg("group created but user memberships not recorded")

		return domain.Group{}, err
	}

	return group, nil
}

// Members returns the group's member emails in creation order.
func (s *Service) Members(ctx context.Context, name string) ([]string, error) {
	group, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	return group.Members, nil
}

// IsMember reports whether email belongs to the group.
func (s *Service) IsMember(ctx context.Context, name, email string) (bool, error) {
	group, err := s.repo.Get(ctx, name)
	if err != nil {
		return false, err
	}

	for _, member := range group.Members {
		if member == email {
			return true, nil
		}
	}

	return false, nil
}
