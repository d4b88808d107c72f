// Package directory supplies user and group lookups to the ledger.
package directory

import (
	"context"

	"github.com/splitpot/splitpot/internal/domain"
)

// Users provides the user lookup needed by the directory.
type Users interface {
	GetByName(ctx context.Context, name string) (domain.User, error)
}

// Groups provides the group lookups needed by the directory.
type Groups interface {
	Members(ctx context.Context, name string) ([]string, error)
	IsMember(ctx context.Context, name, email string) (bool, error)
}

// Service answers membership and identity questions by composing the
// user and group services.
type Service struct {
	users  Users
	groups Groups
}

// New returns a directory over the given user and group services.
func New(users Users, groups Groups) *Service {
	return &Service{
		users:  users,
		groups: groups,
	}
}

// GroupMembers returns the group's member emails in creation order.
func (s *Service) GroupMembers(ctx context.Context, groupName string) ([]string, error) {
	return s.groups.Members(ctx, groupName)
}

// IsMember reports whether email belongs to the group.
func (s *Service) IsMember(ctx context.Context, groupName, email string) (bool, error) {
	return s.groups.IsMember(ctx, groupName, email)
}

// ResolveUserByName resolves a display name to the registered email.
func (s *Service) ResolveUserByName(ctx context.Context, name string) (string, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return "", err
	}

	return user.Email, nil
}
