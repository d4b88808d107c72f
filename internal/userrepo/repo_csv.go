package userrepo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/csvstore"
	"github.com/splitpot/splitpot/pkg/errorspkg"
)

// RepoCSV facilitates user repository layer logic on a CSV table.
// Record shape: {email, name, groups}, groups comma-joined.
type RepoCSV struct {
	table *csvstore.Table[domain.User]
}

// NewRepoCSV returns user RepoCSV backed by users.csv in dir.
func NewRepoCSV(dir string) *RepoCSV {
	codec := csvstore.Codec[domain.User]{
		Header: []string{"email", "name", "groups"},
		Key: func(u domain.User) string {
			return u.Email
		},
		Encode: func(u domain.User) []string {
			return []string{u.Email, u.Name, strings.Join(u.Groups, ",")}
		},
		Decode: func(row []string) (domain.User, error) {
			if len(row) != 3 {
				return domain.User{}, fmt.Errorf("user row has %d fields, want 3", len(row))
			}

			u := domain.User{Email: row[0], Name: row[1]}
			if row[2] != "" {
				u.Groups = strings.Split(row[2], ",")
			}

			return u, nil
		},
	}

	return &RepoCSV{table: csvstore.New(filepath.Join(dir, "users.csv"), codec)}
}

// Create creates the user and then returns it.
func (r *RepoCSV) Create(ctx context.Context, arg domain.User) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	_, found, err := r.table.Get(arg.Email)
	if err != nil {
		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrStorage
	}

	if found {
		return domain.User{}, domain.ErrDuplicateUser
	}

	u := domain.User{Email: arg.Email, Name: arg.Name}

	if err := r.table.Append(u); err != nil {
		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrStorage
	}

	return u, nil
}

// Get returns the user with the given email.
func (r *RepoCSV) Get(ctx context.Context, email string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, found, err := r.table.Get(email)
	if err != nil {
		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrStorage
	}

	if !found {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}

// GetByName returns the first registered user with the given display name.
func (r *RepoCSV) GetByName(ctx context.Context, name string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	users, err := r.table.Load()
	if err != nil {
		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrStorage
	}

	for _, u := range users {
		if u.Name == name {
			return u, nil
		}
	}

	return domain.User{}, domain.ErrUserNotFound
}

// AddToGroup records the group membership on every given user that is
// registered. Unregistered emails are skipped silently.
func (r *RepoCSV) AddToGroup(ctx context.Context, emails []string, groupName string) error {
	l := zerolog.Ctx(ctx)

	users, err := r.table.Load()
	if err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}

	members := make(map[string]bool, len(emails))
	for _, email := range emails {
		members[email] = true
	}

	for i := range users {
		if !members[users[i].Email] || contains(users[i].Groups, groupName) {
			continue
		}

		users[i].Groups = append(users[i].Groups, groupName)
	}

	if err := r.table.Save(users); err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
