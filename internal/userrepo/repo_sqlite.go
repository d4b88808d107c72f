// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/dbpkg"
	"github.com/splitpot/splitpot/pkg/errorspkg"
)

// RepoSQL facilitates user repository layer logic on SQLite.
type RepoSQL struct {
	db dbpkg.SQLInterface
}

// NewRepoSQL returns user RepoSQL.
func NewRepoSQL(db dbpkg.SQLInterface) *RepoSQL {
	return &RepoSQL{
		db: db,
	}
}

const createQuery = `
INSERT INTO users (email, name) VALUES (?, ?)
`

// Create creates the user and then returns it.
func (r *RepoSQL) Create(ctx context.Context, arg domain.User) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, createQuery, arg.Email, arg.Name); err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateUser
		}

		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrStorage
	}

	return domain.User{Email: arg.Email, Name: arg.Name}, nil
}

const getQuery = `
SELECT email, name FROM users WHERE email = ?
`

// Get returns the user with the given email.
func (r *RepoSQL) Get(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, getQuery, email)
}

const getByNameQuery = `
SELECT email, name FROM users WHERE name = ? ORDER BY rowid LIMIT 1
`

// GetByName returns the first registered user with the given display name.
func (r *RepoSQL) GetByName(ctx context.Context, name string) (domain.User, error) {
	return r.get(ctx, getByNameQuery, name)
}

func (r *RepoSQL) get(ctx context.Context, query, arg string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.Email, &u.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrStorage
	}

	groups, err := r.loadGroups(ctx, u.Email)
	if err != nil {
		l.Error().Err(err).Send()

		return u, errorspkg.ErrStorage
	}

	u.Groups = groups

	return u, nil
}

const listGroupsQuery = `
SELECT group_name FROM user_groups WHERE email = ? ORDER BY rowid
`

func (r *RepoSQL) loadGroups(ctx context.Context, email string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listGroupsQuery, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []string

	for rows.Next() {
		var group string
		if err := rows.Scan(&group); err != nil {
			return nil, err
		}

		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// Registered users only: the subquery drops emails without a users row.
const addToGroupQuery = `
INSERT OR IGNORE INTO user_groups (email, group_name)
SELECT email, ? FROM users WHERE email = ?
`

// AddToGroup records the group membership on every given user that is
// registered. Unregistered emails are skipped silently.
func (r *RepoSQL) AddToGroup(ctx context.Context, emails []string, groupName string) error {
	l := zerolog.Ctx(ctx)

	for _, email := range emails {
		if _, err := r.db.ExecContext(ctx, addToGroupQuery, groupName, email); err != nil {
			l.Error().Err(err).Send()

			return errorspkg.ErrStorage
		}
	}

	return nil
}
