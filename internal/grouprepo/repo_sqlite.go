// Package grouprepo manages repository layer of groups.
package grouprepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/dbpkg"
	"github.com/splitpot/splitpot/pkg/errorspkg"
)

// RepoSQL facilitates group repository layer logic on SQLite.
type RepoSQL struct {
	db dbpkg.SQLInterface
}

// NewRepoSQL returns group RepoSQL.
func NewRepoSQL(db dbpkg.SQLInterface) *RepoSQL {
	return &RepoSQL{
		db: db,
	}
}

const (
	createQuery       = `INSERT INTO groups (name) VALUES (?)`
	createMemberQuery = `INSERT INTO group_members (group_name, member, position) VALUES (?, ?, ?)`
)

// Create creates the group with its fixed member list and returns it.
func (r *RepoSQL) Create(ctx context.Context, arg domain.Group) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()

		return domain.Group{}, errorspkg.ErrStorage
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createQuery, arg.Name); err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return domain.Group{}, domain.ErrDuplicateGroup
		}

		l.Error().Err(err).Send()

		return domain.Group{}, errorspkg.ErrStorage
	}

	for position, member := range arg.Members {
		if _, err := tx.ExecContext(ctx, createMemberQuery, arg.Name, member, position); err != nil {
			l.Error().Err(err).Send()

			return domain.Group{}, errorspkg.ErrStorage
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		return domain.Group{}, errorspkg.ErrStorage
	}

	return arg, nil
}

const (
	getQuery         = `SELECT name FROM groups WHERE name = ?`
	listMembersQuery = `SELECT member FROM group_members WHERE group_name = ? ORDER BY position`
)

// Get returns the group with the given name, members in creation order.
func (r *RepoSQL) Get(ctx context.Context, name string) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	var g domain.Group

	err := r.db.QueryRowContext(ctx, getQuery, name).Scan(&g.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return g, domain.ErrGroupNotFound
		}

		l.Error().Err(err).Send()

		return g, errorspkg.ErrStorage
	}

	rows, err := r.db.QueryContext(ctx, listMembersQuery, name)
	if err != nil {
		l.Error().Err(err).Send()

		return g, errorspkg.ErrStorage
	}
	defer rows.Close()

	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			l.Error().Err(err).Send()

			return g, errorspkg.ErrStorage
		}

		g.Members = append(g.Members, member)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()

		return g, errorspkg.ErrStorage
	}

	return g, nil
}
