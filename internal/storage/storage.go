// Package storage selects and assembles the persistence backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/internal/expenserepo"
	"github.com/splitpot/splitpot/internal/grouprepo"
	"github.com/splitpot/splitpot/internal/userrepo"
	"github.com/splitpot/splitpot/pkg/configpkg"
	"github.com/splitpot/splitpot/pkg/dbpkg"
)

// UserRepo is the user persistence surface shared by all backends.
type UserRepo interface {
	Create(ctx context.Context, arg domain.User) (domain.User, error)
	Get(ctx context.Context, email string) (domain.User, error)
	GetByName(ctx context.Context, name string) (domain.User, error)
	AddToGroup(ctx context.Context, emails []string, groupName string) error
}

// GroupRepo is the group persistence surface shared by all backends.
type GroupRepo interface {
	Create(ctx context.Context, arg domain.Group) (domain.Group, error)
	Get(ctx context.Context, name string) (domain.Group, error)
}

// ExpenseRepo is the expense persistence surface shared by all backends.
type ExpenseRepo interface {
	Create(ctx context.Context, arg domain.Expense) (domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	ListByGroup(ctx context.Context, groupName string) ([]domain.Expense, error)
	UpdateSplit(ctx context.Context, expenseID string, split domain.Split) error
}

// Repos bundles one backend's repositories.
type Repos struct {
	Users    UserRepo
	Groups   GroupRepo
	Expenses ExpenseRepo

	db *sql.DB
}

// Open assembles the backend named by config.StorageBackend.
func Open(config configpkg.Config) (*Repos, error) {
	switch config.StorageBackend {
	case configpkg.BackendSQLite:
		db, err := dbpkg.Setup(config.DBPath)
		if err != nil {
			return nil, err
		}

		return &Repos{
			Users:    userrepo.NewRepoSQL(db),
			Groups:   grouprepo.NewRepoSQL(db),
			Expenses: expenserepo.NewRepoSQL(db),
			db:       db,
		}, nil

	case configpkg.BackendCSV:
		return &Repos{
			Users:    userrepo.NewRepoCSV(config.DataDir),
			Groups:   grouprepo.NewRepoCSV(config.DataDir),
			Expenses: expenserepo.NewRepoCSV(config.DataDir),
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
}

// Close releases the backend's resources. CSV tables hold no open
// handles between operations, so closing them is a no-op.
func (r *Repos) Close() error {
	if r.db != nil {
		return r.db.Close()
	}

	return nil
}
