// Package expenserepo manages repository layer of expenses.
package expenserepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/dbpkg"
	"github.com/splitpot/splitpot/pkg/errorspkg"
)

// RepoSQL facilitates expense repository layer logic on SQLite.
// Amounts are stored as decimal strings.
type RepoSQL struct {
	db dbpkg.SQLInterface
}

// NewRepoSQL returns expense RepoSQL.
func NewRepoSQL(db dbpkg.SQLInterface) *RepoSQL {
	return &RepoSQL{
		db: db,
	}
}

const (
	createQuery = `
INSERT INTO expenses (id, group_name, expense_name, amount, payer)
VALUES (?, ?, ?, ?, ?)
`
	createSplitQuery = `
INSERT INTO expense_splits (expense_id, member, amount) VALUES (?, ?, ?)
`
)

// Create appends the expense with its split and returns it. A missing
// ID is assigned here.
func (r *RepoSQL) Create(ctx context.Context, arg domain.Expense) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	if arg.ID == "" {
		arg.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()

		return domain.Expense{}, errorspkg.ErrStorage
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, createQuery,
		arg.ID, arg.GroupName, arg.Name, arg.Amount.String(), arg.Payer)
	if err != nil {
		l.Error().Err(err).Send()

		return domain.Expense{}, errorspkg.ErrStorage
	}

	for member, share := range arg.Split {
		if _, err := tx.ExecContext(ctx, createSplitQuery, arg.ID, member, share.String()); err != nil {
			l.Error().Err(err).Send()

			return domain.Expense{}, errorspkg.ErrStorage
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		return domain.Expense{}, errorspkg.ErrStorage
	}

	return arg, nil
}

const (
	listQuery = `
SELECT id, group_name, expense_name, amount, payer FROM expenses ORDER BY rowid
`
	listByGroupQuery = `
SELECT id, group_name, expense_name, amount, payer FROM expenses
WHERE group_name = ? ORDER BY rowid
`
)

// List returns every stored expense in insertion order.
func (r *RepoSQL) List(ctx context.Context) ([]domain.Expense, error) {
	return r.list(ctx, listQuery)
}

// ListByGroup returns the expenses of one group in insertion order.
func (r *RepoSQL) ListByGroup(ctx context.Context, groupName string) ([]domain.Expense, error) {
	return r.list(ctx, listByGroupQuery, groupName)
}

func (r *RepoSQL) list(ctx context.Context, query string, args ...interface{}) ([]domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()

		return nil, errorspkg.ErrStorage
	}
	defer rows.Close()

	var expenses []domain.Expense

	for rows.Next() {
		var (
			e      domain.Expense
			amount string
		)

		if err := rows.Scan(&e.ID, &e.GroupName, &e.Name, &amount, &e.Payer); err != nil {
			l.Error().Err(err).Send()

			return nil, errorspkg.ErrStorage
		}

		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			l.Error().Err(err).Str("expense_id", e.ID).Send()

			return nil, errorspkg.ErrStorage
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()

		return nil, errorspkg.ErrStorage
	}

	for i := range expenses {
		if expenses[i].Split, err = r.loadSplit(ctx, expenses[i].ID); err != nil {
			l.Error().Err(err).Send()

			return nil, errorspkg.ErrStorage
		}
	}

	return expenses, nil
}

const listSplitQuery = `
SELECT member, amount FROM expense_splits WHERE expense_id = ?
`

func (r *RepoSQL) loadSplit(ctx context.Context, expenseID string) (domain.Split, error) {
	rows, err := r.db.QueryContext(ctx, listSplitQuery, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	split := domain.Split{}

	for rows.Next() {
		var member, amount string

		if err := rows.Scan(&member, &amount); err != nil {
			return nil, err
		}

		if split[member], err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
	}

	return split, rows.Err()
}

const (
	existsQuery      = `SELECT 1 FROM expenses WHERE id = ?`
	deleteSplitQuery = `DELETE FROM expense_splits WHERE expense_id = ?`
)

// UpdateSplit replaces the stored split of one expense.
func (r *RepoSQL) UpdateSplit(ctx context.Context, expenseID string, split domain.Split) error {
	l := zerolog.Ctx(ctx)

	var one int
	if err := r.db.QueryRowContext(ctx, existsQuery, expenseID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrExpenseNotFound
		}

		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteSplitQuery, expenseID); err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}

	for member, share := range split {
		if _, err := tx.ExecContext(ctx, createSplitQuery, expenseID, member, share.String()); err != nil {
			l.Error().Err(err).Send()

			return errorspkg.ErrStorage
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}

	return nil
}
