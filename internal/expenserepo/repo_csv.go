package expenserepo

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/csvstore"
	"github.com/splitpot/splitpot/pkg/errorspkg"
)

// RepoCSV facilitates expense repository layer logic on a CSV table.
// Record shape: {id, group_name, expense_name, amount, payer, split}.
// The split column is a JSON object keyed by member email, replacing
// the loose textual encodings such stores tend to grow: decoding is
// strict and never evaluates the stored text.
type RepoCSV struct {
	table *csvstore.Table[domain.Expense]
}

// NewRepoCSV returns expense RepoCSV backed by expenses.csv in dir.
func NewRepoCSV(dir string) *RepoCSV {
	codec := csvstore.Codec[domain.Expense]{
		Header: []string{"id", "group_name", "expense_name", "amount", "payer", "split"},
		Key: func(e domain.Expense) string {
			return e.ID
		},
		Encode: func(e domain.Expense) []string {
			// Marshaling a map[string]decimal.Decimal cannot fail.
			split, _ := json.Marshal(e.Split)

			return []string{e.ID, e.GroupName, e.Name, e.Amount.String(), e.Payer, string(split)}
		},
		Decode: func(row []string) (domain.Expense, error) {
			if len(row) != 6 {
				return domain.Expense{}, fmt.Errorf("expense row has %d fields, want 6", len(row))
			}

			amount, err := decimal.NewFromString(row[3])
			if err != nil {
				return domain.Expense{}, fmt.Errorf("expense amount %q: %w", row[3], err)
			}

			split := domain.Split{}
			if err := json.Unmarshal([]byte(row[5]), &split); err != nil {
				return domain.Expense{}, fmt.Errorf("expense split: %w", err)
			}

			return domain.Expense{
				ID:        row[0],
				GroupName: row[1],
				Name:      row[2],
				Amount:    amount,
				Payer:     row[4],
				Split:     split,
			}, nil
		},
	}

	return &RepoCSV{table: csvstore.New(filepath.Join(dir, "expenses.csv"), codec)}
}

// Create appends the expense with its split and returns it. A missing
// ID is assigned here.
func (r *RepoCSV) Create(ctx context.Context, arg domain.Expense) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	if arg.ID == "" {
		arg.ID = uuid.NewString()
	}

	if err := r.table.Append(arg); err != nil {
		l.Error().Err(err).Send()

		return domain.Expense{}, errorspkg.ErrStorage
	}

	return arg, nil
}

// List returns every stored expense in file order.
func (r *RepoCSV) List(ctx context.Context) ([]domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	expenses, err := r.table.Load()
	if err != nil {
		l.Error().Err(err).Send()

		return nil, errorspkg.ErrStorage
	}

	return expenses, nil
}

// ListByGroup returns the expenses of one group in file order.
func (r *RepoCSV) ListByGroup(ctx context.Context, groupName string) ([]domain.Expense, error) {
	expenses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []domain.Expense

	for _, e := range expenses {
		if e.GroupName == groupName {
			matched = append(matched, e)
		}
	}

	return matched, nil
}

// UpdateSplit replaces the stored split of one expense. The whole
// table is rewritten, preserving record order.
func (r *RepoCSV) UpdateSplit(ctx context.Context, expenseID string, split domain.Split) error {
	l := zerolog.Ctx(ctx)

	expenses, err := r.table.Load()
	if err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}

	found := false

	for i := range expenses {
		if expenses[i].ID == expenseID {
			expenses[i].Split = split.Copy()
			found = true

			break
		}
	}

	if !found {
		return domain.ErrExpenseNotFound
	}

	if err := r.table.Save(expenses); err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrStorage
	}

	return nil
}
