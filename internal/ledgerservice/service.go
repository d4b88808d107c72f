// Package ledgerservice manages business logic layer of the expense ledger.
package ledgerservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/internal/splitcalc"
	"github.com/splitpot/splitpot/pkg/moneypkg"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Create(ctx context.Context, arg domain.Expense) (domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	ListByGroup(ctx context.Context, groupName string) ([]domain.Expense, error)
}

// Directory supplies user and group lookups to the ledger.
type Directory interface {
	GroupMembers(ctx context.Context, groupName string) ([]string, error)
	IsMember(ctx context.Context, groupName, email string) (bool, error)
	ResolveUserByName(ctx context.Context, name string) (string, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo      Repo
	directory Directory
}

// New returns ledger service struct to manage ledger business logic.
func New(er Repo, dir Directory) *Service {
	return &Service{
		repo:      er,
		directory: dir,
	}
}

// RecordExpense validates the request, computes the split and appends
// one expense to the ledger. Nothing is persisted on any failure.
func (s *Service) RecordExpense(ctx context.Context, arg domain.CreateExpenseParams) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	amount, ok := moneypkg.ParsePositive(arg.Amount)
	if !ok {
		l.Info().Str("amount", arg.Amount).Msg("rejected expense amount")

		return domain.Expense{}, domain.ErrInvalidAmount
	}

	isMember, err := s.directory.IsMember(ctx, arg.GroupName, arg.Payer)
	if err != nil {
		return domain.Expense{}, err
	}

	if !isMember {
		return domain.Expense{}, domain.ErrPayerNotMember
	}

	members, err := s.directory.GroupMembers(ctx, arg.GroupName)
	if err != nil {
		return domain.Expense{}, err
	}

	var split domain.Split

	if arg.EqualSplit {
		split = splitcalc.Equal(amount, members)
	} else {
		if split, err = splitcalc.ParseCustom(arg.CustomSplit, members); err != nil {
			return domain.Expense{}, err
		}
	}

	expense, err := s.repo.Create(ctx, domain.Expense{
		GroupName: arg.GroupName,
		Name:      arg.ExpenseName,
		Amount:    amount,
		Payer:     arg.Payer,
		Split:     split,
	})
	if err != nil {
		return domain.Expense{}, err
	}

	return expense, nil
}

// GroupBalances recomputes net balances and the who-owes-whom matrix
// from the group's stored expenses. A group with no expenses yields
// empty maps; the group's existence is not checked, matching the
// "no balances to display" behavior.
func (s *Service) GroupBalances(ctx context.Context, groupName string) (domain.Balance, domain.Detail, error) {
	expenses, err := s.repo.ListByGroup(ctx, groupName)
	if err != nil {
		return nil, nil, err
	}

	balances, detail := splitcalc.GroupBalances(expenses)

	return balances, detail, nil
}

// PersonalBalance resolves the user by display name and folds every
// stored expense, across all groups, into the user's totals.
func (s *Service) PersonalBalance(ctx context.Context, userName string) (domain.PersonalBalance, error) {
	email, err := s.directory.ResolveUserByName(ctx, userName)
	if err != nil {
		return domain.PersonalBalance{}, err
	}

	expenses, err := s.repo.List(ctx)
	if err != nil {
		return domain.PersonalBalance{}, err
	}

	return splitcalc.PersonalBalance(expenses, email), nil
}
