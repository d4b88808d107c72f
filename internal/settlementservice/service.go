// Package settlementservice manages business logic layer of settlements.
package settlementservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/internal/splitcalc"
	"github.com/splitpot/splitpot/pkg/moneypkg"
)

// Repo provides data access layer interface needed by settlement service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package settlementservice
type Repo interface {
	List(ctx context.Context) ([]domain.Expense, error)
	UpdateSplit(ctx context.Context, expenseID string, split domain.Split) error
}

// Service facilitates settlement service layer logic.
type Service struct {
	repo Repo
}

// New returns settlement service struct to manage settlement business logic.
func New(er Repo) *Service {
	return &Service{
		repo: er,
	}
}

// Settle records a real-world payment from payer to payee by adjusting
// the split of every stored expense that involves both of them, and
// returns how many expenses were adjusted. The amount is not bounded by
// the outstanding balance. Each adjusted expense is persisted in turn;
// there is no rollback across expenses, so a write failure leaves the
// earlier adjustments applied.
func (s *Service) Settle(ctx context.Context, payerEmail, payeeEmail, amount string) (int, error) {
	l := zerolog.Ctx(ctx)

	settled, ok := moneypkg.ParsePositive(amount)
	if !ok {
		l.Info().Str("amount", amount).Msg("rejected settlement amount")

		return 0, domain.ErrInvalidAmount
	}

	expenses, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	adjusted := splitcalc.ApplySettlement(expenses, payerEmail, payeeEmail, settled)

	splits := make(map[string]domain.Split, len(expenses))
	for _, e := range expenses {
		splits[e.ID] = e.Split
	}

	for _, id := range adjusted {
		if err := s.repo.UpdateSplit(ctx, id, splits[id]); err != nil {
			l.Error().Err(err).Str("expense_id", id).Msg("settlement partially applied")

			return 0, err
		}
	}

	return len(adjusted), nil
}
