// Package splitcalc implements the ledger math: split calculation,
// balance aggregation and settlement adjustments. All functions are
// pure except ApplySettlement, which rewrites splits in place.
package splitcalc

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/domain"
)

// Equal splits amount evenly across members, payer included.
// Plain decimal division; no remainder redistribution.
func Equal(amount decimal.Decimal, members []string) domain.Split {
	split := make(domain.Split, len(members))

	if len(members) == 0 {
		return split
	}

	share := amount.Div(decimal.NewFromInt(int64(len(members))))
	for _, member := range members {
		split[member] = share
	}

	return split
}

// ParseCustom builds a split from operator-supplied amounts, one per
// member. A missing or unparsable value fails the whole split with
// domain.ErrInvalidSplitInput. The sum is intentionally not checked
// against the expense amount.
func ParseCustom(amounts map[string]string, members []string) (domain.Split, error) {
	split := make(domain.Split, len(members))

	for _, member := range members {
		raw, ok := amounts[member]
		if !ok {
			return nil, domain.ErrInvalidSplitInput
		}

		share, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.ErrInvalidSplitInput
		}

		split[member] = share
	}

	return split, nil
}

// GroupBalances folds expenses into net balances and the who-owes-whom
// matrix. For every (member, share) pair the member's balance grows by
// the share and the payer's shrinks by it, so the payer's own share is
// an evaluated no-op. Detail accumulates raw directional amounts and is
// never netted. Empty input yields empty maps.
func GroupBalances(expenses []domain.Expense) (domain.Balance, domain.Detail) {
	balances := domain.Balance{}
	detail := domain.Detail{}

	for _, e := range expenses {
		for member, share := range e.Split {
			balances[member] = balances[member].Add(share)
			balances[e.Payer] = balances[e.Payer].Sub(share)

			if member != e.Payer {
				if detail[member] == nil {
					detail[member] = make(map[string]decimal.Decimal)
				}

				detail[member][e.Payer] = detail[member][e.Payer].Add(share)
			}
		}
	}

	return balances, detail
}

// PersonalBalance folds every expense, regardless of group, into the
// given user's totals. Shares the user owes on others' expenses add up
// to OwesToOthers; when the user paid, everyone else's shares add up to
// OwedByOthers.
func PersonalBalance(expenses []domain.Expense, email string) domain.PersonalBalance {
	var owes, owed decimal.Decimal

	for _, e := range expenses {
		if share, ok := e.Split[email]; ok && e.Payer != email {
			owes = owes.Add(share)
		}

		if e.Payer == email {
			for member, share := range e.Split {
				if member != email {
					owed = owed.Add(share)
				}
			}
		}
	}

	return domain.PersonalBalance{
		OwesToOthers: owes,
		OwedByOthers: owed,
		Net:          owed.Sub(owes),
	}
}

// ApplySettlement records a real-world payment from payer to payee by
// rewriting the split of every expense that contains both emails:
// the payer's recorded share shrinks by amount and the payee's grows
// by it, so the payer's outstanding debt toward the payee decreases.
// The adjustment is not bounded by the outstanding balance, so
// over-settlement can drive a share negative. Returns the IDs of the
// adjusted expenses.
func ApplySettlement(expenses []domain.Expense, payerEmail, payeeEmail string, amount decimal.Decimal) []string {
	var adjusted []string

	for i := range expenses {
		split := expenses[i].Split

		_, hasPayer := split[payerEmail]
		_, hasPayee := split[payeeEmail]

		if !hasPayer || !hasPayee {
			continue
		}

		split[payerEmail] = split[payerEmail].Sub(amount)
		split[payeeEmail] = split[payeeEmail].Add(amount)

		adjusted = append(adjusted, expenses[i].ID)
	}

	return adjusted
}
