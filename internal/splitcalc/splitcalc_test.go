package splitcalc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/splitpot/splitpot/internal/domain"
)

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(id, group, payer string, amount string, split map[string]string) domain.Expense {
	sp := make(domain.Split, len(split))
	for member, share := range split {
		sp[member] = money(share)
	}

	return domain.Expense{
		ID:        id,
		GroupName: group,
		Name:      "expense-" + id,
		Amount:    money(amount),
		Payer:     payer,
		Split:     sp,
	}
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name      string
		amount    string
		members   []string
		wantShare string
	}{
		{
			name:      "ThreeMembers",
			amount:    "90",
			members:   []string{"a@x", "b@x", "c@x"},
			wantShare: "30",
		},
		{
			name:      "TwoMembersWithCents",
			amount:    "81.30",
			members:   []string{"a@x", "b@x"},
			wantShare: "40.65",
		},
		{
			name:      "SingleMember",
			amount:    "12.34",
			members:   []string{"a@x"},
			wantShare: "12.34",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			split := Equal(money(tc.amount), tc.members)

			require.Len(t, split, len(tc.members))
			for _, member := range tc.members {
				require.True(t, split[member].Equal(money(tc.wantShare)),
					"share for %s: got %s want %s", member, split[member], tc.wantShare)
			}
		})
	}
}

func TestEqualNoMembers(t *testing.T) {
	split := Equal(money("100"), nil)
	require.Empty(t, split)
}

func TestEqualSharesSumToAmount(t *testing.T) {
	tolerance := money("0.000000001")

	amounts := []string{"100", "0.01", "99.99", "123.45"}
	members := []string{"a@x", "b@x", "c@x"}

	for _, amount := range amounts {
		split := Equal(money(amount), members)

		sum := decimal.Zero
		for _, share := range split {
			sum = sum.Add(share)
		}

		require.True(t, money(amount).Sub(sum).Abs().LessThanOrEqual(tolerance),
			"amount %s: shares sum to %s", amount, sum)
	}
}

func TestParseCustom(t *testing.T) {
	members := []string{"a@x", "b@x"}

	testCases := []struct {
		name      string
		amounts   map[string]string
		wantErr   error
		wantSplit map[string]string
	}{
		{
			name:      "Valid",
			amounts:   map[string]string{"a@x": "10.50", "b@x": "4.50"},
			wantSplit: map[string]string{"a@x": "10.50", "b@x": "4.50"},
		},
		{
			name:      "WhitespaceTrimmed",
			amounts:   map[string]string{"a@x": " 10 ", "b@x": "5"},
			wantSplit: map[string]string{"a@x": "10", "b@x": "5"},
		},
		{
			name:      "SumNotCheckedAgainstAmount",
			amounts:   map[string]string{"a@x": "1", "b@x": "1"},
			wantSplit: map[string]string{"a@x": "1", "b@x": "1"},
		},
		{
			name:    "NotANumber",
			amounts: map[string]string{"a@x": "ten", "b@x": "5"},
			wantErr: domain.ErrInvalidSplitInput,
		},
		{
			name:    "MissingMember",
			amounts: map[string]string{"a@x": "10"},
			wantErr: domain.ErrInvalidSplitInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			split, err := ParseCustom(tc.amounts, members)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, split)
				return
			}

			require.NoError(t, err)
			for member, share := range tc.wantSplit {
				require.True(t, split[member].Equal(money(share)))
			}
		})
	}
}

func TestGroupBalancesEmpty(t *testing.T) {
	balances, detail := GroupBalances(nil)

	require.Empty(t, balances)
	require.Empty(t, detail)
}

func TestGroupBalancesEqualSplitTrip(t *testing.T) {
	expenses := []domain.Expense{
		expense("1", "trip", "a@x", "90", map[string]string{
			"a@x": "30", "b@x": "30", "c@x": "30",
		}),
	}

	balances, detail := GroupBalances(expenses)

	require.True(t, balances["a@x"].Equal(money("-60")))
	require.True(t, balances["b@x"].Equal(money("30")))
	require.True(t, balances["c@x"].Equal(money("30")))

	require.True(t, detail["b@x"]["a@x"].Equal(money("30")))
	require.True(t, detail["c@x"]["a@x"].Equal(money("30")))
	require.NotContains(t, detail, "a@x")
}

func TestGroupBalancesConserveToZero(t *testing.T) {
	expenses := []domain.Expense{
		expense("1", "flat", "a@x", "90", map[string]string{
			"a@x": "30", "b@x": "30", "c@x": "30",
		}),
		expense("2", "flat", "b@x", "10", map[string]string{
			"a@x": "7.50", "b@x": "1.25", "c@x": "1.25",
		}),
		expense("3", "flat", "c@x", "33.33", map[string]string{
			"a@x": "11.11", "b@x": "11.11", "c@x": "11.11",
		}),
	}

	balances, _ := GroupBalances(expenses)

	sum := decimal.Zero
	for _, balance := range balances {
		sum = sum.Add(balance)
	}

	require.True(t, sum.IsZero(), "balances sum to %s", sum)
}

func TestGroupBalancesDetailNeverNetted(t *testing.T) {
	expenses := []domain.Expense{
		expense("1", "flat", "a@x", "20", map[string]string{
			"a@x": "10", "b@x": "10",
		}),
		expense("2", "flat", "b@x", "20", map[string]string{
			"a@x": "10", "b@x": "10",
		}),
		expense("3", "flat", "a@x", "10", map[string]string{
			"a@x": "5", "b@x": "5",
		}),
	}

	_, detail := GroupBalances(expenses)

	// Both directions accumulate raw amounts even though they cancel out.
	require.True(t, detail["b@x"]["a@x"].Equal(money("15")))
	require.True(t, detail["a@x"]["b@x"].Equal(money("10")))
}

func TestGroupBalancesIdempotent(t *testing.T) {
	expenses := []domain.Expense{
		expense("1", "trip", "a@x", "90", map[string]string{
			"a@x": "30", "b@x": "30", "c@x": "30",
		}),
		expense("2", "trip", "b@x", "12", map[string]string{
			"a@x": "4", "b@x": "4", "c@x": "4",
		}),
	}

	balances1, detail1 := GroupBalances(expenses)
	balances2, detail2 := GroupBalances(expenses)

	require.Empty(t, cmp.Diff(balances1, balances2, decimalComparer))
	require.Empty(t, cmp.Diff(detail1, detail2, decimalComparer))
}

func TestPersonalBalance(t *testing.T) {
	// Expenses span two groups; the fold must cover all of them.
	expenses := []domain.Expense{
		expense("1", "trip", "a@x", "90", map[string]string{
			"a@x": "30", "b@x": "30", "c@x": "30",
		}),
		expense("2", "flat", "b@x", "40", map[string]string{
			"a@x": "20", "b@x": "20",
		}),
	}

	got := PersonalBalance(expenses, "a@x")

	require.True(t, got.OwesToOthers.Equal(money("20")))
	require.True(t, got.OwedByOthers.Equal(money("60")))
	require.True(t, got.Net.Equal(money("40")))
}

func TestPersonalBalanceNoExpenses(t *testing.T) {
	got := PersonalBalance(nil, "a@x")

	require.True(t, got.OwesToOthers.IsZero())
	require.True(t, got.OwedByOthers.IsZero())
	require.True(t, got.Net.IsZero())
}

func TestApplySettlement(t *testing.T) {
	expenses := []domain.Expense{
		expense("1", "flat", "bob@x", "30", map[string]string{
			"alice@x": "30", "bob@x": "0",
		}),
		expense("2", "flat", "carol@x", "10", map[string]string{
			"carol@x": "5", "dave@x": "5",
		}),
	}

	adjusted := ApplySettlement(expenses, "alice@x", "bob@x", money("10"))

	require.Equal(t, []string{"1"}, adjusted)

	require.True(t, expenses[0].Split["alice@x"].Equal(money("20")))
	require.True(t, expenses[0].Split["bob@x"].Equal(money("10")))

	// Expense without both participants stays untouched.
	require.True(t, expenses[1].Split["carol@x"].Equal(money("5")))
	require.True(t, expenses[1].Split["dave@x"].Equal(money("5")))
}

func TestApplySettlementTouchesEveryMatchingExpense(t *testing.T) {
	expenses := []domain.Expense{
		expense("1", "flat", "b@x", "20", map[string]string{
			"a@x": "10", "b@x": "10",
		}),
		expense("2", "trip", "b@x", "30", map[string]string{
			"a@x": "15", "b@x": "15",
		}),
	}

	adjusted := ApplySettlement(expenses, "a@x", "b@x", money("5"))

	require.Equal(t, []string{"1", "2"}, adjusted)
	require.True(t, expenses[0].Split["a@x"].Equal(money("5")))
	require.True(t, expenses[1].Split["a@x"].Equal(money("10")))
}

func TestApplySettlementUnbounded(t *testing.T) {
	expenses := []domain.Expense{
		expense("1", "flat", "b@x", "10", map[string]string{
			"a@x": "10", "b@x": "0",
		}),
	}

	ApplySettlement(expenses, "a@x", "b@x", money("25"))

	// Over-settlement silently drives the share negative.
	require.True(t, expenses[0].Split["a@x"].Equal(money("-15")))
	require.True(t, expenses[0].Split["b@x"].Equal(money("25")))
}
