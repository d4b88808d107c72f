package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrExpenseNotFound indicates that the expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrPayerNotMember indicates that the payer does not belong to the target group.
	ErrPayerNotMember = errors.New("payer is not a group member")
	// ErrInvalidSplitInput indicates that a supplied custom split amount is not a valid number.
	ErrInvalidSplitInput = errors.New("invalid split input")
	// ErrInvalidAmount indicates that the amount is not a positive number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Split maps a member email to that member's signed share of one expense.
type Split map[string]decimal.Decimal

// Copy returns a deep copy of the split.
func (s Split) Copy() Split {
	c := make(Split, len(s))
	for member, share := range s {
		c[member] = share
	}

	return c
}

// CreateExpenseParams is the input data to record an expense. When
// EqualSplit is false, CustomSplit must supply one amount per group
// member.
type CreateExpenseParams struct {
	GroupName   string            `json:"group_name"`
	ExpenseName string            `json:"expense_name"`
	Amount      string            `json:"amount"`
	Payer       string            `json:"payer"`
	EqualSplit  bool              `json:"equal_split"`
	CustomSplit map[string]string `json:"custom_split,omitempty"`
}

// Expense holds one recorded group expense. Amount, Payer, GroupName and
// Name never change after creation; Split is rewritten by settlements.
type Expense struct {
	ID        string          `json:"id"`
	GroupName string          `json:"group_name"`
	Name      string          `json:"expense_name"`
	Amount    decimal.Decimal `json:"amount"`
	Payer     string          `json:"payer"`
	Split     Split           `json:"split"`
}
