package domain

import "github.com/shopspring/decimal"

// Balance maps a member email to the signed net amount for a group.
// Positive means the member owes the group pool, negative means the
// member is owed.
type Balance map[string]decimal.Decimal

// Detail is the who-owes-whom matrix: ower -> owee -> cumulative raw
// amount. Amounts are accumulated directionally and never netted
// against the reverse direction.
type Detail map[string]map[string]decimal.Decimal

// PersonalBalance holds one user's totals across all groups.
// Net is positive when the user is owed money overall.
type PersonalBalance struct {
	OwesToOthers decimal.Decimal `json:"owes_to_others"`
	OwedByOthers decimal.Decimal `json:"owed_by_others"`
	Net          decimal.Decimal `json:"net_balance"`
}
