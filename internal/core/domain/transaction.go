package domain

import "github.com/shopspring/decimal"

// EntrySide indicates whether a journal line is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Valid reports whether s is one of the two known sides.
func (s EntrySide) Valid() bool {
	return s == Debit || s == Credit
}

// Opposite returns Credit for Debit and Debit for Credit.
func (s EntrySide) Opposite() EntrySide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// JournalLine is a single debit or credit against one account. Amount is always positive.
type JournalLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Side        EntrySide       `json:"side"`
}

// SignedAmount returns the amount debit-positive, credit-negative.
func (l JournalLine) SignedAmount() decimal.Decimal {
	if l.Side == Credit {
		return l.Amount.Neg()
	}
	return l.Amount
}

// Reversed returns the same line on the opposite side.
func (l JournalLine) Reversed() JournalLine {
	l.Side = l.Side.Opposite()
	return l
}
