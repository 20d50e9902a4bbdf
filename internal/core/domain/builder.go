package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryBuilder assembles a draft JournalEntry line by line.
//
//	entry, err := domain.NewEntry(date, "Office rent").
//		Debit("6100", "Rent", amount).
//		Credit("1000", "Cash", amount).
//		Build()
type EntryBuilder struct {
	entry JournalEntry
}

// NewEntry starts a draft entry for date.
func NewEntry(date time.Time, description string) *EntryBuilder {
	return &EntryBuilder{entry: JournalEntry{
		Date:        DateOf(date),
		Description: description,
		Status:      Draft,
	}}
}

// Debit appends a debit line.
func (b *EntryBuilder) Debit(accountCode, accountName string, amount decimal.Decimal) *EntryBuilder {
	return b.Line(JournalLine{AccountCode: accountCode, AccountName: accountName, Amount: amount, Side: Debit})
}

// Credit appends a credit line.
func (b *EntryBuilder) Credit(accountCode, accountName string, amount decimal.Decimal) *EntryBuilder {
	return b.Line(JournalLine{AccountCode: accountCode, AccountName: accountName, Amount: amount, Side: Credit})
}

// Line appends an already formed line.
func (b *EntryBuilder) Line(line JournalLine) *EntryBuilder {
	b.entry.Lines = append(b.entry.Lines, line)
	return b
}

// Adjusting marks the entry as a period-end adjustment.
func (b *EntryBuilder) Adjusting() *EntryBuilder {
	b.entry.IsAdjusting = true
	return b
}

// Reverses records the journal number this entry offsets.
func (b *EntryBuilder) Reverses(journalNumber string) *EntryBuilder {
	b.entry.ReversesJournal = journalNumber
	return b
}

// Build returns the draft entry, or an error if it has no debit, no credit,
// a malformed line, or unequal totals.
func (b *EntryBuilder) Build() (JournalEntry, error) {
	if err := ValidateEntry(b.entry); err != nil {
		return JournalEntry{}, err
	}
	return b.entry.Clone(), nil
}
