package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is the persisted header of a posted entry.
type Journal struct {
	Sequence        int64         `json:"sequence"`      // Primary Key
	JournalNumber   string        `json:"journalNumber"` // Unique, JE-0001
	JournalDate     time.Time     `json:"journalDate"`
	Description     string        `json:"description"`
	IsAdjusting     bool          `json:"isAdjusting"`
	Status          string        `json:"status"`
	ReversesJournal *string       `json:"reversesJournal,omitempty"` // Nullable
	Lines           []JournalLine `json:"lines"`                     // Loaded separately from journal_lines
	AuditFields
}

// JournalLine is one persisted debit or credit of a journal.
type JournalLine struct {
	JournalSequence int64           `json:"journalSequence"` // FK -> journals.sequence
	LineNo          int             `json:"lineNo"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	Amount          decimal.Decimal `json:"amount"`
	Side            string          `json:"side"` // DEBIT or CREDIT
}
