package mapping

import (
	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/models"
)

// ToModelJournal converts a domain JournalEntry to a model Journal including its lines
func ToModelJournal(d domain.JournalEntry) models.Journal {
	var reverses *string
	if d.ReversesJournal != "" {
		r := d.ReversesJournal
		reverses = &r
	}
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			JournalSequence: d.Sequence,
			LineNo:          i + 1,
			AccountCode:     l.AccountCode,
			AccountName:     l.AccountName,
			Amount:          l.Amount,
			Side:            string(l.Side),
		}
	}
	return models.Journal{
		Sequence:        d.Sequence,
		JournalNumber:   d.JournalNumber,
		JournalDate:     d.Date,
		Description:     d.Description,
		IsAdjusting:     d.IsAdjusting,
		Status:          string(d.Status),
		ReversesJournal: reverses,
		Lines:           lines,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain JournalEntry
func ToDomainJournal(m models.Journal) domain.JournalEntry {
	lines := make([]domain.JournalLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = ToDomainJournalLine(l)
	}
	var reverses string
	if m.ReversesJournal != nil {
		reverses = *m.ReversesJournal
	}
	return domain.JournalEntry{
		JournalNumber:   m.JournalNumber,
		Sequence:        m.Sequence,
		Date:            domain.DateOf(m.JournalDate),
		Description:     m.Description,
		Lines:           lines,
		IsAdjusting:     m.IsAdjusting,
		Status:          domain.JournalStatus(m.Status),
		ReversesJournal: reverses,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		Amount:      m.Amount,
		Side:        domain.EntrySide(m.Side),
	}
}

// ToDomainJournals converts a slice of model Journals to domain JournalEntries
func ToDomainJournals(ms []models.Journal) []domain.JournalEntry {
	out := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournal(m)
	}
	return out
}
