package mapping

import (
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/models"
)

// ToModelPeriodAudit converts a domain PeriodAuditEntry to a model PeriodAudit
func ToModelPeriodAudit(d domain.PeriodAuditEntry) models.PeriodAudit {
	return models.PeriodAudit{
		Year:       d.Period.Year,
		Month:      int(d.Period.Month),
		Event:      string(d.Event),
		Actor:      d.Actor,
		Reason:     d.Reason,
		OccurredAt: d.Timestamp,
	}
}

// ToDomainPeriodAudit converts a model PeriodAudit to a domain PeriodAuditEntry
func ToDomainPeriodAudit(m models.PeriodAudit) domain.PeriodAuditEntry {
	return domain.PeriodAuditEntry{
		Period:    domain.PeriodKey{Year: m.Year, Month: time.Month(m.Month)},
		Event:     domain.PeriodEvent(m.Event),
		Actor:     m.Actor,
		Reason:    m.Reason,
		Timestamp: m.OccurredAt,
	}
}

// ToModelOpeningBalance converts a domain OpeningBalance to a model OpeningBalance
func ToModelOpeningBalance(d domain.OpeningBalance) models.OpeningBalance {
	return models.OpeningBalance{
		AccountCode: d.AccountCode,
		Amount:      d.Amount,
		AsOfDate:    d.AsOfDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpeningBalance converts a model OpeningBalance to a domain OpeningBalance
func ToDomainOpeningBalance(m models.OpeningBalance) domain.OpeningBalance {
	return domain.OpeningBalance{
		AccountCode: m.AccountCode,
		Amount:      m.Amount,
		AsOfDate:    domain.DateOf(m.AsOfDate),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRecurringTemplate converts a domain template to its model form
func ToModelRecurringTemplate(d domain.RecurringEntryTemplate, seq int64) models.RecurringTemplate {
	lines := make([]models.RecurringTemplateLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.RecurringTemplateLine{
			TemplateID:  d.ID,
			LineNo:      i + 1,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Amount:      l.Amount,
			Side:        string(l.Side),
		}
	}
	return models.RecurringTemplate{
		Sequence:    seq,
		TemplateID:  d.ID,
		Description: d.Description,
		Frequency:   string(d.Frequency),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Lines:       lines,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurringTemplate converts a model template to its domain form
func ToDomainRecurringTemplate(m models.RecurringTemplate) domain.RecurringEntryTemplate {
	lines := make([]domain.JournalLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Amount:      l.Amount,
			Side:        domain.EntrySide(l.Side),
		}
	}
	return domain.RecurringEntryTemplate{
		ID:          m.TemplateID,
		Description: m.Description,
		Frequency:   domain.Frequency(m.Frequency),
		StartDate:   domain.DateOf(m.StartDate),
		EndDate:     domain.DateOf(m.EndDate),
		Lines:       lines,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
