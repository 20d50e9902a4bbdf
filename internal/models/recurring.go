package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringTemplate is a persisted recurring entry template.
type RecurringTemplate struct {
	Sequence    int64                   `json:"sequence"`
	TemplateID  string                  `json:"templateId"` // REC-<sequence>
	Description string                  `json:"description"`
	Frequency   string                  `json:"frequency"`
	StartDate   time.Time               `json:"startDate"`
	EndDate     time.Time               `json:"endDate"`
	Lines       []RecurringTemplateLine `json:"lines"`
	AuditFields
}

// RecurringTemplateLine is one line of a template.
type RecurringTemplateLine struct {
	TemplateID  string          `json:"templateId"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Side        string          `json:"side"`
}

// ProcessedOccurrence records that a template occurrence has been posted.
type ProcessedOccurrence struct {
	TemplateID     string    `json:"templateId"`
	OccurrenceDate time.Time `json:"occurrenceDate"`
	JournalNumber  string    `json:"journalNumber"`
	ProcessedAt    time.Time `json:"processedAt"`
}
