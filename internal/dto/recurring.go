package dto

import (
	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// CreateRecurringEntryRequest defines a recurring template.
type CreateRecurringEntryRequest struct {
	Description string               `json:"description" binding:"required"`
	Frequency   string               `json:"frequency" binding:"required"`
	StartDate   Date                 `json:"startDate"`
	EndDate     Date                 `json:"endDate"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDomain converts the request into a template without an identifier.
func (r CreateRecurringEntryRequest) ToDomain() domain.RecurringEntryTemplate {
	return domain.RecurringEntryTemplate{
		Description: r.Description,
		Frequency:   domain.Frequency(r.Frequency),
		StartDate:   r.StartDate.Time,
		EndDate:     r.EndDate.Time,
		Lines:       ToDomainLines(r.Lines),
	}
}

// CreateRecurringEntryResponse returns the new template identifier.
type CreateRecurringEntryResponse struct {
	TemplateID string `json:"templateId"`
}

// ProcessRecurringRequest is the window to materialize occurrences for.
type ProcessRecurringRequest struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// ProcessRecurringResponse lists entries generated by one run.
type ProcessRecurringResponse struct {
	Generated int               `json:"generated"`
	Journals  []JournalResponse `json:"journals"`
}

// RecurringTemplateResponse describes a stored template.
type RecurringTemplateResponse struct {
	ID          string                `json:"id"`
	Description string                `json:"description"`
	Frequency   string                `json:"frequency"`
	StartDate   Date                  `json:"startDate"`
	EndDate     Date                  `json:"endDate"`
	Lines       []JournalLineResponse `json:"lines"`
}

func ToRecurringTemplateResponse(t domain.RecurringEntryTemplate) RecurringTemplateResponse {
	lines := make([]JournalLineResponse, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = JournalLineResponse{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Amount:      l.Amount,
			Side:        string(l.Side),
		}
	}
	return RecurringTemplateResponse{
		ID:          t.ID,
		Description: t.Description,
		Frequency:   string(t.Frequency),
		StartDate:   NewDate(t.StartDate),
		EndDate:     NewDate(t.EndDate),
		Lines:       lines,
	}
}

func ToRecurringTemplateResponses(templates []domain.RecurringEntryTemplate) []RecurringTemplateResponse {
	out := make([]RecurringTemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = ToRecurringTemplateResponse(t)
	}
	return out
}
