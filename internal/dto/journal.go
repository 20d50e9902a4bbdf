package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// JournalLineRequest is one debit or credit in a posting request.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	Side        string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
}

// PostJournalRequest defines the body for posting a journal entry.
type PostJournalRequest struct {
	Date        Date                 `json:"date"`
	Description string               `json:"description" binding:"max=500"`
	IsAdjusting bool                 `json:"isAdjusting"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDomain converts the request into a draft entry.
func (r PostJournalRequest) ToDomain() domain.JournalEntry {
	return domain.JournalEntry{
		Date:        domain.DateOf(r.Date.Time),
		Description: r.Description,
		IsAdjusting: r.IsAdjusting,
		Lines:       ToDomainLines(r.Lines),
		Status:      domain.Draft,
	}
}

// ToDomainLines converts request lines to domain lines.
func ToDomainLines(lines []JournalLineRequest) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Amount:      l.Amount,
			Side:        domain.EntrySide(l.Side),
		}
	}
	return out
}

// ReverseJournalRequest defines the body for reversing a posted entry.
type ReverseJournalRequest struct {
	Date   Date   `json:"date"`
	Reason string `json:"reason" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Side        string          `json:"side"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalNumber   string                `json:"journalNumber"`
	Date            Date                  `json:"date"`
	Description     string                `json:"description"`
	IsAdjusting     bool                  `json:"isAdjusting"`
	Status          string                `json:"status"`
	ReversesJournal string                `json:"reversesJournal,omitempty"`
	TotalDebits     decimal.Decimal       `json:"totalDebits"`
	TotalCredits    decimal.Decimal       `json:"totalCredits"`
	Lines           []JournalLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// PostJournalResponse is returned by the posting endpoint.
type PostJournalResponse struct {
	JournalNumber string          `json:"journalNumber"`
	Journal       JournalResponse `json:"journal"`
}

// ListJournalsResponse is a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(e *domain.JournalEntry) JournalResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Amount:      domain.RoundMoney(l.Amount),
			Side:        string(l.Side),
		}
	}
	return JournalResponse{
		JournalNumber:   e.JournalNumber,
		Date:            NewDate(e.Date),
		Description:     e.Description,
		IsAdjusting:     e.IsAdjusting,
		Status:          string(e.Status),
		ReversesJournal: e.ReversesJournal,
		TotalDebits:     domain.RoundMoney(e.TotalDebits()),
		TotalCredits:    domain.RoundMoney(e.TotalCredits()),
		Lines:           lines,
		CreatedAt:       e.CreatedAt,
	}
}

// ToJournalResponses converts a slice of domain.JournalEntry to []JournalResponse.
func ToJournalResponses(entries []domain.JournalEntry) []JournalResponse {
	responses := make([]JournalResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalResponse(&entries[i])
	}
	return responses
}
