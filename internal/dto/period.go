package dto

import (
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// LockPeriodRequest is the optional body of a lock call.
type LockPeriodRequest struct {
	Actor string `json:"actor"`
}

// UnlockPeriodRequest is the body of an unlock call.
type UnlockPeriodRequest struct {
	Actor  string `json:"actor" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// PeriodAuditResponse is one rendered audit record.
type PeriodAuditResponse struct {
	Event     string    `json:"event"`
	Actor     string    `json:"actor,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// PeriodStatusResponse is the lock state of a period plus its audit log.
type PeriodStatusResponse struct {
	Period   string                `json:"period"`
	Locked   bool                  `json:"locked"`
	AuditLog []PeriodAuditResponse `json:"auditLog"`
}

// ToPeriodStatusResponse converts a domain.PeriodStatus to its response DTO.
func ToPeriodStatusResponse(s *domain.PeriodStatus) PeriodStatusResponse {
	log := make([]PeriodAuditResponse, len(s.AuditLog))
	for i, a := range s.AuditLog {
		log[i] = PeriodAuditResponse{
			Event:     string(a.Event),
			Actor:     a.Actor,
			Reason:    a.Reason,
			Timestamp: a.Timestamp,
			Message:   a.String(),
		}
	}
	return PeriodStatusResponse{Period: s.Period.String(), Locked: s.Locked, AuditLog: log}
}
