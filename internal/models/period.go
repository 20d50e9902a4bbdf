package models

import "time"

// PeriodLock is the current lock state of a period.
type PeriodLock struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Locked    bool      `json:"locked"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PeriodAudit is one append-only lock/unlock record.
type PeriodAudit struct {
	ID         int64     `json:"id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Event      string    `json:"event"`
	Actor      string    `json:"actor"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}
