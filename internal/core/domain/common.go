package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps both the created and updated pairs.
func NewAuditFields(at time.Time, by string) AuditFields {
	return AuditFields{CreatedAt: at, CreatedBy: by, LastUpdatedAt: at, LastUpdatedBy: by}
}
