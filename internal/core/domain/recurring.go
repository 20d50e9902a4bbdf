package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

// Frequency is the cadence a recurring template fires on.
type Frequency string

const (
	Daily     Frequency = "DAILY"
	Weekly    Frequency = "WEEKLY"
	Monthly   Frequency = "MONTHLY"
	Quarterly Frequency = "QUARTERLY"
	Yearly    Frequency = "YEARLY"
)

// ParseFrequency accepts the frequency names case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToUpper(strings.TrimSpace(s))); f {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown frequency %q", apperrors.ErrValidation, s)
}

const recurringIDPrefix = "REC-"

// FormatTemplateID renders a template sequence as REC-1.
func FormatTemplateID(seq int64) string {
	return fmt.Sprintf("%s%d", recurringIDPrefix, seq)
}

// RecurringEntryTemplate generates one posting per occurrence between StartDate and EndDate.
type RecurringEntryTemplate struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Frequency   Frequency     `json:"frequency"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

func (t RecurringEntryTemplate) Validate() error {
	if _, err := ParseFrequency(string(t.Frequency)); err != nil {
		return err
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("%w: recurring template needs a start and end date", apperrors.ErrValidation)
	}
	if DateOf(t.EndDate).Before(DateOf(t.StartDate)) {
		return fmt.Errorf("%w: recurring template end date is before its start date", apperrors.ErrValidation)
	}
	return ValidateEntry(JournalEntry{Date: t.StartDate, Lines: t.Lines})
}

// Occurrence returns the k-th occurrence date (k = 0 is StartDate). Month based
// cadences step from StartDate and clamp to the last day of the target month.
func (t RecurringEntryTemplate) Occurrence(k int) time.Time {
	start := DateOf(t.StartDate)
	switch t.Frequency {
	case Daily:
		return start.AddDate(0, 0, k)
	case Weekly:
		return start.AddDate(0, 0, 7*k)
	case Monthly:
		return addMonthsClamped(start, k)
	case Quarterly:
		return addMonthsClamped(start, 3*k)
	case Yearly:
		return addMonthsClamped(start, 12*k)
	}
	return start
}

// OccurrencesBetween lists occurrence dates d with from <= d <= min(to, EndDate).
func (t RecurringEntryTemplate) OccurrencesBetween(from, to time.Time) []time.Time {
	from, to = DateOf(from), DateOf(to)
	limit := DateOf(t.EndDate)
	if to.Before(limit) {
		limit = to
	}
	var dates []time.Time
	for k := 0; ; k++ {
		d := t.Occurrence(k)
		if d.After(limit) {
			break
		}
		if !d.Before(from) {
			dates = append(dates, d)
		}
	}
	return dates
}

// EntryFor builds the draft entry for one occurrence.
func (t RecurringEntryTemplate) EntryFor(date time.Time) JournalEntry {
	lines := make([]JournalLine, len(t.Lines))
	copy(lines, t.Lines)
	return JournalEntry{
		Date:        DateOf(date),
		Description: t.Description,
		Lines:       lines,
		Status:      Draft,
		Occurrence:  &ProcessedOccurrence{TemplateID: t.ID, Date: DateOf(date)},
	}
}

// Clone returns a copy that does not share the line slice.
func (t RecurringEntryTemplate) Clone() RecurringEntryTemplate {
	lines := make([]JournalLine, len(t.Lines))
	copy(lines, t.Lines)
	t.Lines = lines
	return t
}

// ProcessedOccurrence marks a (template, date) pair as already posted.
type ProcessedOccurrence struct {
	TemplateID    string    `json:"templateId"`
	Date          time.Time `json:"date"`
	JournalNumber string    `json:"journalNumber"`
}

// Key is the dedup key, e.g. REC-1-2024-01-31.
func (p ProcessedOccurrence) Key() string {
	return OccurrenceKey(p.TemplateID, p.Date)
}

func OccurrenceKey(templateID string, date time.Time) string {
	return templateID + "-" + DateOf(date).Format(time.DateOnly)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
