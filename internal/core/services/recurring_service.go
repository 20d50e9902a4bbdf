package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
)

// recurringService materialises template occurrences. Runs in one process are
// serialised; across processes the journal store refuses a second posting of the
// same (template, date) pair.
type recurringService struct {
	BaseService
	repo   portsrepo.RecurringRepositoryFacade
	poster portssvc.JournalPosterSvc

	mu sync.Mutex
}

// RecurringServiceOption is a functional option for configuring the recurring service
type RecurringServiceOption func(*recurringService)

// WithRecurringClock overrides time.Now for template audit fields.
func WithRecurringClock(clock func() time.Time) RecurringServiceOption {
	return func(s *recurringService) {
		s.clock = clock
	}
}

// NewRecurringService creates a new recurring entry scheduler.
func NewRecurringService(repo portsrepo.RecurringRepositoryFacade, poster portssvc.JournalPosterSvc, options ...RecurringServiceOption) portssvc.RecurringSvc {
	svc := &recurringService{repo: repo, poster: poster}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecurringSvc = (*recurringService)(nil)

// CreateRecurringEntry implements portssvc.RecurringSvc
func (s *recurringService) CreateRecurringEntry(ctx context.Context, template domain.RecurringEntryTemplate) (string, error) {
	freq, err := domain.ParseFrequency(string(template.Frequency))
	if err != nil {
		return "", err
	}
	tmpl := template.Clone()
	tmpl.ID = ""
	tmpl.Frequency = freq
	tmpl.StartDate = domain.DateOf(tmpl.StartDate)
	tmpl.EndDate = domain.DateOf(tmpl.EndDate)
	tmpl.AuditFields = domain.NewAuditFields(s.now(), systemActor)
	if err := tmpl.Validate(); err != nil {
		s.LogWarn(ctx, err, "Recurring template rejected", slog.String("description", tmpl.Description))
		return "", err
	}

	created, err := s.repo.CreateTemplate(ctx, tmpl)
	if err != nil {
		s.LogError(ctx, err, "Failed to store recurring template")
		return "", fmt.Errorf("failed to store recurring template: %w", err)
	}
	s.LogInfo(ctx, "Recurring template created",
		slog.String("template_id", created.ID),
		slog.String("frequency", string(created.Frequency)))
	return created.ID, nil
}

// ProcessRecurringEntries implements portssvc.RecurringSvc. On failure the
// entries already posted by this run are returned with the error.
func (s *recurringService) ProcessRecurringEntries(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: recurring window needs a start and end date", apperrors.ErrValidation)
	}
	if domain.DateOf(from).After(domain.DateOf(to)) {
		return nil, fmt.Errorf("%w: recurring window start is after its end", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring templates")
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	var generated []domain.JournalEntry
	for _, tmpl := range templates {
		for _, date := range tmpl.OccurrencesBetween(from, to) {
			done, err := s.repo.IsOccurrenceProcessed(ctx, tmpl.ID, date)
			if err != nil {
				return generated, fmt.Errorf("failed to check occurrence %s: %w", domain.OccurrenceKey(tmpl.ID, date), err)
			}
			if done {
				continue
			}

			// the store records (template, date) in the same write as the entry
			posted, err := s.poster.PostEntry(ctx, tmpl.EntryFor(date))
			if errors.Is(err, domain.ErrOccurrenceProcessed) {
				continue
			}
			if err != nil {
				s.LogWarn(ctx, err, "Recurring occurrence not posted",
					slog.String("template_id", tmpl.ID),
					slog.String("date", date.Format(time.DateOnly)))
				return generated, fmt.Errorf("recurring occurrence %s: %w", domain.OccurrenceKey(tmpl.ID, date), err)
			}
			generated = append(generated, *posted)
		}
	}

	s.LogInfo(ctx, "Recurring entries processed",
		slog.String("from", domain.DateOf(from).Format(time.DateOnly)),
		slog.String("to", domain.DateOf(to).Format(time.DateOnly)),
		slog.Int("templates", len(templates)),
		slog.Int("generated", len(generated)))
	return generated, nil
}

// GetRecurringTemplate implements portssvc.RecurringSvc
func (s *recurringService) GetRecurringTemplate(ctx context.Context, templateID string) (*domain.RecurringEntryTemplate, error) {
	tmpl, err := s.repo.FindTemplateByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, templateID)
		}
		return nil, fmt.Errorf("failed to load recurring template %s: %w", templateID, err)
	}
	return tmpl, nil
}

// ListRecurringTemplates implements portssvc.RecurringSvc
func (s *recurringService) ListRecurringTemplates(ctx context.Context) ([]domain.RecurringEntryTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

// RecurringTemplateCount implements portssvc.RecurringSvc
func (s *recurringService) RecurringTemplateCount(ctx context.Context) (int, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return 0, err
	}
	return len(templates), nil
}
