package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

type PgxRecurringRepository struct {
	BaseRepository
}

func newPgxRecurringRepository(pool *pgxpool.Pool) *PgxRecurringRepository {
	return &PgxRecurringRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

// CreateTemplate draws the identifier from recurring_template_seq and stores header and lines together.
func (r *PgxRecurringRepository) CreateTemplate(ctx context.Context, template domain.RecurringEntryTemplate) (*domain.RecurringEntryTemplate, error) {
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		var seq int64
		if err := tx.QueryRow(ctx, `SELECT nextval('recurring_template_seq');`).Scan(&seq); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to allocate template id", err)
		}
		template.ID = domain.FormatTemplateID(seq)
		m := mapping.ToModelRecurringTemplate(template, seq)

		_, err := tx.Exec(ctx, `
			INSERT INTO recurring_templates (
				sequence, template_id, description, frequency, start_date, end_date,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			m.Sequence,
			m.TemplateID,
			m.Description,
			m.Frequency,
			m.StartDate,
			m.EndDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewAppError(http.StatusConflict, "template "+m.TemplateID+" already exists", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert template "+m.TemplateID, err)
		}

		batch := &pgx.Batch{}
		for _, l := range m.Lines {
			batch.Queue(`
				INSERT INTO recurring_template_lines (template_id, line_no, account_code, account_name, amount, side)
				VALUES ($1, $2, $3, $4, $5, $6);`,
				l.TemplateID, l.LineNo, l.AccountCode, l.AccountName, l.Amount, l.Side)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert lines for template "+m.TemplateID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	created := template.Clone()
	return &created, nil
}

// FindTemplateByID implements portsrepo.RecurringTemplateReader
func (r *PgxRecurringRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.RecurringEntryTemplate, error) {
	templates, err := r.queryTemplates(ctx, "WHERE t.template_id = $1", templateID)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, apperrors.NewAppError(http.StatusNotFound, "template "+templateID+" not found", nil)
	}
	return &templates[0], nil
}

// ListTemplates implements portsrepo.RecurringTemplateReader
func (r *PgxRecurringRepository) ListTemplates(ctx context.Context) ([]domain.RecurringEntryTemplate, error) {
	return r.queryTemplates(ctx, "")
}

// IsOccurrenceProcessed implements portsrepo.OccurrenceTracker
func (r *PgxRecurringRepository) IsOccurrenceProcessed(ctx context.Context, templateID string, date time.Time) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM processed_occurrences WHERE template_id = $1 AND occurrence_date = $2
		);`, templateID, domain.DateOf(date)).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to check occurrence "+domain.OccurrenceKey(templateID, date), err)
	}
	return exists, nil
}

// insertOccurrence records occ inside the journal append. A pair that is already
// present makes the whole append fail with domain.ErrOccurrenceProcessed.
func insertOccurrence(ctx context.Context, tx pgx.Tx, occ domain.ProcessedOccurrence, at time.Time) error {
	tag, err := tx.Exec(ctx, `
		INSERT INTO processed_occurrences (template_id, occurrence_date, journal_number, processed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (template_id, occurrence_date) DO NOTHING;`,
		occ.TemplateID, domain.DateOf(occ.Date), occ.JournalNumber, at)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to record occurrence "+occ.Key(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", occ.Key(), domain.ErrOccurrenceProcessed)
	}
	return nil
}

func (r *PgxRecurringRepository) queryTemplates(ctx context.Context, where string, args ...any) ([]domain.RecurringEntryTemplate, error) {
	query := `
		SELECT t.sequence, t.template_id, t.description, t.frequency, t.start_date, t.end_date,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
		       l.line_no, l.account_code, l.account_name, l.amount, l.side
		FROM recurring_templates t
		JOIN recurring_template_lines l ON l.template_id = t.template_id
		` + where + `
		ORDER BY t.sequence, l.line_no;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query recurring templates", err)
	}
	defer rows.Close()

	var templates []models.RecurringTemplate
	for rows.Next() {
		var t models.RecurringTemplate
		var l models.RecurringTemplateLine
		err := rows.Scan(
			&t.Sequence, &t.TemplateID, &t.Description, &t.Frequency, &t.StartDate, &t.EndDate,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
			&l.LineNo, &l.AccountCode, &l.AccountName, &l.Amount, &l.Side,
		)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan recurring template row", err)
		}
		l.TemplateID = t.TemplateID
		if n := len(templates); n > 0 && templates[n-1].Sequence == t.Sequence {
			templates[n-1].Lines = append(templates[n-1].Lines, l)
			continue
		}
		t.Lines = []models.RecurringTemplateLine{l}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating recurring template rows", err)
	}

	out := make([]domain.RecurringEntryTemplate, len(templates))
	for i, t := range templates {
		out[i] = mapping.ToDomainRecurringTemplate(t)
	}
	return out, nil
}
