package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (reporter_id, reported_user_id, reason, details, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		report.ReporterID, report.ReportedUserID, report.Reason,
		report.Details, report.Status,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	query := `SELECT * FROM reports WHERE id = $1`
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, status domain.ReportStatus, limit, offset int) ([]*domain.Report, error) {
	var reports []*domain.Report
	if status == "" {
		query := `SELECT * FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		err := r.db.SelectContext(ctx, &reports, query, limit, offset)
		return reports, err
	}
	query := `SELECT * FROM reports WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &reports, query, status, limit, offset)
	return reports, err
}

func (r *reportRepository) Review(ctx context.Context, report *domain.Report) error {
	query := `
		UPDATE reports
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		report.Status, report.ReviewedBy, report.ReviewedAt, report.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}
