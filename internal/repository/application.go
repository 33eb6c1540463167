package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"recruit_messaging/internal/domain"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

// ApplicationRepository reads applications and interviews owned by the
// recruiting pipeline.
type ApplicationRepository interface {
	// FindByCandidateAndPosting returns the newest application of the
	// candidate to the posting.
	FindByCandidateAndPosting(ctx context.Context, candidateID, jobPostingID uuid.UUID) (*domain.ApplicationRef, error)
	ListUnviewed(ctx context.Context, companyGroupID uuid.UUID, limit int) ([]*domain.Application, error)
	// ListInterviewsAwaitingResult returns interviews held before now that
	// have no recorded result.
	ListInterviewsAwaitingResult(ctx context.Context, companyGroupID uuid.UUID, now time.Time, limit int) ([]*domain.Interview, error)
}

type applicationRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewApplicationRepository(db *pgxpool.Pool, log logger.Logger) ApplicationRepository {
	return &applicationRepository{db: db, log: log}
}

func (r *applicationRepository) FindByCandidateAndPosting(ctx context.Context, candidateID, jobPostingID uuid.UUID) (*domain.ApplicationRef, error) {
	query := `
		SELECT id, status
		FROM applications
		WHERE candidate_id = $1 AND job_posting_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	ref := &domain.ApplicationRef{}
	if err := r.db.QueryRow(ctx, query, candidateID, jobPostingID).Scan(&ref.ID, &ref.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to find application", "candidate_id", candidateID, "job_posting_id", jobPostingID, "error", err)
		return nil, err
	}

	return ref, nil
}

func (r *applicationRepository) ListUnviewed(ctx context.Context, companyGroupID uuid.UUID, limit int) ([]*domain.Application, error) {
	query := `
		SELECT a.id, a.candidate_id, COALESCE(c.full_name, ''), a.job_posting_id, jp.title, a.status, a.viewed_at, a.created_at
		FROM applications a
		JOIN job_postings jp ON jp.id = a.job_posting_id
		LEFT JOIN candidates c ON c.id = a.candidate_id
		WHERE jp.company_group_id = $1 AND a.viewed_at IS NULL
		ORDER BY a.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, companyGroupID, limit)
	if err != nil {
		r.log.Error("Failed to list unviewed applications", "error", err)
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		a := &domain.Application{}
		err := rows.Scan(&a.ID, &a.CandidateID, &a.CandidateName, &a.JobPostingID, &a.JobPostingTitle, &a.Status, &a.ViewedAt, &a.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan application", "error", err)
			return nil, err
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

func (r *applicationRepository) ListInterviewsAwaitingResult(ctx context.Context, companyGroupID uuid.UUID, now time.Time, limit int) ([]*domain.Interview, error) {
	query := `
		SELECT i.id, i.application_id, COALESCE(c.full_name, ''), i.scheduled_at
		FROM interviews i
		JOIN applications a ON a.id = i.application_id
		JOIN job_postings jp ON jp.id = a.job_posting_id
		LEFT JOIN candidates c ON c.id = a.candidate_id
		WHERE jp.company_group_id = $1 AND i.result IS NULL AND i.scheduled_at < $2
		ORDER BY i.scheduled_at ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, companyGroupID, now, limit)
	if err != nil {
		r.log.Error("Failed to list interviews awaiting result", "error", err)
		return nil, err
	}
	defer rows.Close()

	var interviews []*domain.Interview
	for rows.Next() {
		i := &domain.Interview{}
		if err := rows.Scan(&i.ID, &i.ApplicationID, &i.CandidateName, &i.ScheduledAt); err != nil {
			r.log.Error("Failed to scan interview", "error", err)
			return nil, err
		}
		interviews = append(interviews, i)
	}

	return interviews, rows.Err()
}
