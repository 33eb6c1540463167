package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"recruit_messaging/internal/domain"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

type CandidateRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.CandidateProfile, error)
}

type candidateRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewCandidateRepository(db *pgxpool.Pool, log logger.Logger) CandidateRepository {
	return &candidateRepository{db: db, log: log}
}

func (r *candidateRepository) GetProfile(ctx context.Context, id uuid.UUID) (*domain.CandidateProfile, error) {
	query := `
		SELECT id, full_name, email, phone, birth_date, resume_url, self_pr, desired_job_type
		FROM candidates
		WHERE id = $1
	`

	p := &domain.CandidateProfile{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Email, &p.Phone, &p.BirthDate, &p.ResumeURL, &p.SelfPR, &p.DesiredJobType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCandidateNotFound
		}
		r.log.Error("Failed to get candidate profile", "error", err)
		return nil, err
	}

	return p, nil
}
