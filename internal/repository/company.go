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

// CompanyRepository reads the company directory owned by the platform.
type CompanyRepository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.CompanyUser, error)
	CountJobPostings(ctx context.Context, companyGroupID uuid.UUID) (int, error)
}

type companyRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewCompanyRepository(db *pgxpool.Pool, log logger.Logger) CompanyRepository {
	return &companyRepository{db: db, log: log}
}

func (r *companyRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.CompanyUser, error) {
	query := `
		SELECT id, company_group_id, display_name
		FROM company_users
		WHERE id = $1
	`

	user := &domain.CompanyUser{}
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.CompanyGroupID, &user.DisplayName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyUserNotFound
		}
		r.log.Error("Failed to get company user", "error", err)
		return nil, err
	}

	return user, nil
}

func (r *companyRepository) CountJobPostings(ctx context.Context, companyGroupID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_postings WHERE company_group_id = $1`, companyGroupID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count job postings", "company_group_id", companyGroupID, "error", err)
		return 0, err
	}
	return count, nil
}
