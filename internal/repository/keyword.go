package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"recruit_messaging/internal/domain"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

const pgUniqueViolation = "23505"

type KeywordRepository interface {
	ListActive(ctx context.Context) ([]*domain.NGKeyword, error)
	List(ctx context.Context) ([]*domain.NGKeyword, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NGKeyword, error)
	Create(ctx context.Context, keyword *domain.NGKeyword) error
	Update(ctx context.Context, keyword *domain.NGKeyword) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type keywordRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewKeywordRepository(db *pgxpool.Pool, log logger.Logger) KeywordRepository {
	return &keywordRepository{db: db, log: log}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *keywordRepository) ListActive(ctx context.Context) ([]*domain.NGKeyword, error) {
	return r.list(ctx, `
		SELECT id, keyword, is_active, created_at, updated_at
		FROM ng_keywords
		WHERE is_active
		ORDER BY created_at, id
	`)
}

func (r *keywordRepository) List(ctx context.Context) ([]*domain.NGKeyword, error) {
	return r.list(ctx, `
		SELECT id, keyword, is_active, created_at, updated_at
		FROM ng_keywords
		ORDER BY created_at, id
	`)
}

func (r *keywordRepository) list(ctx context.Context, query string) ([]*domain.NGKeyword, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list ng keywords", "error", err)
		return nil, err
	}
	defer rows.Close()

	var keywords []*domain.NGKeyword
	for rows.Next() {
		k := &domain.NGKeyword{}
		if err := rows.Scan(&k.ID, &k.Keyword, &k.IsActive, &k.CreatedAt, &k.UpdatedAt); err != nil {
			r.log.Error("Failed to scan ng keyword", "error", err)
			return nil, err
		}
		keywords = append(keywords, k)
	}

	return keywords, rows.Err()
}

func (r *keywordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NGKeyword, error) {
	query := `
		SELECT id, keyword, is_active, created_at, updated_at
		FROM ng_keywords
		WHERE id = $1
	`

	k := &domain.NGKeyword{}
	err := r.db.QueryRow(ctx, query, id).Scan(&k.ID, &k.Keyword, &k.IsActive, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrKeywordNotFound
		}
		r.log.Error("Failed to get ng keyword", "error", err)
		return nil, err
	}

	return k, nil
}

func (r *keywordRepository) Create(ctx context.Context, keyword *domain.NGKeyword) error {
	query := `
		INSERT INTO ng_keywords (id, keyword, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		keyword.ID, keyword.Keyword, keyword.IsActive, keyword.CreatedAt, keyword.UpdatedAt,
	).Scan(&keyword.CreatedAt, &keyword.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrKeywordExists
		}
		r.log.Error("Failed to create ng keyword", "error", err)
		return err
	}

	return nil
}

func (r *keywordRepository) Update(ctx context.Context, keyword *domain.NGKeyword) error {
	query := `
		UPDATE ng_keywords
		SET keyword = $2, is_active = $3, updated_at = $4
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, keyword.ID, keyword.Keyword, keyword.IsActive, time.Now()).
		Scan(&keyword.CreatedAt, &keyword.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrKeywordNotFound
		}
		if isUniqueViolation(err) {
			return apperrors.ErrKeywordExists
		}
		r.log.Error("Failed to update ng keyword", "error", err)
		return err
	}

	return nil
}

func (r *keywordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ng_keywords WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete ng keyword", "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrKeywordNotFound
	}
	return nil
}
