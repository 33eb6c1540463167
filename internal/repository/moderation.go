package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"recruit_messaging/internal/domain"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

type ModerationRepository interface {
	// MarkAwaiting moves flagged messages into AWAITING_REVIEW. Rows already
	// APPROVED or REJECTED are left untouched. It returns the number of
	// records inserted or changed.
	MarkAwaiting(ctx context.Context, flagged []*domain.FlaggedMessage, at time.Time) (int64, error)
	GetByMessageID(ctx context.Context, messageID uuid.UUID) (*domain.ModerationRecord, error)
	ListQueue(ctx context.Context, filter domain.ModerationFilter) ([]*domain.ModerationQueueItem, error)
	// Resolve stores the decision on a record the scan already flagged and
	// returns the status it replaced. Unflagged messages get ErrNotUnderReview.
	Resolve(ctx context.Context, res domain.Resolution, at time.Time) (domain.ApprovalStatus, *domain.ModerationRecord, error)
}

type moderationRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewModerationRepository(db *pgxpool.Pool, log logger.Logger) ModerationRepository {
	return &moderationRepository{db: db, log: log}
}

const moderationColumns = `mm.message_id, mm.status, mm.matched_keywords, mm.reviewer_id, mm.reason, mm.reviewer_comment,
		mm.linked_application_id, mm.resolved_at, mm.version, mm.updated_at`

func moderationDest(rec *domain.ModerationRecord) []interface{} {
	return []interface{}{
		&rec.MessageID, &rec.Status, &rec.MatchedKeywords, &rec.ReviewerID, &rec.Reason, &rec.ReviewerComment,
		&rec.LinkedApplicationID, &rec.ResolvedAt, &rec.Version, &rec.UpdatedAt,
	}
}

func nullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (r *moderationRepository) MarkAwaiting(ctx context.Context, flagged []*domain.FlaggedMessage, at time.Time) (int64, error) {
	if len(flagged) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO message_moderations (message_id, status, matched_keywords, version, updated_at)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (message_id) DO UPDATE
		SET status = EXCLUDED.status,
		    matched_keywords = EXCLUDED.matched_keywords,
		    version = message_moderations.version + 1,
		    updated_at = EXCLUDED.updated_at
		WHERE message_moderations.status = $5
		   OR (message_moderations.status = $2 AND message_moderations.matched_keywords IS DISTINCT FROM EXCLUDED.matched_keywords)
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin moderation transaction", "error", err)
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, f := range flagged {
		batch.Queue(query, f.Message.ID, domain.ApprovalStatusAwaitingReview, f.MatchedKeywords, at, domain.ApprovalStatusUnhandled)
	}

	results := tx.SendBatch(ctx, batch)
	var changed int64
	for range flagged {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			r.log.Error("Failed to mark message awaiting review", "error", err)
			return 0, err
		}
		changed += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		r.log.Error("Failed to close moderation batch", "error", err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit moderation batch", "error", err)
		return 0, err
	}

	return changed, nil
}

func (r *moderationRepository) GetByMessageID(ctx context.Context, messageID uuid.UUID) (*domain.ModerationRecord, error) {
	query := `SELECT ` + moderationColumns + ` FROM message_moderations mm WHERE mm.message_id = $1`

	rec := &domain.ModerationRecord{}
	if err := r.db.QueryRow(ctx, query, messageID).Scan(moderationDest(rec)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get moderation record", "message_id", messageID, "error", err)
		return nil, err
	}

	return rec, nil
}

func (r *moderationRepository) ListQueue(ctx context.Context, filter domain.ModerationFilter) ([]*domain.ModerationQueueItem, error) {
	query := `
		SELECT ` + messageColumns + `,
		       r.id, r.candidate_id, r.company_group_id, r.job_posting_id, r.created_at, r.updated_at,
		       COALESCE(c.full_name, ''), COALESCE(g.name, ''), jp.title,
		       ` + moderationColumns + `
		FROM message_moderations mm
		JOIN messages m ON m.id = mm.message_id
		JOIN rooms r ON r.id = m.room_id
		LEFT JOIN candidates c ON c.id = r.candidate_id
		LEFT JOIN company_groups g ON g.id = r.company_group_id
		LEFT JOIN job_postings jp ON jp.id = r.job_posting_id
		WHERE mm.status = $1
		ORDER BY m.sent_at ASC, m.id ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, filter.Status, filter.Limit)
	if err != nil {
		r.log.Error("Failed to list moderation queue", "error", err)
		return nil, err
	}
	defer rows.Close()

	var items []*domain.ModerationQueueItem
	for rows.Next() {
		item := &domain.ModerationQueueItem{}
		extra := []interface{}{
			&item.Room.ID, &item.Room.CandidateID, &item.Room.CompanyGroupID, &item.Room.JobPostingID,
			&item.Room.CreatedAt, &item.Room.UpdatedAt,
			&item.CandidateName, &item.CompanyName, &item.JobPostingTitle,
		}
		extra = append(extra, moderationDest(&item.Moderation)...)

		message, err := scanMessage(rows, extra...)
		if err != nil {
			r.log.Error("Failed to scan moderation queue item", "error", err)
			return nil, err
		}
		item.Message = message
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *moderationRepository) Resolve(ctx context.Context, res domain.Resolution, at time.Time) (domain.ApprovalStatus, *domain.ModerationRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin resolution transaction", "error", err)
		return "", nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM messages WHERE id = $1)`, res.MessageID).Scan(&exists); err != nil {
		r.log.Error("Failed to check message", "message_id", res.MessageID, "error", err)
		return "", nil, err
	}
	if !exists {
		return "", nil, apperrors.ErrMessageNotFound
	}

	var previous domain.ApprovalStatus
	var version int
	err = tx.QueryRow(ctx, `SELECT status, version FROM message_moderations WHERE message_id = $1 FOR UPDATE`, res.MessageID).
		Scan(&previous, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ApprovalStatusUnhandled, nil, apperrors.ErrNotUnderReview
		}
		r.log.Error("Failed to lock moderation record", "message_id", res.MessageID, "error", err)
		return "", nil, err
	}
	// Только сообщения, прошедшие сканирование
	if previous == domain.ApprovalStatusUnhandled {
		return previous, nil, apperrors.ErrNotUnderReview
	}

	if res.ExpectedVersion != nil && *res.ExpectedVersion != version {
		return previous, nil, apperrors.ErrModerationConflict
	}

	query := `
		UPDATE message_moderations AS mm
		SET status = $2,
		    reviewer_id = $3,
		    reason = $4,
		    reviewer_comment = $5,
		    linked_application_id = $6,
		    resolved_at = $7,
		    version = mm.version + 1,
		    updated_at = $7
		WHERE mm.message_id = $1
		RETURNING ` + moderationColumns

	rec := &domain.ModerationRecord{}
	err = tx.QueryRow(ctx, query,
		res.MessageID, res.Decision, res.ReviewerID, nullableString(res.Reason), nullableString(res.Comment),
		res.ApplicationID, at,
	).Scan(moderationDest(rec)...)
	if err != nil {
		r.log.Error("Failed to resolve moderation", "message_id", res.MessageID, "error", err)
		return "", nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit resolution", "message_id", res.MessageID, "error", err)
		return "", nil, err
	}

	return previous, rec, nil
}
