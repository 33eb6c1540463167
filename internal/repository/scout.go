package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"recruit_messaging/internal/domain"
	"recruit_messaging/pkg/logger"
)

type ScoutRepository interface {
	// ListAwaitingReply returns scouts sent to the candidate before
	// sentBefore that were never replied to, oldest first.
	ListAwaitingReply(ctx context.Context, candidateID uuid.UUID, sentBefore time.Time, limit int) ([]*domain.Scout, error)
}

type scoutRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewScoutRepository(db *pgxpool.Pool, log logger.Logger) ScoutRepository {
	return &scoutRepository{db: db, log: log}
}

func (r *scoutRepository) ListAwaitingReply(ctx context.Context, candidateID uuid.UUID, sentBefore time.Time, limit int) ([]*domain.Scout, error) {
	query := `
		SELECT s.id, s.candidate_id, s.company_group_id, COALESCE(g.name, ''), s.room_id, s.sent_at, s.replied_at
		FROM scouts s
		LEFT JOIN company_groups g ON g.id = s.company_group_id
		WHERE s.candidate_id = $1 AND s.replied_at IS NULL AND s.sent_at < $2
		ORDER BY s.sent_at ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, candidateID, sentBefore, limit)
	if err != nil {
		r.log.Error("Failed to list scouts awaiting reply", "error", err)
		return nil, err
	}
	defer rows.Close()

	var scouts []*domain.Scout
	for rows.Next() {
		s := &domain.Scout{}
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.CompanyGroupID, &s.CompanyName, &s.RoomID, &s.SentAt, &s.RepliedAt); err != nil {
			r.log.Error("Failed to scan scout", "error", err)
			return nil, err
		}
		scouts = append(scouts, s)
	}

	return scouts, rows.Err()
}
