package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"recruit_messaging/internal/domain"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

// MessageRepository is the append-only message store. The only update it
// performs on a message is the SENT -> READ transition.
type MessageRepository interface {
	// Create inserts the message and bumps the room's updated_at in the same
	// transaction.
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*domain.Message, error)
	LatestByRooms(ctx context.Context, roomIDs []uuid.UUID) (map[uuid.UUID]*domain.Message, error)
	CountUnread(ctx context.Context, roomID uuid.UUID, viewer domain.ActorType) (int, error)
	CountUnreadByRooms(ctx context.Context, roomIDs []uuid.UUID, viewer domain.ActorType) (map[uuid.UUID]int, error)
	// MarkRead flips the counterpart's SENT messages to READ and returns the
	// number of rows changed. A repeated call changes nothing.
	MarkRead(ctx context.Context, roomID uuid.UUID, viewer domain.ActorType, at time.Time) (int64, error)
	ListUnreadRooms(ctx context.Context, viewer domain.ActorType, sideID uuid.UUID, limit int) ([]*domain.UnreadRoom, error)
	// ListRecentForScan returns the newest messages by senderType together
	// with their moderation status.
	ListRecentForScan(ctx context.Context, senderType domain.ActorType, limit int) ([]*domain.ScanCandidate, error)
}

type messageRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewMessageRepository(db *pgxpool.Pool, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

const messageColumns = `m.id, m.room_id, m.sender_type, m.sender_id, m.subject, m.content, m.attachments, m.status, m.sent_at, m.read_at`

// scanMessage reads messageColumns followed by any extra destinations.
func scanMessage(row pgx.Row, extra ...interface{}) (*domain.Message, error) {
	message := &domain.Message{}
	var senderType domain.ActorType
	var senderID uuid.UUID

	dest := []interface{}{
		&message.ID, &message.RoomID, &senderType, &senderID, &message.Subject,
		&message.Content, &message.Attachments, &message.Status, &message.SentAt, &message.ReadAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	sender, err := domain.NewSender(senderType, senderID)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", message.ID, err)
	}
	message.Sender = sender

	return message, nil
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	if message.Sender == nil {
		return fmt.Errorf("%w: message has no sender", apperrors.ErrBadRequest)
	}
	attachments := message.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin message transaction", "error", err)
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO messages (id, room_id, sender_type, sender_id, subject, content, attachments, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING sent_at
	`

	err = tx.QueryRow(ctx, query,
		message.ID, message.RoomID, message.Sender.Type(), message.Sender.ActorID(), message.Subject,
		message.Content, attachments, message.Status, message.SentAt,
	).Scan(&message.SentAt)
	if err != nil {
		r.log.Error("Failed to create message", "room_id", message.RoomID, "error", err)
		return err
	}

	tag, err := tx.Exec(ctx, `UPDATE rooms SET updated_at = $2 WHERE id = $1`, message.RoomID, message.SentAt)
	if err != nil {
		r.log.Error("Failed to bump room", "room_id", message.RoomID, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit message", "room_id", message.RoomID, "error", err)
		return err
	}

	message.Attachments = attachments
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages m WHERE m.id = $1`

	message, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		r.log.Error("Failed to get message", "error", err)
		return nil, err
	}

	return message, nil
}

func (r *messageRepository) ListByRoom(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages m
		WHERE m.room_id = $1
		ORDER BY m.sent_at ASC, m.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		r.log.Error("Failed to get messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (r *messageRepository) LatestByRooms(ctx context.Context, roomIDs []uuid.UUID) (map[uuid.UUID]*domain.Message, error) {
	latest := make(map[uuid.UUID]*domain.Message, len(roomIDs))
	if len(roomIDs) == 0 {
		return latest, nil
	}

	query := `
		SELECT DISTINCT ON (m.room_id) ` + messageColumns + `
		FROM messages m
		WHERE m.room_id = ANY($1)
		ORDER BY m.room_id, m.sent_at DESC, m.id DESC
	`

	rows, err := r.db.Query(ctx, query, roomIDs)
	if err != nil {
		r.log.Error("Failed to get latest messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		latest[message.RoomID] = message
	}

	return latest, rows.Err()
}

func counterpartOf(viewer domain.ActorType) (domain.ActorType, error) {
	other := viewer.Counterpart()
	if other == "" {
		return "", fmt.Errorf("%w: actor type %q has no counterpart", apperrors.ErrBadRequest, viewer)
	}
	return other, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, roomID uuid.UUID, viewer domain.ActorType) (int, error) {
	other, err := counterpartOf(viewer)
	if err != nil {
		return 0, err
	}

	query := `
		SELECT COUNT(*)
		FROM messages
		WHERE room_id = $1 AND sender_type = $2 AND status <> $3
	`

	var count int
	if err := r.db.QueryRow(ctx, query, roomID, other, domain.MessageStatusRead).Scan(&count); err != nil {
		r.log.Error("Failed to count unread messages", "room_id", roomID, "error", err)
		return 0, err
	}

	return count, nil
}

func (r *messageRepository) CountUnreadByRooms(ctx context.Context, roomIDs []uuid.UUID, viewer domain.ActorType) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(roomIDs))
	if len(roomIDs) == 0 {
		return counts, nil
	}
	other, err := counterpartOf(viewer)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT room_id, COUNT(*)
		FROM messages
		WHERE room_id = ANY($1) AND sender_type = $2 AND status <> $3
		GROUP BY room_id
	`

	rows, err := r.db.Query(ctx, query, roomIDs, other, domain.MessageStatusRead)
	if err != nil {
		r.log.Error("Failed to count unread messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var roomID uuid.UUID
		var count int
		if err := rows.Scan(&roomID, &count); err != nil {
			r.log.Error("Failed to scan unread count", "error", err)
			return nil, err
		}
		counts[roomID] = count
	}

	return counts, rows.Err()
}

func (r *messageRepository) MarkRead(ctx context.Context, roomID uuid.UUID, viewer domain.ActorType, at time.Time) (int64, error) {
	other, err := counterpartOf(viewer)
	if err != nil {
		return 0, err
	}

	query := `
		UPDATE messages
		SET status = $3, read_at = $4
		WHERE room_id = $1 AND sender_type = $2 AND status = $5
	`

	tag, err := r.db.Exec(ctx, query, roomID, other, domain.MessageStatusRead, at, domain.MessageStatusSent)
	if err != nil {
		r.log.Error("Failed to mark messages read", "room_id", roomID, "error", err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *messageRepository) ListUnreadRooms(ctx context.Context, viewer domain.ActorType, sideID uuid.UUID, limit int) ([]*domain.UnreadRoom, error) {
	other, err := counterpartOf(viewer)
	if err != nil {
		return nil, err
	}
	column, err := sideColumn(viewer)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT m.room_id, COUNT(*), (array_agg(m.id ORDER BY m.sent_at DESC, m.id DESC))[1], MAX(m.sent_at)
		FROM messages m
		JOIN rooms r ON r.id = m.room_id
		WHERE r.` + column + ` = $1 AND m.sender_type = $2 AND m.status <> $3
		GROUP BY m.room_id
		ORDER BY MAX(m.sent_at) DESC
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, sideID, other, domain.MessageStatusRead, limit)
	if err != nil {
		r.log.Error("Failed to list unread rooms", "error", err)
		return nil, err
	}
	defer rows.Close()

	var unread []*domain.UnreadRoom
	for rows.Next() {
		u := &domain.UnreadRoom{}
		if err := rows.Scan(&u.RoomID, &u.Count, &u.LatestMessageID, &u.LatestSentAt); err != nil {
			r.log.Error("Failed to scan unread room", "error", err)
			return nil, err
		}
		unread = append(unread, u)
	}

	return unread, rows.Err()
}

func (r *messageRepository) ListRecentForScan(ctx context.Context, senderType domain.ActorType, limit int) ([]*domain.ScanCandidate, error) {
	query := `
		SELECT ` + messageColumns + `, COALESCE(mm.status, $3)
		FROM messages m
		LEFT JOIN message_moderations mm ON mm.message_id = m.id
		WHERE m.sender_type = $1
		ORDER BY m.sent_at DESC, m.id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, senderType, limit, domain.ApprovalStatusUnhandled)
	if err != nil {
		r.log.Error("Failed to list messages for scan", "error", err)
		return nil, err
	}
	defer rows.Close()

	var candidates []*domain.ScanCandidate
	for rows.Next() {
		var status domain.ApprovalStatus
		message, err := scanMessage(rows, &status)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		candidates = append(candidates, &domain.ScanCandidate{Message: message, Status: status})
	}

	return candidates, rows.Err()
}
