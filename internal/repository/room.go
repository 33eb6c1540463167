package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"recruit_messaging/internal/domain"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

type RoomRepository interface {
	FindByTriple(ctx context.Context, candidateID, companyGroupID uuid.UUID, jobPostingID *uuid.UUID) (*domain.Room, error)
	// CreateWithParticipants inserts the room and its participants in one
	// transaction. When a concurrent request already created the room for
	// the same triple, room is overwritten with the stored row and created is
	// false.
	CreateWithParticipants(ctx context.Context, room *domain.Room, participants []*domain.Participant) (created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	ListForSide(ctx context.Context, side domain.ActorType, sideID uuid.UUID, limit int) ([]*domain.Room, error)
	GetParticipants(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error)
}

type roomRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewRoomRepository(db *pgxpool.Pool, log logger.Logger) RoomRepository {
	return &roomRepository{db: db, log: log}
}

const roomColumns = `id, candidate_id, company_group_id, job_posting_id, created_at, updated_at`

func scanRoom(row pgx.Row) (*domain.Room, error) {
	room := &domain.Room{}
	err := row.Scan(&room.ID, &room.CandidateID, &room.CompanyGroupID, &room.JobPostingID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) FindByTriple(ctx context.Context, candidateID, companyGroupID uuid.UUID, jobPostingID *uuid.UUID) (*domain.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE candidate_id = $1 AND company_group_id = $2 AND job_posting_id IS NOT DISTINCT FROM $3
	`

	room, err := scanRoom(r.db.QueryRow(ctx, query, candidateID, companyGroupID, jobPostingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		r.log.Error("Failed to find room", "candidate_id", candidateID, "company_group_id", companyGroupID, "error", err)
		return nil, err
	}

	return room, nil
}

func (r *roomRepository) CreateWithParticipants(ctx context.Context, room *domain.Room, participants []*domain.Participant) (bool, error) {
	if len(participants) == 0 {
		return false, fmt.Errorf("%w: no participants given", apperrors.ErrRoomIntegrity)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin room transaction", "error", err)
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO rooms (id, candidate_id, company_group_id, job_posting_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		room.ID, room.CandidateID, room.CompanyGroupID, room.JobPostingID, room.CreatedAt, room.UpdatedAt,
	).Scan(&room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = tx.Rollback(ctx)
		existing, findErr := r.FindByTriple(ctx, room.CandidateID, room.CompanyGroupID, room.JobPostingID)
		if findErr != nil {
			return false, findErr
		}
		*room = *existing
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to create room", "error", err)
		return false, err
	}

	participantQuery := `
		INSERT INTO room_participants (id, room_id, participant_type, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, p := range participants {
		p.RoomID = room.ID
		if _, err := tx.Exec(ctx, participantQuery, p.ID, p.RoomID, p.ActorType, p.ActorID, p.CreatedAt); err != nil {
			r.log.Error("Failed to create room participant", "room_id", room.ID, "participant_type", p.ActorType, "error", err)
			return false, fmt.Errorf("%w: %v", apperrors.ErrRoomIntegrity, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit room", "room_id", room.ID, "error", err)
		return false, err
	}

	return true, nil
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		r.log.Error("Failed to get room by ID", "error", err)
		return nil, err
	}

	return room, nil
}

// sideColumn maps a participant side to the rooms column holding its id.
func sideColumn(side domain.ActorType) (string, error) {
	switch side {
	case domain.ActorTypeCandidate:
		return "candidate_id", nil
	case domain.ActorTypeCompanyUser:
		return "company_group_id", nil
	default:
		return "", fmt.Errorf("%w: actor type %q has no room side", apperrors.ErrBadRequest, side)
	}
}

func (r *roomRepository) ListForSide(ctx context.Context, side domain.ActorType, sideID uuid.UUID, limit int) ([]*domain.Room, error) {
	column, err := sideColumn(side)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE ` + column + ` = $1
		ORDER BY updated_at DESC, id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, sideID, limit)
	if err != nil {
		r.log.Error("Failed to list rooms", "error", err)
		return nil, err
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room", "error", err)
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) GetParticipants(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error) {
	query := `
		SELECT id, room_id, participant_type, actor_id, created_at
		FROM room_participants
		WHERE room_id = $1
		ORDER BY created_at, participant_type
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to get participants", "error", err)
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		p := &domain.Participant{}
		if err := rows.Scan(&p.ID, &p.RoomID, &p.ActorType, &p.ActorID, &p.CreatedAt); err != nil {
			r.log.Error("Failed to scan participant", "error", err)
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}
