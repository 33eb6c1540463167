package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/repository"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

const roomListLimit = 100

type RoomService interface {
	// GetOrCreateRoom returns the room for (candidate, company group of the
	// company user, job posting), creating it with both participants on first
	// contact. created reports whether this call created it.
	GetOrCreateRoom(ctx context.Context, actor domain.Actor, candidateID, companyUserID uuid.UUID, jobPostingID *uuid.UUID) (room *domain.Room, created bool, err error)
	ListRooms(ctx context.Context, actor domain.Actor) ([]*domain.RoomSummary, error)
	GetRoomForActor(ctx context.Context, roomID uuid.UUID, actor domain.Actor) (*domain.Room, error)
	GetParticipants(ctx context.Context, roomID uuid.UUID, actor domain.Actor) ([]*domain.Participant, error)
}

type roomService struct {
	roomRepo      repository.RoomRepository
	messageRepo   repository.MessageRepository
	companyRepo   repository.CompanyRepository
	candidateRepo repository.CandidateRepository
	audit         AuditService
	log           logger.Logger
	now           func() time.Time
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	messageRepo repository.MessageRepository,
	companyRepo repository.CompanyRepository,
	candidateRepo repository.CandidateRepository,
	audit AuditService,
	log logger.Logger,
) RoomService {
	return &roomService{
		roomRepo:      roomRepo,
		messageRepo:   messageRepo,
		companyRepo:   companyRepo,
		candidateRepo: candidateRepo,
		audit:         audit,
		log:           log,
		now:           time.Now,
	}
}

func (s *roomService) GetOrCreateRoom(ctx context.Context, actor domain.Actor, candidateID, companyUserID uuid.UUID, jobPostingID *uuid.UUID) (*domain.Room, bool, error) {
	if candidateID == uuid.Nil || companyUserID == uuid.Nil {
		return nil, false, fmt.Errorf("%w: candidate_id and company_user_id are required", apperrors.ErrBadRequest)
	}
	if jobPostingID != nil && *jobPostingID == uuid.Nil {
		jobPostingID = nil
	}

	switch actor.Type {
	case domain.ActorTypeCandidate:
		if actor.ID != candidateID {
			return nil, false, fmt.Errorf("%w: candidates may only open their own rooms", apperrors.ErrForbidden)
		}
	case domain.ActorTypeCompanyUser:
		if actor.ID != companyUserID {
			return nil, false, fmt.Errorf("%w: company users may only open rooms as themselves", apperrors.ErrForbidden)
		}
	default:
		return nil, false, fmt.Errorf("%w: %s actors cannot open rooms", apperrors.ErrForbidden, actor.Type)
	}

	// Группа компании определяется по пользователю
	companyUser, err := s.companyRepo.GetUser(ctx, companyUserID)
	if err != nil {
		return nil, false, err
	}
	if _, err := s.candidateRepo.GetProfile(ctx, candidateID); err != nil {
		return nil, false, err
	}

	existing, err := s.roomRepo.FindByTriple(ctx, candidateID, companyUser.CompanyGroupID, jobPostingID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrRoomNotFound) {
		return nil, false, fmt.Errorf("failed to look up room: %w", err)
	}

	now := s.now().UTC()
	room := &domain.Room{
		ID:             uuid.New(),
		CandidateID:    candidateID,
		CompanyGroupID: companyUser.CompanyGroupID,
		JobPostingID:   jobPostingID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	participants := []*domain.Participant{
		{ID: uuid.New(), ActorType: domain.ActorTypeCandidate, ActorID: candidateID, CreatedAt: now},
		{ID: uuid.New(), ActorType: domain.ActorTypeCompanyUser, ActorID: companyUserID, CreatedAt: now},
	}

	created, err := s.roomRepo.CreateWithParticipants(ctx, room, participants)
	if err != nil {
		s.log.Error("Failed to create room", "candidate_id", candidateID, "company_group_id", companyUser.CompanyGroupID, "error", err)
		return nil, false, fmt.Errorf("failed to create room: %w", err)
	}

	// Аудит
	if created {
		payload := map[string]interface{}{
			"candidate_id":     candidateID.String(),
			"company_group_id": companyUser.CompanyGroupID.String(),
		}
		if jobPostingID != nil {
			payload["job_posting_id"] = jobPostingID.String()
		}
		_ = s.audit.LogEvent(ctx, &actor, &room.ID, nil, domain.EventTypeRoomCreated, payload)
	}

	return room, created, nil
}

func (s *roomService) ListRooms(ctx context.Context, actor domain.Actor) ([]*domain.RoomSummary, error) {
	sideID, err := resolveSide(ctx, s.companyRepo, actor)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.ListForSide(ctx, actor.Type, sideID, roomListLimit)
	if err != nil {
		s.log.Error("Room list degraded to empty", "actor_type", actor.Type, "actor_id", actor.ID, "error", err)
		return []*domain.RoomSummary{}, nil
	}
	if len(rooms) == 0 {
		return []*domain.RoomSummary{}, nil
	}

	ids := make([]uuid.UUID, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	var latest map[uuid.UUID]*domain.Message
	var unread map[uuid.UUID]int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = s.messageRepo.LatestByRooms(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = s.messageRepo.CountUnreadByRooms(gctx, ids, actor.Type)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Room list degraded to empty", "actor_type", actor.Type, "actor_id", actor.ID, "error", err)
		return []*domain.RoomSummary{}, nil
	}

	summaries := make([]*domain.RoomSummary, len(rooms))
	for i, room := range rooms {
		summaries[i] = &domain.RoomSummary{
			Room:        *room,
			LastMessage: latest[room.ID],
			UnreadCount: unread[room.ID],
		}
	}

	return summaries, nil
}

func (s *roomService) GetRoomForActor(ctx context.Context, roomID uuid.UUID, actor domain.Actor) (*domain.Room, error) {
	if !actor.Type.IsParticipant() {
		return nil, apperrors.ErrNotParticipant
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var companyGroupID uuid.UUID
	if actor.Type == domain.ActorTypeCompanyUser {
		companyGroupID, err = resolveSide(ctx, s.companyRepo, actor)
		if err != nil {
			return nil, err
		}
	}

	if !room.HasAccess(actor, companyGroupID) {
		return nil, apperrors.ErrNotParticipant
	}

	return room, nil
}

func (s *roomService) GetParticipants(ctx context.Context, roomID uuid.UUID, actor domain.Actor) ([]*domain.Participant, error) {
	room, err := s.GetRoomForActor(ctx, roomID, actor)
	if err != nil {
		return nil, err
	}

	participants, err := s.roomRepo.GetParticipants(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		s.log.Error("Room has no participants", "room_id", room.ID)
		return nil, fmt.Errorf("%w: room %s", apperrors.ErrRoomIntegrity, room.ID)
	}

	return participants, nil
}
