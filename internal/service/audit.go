package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/repository"
	"recruit_messaging/pkg/logger"
)

type AuditService interface {
	// LogEvent records an event. A nil actor is recorded as SYSTEM.
	LogEvent(ctx context.Context, actor *domain.Actor, roomID, messageID *uuid.UUID, eventType string, payload map[string]interface{}) error
}

type auditService struct {
	auditRepo repository.AuditRepository
	log       logger.Logger
}

func NewAuditService(auditRepo repository.AuditRepository, log logger.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		log:       log,
	}
}

func (s *auditService) LogEvent(ctx context.Context, actor *domain.Actor, roomID, messageID *uuid.UUID, eventType string, payload map[string]interface{}) error {
	if payload == nil {
		payload = make(map[string]interface{})
	}

	auditLog := &domain.AuditLog{
		EventTime: time.Now().UTC(),
		ActorType: domain.ActorTypeSystem,
		RoomID:    roomID,
		MessageID: messageID,
		EventType: eventType,
		Payload:   payload,
	}
	if actor != nil {
		id := actor.ID
		auditLog.ActorID = &id
		auditLog.ActorType = actor.Type
	}

	if err := s.auditRepo.CreateLog(ctx, auditLog); err != nil {
		s.log.Warn("Audit event dropped", "event_type", eventType, "error", err)
		return err
	}
	return nil
}
