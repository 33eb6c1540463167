package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/repository"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

const (
	defaultMessagePage = 50
	maxMessagePage     = 200
	maxContentLength   = 10000
	maxSubjectLength   = 200
	maxAttachments     = 10
)

type ChatService interface {
	SendMessage(ctx context.Context, actor domain.Actor, input domain.SendMessageInput) (*domain.Message, error)
	// GetMessages lists a room's messages in send order.
	GetMessages(ctx context.Context, roomID uuid.UUID, actor domain.Actor, limit, offset int) ([]*domain.Message, error)
	// MarkRoomRead marks the counterpart's messages read and reports how many
	// changed. Calling it again is a no-op.
	MarkRoomRead(ctx context.Context, roomID uuid.UUID, actor domain.Actor) (int64, error)
	UnreadCount(ctx context.Context, roomID uuid.UUID, actor domain.Actor) (int, error)
}

type chatService struct {
	messageRepo repository.MessageRepository
	rooms       RoomService
	taskCache   cache.Cache
	log         logger.Logger
	now         func() time.Time
}

func NewChatService(messageRepo repository.MessageRepository, rooms RoomService, taskCache cache.Cache, log logger.Logger) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		rooms:       rooms,
		taskCache:   taskCache,
		log:         log,
		now:         time.Now,
	}
}

func validateAttachment(ref string) error {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: attachment %q is not an http(s) URL", apperrors.ErrBadRequest, ref)
	}
	return nil
}

func normalizeInput(input *domain.SendMessageInput) error {
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" {
		return fmt.Errorf("%w: content is required", apperrors.ErrBadRequest)
	}
	if utf8.RuneCountInString(input.Content) > maxContentLength {
		return fmt.Errorf("%w: content exceeds %d characters", apperrors.ErrBadRequest, maxContentLength)
	}

	if input.Subject != nil {
		subject := strings.TrimSpace(*input.Subject)
		if subject == "" {
			input.Subject = nil
		} else if utf8.RuneCountInString(subject) > maxSubjectLength {
			return fmt.Errorf("%w: subject exceeds %d characters", apperrors.ErrBadRequest, maxSubjectLength)
		} else {
			input.Subject = &subject
		}
	}

	if len(input.Attachments) > maxAttachments {
		return fmt.Errorf("%w: at most %d attachments", apperrors.ErrBadRequest, maxAttachments)
	}
	attachments := make([]string, 0, len(input.Attachments))
	for _, ref := range input.Attachments {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if err := validateAttachment(ref); err != nil {
			return err
		}
		attachments = append(attachments, ref)
	}
	input.Attachments = attachments

	return nil
}

func (s *chatService) SendMessage(ctx context.Context, actor domain.Actor, input domain.SendMessageInput) (*domain.Message, error) {
	sender, err := domain.SenderFromActor(actor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrForbidden, err)
	}
	if err := normalizeInput(&input); err != nil {
		return nil, err
	}

	// Проверка доступа к комнате
	room, err := s.rooms.GetRoomForActor(ctx, input.RoomID, actor)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:          uuid.New(),
		RoomID:      room.ID,
		Sender:      sender,
		Subject:     input.Subject,
		Content:     input.Content,
		Attachments: input.Attachments,
		Status:      domain.MessageStatusSent,
		SentAt:      s.now().UTC(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		s.log.Error("Failed to send message", "room_id", room.ID, "sender_type", sender.Type(), "error", err)
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.invalidateTasks(ctx, room)

	return message, nil
}

func (s *chatService) GetMessages(ctx context.Context, roomID uuid.UUID, actor domain.Actor, limit, offset int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = defaultMessagePage
	}
	if limit > maxMessagePage {
		limit = maxMessagePage
	}
	if offset < 0 {
		offset = 0
	}

	room, err := s.rooms.GetRoomForActor(ctx, roomID, actor)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByRoom(ctx, room.ID, limit, offset)
	if err != nil {
		s.log.Error("Message list degraded to empty", "room_id", room.ID, "error", err)
		return []*domain.Message{}, nil
	}
	if messages == nil {
		return []*domain.Message{}, nil
	}

	SortMessages(messages)
	return messages, nil
}

// SortMessages orders messages by sent_at, breaking ties by id.
func SortMessages(messages []*domain.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].SentAt.Equal(messages[j].SentAt) {
			return messages[i].SentAt.Before(messages[j].SentAt)
		}
		return messages[i].ID.String() < messages[j].ID.String()
	})
}

func (s *chatService) MarkRoomRead(ctx context.Context, roomID uuid.UUID, actor domain.Actor) (int64, error) {
	room, err := s.rooms.GetRoomForActor(ctx, roomID, actor)
	if err != nil {
		return 0, err
	}

	changed, err := s.messageRepo.MarkRead(ctx, room.ID, actor.Type, s.now().UTC())
	if err != nil {
		s.log.Error("Failed to mark room read", "room_id", room.ID, "viewer", actor.Type, "error", err)
		return 0, fmt.Errorf("failed to mark room read: %w", err)
	}

	if changed > 0 {
		s.invalidateTasks(ctx, room)
	}

	return changed, nil
}

func (s *chatService) UnreadCount(ctx context.Context, roomID uuid.UUID, actor domain.Actor) (int, error) {
	room, err := s.rooms.GetRoomForActor(ctx, roomID, actor)
	if err != nil {
		return 0, err
	}

	return s.messageRepo.CountUnread(ctx, room.ID, actor.Type)
}

func (s *chatService) invalidateTasks(ctx context.Context, room *domain.Room) {
	if s.taskCache == nil {
		return
	}
	if err := s.taskCache.Invalidate(ctx, roomTaskKeys(room)...); err != nil {
		s.log.Warn("Failed to invalidate task cache", "room_id", room.ID, "error", err)
	}
}
