package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"recruit_messaging/internal/domain"
	"recruit_messaging/pkg/logger"
)

const ModerationResolvedChannel = "moderation.resolved"

// EventPublisher hands notifications to the notification service over redis
// pub/sub. Delivery is fire-and-forget.
type EventPublisher interface {
	PublishModerationResolved(ctx context.Context, event *domain.ModerationResolvedEvent) error
}

type eventPublisher struct {
	rdb *redis.Client
	log logger.Logger
}

func NewEventPublisher(rdb *redis.Client, log logger.Logger) EventPublisher {
	return &eventPublisher{rdb: rdb, log: log}
}

func (p *eventPublisher) PublishModerationResolved(ctx context.Context, event *domain.ModerationResolvedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.rdb.Publish(ctx, ModerationResolvedChannel, payload).Err(); err != nil {
		p.log.Error("Failed to publish moderation event", "message_id", event.MessageID, "error", err)
		return err
	}

	return nil
}
