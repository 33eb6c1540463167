package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        int64                  `json:"id"`
	EventTime time.Time              `json:"event_time"`
	ActorID   *uuid.UUID             `json:"actor_id,omitempty"`
	ActorType ActorType              `json:"actor_type"`
	RoomID    *uuid.UUID             `json:"room_id,omitempty"`
	MessageID *uuid.UUID             `json:"message_id,omitempty"`
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
}

const ActorTypeSystem ActorType = "SYSTEM"

const (
	EventTypeRoomCreated          = "ROOM_CREATED"
	EventTypeMessagesFlagged      = "MESSAGES_FLAGGED"
	EventTypeModerationResolved   = "MODERATION_RESOLVED"
	EventTypeModerationOverridden = "MODERATION_OVERRIDDEN"
)
