package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room is the conversation between one candidate and one company group,
// optionally scoped to a job posting. Rooms are never deleted.
type Room struct {
	ID             uuid.UUID  `json:"id"`
	CandidateID    uuid.UUID  `json:"candidate_id"`
	CompanyGroupID uuid.UUID  `json:"company_group_id"`
	JobPostingID   *uuid.UUID `json:"job_posting_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Participant is created together with its room and never changes.
type Participant struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	ActorType ActorType `json:"participant_type"`
	ActorID   uuid.UUID `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomSummary is a room prepared for a conversation list.
type RoomSummary struct {
	Room
	LastMessage *Message `json:"last_message,omitempty"`
	UnreadCount int      `json:"unread_count"`
}

// UnreadRoom aggregates the unread messages a viewer has in one room.
type UnreadRoom struct {
	RoomID          uuid.UUID `json:"room_id"`
	Count           int       `json:"count"`
	LatestMessageID uuid.UUID `json:"latest_message_id"`
	LatestSentAt    time.Time `json:"latest_sent_at"`
}

// CompanyUser is read from the platform's company directory.
type CompanyUser struct {
	ID             uuid.UUID `json:"id"`
	CompanyGroupID uuid.UUID `json:"company_group_id"`
	DisplayName    string    `json:"display_name"`
}

// HasAccess reports whether the actor may read or write the room. Company
// users are resolved to their group beforehand; companyGroupID is ignored
// for other actor types.
func (r *Room) HasAccess(actor Actor, companyGroupID uuid.UUID) bool {
	switch actor.Type {
	case ActorTypeCandidate:
		return r.CandidateID == actor.ID
	case ActorTypeCompanyUser:
		return r.CompanyGroupID == companyGroupID
	default:
		return false
	}
}

// SideID is the id that identifies the viewer's side of a room: the
// candidate id for candidates, the company group for company users.
func (r *Room) SideID(side ActorType) uuid.UUID {
	if side == ActorTypeCandidate {
		return r.CandidateID
	}
	return r.CompanyGroupID
}
