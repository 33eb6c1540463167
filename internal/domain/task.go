package domain

import (
	"time"

	"github.com/google/uuid"
)

type TaskKind string

const (
	TaskKindNoJobPostings          TaskKind = "NO_JOB_POSTINGS"
	TaskKindNewApplication         TaskKind = "NEW_APPLICATION"
	TaskKindUnreadMessage          TaskKind = "UNREAD_MESSAGE"
	TaskKindInterviewResultPending TaskKind = "INTERVIEW_RESULT_PENDING"
	TaskKindProfileIncomplete      TaskKind = "PROFILE_INCOMPLETE"
	TaskKindScoutReplyPending      TaskKind = "SCOUT_REPLY_PENDING"
	TaskKindFlaggedMessage         TaskKind = "FLAGGED_MESSAGE"
)

// Task is computed per request and never stored. Lower Priority sorts first.
type Task struct {
	Kind          TaskKind   `json:"kind"`
	Priority      int        `json:"priority"`
	Label         string     `json:"label"`
	RoomID        *uuid.UUID `json:"room_id,omitempty"`
	MessageID     *uuid.UUID `json:"message_id,omitempty"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	ScoutID       *uuid.UUID `json:"scout_id,omitempty"`
	OccurredAt    *time.Time `json:"occurred_at,omitempty"`
}
