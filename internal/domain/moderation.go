package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NGKeyword struct {
	ID        uuid.UUID `json:"id"`
	Keyword   string    `json:"keyword"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ApprovalStatus string

const (
	ApprovalStatusUnhandled      ApprovalStatus = "UNHANDLED"
	ApprovalStatusAwaitingReview ApprovalStatus = "AWAITING_REVIEW"
	ApprovalStatusApproved       ApprovalStatus = "APPROVED"
	ApprovalStatusRejected       ApprovalStatus = "REJECTED"
)

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch st := ApprovalStatus(s); st {
	case ApprovalStatusUnhandled, ApprovalStatusAwaitingReview, ApprovalStatusApproved, ApprovalStatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown approval status %q", s)
	}
}

// IsTerminal is true for decisions; terminal messages never re-enter review.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// IsDecision reports whether an admin may resolve a message to this status.
func (s ApprovalStatus) IsDecision() bool {
	return s.IsTerminal()
}

// ModerationRecord is the review state attached to a message. Messages
// without a stored record are UNHANDLED.
type ModerationRecord struct {
	MessageID           uuid.UUID      `json:"message_id"`
	Status              ApprovalStatus `json:"status"`
	MatchedKeywords     []string       `json:"matched_keywords"`
	ReviewerID          *uuid.UUID     `json:"reviewer_id,omitempty"`
	Reason              *string        `json:"reason,omitempty"`
	ReviewerComment     *string        `json:"reviewer_comment,omitempty"`
	LinkedApplicationID *uuid.UUID     `json:"linked_application_id,omitempty"`
	ResolvedAt          *time.Time     `json:"resolved_at,omitempty"`
	Version             int            `json:"version"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// ScanCandidate is a message inside the scan window with its current status.
type ScanCandidate struct {
	Message *Message
	Status  ApprovalStatus
}

type FlaggedMessage struct {
	Message         *Message       `json:"message"`
	MatchedKeywords []string       `json:"matched_keywords"`
	Status          ApprovalStatus `json:"status"`
}

type ModerationFilter struct {
	Status ApprovalStatus
	Limit  int
}

type ModerationQueueItem struct {
	Message         *Message                    `json:"message"`
	Room            Room                        `json:"room"`
	CandidateName   string                      `json:"candidate_name"`
	CompanyName     string                      `json:"company_name"`
	JobPostingTitle *string                     `json:"job_posting_title,omitempty"`
	Moderation      ModerationRecord            `json:"moderation"`
	Application     Enrichment[*ApplicationRef] `json:"application"`
}

// Resolution is an admin decision on a flagged message. ExpectedVersion
// turns the update into a compare-and-set; nil means last writer wins.
type Resolution struct {
	MessageID       uuid.UUID
	Decision        ApprovalStatus
	ReviewerID      uuid.UUID
	Reason          string
	Comment         string
	ApplicationID   *uuid.UUID
	ExpectedVersion *int
}

// EnrichmentError records why optional context could not be attached.
type EnrichmentError struct {
	Source string
	Err    error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrich %s: %v", e.Source, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// Enrichment carries either an optional value or the reason it is missing.
// A zero Enrichment means "nothing to attach".
type Enrichment[T any] struct {
	Value T
	Err   *EnrichmentError
}

func Enriched[T any](v T) Enrichment[T] {
	return Enrichment[T]{Value: v}
}

func EnrichmentFailed[T any](source string, err error) Enrichment[T] {
	return Enrichment[T]{Err: &EnrichmentError{Source: source, Err: err}}
}

func (e Enrichment[T]) OK() bool {
	return e.Err == nil
}

func (e Enrichment[T]) MarshalJSON() ([]byte, error) {
	out := struct {
		Value T       `json:"value"`
		Error *string `json:"error,omitempty"`
	}{Value: e.Value}
	if e.Err != nil {
		msg := e.Err.Error()
		out.Error = &msg
	}
	return json.Marshal(out)
}

// ModerationResolvedEvent is published after every resolution so other
// services can react to the decision.
type ModerationResolvedEvent struct {
	MessageID      uuid.UUID      `json:"message_id"`
	RoomID         uuid.UUID      `json:"room_id"`
	Decision       ApprovalStatus `json:"decision"`
	PreviousStatus ApprovalStatus `json:"previous_status"`
	ReviewerID     uuid.UUID      `json:"reviewer_id"`
	ApplicationID  *uuid.UUID     `json:"application_id,omitempty"`
	ResolvedAt     time.Time      `json:"resolved_at"`
}
