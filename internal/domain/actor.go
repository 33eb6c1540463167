package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type ActorType string

const (
	ActorTypeCandidate   ActorType = "CANDIDATE"
	ActorTypeCompanyUser ActorType = "COMPANY_USER"
	ActorTypeAdmin       ActorType = "ADMIN"
)

func ParseActorType(s string) (ActorType, error) {
	switch t := ActorType(s); t {
	case ActorTypeCandidate, ActorTypeCompanyUser, ActorTypeAdmin:
		return t, nil
	default:
		return "", fmt.Errorf("unknown actor type %q", s)
	}
}

// IsParticipant reports whether actors of this type can own a side of a room.
func (t ActorType) IsParticipant() bool {
	return t == ActorTypeCandidate || t == ActorTypeCompanyUser
}

// Counterpart is the other side of a room. Admins have none.
func (t ActorType) Counterpart() ActorType {
	switch t {
	case ActorTypeCandidate:
		return ActorTypeCompanyUser
	case ActorTypeCompanyUser:
		return ActorTypeCandidate
	default:
		return ""
	}
}

// Actor is a verified caller identity supplied by the auth collaborator.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Type ActorType `json:"type"`
}

// Sender identifies who wrote a message. It is resolved once when a row is
// read or a request is accepted; callers switch on the concrete type instead
// of comparing sender_type strings.
type Sender interface {
	Type() ActorType
	ActorID() uuid.UUID
	isSender()
}

type CandidateSender struct {
	CandidateID uuid.UUID
}

func (s CandidateSender) Type() ActorType    { return ActorTypeCandidate }
func (s CandidateSender) ActorID() uuid.UUID { return s.CandidateID }
func (CandidateSender) isSender()            {}

type CompanyUserSender struct {
	CompanyUserID uuid.UUID
}

func (s CompanyUserSender) Type() ActorType    { return ActorTypeCompanyUser }
func (s CompanyUserSender) ActorID() uuid.UUID { return s.CompanyUserID }
func (CompanyUserSender) isSender()            {}

func NewSender(t ActorType, id uuid.UUID) (Sender, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("sender id is required")
	}
	switch t {
	case ActorTypeCandidate:
		return CandidateSender{CandidateID: id}, nil
	case ActorTypeCompanyUser:
		return CompanyUserSender{CompanyUserID: id}, nil
	default:
		return nil, fmt.Errorf("actor type %q cannot send messages", t)
	}
}

// SenderFromActor converts an authenticated actor into a message sender.
func SenderFromActor(a Actor) (Sender, error) {
	return NewSender(a.Type, a.ID)
}

type senderJSON struct {
	Type ActorType `json:"sender_type"`
	ID   uuid.UUID `json:"sender_id"`
}

func marshalSender(s Sender) senderJSON {
	if s == nil {
		return senderJSON{}
	}
	return senderJSON{Type: s.Type(), ID: s.ActorID()}
}

func unmarshalSender(data []byte) (Sender, error) {
	var raw senderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return NewSender(raw.Type, raw.ID)
}
