package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender(t *testing.T) {
	id := uuid.New()

	t.Run("candidate", func(t *testing.T) {
		s, err := NewSender(ActorTypeCandidate, id)
		require.NoError(t, err)
		assert.Equal(t, CandidateSender{CandidateID: id}, s)
		assert.Equal(t, ActorTypeCandidate, s.Type())
	})

	t.Run("company user", func(t *testing.T) {
		s, err := NewSender(ActorTypeCompanyUser, id)
		require.NoError(t, err)
		assert.Equal(t, id, s.ActorID())
	})

	t.Run("admin cannot send", func(t *testing.T) {
		_, err := NewSender(ActorTypeAdmin, id)
		assert.Error(t, err)
	})

	t.Run("nil id", func(t *testing.T) {
		_, err := NewSender(ActorTypeCandidate, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestActorTypeCounterpart(t *testing.T) {
	assert.Equal(t, ActorTypeCompanyUser, ActorTypeCandidate.Counterpart())
	assert.Equal(t, ActorTypeCandidate, ActorTypeCompanyUser.Counterpart())
	assert.Equal(t, ActorType(""), ActorTypeAdmin.Counterpart())
}

func TestMessageJSONCarriesSender(t *testing.T) {
	senderID := uuid.New()
	subject := "ご案内"
	msg := Message{
		ID:      uuid.New(),
		RoomID:  uuid.New(),
		Sender:  CompanyUserSender{CompanyUserID: senderID},
		Subject: &subject,
		Content: "面談のご案内です",
		Status:  MessageStatusSent,
		SentAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "COMPANY_USER", raw["sender_type"])
	assert.Equal(t, senderID.String(), raw["sender_id"])
	assert.Equal(t, []interface{}{}, raw["attachments"])

	var back Message
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, msg.Sender, back.Sender)
	assert.Equal(t, msg.Content, back.Content)
}

func TestMessageIsUnreadFor(t *testing.T) {
	msg := &Message{Sender: CompanyUserSender{CompanyUserID: uuid.New()}, Status: MessageStatusSent}
	assert.True(t, msg.IsUnreadFor(ActorTypeCandidate))
	assert.False(t, msg.IsUnreadFor(ActorTypeCompanyUser))

	msg.Status = MessageStatusRead
	assert.False(t, msg.IsUnreadFor(ActorTypeCandidate))
}

func TestRoomHasAccess(t *testing.T) {
	candidateID, groupID := uuid.New(), uuid.New()
	room := &Room{ID: uuid.New(), CandidateID: candidateID, CompanyGroupID: groupID}

	assert.True(t, room.HasAccess(Actor{ID: candidateID, Type: ActorTypeCandidate}, uuid.Nil))
	assert.False(t, room.HasAccess(Actor{ID: uuid.New(), Type: ActorTypeCandidate}, uuid.Nil))
	assert.True(t, room.HasAccess(Actor{ID: uuid.New(), Type: ActorTypeCompanyUser}, groupID))
	assert.False(t, room.HasAccess(Actor{ID: uuid.New(), Type: ActorTypeCompanyUser}, uuid.New()))
	assert.False(t, room.HasAccess(Actor{ID: uuid.New(), Type: ActorTypeAdmin}, groupID))
}

func TestApprovalStatus(t *testing.T) {
	assert.False(t, ApprovalStatusUnhandled.IsTerminal())
	assert.False(t, ApprovalStatusAwaitingReview.IsTerminal())
	assert.True(t, ApprovalStatusApproved.IsTerminal())
	assert.True(t, ApprovalStatusRejected.IsDecision())

	_, err := ParseApprovalStatus("PENDING")
	assert.Error(t, err)
}

func TestEnrichmentJSON(t *testing.T) {
	ok := Enriched(&ApplicationRef{ID: uuid.New(), Status: "INTERVIEW"})
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"INTERVIEW"`)
	assert.NotContains(t, string(data), `"error"`)

	failed := EnrichmentFailed[*ApplicationRef]("application", errors.New("timeout"))
	assert.False(t, failed.OK())
	data, err = json.Marshal(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null,"error":"enrich application: timeout"}`, string(data))
}

func TestCandidateProfileMissingFields(t *testing.T) {
	phone := "090-0000-0000"
	p := &CandidateProfile{FullName: "山田 太郎", Phone: &phone}
	assert.Equal(t, []string{"birth_date", "resume", "self_pr", "desired_job_type"}, p.MissingFields())

	empty := ""
	p.SelfPR = &empty
	assert.Contains(t, p.MissingFields(), "self_pr")
}
