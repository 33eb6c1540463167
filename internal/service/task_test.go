package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/domain"
)

func taskKinds(tasks []*domain.Task) []domain.TaskKind {
	kinds := make([]domain.TaskKind, len(tasks))
	for i, t := range tasks {
		kinds[i] = t.Kind
	}
	return kinds
}

func TestCompanyTasksByPriority(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room, candidate, company := env.openRoom(ctx)
	groupID := room.CompanyGroupID

	sendText(t, env, room, candidate, "I have a question about the position")
	env.store.applications[groupID] = []*domain.Application{{
		ID:              uuid.New(),
		CandidateName:   "Hanako Yamada",
		JobPostingTitle: "Backend Engineer",
		CreatedAt:       time.Date(2024, 3, 30, 12, 0, 0, 0, time.UTC),
	}}
	env.store.interviews[groupID] = []*domain.Interview{{
		ID:            uuid.New(),
		ApplicationID: uuid.New(),
		CandidateName: "Taro Suzuki",
		ScheduledAt:   time.Date(2024, 3, 28, 15, 0, 0, 0, time.UTC),
	}}

	tasks, err := env.tasks.GetTasks(ctx, company)
	require.NoError(t, err)

	assert.Equal(t, []domain.TaskKind{
		domain.TaskKindUnreadMessage,
		domain.TaskKindNewApplication,
		domain.TaskKindInterviewResultPending,
		domain.TaskKindNoJobPostings,
	}, taskKinds(tasks))
	for _, task := range tasks {
		assert.Equal(t, taskPriority[task.Kind], task.Priority)
	}
	require.NotNil(t, tasks[0].RoomID)
	assert.Equal(t, room.ID, *tasks[0].RoomID)
}

func TestCompanyWithPostingsHasNoPostingTask(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room, _, company := env.openRoom(ctx)
	env.store.jobPostings[room.CompanyGroupID] = 2

	tasks, err := env.tasks.GetTasks(ctx, company)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestCandidateTasks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room, candidate, company := env.openRoom(ctx)

	sendText(t, env, room, company, "We would like to invite you")
	start := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	env.store.scouts[candidate.ID] = []*domain.Scout{
		{ID: uuid.New(), CompanyName: "Acme", SentAt: start.Add(-100 * time.Hour)},
		{ID: uuid.New(), CompanyName: "Fresh Inc", SentAt: start.Add(-time.Hour)},
	}

	tasks, err := env.tasks.GetTasks(ctx, candidate)
	require.NoError(t, err)

	assert.Equal(t, []domain.TaskKind{
		domain.TaskKindScoutReplyPending,
		domain.TaskKindUnreadMessage,
		domain.TaskKindProfileIncomplete,
	}, taskKinds(tasks))
	assert.Contains(t, tasks[0].Label, "Acme")
	assert.Contains(t, tasks[2].Label, "phone")
}

func TestTasksTieBreakNewestFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	groupID := uuid.New()
	companyUserID := env.store.addCompanyUser(groupID)
	company := domain.Actor{ID: companyUserID, Type: domain.ActorTypeCompanyUser}
	env.store.jobPostings[groupID] = 1

	var rooms []*domain.Room
	for i := 0; i < 2; i++ {
		candidateID := env.store.addCandidate(nil)
		room, _, err := env.rooms.GetOrCreateRoom(ctx, company, candidateID, companyUserID, nil)
		require.NoError(t, err)
		sendText(t, env, room, domain.Actor{ID: candidateID, Type: domain.ActorTypeCandidate}, "hello")
		rooms = append(rooms, room)
	}

	tasks, err := env.tasks.GetTasks(ctx, company)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, rooms[1].ID, *tasks[0].RoomID)
	assert.Equal(t, rooms[0].ID, *tasks[1].RoomID)
}

func TestTasksAreCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room, candidate, company := env.openRoom(ctx)
	env.store.jobPostings[room.CompanyGroupID] = 1

	tasks, err := env.tasks.GetTasks(ctx, company)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// Writes that bypass the services are not seen until the entry goes.
	env.store.applications[room.CompanyGroupID] = []*domain.Application{{ID: uuid.New(), CreatedAt: time.Now()}}
	tasks, err = env.tasks.GetTasks(ctx, company)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	sendText(t, env, room, candidate, "hello")

	tasks, err = env.tasks.GetTasks(ctx, company)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.TaskKind{
		domain.TaskKindUnreadMessage,
		domain.TaskKindNewApplication,
	}, taskKinds(tasks))

	_, err = env.chat.MarkRoomRead(ctx, room.ID, company)
	require.NoError(t, err)

	tasks, err = env.tasks.GetTasks(ctx, company)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskKind{domain.TaskKindNewApplication}, taskKinds(tasks))
}

func TestDegradedTasksAreNotCached(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	_, candidate, _ := env.openRoom(ctx)
	env.store.scoutErr = errors.New("scouts unavailable")

	tasks, err := env.tasks.GetTasks(ctx, candidate)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskKind{domain.TaskKindProfileIncomplete}, taskKinds(tasks))

	_, err = env.cache.Get(ctx, taskCacheKey(domain.ActorTypeCandidate, candidate.ID))
	assert.ErrorIs(t, err, cache.ErrMiss)

	env.store.scoutErr = nil
	_, err = env.tasks.GetTasks(ctx, candidate)
	require.NoError(t, err)
	_, err = env.cache.Get(ctx, taskCacheKey(domain.ActorTypeCandidate, candidate.ID))
	assert.NoError(t, err)
}

func TestAdminTasksFollowModerationQueue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addKeyword("裏金", true)
	room, _, company := env.openRoom(ctx)
	msg := sendText(t, env, room, company, "裏金の件")

	tasks, err := env.tasks.GetTasks(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = env.moderation.ScanForFlags(ctx)
	require.NoError(t, err)

	tasks, err = env.tasks.GetTasks(ctx, admin)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskKindFlaggedMessage, tasks[0].Kind)
	assert.Equal(t, msg.ID, *tasks[0].MessageID)

	_, err = env.moderation.Resolve(ctx, admin, domain.Resolution{MessageID: msg.ID, Decision: domain.ApprovalStatusApproved})
	require.NoError(t, err)

	tasks, err = env.tasks.GetTasks(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTasksRejectUnknownActor(t *testing.T) {
	env := newTestEnv()
	_, err := env.tasks.GetTasks(context.Background(), domain.Actor{ID: uuid.New(), Type: "GUEST"})
	assert.Error(t, err)
}
