package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit_messaging/internal/domain"
	"recruit_messaging/pkg/logger"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, srv
}

func TestRateLimitFixedWindow(t *testing.T) {
	ctx := context.Background()
	rdb, srv := newTestRedis(t)
	repo := NewRateLimitRepository(rdb, logger.Nop())

	for i := 1; i <= 3; i++ {
		allowed, err := repo.CheckLimit(ctx, "send:a", 3)
		require.NoError(t, err)
		assert.True(t, allowed)

		count, err := repo.Increment(ctx, "send:a", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(i), count)
	}

	allowed, err := repo.CheckLimit(ctx, "send:a", 3)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.True(t, srv.TTL("ratelimit:send:a") > 0)

	srv.FastForward(time.Minute + time.Second)

	allowed, err = repo.CheckLimit(ctx, "send:a", 3)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestPublishModerationResolved(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newTestRedis(t)
	publisher := NewEventPublisher(rdb, logger.Nop())

	sub := rdb.Subscribe(ctx, ModerationResolvedChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := &domain.ModerationResolvedEvent{
		MessageID:      uuid.New(),
		RoomID:         uuid.New(),
		Decision:       domain.ApprovalStatusRejected,
		PreviousStatus: domain.ApprovalStatusAwaitingReview,
		ReviewerID:     uuid.New(),
		ResolvedAt:     time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishModerationResolved(ctx, event))

	select {
	case msg := <-sub.Channel():
		var got domain.ModerationResolvedEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event.MessageID, got.MessageID)
		assert.Equal(t, domain.ApprovalStatusRejected, got.Decision)
		assert.Equal(t, domain.ApprovalStatusAwaitingReview, got.PreviousStatus)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}
