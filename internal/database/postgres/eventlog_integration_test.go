package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizePool_Go/internal/eventlog"
)

func TestEventLogRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewEventLogRepository(pool)

	contestID := uuid.NewString()
	user := "audit-" + uuid.NewString()

	require.NoError(t, repo.LogEvent(ctx, eventlog.Event{
		EventType: "contest.published",
		Version:   "1.0",
		ContestID: &contestID,
		Payload:   map[string]interface{}{"contest_id": contestID, "name": "BTC close"},
	}))
	require.NoError(t, repo.LogEvent(ctx, eventlog.Event{
		EventType: "order.placed",
		Version:   "1.0",
		ContestID: &contestID,
		UserID:    &user,
		Payload:   map[string]interface{}{"user_id": user},
		Metadata:  map[string]interface{}{"contest_id": contestID},
	}))

	t.Run("FilterByContest", func(t *testing.T) {
		events, err := repo.GetEvents(ctx, eventlog.EventFilter{ContestID: &contestID})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "order.placed", events[0].EventType, "newest first")
		assert.Equal(t, contestID, events[0].Metadata["contest_id"])
		assert.Nil(t, events[1].Metadata)
		assert.Equal(t, "BTC close", events[1].Payload["name"])
	})

	t.Run("FilterByUserAndType", func(t *testing.T) {
		eventType := "order.placed"
		events, err := repo.GetEvents(ctx, eventlog.EventFilter{UserID: &user, EventType: &eventType, Limit: 10})
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.NotNil(t, events[0].UserID)
		assert.Equal(t, user, *events[0].UserID)
	})

	t.Run("CleanupKeepsRecentEvents", func(t *testing.T) {
		_, err := repo.CleanupOldEvents(ctx, 30)
		require.NoError(t, err)

		events, err := repo.GetEvents(ctx, eventlog.EventFilter{ContestID: &contestID})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}
