package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorhub/models"
)

func TestTrackerAnonymousFetchIsLocal(t *testing.T) {
	gw := &fakeGateway{}
	tracker := NewTracker(gw, testLogger())

	records, err := tracker.fetch(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, gw.listJoinedCalls, "no token means no network call")
}

func TestTrackerApplySortsByDate(t *testing.T) {
	tracker := NewTracker(&fakeGateway{}, testLogger())
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tracker.apply([]models.Participation{
		{EventID: 2, Date: now.Add(48 * time.Hour)},
		{EventID: 1, Date: now.Add(24 * time.Hour)},
	})

	records := tracker.Records()
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].EventID)
	assert.True(t, tracker.IsJoined(2))
	assert.False(t, tracker.IsJoined(3))
}

func TestTrackerNoteJoinedIsIdempotent(t *testing.T) {
	tracker := NewTracker(&fakeGateway{}, testLogger())
	rec := models.Participation{EventID: 1, Date: time.Now(), Members: 2}

	tracker.noteJoined(rec)
	tracker.noteJoined(rec)

	assert.Equal(t, 1, tracker.Count())
}
