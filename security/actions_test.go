package security

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuard(t *testing.T) (*ActionGuard, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	log := zerolog.Nop()
	return NewActionGuard(db, 30*time.Second, &log), mock
}

func TestAcquireAndRelease(t *testing.T) {
	guard, mock := testGuard(t)
	mock.ExpectSetNX("inflight:sess-1:join:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectDel("inflight:sess-1:join:7").SetVal(1)

	release, err := guard.Acquire(context.Background(), "sess-1", "join", 7)

	require.NoError(t, err)
	release()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquireRejectsDuplicate(t *testing.T) {
	guard, mock := testGuard(t)
	mock.ExpectSetNX("inflight:sess-1:join:7", 1, 30*time.Second).SetVal(false)

	_, err := guard.Acquire(context.Background(), "sess-1", "join", 7)

	assert.ErrorIs(t, err, ErrActionInFlight)
}

func TestAcquireFailsOpenWhenRedisDown(t *testing.T) {
	guard, mock := testGuard(t)
	mock.ExpectSetNX("inflight:sess-1:join:7", 1, 30*time.Second).SetErr(assert.AnError)

	release, err := guard.Acquire(context.Background(), "sess-1", "join", 7)

	require.NoError(t, err, "duplicate suppression is best effort")
	release()
}
