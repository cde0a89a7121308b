package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorhub/models"
)

func testStore(t *testing.T) (*Store, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	log := zerolog.Nop()
	return NewStore(db, time.Hour, &log), mock
}

func TestCreateAssignsOpaqueID(t *testing.T) {
	store, mock := testStore(t)
	mock.Regexp().ExpectSet(`session:[0-9A-F]+`, `.+`, time.Hour).SetVal("OK")

	sess := &models.Session{Token: "tok-1", UserID: 7}
	id, err := store.Create(context.Background(), sess)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, sess.ID)
	assert.NotEqual(t, "tok-1", id, "the backend token is never used as the browser id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoundTrip(t *testing.T) {
	store, mock := testStore(t)

	stored := models.Session{ID: "ABCD", Token: "tok-1", UserID: 7, Email: "d@example.com"}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	mock.ExpectGet("session:ABCD").SetVal(string(raw))

	sess, err := store.Get(context.Background(), "ABCD")

	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, int64(7), sess.UserID)
}

func TestGetUnknownID(t *testing.T) {
	store, mock := testStore(t)
	mock.ExpectGet("session:NOPE").RedisNil()

	_, err := store.Get(context.Background(), "NOPE")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUnknownIDIsNotAnError(t *testing.T) {
	store, mock := testStore(t)
	mock.ExpectDel("session:GONE").SetVal(0)

	assert.NoError(t, store.Delete(context.Background(), "GONE"))
}

func TestTouchExtendsTTL(t *testing.T) {
	store, mock := testStore(t)
	mock.ExpectExpire("session:ABCD", time.Hour).SetVal(true)

	store.Touch(context.Background(), "ABCD")

	assert.NoError(t, mock.ExpectationsWereMet())
}
