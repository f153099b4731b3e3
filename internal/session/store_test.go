package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/a1k2f3/sellercenter-buybot/internal/session"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (session.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	store := session.NewRedisStore(client, 24*time.Hour)

	return store, mock
}

func TestSave(t *testing.T) {
	ctx := t.Context()
	sess := &models.Session{
		ID:         uuid.New(),
		Token:      "backend-token",
		StoreID:    "store123",
		StoreName:  "Test Store",
		StoreEmail: "store@example.com",
	}
	key := session.Key(sess.ID)

	t.Run("Success - Session Saved", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectTxPipeline()
		mock.ExpectHSet(key,
			"token", sess.Token,
			"storeId", sess.StoreID,
			"storeName", sess.StoreName,
			"storeEmail", sess.StoreEmail,
		).SetVal(4)
		mock.ExpectExpire(key, 24*time.Hour).SetVal(true)
		mock.ExpectTxPipelineExec()

		// Act
		err := store.Save(ctx, sess)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectTxPipeline()
		mock.ExpectHSet(key,
			"token", sess.Token,
			"storeId", sess.StoreID,
			"storeName", sess.StoreName,
			"storeEmail", sess.StoreEmail,
		).SetErr(errors.New("redis connection error"))

		// Act
		err := store.Save(ctx, sess)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save session")
	})
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	sessionID := uuid.New()
	key := session.Key(sessionID)

	t.Run("Success - Session Found", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectHGetAll(key).SetVal(map[string]string{
			"token":      "backend-token",
			"storeId":    "store123",
			"storeName":  "Test Store",
			"storeEmail": "store@example.com",
		})

		// Act
		sess, err := store.Get(ctx, sessionID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, sessionID, sess.ID)
		assert.Equal(t, "backend-token", sess.Token)
		assert.Equal(t, "store123", sess.StoreID)
		assert.Equal(t, "Test Store", sess.StoreName)
		assert.Equal(t, "store@example.com", sess.StoreEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Session Missing", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectHGetAll(key).SetVal(map[string]string{})

		// Act
		sess, err := store.Get(ctx, sessionID)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, sess)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectHGetAll(key).SetErr(errors.New("redis connection error"))

		// Act
		sess, err := store.Get(ctx, sessionID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, sess)
		assert.Contains(t, err.Error(), "failed to load session")
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	sessionID := uuid.New()
	key := session.Key(sessionID)

	t.Run("Success - Session Deleted", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectDel(key).SetVal(1)

		// Act
		err := store.Delete(ctx, sessionID)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectDel(key).SetErr(errors.New("redis connection error"))

		// Act
		err := store.Delete(ctx, sessionID)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete session")
	})
}
