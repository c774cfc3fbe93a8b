package repository

import (
	"testing"

	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredSession(t *testing.T, id string) *entity.Session {
	t.Helper()

	board, err := entity.NewBoardWithMines(3, 3, []entity.Point{{X: 1, Y: 1}})
	require.NoError(t, err)

	return entity.NewSession(id, board)
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a running session
	session := newStoredSession(t, "123")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and session is stored
	require.NoError(t, err)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a stored session with some board state
		session := newStoredSession(t, "123")
		_, err := session.Board.Uncover(0, 0)
		require.NoError(t, err)

		err = sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedSession, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved one, board included
		require.NoError(t, err)
		require.Equal(t, session.ID, retrievedSession.ID)
		require.True(t, retrievedSession.IsRunning())
		require.Equal(t, entity.FieldUncovered, retrievedSession.FieldStateAt(0, 0))
		require.Equal(t, session.MinePositions(), retrievedSession.MinePositions())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		nonExistentSessionID := "9999999"

		// When: GetByID is called with non-existent ID
		retrievedSession, err := sessionRepo.GetByID(ctx, nonExistentSessionID)

		// Then: an ErrSessionNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrSessionNotFound, err)
		assert.Empty(t, retrievedSession.ID)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a stored session
	session := newStoredSession(t, "123")

	err := sessionRepo.CreateOrUpdate(ctx, session)
	require.NoError(t, err)

	// When: DeleteByID is called with existing ID
	err = sessionRepo.DeleteByID(ctx, session.ID)

	// Then: the session is gone
	require.NoError(t, err)

	_, err = sessionRepo.GetByID(ctx, session.ID)
	require.Error(t, err)
	assert.Equal(t, ErrSessionNotFound, err)
}
