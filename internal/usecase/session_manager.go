package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/minesweeper"
	"github.com/rocketscienceinc/minesweeper-backend/internal/pkg"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// BoardConfig is the grid used when a player starts a game without explicit
// dimensions.
type BoardConfig struct {
	Width     int
	Height    int
	MineCount int
}

// RevealReport is the outcome of one reveal action: every field uncovered by
// the flood fill and, when a mine was hit, the classified mine sweep.
type RevealReport struct {
	Session  *entity.Session
	Revealed []minesweeper.RevealedField
	Mines    []minesweeper.MineReport
	Lost     bool
}

// TagReport is the outcome of one tagging action.
type TagReport struct {
	Session *entity.Session
	State   entity.FieldState
}

type SessionManager struct {
	logger *slog.Logger

	playerRepo  playerRepo
	sessionRepo sessionRepo

	defaults BoardConfig
}

func NewSessionManager(logger *slog.Logger, playerRepo playerRepo, sessionRepo sessionRepo, defaults BoardConfig) *SessionManager {
	return &SessionManager{
		logger: logger,

		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,

		defaults: defaults,
	}
}

// GetOrCreatePlayer - returns the player with the given ID, or registers a
// new one when the ID is empty.
func (that *SessionManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// StartGame - constructs a fresh board and session for the player, replacing
// any previous session. Zero dimensions fall back to the configured default
// board.
func (that *SessionManager) StartGame(ctx context.Context, playerID string, width, height, mineCount int) (*entity.Session, error) {
	log := that.logger.With("method", "StartGame")

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if width == 0 && height == 0 && mineCount == 0 {
		width, height, mineCount = that.defaults.Width, that.defaults.Height, that.defaults.MineCount
	}

	board, err := entity.NewBoard(width, height, mineCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	if player.SessionID != "" {
		if err = that.sessionRepo.DeleteByID(ctx, player.SessionID); err != nil {
			log.Error("failed to delete previous session", "sessionID", player.SessionID, "error", err)
		}
	}

	session := entity.NewSession(pkg.GenerateSessionID(), board)

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	player.SessionID = session.ID
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	log.Info("game started", "sessionID", session.ID, "width", width, "height", height, "mines", mineCount)

	return session, nil
}

// Reveal - uncovers a field for the player, expanding zero-adjacency regions.
//
// An already-uncovered field is an idempotent no-op and yields an empty
// report. A tagged field surfaces apperror.ErrFieldTagged, a finished
// session apperror.ErrGameOver. A mine hit ends the session and returns
// apperror.ErrMineFound together with the classified mine sweep.
func (that *SessionManager) Reveal(ctx context.Context, playerID string, x, y int) (*RevealReport, error) {
	session, err := that.getSessionByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	report := &RevealReport{Session: session}

	revealed, err := minesweeper.Reveal(session, x, y)

	switch {
	case errors.Is(err, apperror.ErrAlreadyUncovered):
		return report, nil
	case errors.Is(err, apperror.ErrMineFound):
		report.Lost = true
		report.Mines = minesweeper.SweepMines(session)

		if updateErr := that.sessionRepo.CreateOrUpdate(ctx, session); updateErr != nil {
			return nil, fmt.Errorf("failed to update session: %w", updateErr)
		}

		return report, apperror.ErrMineFound
	case err != nil:
		return report, err
	}

	report.Revealed = revealed

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return report, nil
}

// Tag - advances the tagging state of a field for the player. Tagging an
// uncovered field is an idempotent no-op.
func (that *SessionManager) Tag(ctx context.Context, playerID string, x, y int) (*TagReport, error) {
	session, err := that.getSessionByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	report := &TagReport{Session: session}

	state, err := minesweeper.Tag(session, x, y)
	if errors.Is(err, apperror.ErrAlreadyUncovered) {
		report.State = entity.FieldUncovered
		return report, nil
	}

	if err != nil {
		return report, err
	}

	report.State = state

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return report, nil
}

// GetSession - returns the player's current session.
func (that *SessionManager) GetSession(ctx context.Context, playerID string) (*entity.Session, error) {
	return that.getSessionByPlayerID(ctx, playerID)
}

func (that *SessionManager) getSessionByPlayerID(ctx context.Context, playerID string) (*entity.Session, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.SessionID == "" {
		return nil, fmt.Errorf("player %s: %w", playerID, apperror.ErrNoActiveSession)
	}

	session, err := that.sessionRepo.GetByID(ctx, player.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *SessionManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GeneratePlayerID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *SessionManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}
