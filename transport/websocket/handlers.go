package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/repository"
)

// Status-bar texts shown to the player.
const (
	msgRestartNeeded = "You need to restart the game!"
	msgUntagFirst    = "You need to untag the field before you can open it"
	msgGameLost      = "You lost :("
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	playerID := ""
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.sessions.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	payloadResp := Payload{
		Player: player,
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.unmarshalPlayerPayload(msg)
	if err != nil {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	session, err := that.sessions.StartGame(ctx, payloadReq.Player.ID, payloadReq.Width, payloadReq.Height, payloadReq.MineCount)
	if err != nil {
		log.Error("failed to start game", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to start a new game")
	}

	payloadResp := Payload{
		Player:  payloadReq.Player,
		Session: maskSessionDetails(session),
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game started", "playerID", payloadReq.Player.ID, "sessionID", session.ID)

	return nil
}

func (that *Server) handleReveal(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleReveal")

	payloadReq, err := that.unmarshalActionPayload(msg)
	if err != nil {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	report, err := that.sessions.Reveal(ctx, payloadReq.Player.ID, *payloadReq.X, *payloadReq.Y)

	switch {
	case errors.Is(err, apperror.ErrMineFound):
		payloadResp := Payload{
			Player:  payloadReq.Player,
			Session: maskSessionDetails(report.Session),
			Mines:   report.Mines,
			Lost:    true,
			Message: msgGameLost,
		}

		return that.sendMessage(bufrw, msg.Action, payloadResp)
	case errors.Is(err, apperror.ErrFieldTagged):
		return that.sendStatusMessage(bufrw, msg.Action, msgUntagFirst)
	case errors.Is(err, apperror.ErrGameOver), isSessionGone(err):
		return that.sendStatusMessage(bufrw, msg.Action, msgRestartNeeded)
	case err != nil:
		log.Error("failed to reveal field", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to reveal field")
	}

	payloadResp := Payload{
		Player:   payloadReq.Player,
		Session:  maskSessionDetails(report.Session),
		Revealed: report.Revealed,
	}

	return that.sendMessage(bufrw, msg.Action, payloadResp)
}

func (that *Server) handleTag(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleTag")

	payloadReq, err := that.unmarshalActionPayload(msg)
	if err != nil {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	report, err := that.sessions.Tag(ctx, payloadReq.Player.ID, *payloadReq.X, *payloadReq.Y)

	switch {
	case errors.Is(err, apperror.ErrGameOver), isSessionGone(err):
		return that.sendStatusMessage(bufrw, msg.Action, msgRestartNeeded)
	case err != nil:
		log.Error("failed to tag field", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to tag field")
	}

	payloadResp := Payload{
		Player:  payloadReq.Player,
		Session: maskSessionDetails(report.Session),
		X:       payloadReq.X,
		Y:       payloadReq.Y,
		State:   report.State,
	}

	return that.sendMessage(bufrw, msg.Action, payloadResp)
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, err := that.unmarshalPlayerPayload(msg)
	if err != nil {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	session, err := that.sessions.GetSession(ctx, payloadReq.Player.ID)
	if isSessionGone(err) {
		return that.sendStatusMessage(bufrw, msg.Action, msgRestartNeeded)
	}

	if err != nil {
		log.Error("failed to get session", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to get game state")
	}

	payloadResp := Payload{
		Player:  payloadReq.Player,
		Session: maskSessionDetails(session),
	}

	return that.sendMessage(bufrw, msg.Action, payloadResp)
}

var (
	errPlayerRequired = errors.New("player is required")
	errCoordsRequired = errors.New("coordinates are required")
)

func (that *Server) unmarshalPlayerPayload(msg *Message) (*Payload, error) {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		return nil, errPlayerRequired
	}

	return &payloadReq, nil
}

func (that *Server) unmarshalActionPayload(msg *Message) (*Payload, error) {
	payloadReq, err := that.unmarshalPlayerPayload(msg)
	if err != nil {
		return nil, err
	}

	if payloadReq.X == nil || payloadReq.Y == nil {
		return nil, errCoordsRequired
	}

	return payloadReq, nil
}

func (that *Server) sendStatusMessage(bufrw *bufio.ReadWriter, action, text string) error {
	payload := Payload{Message: text}
	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send status message: %w", err)
	}

	return nil
}

// isSessionGone reports whether the player has no session to act on and
// needs to start a new game.
func isSessionGone(err error) bool {
	return errors.Is(err, apperror.ErrNoActiveSession) || errors.Is(err, repository.ErrSessionNotFound)
}

// maskSessionDetails hides the mine layout from the client: covered fields
// never leak HasMine or their adjacency, and mine positions only appear once
// the session is over.
func maskSessionDetails(session *entity.Session) *entity.Session {
	board := *session.Board
	board.Fields = make([]entity.Field, len(session.Board.Fields))

	for i, field := range session.Board.Fields {
		masked := field
		if field.State != entity.FieldUncovered {
			masked.HasMine = false
			masked.Adjacent = 0
		}

		board.Fields[i] = masked
	}

	if session.Running {
		board.Mines = nil
	}

	masked := *session
	masked.Board = &board

	return &masked
}
