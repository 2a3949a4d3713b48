package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/service"
)

// Live battle frame types sent by the server.
const (
	frameEvent  = "event"
	framePrompt = "prompt"
	frameResult = "result"
	frameError  = "error"

	wantCommand     = "command"
	wantReplacement = "replacement"

	liveWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// liveFrame is every message the server writes on a live battle socket.
type liveFrame struct {
	Type    string             `json:"type"`
	Want    string             `json:"want,omitempty"`
	Event   *engine.Event      `json:"event,omitempty"`
	Result  *engine.Result     `json:"result,omitempty"`
	Record  *game.BattleRecord `json:"record,omitempty"`
	Options []string           `json:"options,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// liveReply is what the client answers to a prompt. Index is the 0-based
// move slot for fight commands and the roster slot for replacements.
type liveReply struct {
	Command engine.CommandKind `json:"command"`
	Index   int                `json:"index"`
}

// liveSession adapts one websocket to the battle's input and reporter.
type liveSession struct {
	conn     *websocket.Conn
	idle     time.Duration
	move     int
	writeErr error
}

func (s *liveSession) send(f liveFrame) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := s.conn.WriteJSON(f); err != nil {
		s.writeErr = err
	}
	return s.writeErr
}

// ask prompts the client and waits up to the idle timeout for the reply.
// Malformed JSON is reported as invalid input so the battle re-prompts.
func (s *liveSession) ask(ctx context.Context, want string, options []string) (liveReply, error) {
	if err := ctx.Err(); err != nil {
		return liveReply{}, err
	}
	if err := s.send(liveFrame{Type: framePrompt, Want: want, Options: options}); err != nil {
		return liveReply{}, err
	}
	_ = s.conn.SetReadDeadline(time.Now().Add(s.idle))
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return liveReply{}, err
	}
	var r liveReply
	if err := json.Unmarshal(data, &r); err != nil {
		return liveReply{}, engine.ErrInvalidInput
	}
	return r, nil
}

// ChooseCommand reads one reply; a fight reply carries its move index too.
func (s *liveSession) ChooseCommand(ctx context.Context, active, _ *game.Combatant) (engine.CommandKind, error) {
	moves := make([]string, len(active.Moves))
	for i, m := range active.Moves {
		moves[i] = m.Name
	}
	r, err := s.ask(ctx, wantCommand, moves)
	if err != nil {
		return "", err
	}
	s.move = r.Index
	return r.Command, nil
}

func (s *liveSession) ChooseMove(_ context.Context, _ *game.Combatant) (int, error) {
	return s.move, nil
}

func (s *liveSession) ChooseReplacement(ctx context.Context, roster []game.Combatant) (int, error) {
	var names []string
	for _, c := range roster {
		names = append(names, c.Name)
	}
	r, err := s.ask(ctx, wantReplacement, names)
	if err != nil {
		return 0, err
	}
	return r.Index, nil
}

func (s *liveSession) Report(e engine.Event) {
	if err := s.send(liveFrame{Type: frameEvent, Event: &e}); err != nil {
		logging.Debug("live event dropped", logging.Fields{constants.LogFieldEventKind: string(e.Kind)})
	}
}

// LiveBattle upgrades to a websocket and lets the client play one battle
// interactively. Trainer and opponent errors are answered as plain HTTP
// before the upgrade.
func (h *ArenaHandler) LiveBattle(c *gin.Context) {
	name := c.Param("name")
	release, err := h.sessions.Acquire(name)
	if err != nil {
		respondError(c, err, constants.ErrFailedRunBattle)
		return
	}
	defer release()

	t, err := h.repo.GetTrainerByName(name)
	if err != nil {
		respondError(c, err, constants.ErrFailedRunBattle)
		return
	}
	if !t.HasAlive() {
		respondError(c, service.ErrNoValidRoster, constants.ErrFailedRunBattle)
		return
	}
	d := h.newDice()
	opponent, err := service.SpawnWild(h.catalog, d, c.Query("opponent"))
	if err != nil {
		respondError(c, err, constants.ErrFailedRunBattle)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{constants.LogFieldTrainer: name, "error": err.Error()})
		return
	}
	defer conn.Close()

	sess := &liveSession{conn: conn, idle: h.liveIdle}
	res, rec, err := service.RunEncounter(c.Request.Context(), h.repo, service.Encounter{
		Trainer:  t,
		Opponent: opponent,
		Table:    h.table,
		Dice:     d,
		Input:    sess,
		Reporter: sess,
	})
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			logging.Info("live battle idle timeout", logging.Fields{constants.LogFieldTrainer: name})
		} else {
			logging.Warn("live battle aborted", logging.Fields{constants.LogFieldTrainer: name, "error": err.Error()})
		}
		_, msg := statusFor(err)
		if msg == "" {
			msg = constants.ErrFailedRunBattle
		}
		_ = sess.send(liveFrame{Type: frameError, Error: msg})
		return
	}
	_ = sess.send(liveFrame{Type: frameResult, Result: &res, Record: rec})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(liveWriteWait))
}
