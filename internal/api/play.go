package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/beyond2048/internal/auth"
	"github.com/vovakirdan/beyond2048/internal/board"
	"github.com/vovakirdan/beyond2048/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Client actions.
const (
	actionMove  = "move"
	actionUndo  = "undo"
	actionNew   = "new"
	actionState = "state"
)

// clientMessage is a command sent by the browser.
type clientMessage struct {
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
	Size      int    `json:"size,omitempty"`
}

// eventMessage flattens a session.Event for the wire.
type eventMessage struct {
	Type        string               `json:"type"`
	Score       int                  `json:"score,omitempty"`
	HighestTile int                  `json:"highestTile,omitempty"`
	Result      *session.GameResult  `json:"result,omitempty"`
	Stats       *session.PlayerStats `json:"stats,omitempty"`
}

// stateMessage is sent after every client command.
type stateMessage struct {
	Type     string           `json:"type"`
	Accepted bool             `json:"accepted"`
	State    session.Snapshot `json:"state"`
	Frame    session.Frame    `json:"frame"`
	Events   []eventMessage   `json:"events,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func toEventMessage(evt session.Event) eventMessage {
	switch e := evt.(type) {
	case session.WinEvent:
		return eventMessage{Type: "win", Score: e.Score, HighestTile: e.HighestTile}
	case session.GameOverEvent:
		return eventMessage{Type: "gameOver", Score: e.Result.Score, HighestTile: e.Result.HighestTile, Result: &e.Result}
	case session.StatsEvent:
		return eventMessage{Type: "stats", Stats: &e.Stats}
	}
	return eventMessage{Type: "unknown"}
}

// player is one WebSocket connection and the game it drives.
type player struct {
	conn   *websocket.Conn
	ctrl   *session.Controller
	sink   *session.ChannelSink
	logger *log.Logger
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	size := s.game.Size
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !board.ValidSize(n) {
			respondError(w, http.StatusBadRequest, "Invalid board size")
			return
		}
		size = n
	}

	var persistence session.Persistence = &session.MemoryPersistence{}
	userID := ""
	token := r.URL.Query().Get("token")
	if token == "" {
		token, _ = auth.BearerToken(r.Header.Get("Authorization"))
	}
	if token != "" {
		id, status, msg := s.authenticate(token)
		if status != http.StatusOK {
			respondError(w, status, msg)
			return
		}
		userID = id
		persistence = s.store.Player(id)
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	logger := s.logger.With("conn", uuid.NewString()[:8], "user", userID)
	sink := session.NewChannelSink(32)
	ctrl, err := session.New(session.Options{
		Size:            size,
		FourProbability: s.game.FourProbability,
		HistoryLimit:    s.game.HistoryLimit,
		Seed:            s.game.Seed,
		Persistence:     persistence,
		Sink:            sink,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("cannot create session", "err", err)
		conn.Close()
		return
	}

	p := &player{conn: conn, ctrl: ctrl, sink: sink, logger: logger}
	logger.Info("player connected", "size", size)
	p.run(r.Context())
	if err := ctrl.Abandon(context.WithoutCancel(r.Context())); err != nil {
		logger.Warn("could not save game", "err", err)
	}
	logger.Info("player disconnected", "score", ctrl.Score(), "moves", ctrl.Moves())
}

// run owns the controller for the lifetime of the connection. Reads happen
// on a helper goroutine; every write and every controller call happens here.
func (p *player) run(ctx context.Context) {
	defer func() {
		p.sink.Close()
		p.conn.Close()
	}()

	if err := p.ctrl.Start(ctx); err != nil {
		p.logger.Warn("session start", "err", err)
	}
	if err := p.send(p.state(true, "")); err != nil {
		return
	}

	incoming := make(chan clientMessage)
	readErr := make(chan error, 1)
	go p.readPump(incoming, readErr)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-incoming:
			if err := p.send(p.handle(ctx, msg)); err != nil {
				return
			}

		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("websocket error", "err", err)
			}
			return

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (p *player) readPump(out chan<- clientMessage, errc chan<- error) {
	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			errc <- err
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			msg = clientMessage{Action: "invalid"}
		}
		select {
		case out <- msg:
		case <-p.sink.Done():
			return
		}
	}
}

func (p *player) handle(ctx context.Context, msg clientMessage) stateMessage {
	switch msg.Action {
	case actionMove:
		dir, ok := board.ParseDirection(msg.Direction)
		if !ok {
			return p.state(false, "unknown direction")
		}
		moved, err := p.ctrl.Turn(ctx, dir)
		if err != nil {
			p.logger.Warn("could not save game", "err", err)
			return p.state(moved, "could not save game result")
		}
		return p.state(moved, "")

	case actionUndo:
		return p.state(p.ctrl.Undo(), "")

	case actionNew:
		err := p.ctrl.NewGame(ctx, msg.Size)
		switch {
		case errors.Is(err, board.ErrInvalidSize):
			return p.state(false, "invalid board size")
		case errors.Is(err, session.ErrAnimating):
			return p.state(false, "move in progress")
		case err != nil:
			// The new game started; only saving the abandoned one failed.
			p.logger.Warn("could not save game", "err", err)
			return p.state(true, "could not save game result")
		}
		return p.state(true, "")

	case actionState:
		return p.state(true, "")
	}
	return p.state(false, "unknown action")
}

func (p *player) state(accepted bool, errMsg string) stateMessage {
	msg := stateMessage{
		Type:     "state",
		Accepted: accepted,
		State:    p.ctrl.Snapshot(),
		Frame:    p.ctrl.Frame(),
		Error:    errMsg,
	}
	for _, evt := range p.sink.Drain() {
		msg.Events = append(msg.Events, toEventMessage(evt))
	}
	return msg
}

func (p *player) send(msg stateMessage) error {
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(msg)
}
