// Package ws bridges marbles sessions to browser clients over websockets.
// Every connection owns one session driven by its own tick loop; client
// commands are queued and applied between ticks.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-marbles/internal/games/marbles"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles/core"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

const (
	maxMessageBytes = 4096
	commandBacklog  = 32
	writeWait       = 5 * time.Second
)

// HandlerConfig configures the websocket handler.
type HandlerConfig struct {
	// Logger defaults to the charm default logger.
	Logger *log.Logger

	// Options is the base session setup. A zero Seed picks one per connection.
	Options marbles.Options

	// TickRate is the simulation rate in ticks per second (default 60).
	TickRate int

	// Store records scores and progress. Optional.
	Store *storage.Store
}

// Handler upgrades HTTP requests and runs one session per connection.
type Handler struct {
	cfg      HandlerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return &Handler{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// clientMessage is a command sent by the browser.
type clientMessage struct {
	Type  string   `json:"type"`
	Angle *float64 `json:"angle,omitempty"`
	Delta float64  `json:"delta,omitempty"`
}

type helloMessage struct {
	Type     string   `json:"type"`
	Session  string   `json:"session"`
	Player   string   `json:"player"`
	Level    int      `json:"level"`
	Levels   []string `json:"levels"`
	TickRate int      `json:"tick_rate"`
}

type frameMessage struct {
	Type     string        `json:"type"`
	Session  string        `json:"session"`
	Tick     uint64        `json:"tick"`
	Summary  core.Summary  `json:"summary"`
	Snapshot core.Snapshot `json:"snapshot"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ServeHTTP handles /ws. Query parameters: player (name for the score
// table) and level (1-indexed start level).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := h.cfg.Options
	if v := r.URL.Query().Get("level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil || level < 1 {
			http.Error(w, "invalid level", http.StatusBadRequest)
			return
		}
		opts.StartLevel = level
	}
	player := r.URL.Query().Get("player")
	if player == "" {
		player = "web"
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := h.logger.With("session", id, "player", player)

	session, set, err := marbles.Build(opts)
	if err != nil {
		logger.Error("cannot build session", "error", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session unavailable")
		//nolint:errcheck // Closing anyway.
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		return
	}

	c := &client{
		id:       id,
		player:   player,
		conn:     conn,
		session:  session,
		logger:   logger,
		store:    h.cfg.Store,
		tickRate: h.cfg.TickRate,
		commands: make(chan clientMessage, commandBacklog),
	}

	hello := helloMessage{
		Type:     "hello",
		Session:  id,
		Player:   player,
		Level:    session.Level() + 1,
		Levels:   set.Names(),
		TickRate: h.cfg.TickRate,
	}
	if err := c.writeJSON(hello); err != nil {
		logger.Warn("hello failed", "error", err)
		return
	}
	logger.Info("websocket session started", "remote", r.RemoteAddr, "level", hello.Level)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(ctx)
	}()

	c.readLoop(ctx)
	cancel()
	<-done

	logger.Info("websocket session ended", "score", session.Score(), "level", session.Level()+1)
}

// client is one connection and the session it drives.
type client struct {
	id       string
	player   string
	conn     *websocket.Conn
	session  *core.Session
	logger   *log.Logger
	store    *storage.Store
	tickRate int
	commands chan clientMessage

	tick       uint64
	savedLevel int
	scoreSaved bool
}

// readLoop decodes client commands until the connection drops.
func (c *client) readLoop(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageBytes)
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("read failed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.logger.Debug("discarding malformed message", "error", err)
			continue
		}

		select {
		case c.commands <- msg:
		case <-ctx.Done():
			return
		default:
			c.logger.Warn("command backlog full, dropping", "type", msg.Type)
		}
	}
}

// run owns the session: it applies queued commands and ticks at the
// configured rate. All writes to the connection happen here.
func (c *client) run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(c.tickRate))
	defer ticker.Stop()
	elapsed := 1000 / float64(c.tickRate)

	for {
		select {
		case <-ctx.Done():
			c.hangUp()
			return

		case msg := <-c.commands:
			if err := c.apply(msg); err != nil {
				if werr := c.writeJSON(errorMessage{Type: "error", Message: err.Error()}); werr != nil {
					c.closeOnError(werr)
					return
				}
			}

		case <-ticker.C:
			sum := c.session.Tick(elapsed)
			c.tick++
			c.record()

			frame := frameMessage{
				Type:     "frame",
				Session:  c.id,
				Tick:     c.tick,
				Summary:  sum,
				Snapshot: c.session.Snapshot(),
			}
			if err := c.writeJSON(frame); err != nil {
				c.closeOnError(err)
				return
			}
		}
	}
}

type commandError string

func (e commandError) Error() string { return string(e) }

// apply executes one client command against the session.
func (c *client) apply(msg clientMessage) error {
	s := c.session
	switch msg.Type {
	case "aim":
		if msg.Angle == nil {
			return commandError("aim needs an angle")
		}
		s.SetAim(*msg.Angle)
	case "rotate":
		s.RotateAim(msg.Delta)
	case "fire":
		s.Fire()
	case "swap":
		s.Swap()
	case "pause":
		s.SetPaused(true)
	case "resume":
		s.SetPaused(false)
	case "next":
		if s.Outcome() != core.OutcomeWon {
			return commandError("no level to advance to")
		}
		if err := s.NextLevel(); err != nil {
			return err
		}
	case "restart":
		if err := s.Restart(s.Level()); err != nil {
			return err
		}
		c.scoreSaved = false
	default:
		return commandError("unknown command " + strconv.Quote(msg.Type))
	}
	return nil
}

// record persists progress and the final score of a finished run.
func (c *client) record() {
	if c.store == nil {
		return
	}
	s := c.session

	if level := s.Level() + 1; level > c.savedLevel {
		if err := c.store.SaveProgress(c.player, level); err != nil {
			c.logger.Warn("could not save progress", "error", err)
		} else {
			c.savedLevel = level
		}
	}

	over := s.State() == core.StateStopped &&
		(s.Outcome() == core.OutcomeLost || s.Outcome() == core.OutcomeCompleted)
	if over && !c.scoreSaved {
		c.scoreSaved = true
		if s.Score() > 0 {
			if _, err := c.store.SaveScore(c.player, s.Score(), s.Level()+1); err != nil {
				c.logger.Warn("could not save score", "error", err)
			}
		}
	}
}

func (c *client) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	//nolint:errcheck // A failed deadline surfaces on the write.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// hangUp sends a close frame and closes the connection, which ends the
// read loop if it is still waiting.
func (c *client) hangUp() {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "session over")
	//nolint:errcheck // Best effort.
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.conn.Close()
}

// closeOnError unblocks the read loop after a failed write.
func (c *client) closeOnError(err error) {
	c.logger.Debug("write failed", "error", err)
	c.conn.Close()
}
