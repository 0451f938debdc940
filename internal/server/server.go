package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/acquire/internal/game"
	"github.com/lox/acquire/internal/gameid"
	"github.com/lox/acquire/internal/randutil"
)

// Server hosts one game over WebSockets. Players join until the configured
// seat count is reached, then the engine runs with a network agent per
// seat. The engine loop blocks on each remote decision, so game state needs
// no locking of its own.
type Server struct {
	cfg      *Config
	gameCfg  GameConfig
	logger   *log.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader

	httpServer *http.Server

	mu      sync.Mutex
	seats   []*seat
	started bool
	gameID  string
}

type seat struct {
	name  string
	conn  *Connection
	agent *NetworkAgent
}

// NewServer creates a server for the first configured game. A config built
// without LoadConfig may omit the game block entirely; the default game is
// used then.
func NewServer(cfg *Config, logger *log.Logger) *Server {
	if len(cfg.Games) == 0 {
		cfg.Games = DefaultConfig().Games
	}
	if len(cfg.Games) > 1 {
		logger.Warn("multiple games configured, hosting the first", "game", cfg.Games[0].Name)
	}
	return &Server{
		cfg:     cfg,
		gameCfg: cfg.Games[0],
		logger:  logger.WithPrefix("server"),
		clock:   quartz.NewReal(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		gameID: gameid.New(),
	}
}

// Handler returns the HTTP handler serving the WebSocket and health
// endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{Addr: s.cfg.ListenAddress(), Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.cfg.ListenAddress(), "game", s.gameCfg.Name,
			"players", s.gameCfg.Players)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	conn := NewConnection(wsConn, s.clock, s.logger, s.handleMessage)
	conn.Start()

	go func() {
		<-conn.Done()
		s.dropConnection(conn)
	}()
}

func (s *Server) dropConnection(conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.seats {
		if st.conn != conn {
			continue
		}
		if s.started {
			// The engine will surface the dead connection as a decision
			// error; the seat stays so names keep lining up.
			s.logger.Warn("player disconnected mid-game", "player", st.name)
			return
		}
		s.seats = append(s.seats[:i], s.seats[i+1:]...)
		s.logger.Info("player left before start", "player", st.name, "seated", len(s.seats))
		return
	}
}

func (s *Server) handleMessage(conn *Connection, msg *Message) {
	switch msg.Type {
	case MessageTypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			conn.SendError("invalid_message", "failed to parse join data")
			return
		}
		s.handleJoin(conn, data)

	case MessageTypeDecision:
		var data DecisionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			conn.SendError("invalid_message", "failed to parse decision data")
			return
		}
		s.handleDecision(conn, data)

	default:
		conn.SendError("unknown_message_type", "unknown message type: "+msg.Type.String())
	}
}

func (s *Server) handleJoin(conn *Connection, data JoinData) {
	if data.PlayerName == "" {
		conn.SendError("invalid_join", "player name required")
		return
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		conn.SendError("game_started", "the game has already started")
		return
	}
	for _, st := range s.seats {
		if st.name == data.PlayerName {
			s.mu.Unlock()
			conn.SendError("name_taken", "that name is already seated")
			return
		}
	}
	conn.SetPlayerName(data.PlayerName)
	st := &seat{name: data.PlayerName, conn: conn, agent: NewNetworkAgent(conn, s.logger)}
	s.seats = append(s.seats, st)
	seatNo := len(s.seats) - 1
	full := len(s.seats) == s.gameCfg.Players
	s.mu.Unlock()

	s.logger.Info("player joined", "player", data.PlayerName, "seat", seatNo)
	welcome, _ := NewMessage(MessageTypeWelcome, WelcomeData{GameID: s.gameID, Seat: seatNo})
	_ = conn.Send(welcome)

	if full {
		go s.startGame()
	}
}

func (s *Server) handleDecision(conn *Connection, data DecisionData) {
	s.mu.Lock()
	var agent *NetworkAgent
	for _, st := range s.seats {
		if st.conn == conn {
			agent = st.agent
			break
		}
	}
	s.mu.Unlock()

	if agent == nil {
		conn.SendError("not_seated", "join before sending decisions")
		return
	}
	agent.Resolve(data)
}

func (s *Server) startGame() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	seats := make([]*seat, len(s.seats))
	copy(seats, s.seats)
	s.mu.Unlock()

	names := make([]string, len(seats))
	agents := make([]game.Agent, len(seats))
	for i, st := range seats {
		names[i] = st.name
		agents[i] = st.agent
	}

	seed := s.gameCfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine, err := game.NewEngine(names, agents, s.logger, randutil.New(seed))
	if err != nil {
		s.logger.Error("starting game", "error", err)
		s.broadcastError(seats, "start_failed", err.Error())
		return
	}

	engine.Events().Subscribe(func(event game.Event) {
		s.broadcast(seats, MessageTypeGameEvent, GameEventDataFromGame(event))
		s.broadcast(seats, MessageTypeGameState, GameStateData{State: engine.Snapshot()})
		if event.Type == game.EventRoundStarted {
			s.sendHands(seats, engine)
		}
	})

	s.logger.Info("game starting", "game", s.gameID, "players", names, "seed", seed)
	s.broadcast(seats, MessageTypeGameStarted, GameStartedData{GameID: s.gameID, Players: names})
	s.sendHands(seats, engine)

	if err := engine.Run(); err != nil {
		s.logger.Error("game aborted", "error", err)
		s.broadcastError(seats, "game_aborted", err.Error())
		return
	}

	snap := engine.Snapshot()
	s.logger.Info("game over", "reason", snap.OverReason)
	s.broadcast(seats, MessageTypeGameOver, GameOverData{Reason: snap.OverReason, State: snap})
}

// sendHands sends each seated player their private hand.
func (s *Server) sendHands(seats []*seat, engine *game.Engine) {
	for i, player := range engine.Players() {
		player.AnalyzeCards(engine.Board(), engine.Chains())
		cards := make([]CardInfo, 0, len(player.Cards))
		for _, card := range player.AnalyzedCards() {
			cards = append(cards, CardInfoFromGame(card))
		}
		msg, err := NewMessage(MessageTypeHand, HandData{Cards: cards})
		if err != nil {
			continue
		}
		_ = seats[i].conn.Send(msg)
	}
}

func (s *Server) broadcast(seats []*seat, messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("building broadcast", "type", messageType, "error", err)
		return
	}
	for _, st := range seats {
		if err := st.conn.Send(msg); err != nil {
			s.logger.Debug("broadcast dropped", "player", st.name, "error", err)
		}
	}
}

func (s *Server) broadcastError(seats []*seat, code, message string) {
	for _, st := range seats {
		st.conn.SendError(code, message)
	}
}
