package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/pkg"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/DedS3t/monopoly-auction/platform/cache"
	"github.com/DedS3t/monopoly-auction/platform/config"
	"github.com/DedS3t/monopoly-auction/platform/queries"
	"github.com/DedS3t/monopoly-auction/platform/simulator"
	"github.com/go-pg/pg/v10"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Config    config.Config
	DB        *pg.DB
	Store     *cache.Store
	Catalog   *board.Catalog
	Rules     models.Rules
	Simulator simulator.Simulator
	Validator *Validator
}

// Server hosts one auction per game room over socket.io.
type Server struct {
	deps Deps
	io   *socketio.Server
	log  *logrus.Entry

	mu    sync.Mutex
	hosts map[string]*Host
}

type roomChannel struct {
	io  *socketio.Server
	log *logrus.Entry
}

func (c roomChannel) Broadcast(room string, msg models.Message) {
	raw, err := json.Marshal(msg)
	if err != nil {
		c.log.WithError(err).Error("encoding message")
		return
	}
	c.io.BroadcastToRoom("/", room, "message", string(raw))
}

func NewServer(deps Deps) (*Server, error) {
	io, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	s := &Server{
		deps:  deps,
		io:    io,
		log:   logrus.WithField("component", "sockets"),
		hosts: make(map[string]*Host),
	}
	s.routes()
	return s, nil
}

func (s *Server) host(gameID string) *Host {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.hosts[gameID]; ok {
		return h
	}
	h := NewHost(HostConfig{
		GameID:        gameID,
		Channel:       roomChannel{io: s.io, log: s.log},
		Store:         s.deps.Store,
		Validator:     s.deps.Validator,
		Catalog:       s.deps.Catalog,
		StartingMoney: s.deps.Rules.StartingMoney,
		Logger:        s.log,
		OnComplete:    s.simulate,
	})
	s.hosts[gameID] = h
	return h
}

func (s *Server) dropHost(gameID string) {
	s.mu.Lock()
	delete(s.hosts, gameID)
	s.mu.Unlock()
	if err := s.deps.Store.Clear(gameID); err != nil {
		s.log.WithError(err).WithField("game_id", gameID).Warn("clearing room cache")
	}
}

// simulate runs the aggregator off the socket goroutine and broadcasts the
// results snapshot when it is done.
func (s *Server) simulate(gameID string, assignment models.Assignment) {
	log := s.log.WithField("game_id", gameID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		res, err := s.deps.Simulator.Run(ctx, assignment, s.deps.Config.SimulationGames)
		if err != nil {
			log.WithError(err).Error("simulation failed")
			return
		}
		if _, err := queries.SaveSimulation(gameID, assignment, res, s.deps.DB); err != nil {
			log.WithError(err).Warn("simulation not archived")
		}
		if err := queries.SetStatus(gameID, queries.StatusFinished, s.deps.DB); err != nil {
			log.WithError(err).Warn("updating game status")
		}
		if _, err := s.host(gameID).Publish(simulator.Report(res)); err != nil {
			log.WithError(err).Error("publishing results")
		}
	}()
}

func participantOf(c socketio.Conn) (models.Participant, bool) {
	p, ok := c.Context().(models.Participant)
	return p, ok
}

func (s *Server) routes() {
	server := s.io

	server.OnConnect("/", func(c socketio.Conn) error {
		c.SetContext(nil)
		return nil
	})

	server.OnEvent("/", "join-game", func(c socketio.Conn, jsonStr string) {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal([]byte(jsonStr), &req); err != nil {
			c.Emit("error-message", "Bad request")
			return
		}
		p, err := pkg.ParseToken(s.deps.Config.JWTSecret, req.Token)
		if err != nil {
			c.Emit("error-message", "User not authenticated")
			c.Emit("failed")
			return
		}
		if !queries.VerifyGame(p.Game_id, s.deps.DB) {
			c.Emit("error-message", "Invalid game")
			c.Emit("failed")
			return
		}

		h := s.host(p.Game_id)
		if err := h.Join(p.Name); err != nil && !errors.Is(err, ErrAlreadyStarted) {
			s.log.WithError(err).Error("joining lobby")
			c.Emit("error-message", "Failed joining game")
			c.Emit("failed")
			return
		}
		c.SetContext(p)
		c.Join(p.Game_id)
		c.Emit("joined-game", strconv.Itoa(server.RoomLen("/", p.Game_id)))
		s.log.WithFields(logrus.Fields{"game_id": p.Game_id, "participant": p.Name, "conn": c.ID()}).Info("joined room")

		if st, ok := h.Snapshot(); ok {
			s.emitSnapshot(c, st)
		}
	})

	server.OnEvent("/", "leave-game", func(c socketio.Conn) {
		p, ok := participantOf(c)
		if !ok {
			return
		}
		c.Leave(p.Game_id)
		c.SetContext(nil)
		if err := s.host(p.Game_id).Leave(p.Name); err != nil && !errors.Is(err, ErrAlreadyStarted) {
			s.log.WithError(err).Warn("leaving lobby")
		}
		if err := queries.DeletePlayer(p.User_id, p.Game_id, s.deps.DB); err != nil {
			s.log.WithError(err).Warn("deleting player")
		}
		if !queries.VerifyGame(p.Game_id, s.deps.DB) {
			s.dropHost(p.Game_id)
		}
		server.BroadcastToRoom("/", p.Game_id, "player-left", p.Name)
	})

	server.OnEvent("/", "start-game", func(c socketio.Conn, jsonStr string) {
		p, ok := participantOf(c)
		if !ok {
			c.Emit("error-message", "User not authenticated")
			return
		}
		mode, err := startMode(jsonStr)
		if err != nil {
			s.log.WithError(err).WithField("game_id", p.Game_id).Debug("bad start-game body")
			c.Emit("error-message", "Malformed start request")
			return
		}
		if mode == "" {
			if game, err := queries.GetGame(p.Game_id, s.deps.DB); err == nil {
				mode = models.AuctionMode(game.Type)
			}
		}

		if _, err := s.host(p.Game_id).Start(mode); err != nil {
			s.log.WithError(err).WithField("game_id", p.Game_id).Warn("failed to start game")
			c.Emit("error-message", "Unable to start game")
			return
		}
		if err := queries.SetStatus(p.Game_id, queries.StatusInProgress, s.deps.DB); err != nil {
			s.log.WithError(err).Warn("updating game status")
		}
		server.BroadcastToRoom("/", p.Game_id, "game-start")
	})

	server.OnEvent("/", "message", func(c socketio.Conn, frame string) {
		p, ok := participantOf(c)
		if !ok {
			return
		}
		if _, err := s.host(p.Game_id).Handle(p.Name, []byte(frame)); err != nil {
			c.Emit("error-message", err.Error())
		}
	})

	server.OnEvent("/", "resync", func(c socketio.Conn) {
		p, ok := participantOf(c)
		if !ok {
			return
		}
		st, err := s.deps.Store.LoadSnapshot(p.Game_id)
		if err != nil {
			if h, ok := s.host(p.Game_id).Snapshot(); ok {
				st, err = h, nil
			}
		}
		if err != nil {
			c.Emit("error-message", "Nothing to replay")
			return
		}
		s.emitSnapshot(c, st)
	})

	server.OnError("/", func(c socketio.Conn, e error) {
		s.log.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		for _, room := range c.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		c.LeaveAll()
	})
}

func (s *Server) emitSnapshot(c socketio.Conn, st models.AuctionState) {
	msg, err := models.NewMessage(models.MsgStateSnapshot, st)
	if err != nil {
		return
	}
	raw, _ := json.Marshal(msg)
	c.Emit("message", string(raw))
}

// Handler serves socket.io behind CORS for the configured origins.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.deps.Config.AllowedOrigins,
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	return c.Handler(mux)
}

func (s *Server) ListenAndServe() error {
	go func() {
		if err := s.io.Serve(); err != nil {
			s.log.WithError(err).Error("socket.io stopped")
		}
	}()
	defer s.io.Close()
	s.log.WithField("addr", s.deps.Config.SocketAddr).Info("socket server listening")
	return http.ListenAndServe(s.deps.Config.SocketAddr, s.Handler())
}

// startMode reads the optional mode from a start-game body. An empty body
// leaves the choice to the room's stored type.
func startMode(body string) (models.AuctionMode, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	var req struct {
		Mode models.AuctionMode `json:"mode"`
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return req.Mode, nil
}
