package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/auction"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotStarted     = errors.New("auction not started")
	ErrAlreadyStarted = errors.New("auction already started")
)

// Channel delivers a message to everyone in a room.
type Channel interface {
	Broadcast(room string, msg models.Message)
}

// Store keeps what a reconnecting participant needs to catch up.
type Store interface {
	SaveSnapshot(gameID string, st models.AuctionState) error
	AddParticipant(gameID, name string) error
	RemoveParticipant(gameID, name string) error
}

type HostConfig struct {
	GameID        string
	Channel       Channel
	Store         Store
	Validator     *Validator
	Catalog       *board.Catalog
	StartingMoney int
	Properties    []string
	Rand          *rand.Rand
	Logger        *logrus.Entry
	// OnComplete receives the final assignment once the last asset clears.
	// It runs after the host lock is released and may call Publish.
	OnComplete func(gameID string, a models.Assignment)
}

// Host is the authority for one room. It alone drives the Coordinator and
// every accepted transition goes out as a STATE_SNAPSHOT.
type Host struct {
	mu           sync.Mutex
	cfg          HostConfig
	log          *logrus.Entry
	participants []string
	coord        *auction.Coordinator
}

func NewHost(cfg HostConfig) *Host {
	if cfg.Catalog == nil {
		cfg.Catalog = board.Standard()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Host{
		cfg: cfg,
		log: cfg.Logger.WithFields(logrus.Fields{"component": "host", "game_id": cfg.GameID}),
	}
}

// Join adds a participant to the lobby. Joining twice is a no-op.
func (h *Host) Join(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.join(name)
}

func (h *Host) join(name string) error {
	if h.coord != nil {
		return ErrAlreadyStarted
	}
	for _, p := range h.participants {
		if p == name {
			return nil
		}
	}
	if h.cfg.Store != nil {
		if err := h.cfg.Store.AddParticipant(h.cfg.GameID, name); err != nil {
			return err
		}
	}
	h.participants = append(h.participants, name)

	msg, err := models.NewMessage(models.MsgParticipantJoined, models.JoinedPayload{Name: name})
	if err != nil {
		return err
	}
	h.cfg.Channel.Broadcast(h.cfg.GameID, msg)
	h.log.WithField("participant", name).Info("participant joined")
	return nil
}

// Leave drops a participant from the lobby. Once bidding has started the
// seat stays, since the auction still counts it.
func (h *Host) Leave(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.coord != nil {
		return ErrAlreadyStarted
	}
	for i, p := range h.participants {
		if p != name {
			continue
		}
		h.participants = append(h.participants[:i], h.participants[i+1:]...)
		if h.cfg.Store != nil {
			return h.cfg.Store.RemoveParticipant(h.cfg.GameID, name)
		}
		return nil
	}
	return nil
}

func (h *Host) Participants() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.participants...)
}

// Start opens bidding for everyone in the lobby.
func (h *Host) Start(mode models.AuctionMode) (models.AuctionState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.coord != nil {
		return models.AuctionState{}, ErrAlreadyStarted
	}
	coord, err := auction.New(h.participants, auction.Config{
		Mode:          mode,
		StartingMoney: h.cfg.StartingMoney,
		Properties:    h.cfg.Properties,
		Rand:          h.cfg.Rand,
		Catalog:       h.cfg.Catalog,
	})
	if err != nil {
		return models.AuctionState{}, err
	}
	h.coord = coord
	st := coord.State()
	h.log.WithFields(logrus.Fields{"mode": st.Mode, "players": len(st.Participants)}).Info("auction started")
	h.publish(st)
	return st, nil
}

// Handle applies one inbound frame. sender is the authenticated participant
// the frame came from; an empty sender skips the identity check. Rejected
// input leaves the state alone and nothing is broadcast.
func (h *Host) Handle(sender string, frame []byte) (models.AuctionState, error) {
	msg, err := h.cfg.Validator.Decode(frame)
	if err != nil {
		h.log.WithError(err).Debug("dropping frame")
		return models.AuctionState{}, err
	}

	h.mu.Lock()
	st, done, err := h.apply(sender, msg)
	var assignment models.Assignment
	if done {
		assignment = h.coord.Assignment()
	}
	h.mu.Unlock()

	if err != nil {
		h.log.WithError(err).WithField("sender", sender).Debug("rejected input")
		return models.AuctionState{}, err
	}
	if done && h.cfg.OnComplete != nil {
		h.cfg.OnComplete(h.cfg.GameID, assignment)
	}
	return st, nil
}

func (h *Host) apply(sender string, msg models.Message) (models.AuctionState, bool, error) {
	var (
		st  models.AuctionState
		err error
	)
	switch msg.Type {
	case models.MsgParticipantJoined:
		var p models.JoinedPayload
		if err := decodePayload(msg, &p); err != nil {
			return st, false, err
		}
		if sender != "" {
			return st, false, fmt.Errorf("%w: %s cannot seat %s, joins go through the lobby", auction.ErrRejected, sender, p.Name)
		}
		if err := h.join(p.Name); err != nil {
			return st, false, err
		}
		if h.coord == nil {
			return st, false, nil
		}
		return h.coord.State(), false, nil
	case models.MsgStateSnapshot:
		return st, false, fmt.Errorf("%w: snapshots only flow from the host", auction.ErrRejected)
	}

	if h.coord == nil {
		return st, false, ErrNotStarted
	}
	before := h.coord.State().Stage

	switch msg.Type {
	case models.MsgBid:
		var p models.BidPayload
		if err := decodePayload(msg, &p); err != nil {
			return st, false, err
		}
		if err := checkSender(sender, p.Player); err != nil {
			return st, false, err
		}
		st, err = h.coord.SubmitBidOn(p.Property, p.Player, p.Amount)
	case models.MsgPass:
		var p models.PassPayload
		if err := decodePayload(msg, &p); err != nil {
			return st, false, err
		}
		if err := checkSender(sender, p.Player); err != nil {
			return st, false, err
		}
		st, err = h.coord.SubmitPassOn(p.Property, p.Player)
	}
	if err != nil {
		return models.AuctionState{}, false, err
	}
	h.publish(st)
	done := before == models.StageAuction && st.Stage == models.StageComplete
	return st, done, nil
}

func checkSender(sender, player string) error {
	if sender != "" && sender != player {
		return fmt.Errorf("%w: %s cannot act for %s", auction.ErrRejected, sender, player)
	}
	return nil
}

// Publish attaches the simulation report and broadcasts the results snapshot.
func (h *Host) Publish(report models.SimulationReport) (models.AuctionState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.coord == nil {
		return models.AuctionState{}, ErrNotStarted
	}
	st, err := h.coord.AttachResults(report)
	if err != nil {
		return models.AuctionState{}, err
	}
	h.publish(st)
	return st, nil
}

// Snapshot returns the latest state, false before the auction starts.
func (h *Host) Snapshot() (models.AuctionState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.coord == nil {
		return models.AuctionState{}, false
	}
	return h.coord.State(), true
}

func (h *Host) publish(st models.AuctionState) {
	msg, err := models.NewMessage(models.MsgStateSnapshot, st)
	if err != nil {
		h.log.WithError(err).Error("encoding snapshot")
		return
	}
	h.cfg.Channel.Broadcast(h.cfg.GameID, msg)
	if h.cfg.Store == nil {
		return
	}
	if err := h.cfg.Store.SaveSnapshot(h.cfg.GameID, st); err != nil {
		h.log.WithError(err).WithField("seq", st.Seq).Warn("snapshot not persisted")
	}
}

// Replica is a participant's read-only view. It only ever replaces its state
// with a newer snapshot from the host.
type Replica struct {
	mu        sync.Mutex
	catalog   *board.Catalog
	validator *Validator
	state     models.AuctionState
	has       bool
}

func NewReplica(c *board.Catalog, v *Validator) *Replica {
	if c == nil {
		c = board.Standard()
	}
	return &Replica{catalog: c, validator: v}
}

// Apply takes one frame from the channel and reports whether the view
// changed. Frames other than snapshots are ignored, as are snapshots no newer
// than the current one, so duplicates and stale replays are harmless.
func (r *Replica) Apply(frame []byte) (bool, error) {
	msg, err := r.validator.Decode(frame)
	if err != nil {
		return false, err
	}
	if msg.Type != models.MsgStateSnapshot {
		return false, nil
	}
	var st models.AuctionState
	if err := json.Unmarshal(msg.Payload, &st); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := auction.Validate(r.catalog, st); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.has && st.Seq <= r.state.Seq {
		return false, nil
	}
	r.state = st
	r.has = true
	return true, nil
}

func (r *Replica) State() (models.AuctionState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.has {
		return models.AuctionState{}, false
	}
	return r.state.Clone(), true
}
