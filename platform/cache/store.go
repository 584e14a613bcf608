package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"
)

var ErrNoSnapshot = errors.New("no snapshot stored")

// Store keeps the latest auction snapshot and the lobby join order of each
// room in redis, so reconnecting participants can be replayed the state.
type Store struct {
	pool *redis.Pool
	log  *logrus.Entry
}

func NewStore(pool *redis.Pool) *Store {
	return &Store{pool: pool, log: logrus.WithField("component", "cache")}
}

func snapshotKey(gameID string) string { return fmt.Sprintf("%s.snapshot", gameID) }
func orderKey(gameID string) string    { return fmt.Sprintf("%s.order", gameID) }

func (s *Store) SaveSnapshot(gameID string, st models.AuctionState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	conn := s.pool.Get()
	defer conn.Close()

	if err := HSET(conn, snapshotKey(gameID), "state", raw); err != nil {
		s.log.WithError(err).WithField("game_id", gameID).Error("saving snapshot")
		return err
	}
	return HSET(conn, snapshotKey(gameID), "seq", st.Seq)
}

func (s *Store) LoadSnapshot(gameID string) (models.AuctionState, error) {
	conn := s.pool.Get()
	defer conn.Close()

	raw, err := HGET(conn, snapshotKey(gameID), "state")
	if errors.Is(err, redis.ErrNil) {
		return models.AuctionState{}, ErrNoSnapshot
	}
	if err != nil {
		return models.AuctionState{}, err
	}
	var st models.AuctionState
	if err := json.Unmarshal(raw, &st); err != nil {
		return models.AuctionState{}, fmt.Errorf("decoding snapshot of %s: %w", gameID, err)
	}
	return st, nil
}

func (s *Store) AddParticipant(gameID, name string) error {
	conn := s.pool.Get()
	defer conn.Close()
	return RPUSH(conn, orderKey(gameID), name)
}

func (s *Store) RemoveParticipant(gameID, name string) error {
	conn := s.pool.Get()
	defer conn.Close()
	return LREM(conn, orderKey(gameID), name)
}

// Participants returns the lobby in join order.
func (s *Store) Participants(gameID string) ([]string, error) {
	conn := s.pool.Get()
	defer conn.Close()
	return LGET(conn, orderKey(gameID))
}

func (s *Store) Clear(gameID string) error {
	conn := s.pool.Get()
	defer conn.Close()
	return Del(conn, snapshotKey(gameID), orderKey(gameID))
}
