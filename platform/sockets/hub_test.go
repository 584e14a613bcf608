package socket

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu   sync.Mutex
	sent []models.Message
}

func (f *fakeChannel) Broadcast(room string, msg models.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
}

func (f *fakeChannel) frames(t *testing.T) [][]byte {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]byte
	for _, m := range f.sent {
		raw, err := json.Marshal(m)
		require.NoError(t, err)
		out = append(out, raw)
	}
	return out
}

func (f *fakeChannel) count(t models.MessageType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.sent {
		if m.Type == t {
			n++
		}
	}
	return n
}

type fakeStore struct {
	snapshots map[string]models.AuctionState
	order     []string
	fail      error
}

func (f *fakeStore) SaveSnapshot(gameID string, st models.AuctionState) error {
	if f.fail != nil {
		return f.fail
	}
	if f.snapshots == nil {
		f.snapshots = map[string]models.AuctionState{}
	}
	f.snapshots[gameID] = st
	return nil
}

func (f *fakeStore) AddParticipant(gameID, name string) error {
	f.order = append(f.order, name)
	return nil
}

func (f *fakeStore) RemoveParticipant(gameID, name string) error {
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func frame(t *testing.T, typ models.MessageType, payload interface{}) []byte {
	t.Helper()
	msg, err := models.NewMessage(typ, payload)
	require.NoError(t, err)
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	return raw
}

func newHost(t *testing.T, ch *fakeChannel, store Store, props ...string) *Host {
	t.Helper()
	return NewHost(HostConfig{
		GameID:     "ROOM1",
		Channel:    ch,
		Store:      store,
		Validator:  newValidator(t),
		Properties: props,
	})
}

func TestHost_JoinBroadcastsAndIgnoresDuplicates(t *testing.T) {
	ch, store := &fakeChannel{}, &fakeStore{}
	h := newHost(t, ch, store, "Boardwalk")

	require.NoError(t, h.Join("P1"))
	require.NoError(t, h.Join("P2"))
	require.NoError(t, h.Join("P1"))

	assert.Equal(t, []string{"P1", "P2"}, h.Participants())
	assert.Equal(t, []string{"P1", "P2"}, store.order)
	assert.Equal(t, 2, ch.count(models.MsgParticipantJoined))

	require.NoError(t, h.Leave("P2"))
	assert.Equal(t, []string{"P1"}, h.Participants())
	assert.Equal(t, []string{"P1"}, store.order)
}

func TestHost_RejectsBeforeStartAndAfterJoinClosed(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, &fakeStore{}, "Boardwalk")
	h.Join("P1")
	h.Join("P2")

	_, err := h.Handle("P1", frame(t, models.MsgBid, models.BidPayload{Player: "P1", Amount: 10}))
	assert.ErrorIs(t, err, ErrNotStarted)

	_, err = h.Start(models.TurnBased)
	require.NoError(t, err)
	_, err = h.Start(models.TurnBased)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.ErrorIs(t, h.Join("P3"), ErrAlreadyStarted)
}

func TestHost_PeersCannotSeatParticipants(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, &fakeStore{}, "Boardwalk")
	h.Join("alice")

	_, err := h.Handle("alice", frame(t, models.MsgParticipantJoined, models.JoinedPayload{Name: "ghost"}))
	assert.ErrorIs(t, err, auction.ErrRejected)
	assert.Equal(t, []string{"alice"}, h.Participants())
	assert.Equal(t, 1, ch.count(models.MsgParticipantJoined))

	_, err = h.Handle("", frame(t, models.MsgParticipantJoined, models.JoinedPayload{Name: "bob"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, h.Participants())
}

func TestHost_StaleBidForClearedAssetIsDropped(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, &fakeStore{}, "Boardwalk", "Park Place")
	h.Join("A")
	h.Join("B")
	h.Start(models.Simultaneous)

	bid := frame(t, models.MsgBid, models.BidPayload{Player: "A", Amount: 300, Property: "Boardwalk"})
	_, err := h.Handle("A", bid)
	require.NoError(t, err)
	_, err = h.Handle("B", frame(t, models.MsgBid, models.BidPayload{Player: "B", Amount: 100, Property: "Boardwalk"}))
	require.NoError(t, err)
	sent := ch.count(models.MsgStateSnapshot)

	_, err = h.Handle("A", bid)
	assert.ErrorIs(t, err, auction.ErrStaleSubmission)
	assert.Equal(t, sent, ch.count(models.MsgStateSnapshot))

	st, err := h.Handle("A", frame(t, models.MsgBid, models.BidPayload{Player: "A", Amount: 50, Property: "Park Place"}))
	require.NoError(t, err)
	assert.Equal(t, "Park Place", st.CurrentProperty)
}

func TestHost_AcceptedInputIsBroadcastAndStored(t *testing.T) {
	ch, store := &fakeChannel{}, &fakeStore{}
	h := newHost(t, ch, store, "Boardwalk", "Park Place")
	h.Join("P1")
	h.Join("P2")
	h.Start(models.TurnBased)

	st, err := h.Handle("P1", frame(t, models.MsgBid, models.BidPayload{Player: "P1", Amount: 10}))
	require.NoError(t, err)

	assert.Equal(t, uint64(2), st.Seq)
	assert.Equal(t, 2, ch.count(models.MsgStateSnapshot), "start and bid")
	assert.Equal(t, st, store.snapshots["ROOM1"])
}

func TestHost_RejectedInputIsDropped(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, &fakeStore{}, "Boardwalk")
	h.Join("P1")
	h.Join("P2")
	h.Start(models.TurnBased)
	before, _ := h.Snapshot()

	cases := []struct {
		name   string
		sender string
		frame  []byte
		want   error
	}{
		{"out of turn", "P2", frame(t, models.MsgBid, models.BidPayload{Player: "P2", Amount: 10}), auction.ErrNotYourTurn},
		{"too rich", "P1", frame(t, models.MsgBid, models.BidPayload{Player: "P1", Amount: 5000}), auction.ErrInsufficientFunds},
		{"impersonation", "P2", frame(t, models.MsgPass, models.PassPayload{Player: "P1"}), auction.ErrRejected},
		{"snapshot to host", "P1", frame(t, models.MsgStateSnapshot, before), auction.ErrRejected},
		{"negative bid", "P1", []byte(`{"type":"BID","payload":{"player":"P1","amount":-4}}`), ErrMalformedMessage},
		{"unknown tag", "P1", []byte(`{"type":"CHAT","payload":{}}`), ErrMalformedMessage},
		{"missing payload", "P1", []byte(`{"type":"PASS"}`), ErrMalformedMessage},
		{"not json", "P1", []byte(`BID 10`), ErrMalformedMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Handle(tc.sender, tc.frame)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	after, _ := h.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, 1, ch.count(models.MsgStateSnapshot))
}

func TestHost_CompletionRunsHookThenPublishes(t *testing.T) {
	ch := &fakeChannel{}
	var got models.Assignment
	calls := 0
	var h *Host
	h = NewHost(HostConfig{
		GameID:     "ROOM1",
		Channel:    ch,
		Validator:  newValidator(t),
		Properties: []string{"Boardwalk"},
		OnComplete: func(gameID string, a models.Assignment) {
			calls++
			got = a
			_, err := h.Publish(models.SimulationReport{GamesPlayed: 10})
			assert.NoError(t, err)
		},
	})
	h.Join("P1")
	h.Join("P2")
	h.Start(models.Simultaneous)

	_, err := h.Handle("P1", frame(t, models.MsgBid, models.BidPayload{Player: "P1", Amount: 400}))
	require.NoError(t, err)
	st, err := h.Handle("P2", frame(t, models.MsgPass, models.PassPayload{Player: "P2"}))
	require.NoError(t, err)

	assert.Equal(t, models.StageComplete, st.Stage)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"Boardwalk"}, got[0].Properties)
	assert.Equal(t, 1100, got[0].Money)

	final, _ := h.Snapshot()
	assert.Equal(t, models.StageResults, final.Stage)
	assert.Equal(t, 10, final.SimulationResults.GamesPlayed)
}

func TestHost_StoreFailureStillBroadcasts(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, &fakeStore{fail: errors.New("redis down")}, "Boardwalk")
	h.Join("P1")
	h.Join("P2")

	_, err := h.Start(models.TurnBased)
	require.NoError(t, err)
	assert.Equal(t, 1, ch.count(models.MsgStateSnapshot))
}

func TestReplica_FollowsHost(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, nil, "Boardwalk", "Park Place")
	h.Join("P1")
	h.Join("P2")
	h.Start(models.TurnBased)
	h.Handle("P1", frame(t, models.MsgBid, models.BidPayload{Player: "P1", Amount: 10}))
	h.Handle("P2", frame(t, models.MsgBid, models.BidPayload{Player: "P2", Amount: 20}))
	h.Handle("P1", frame(t, models.MsgPass, models.PassPayload{Player: "P1"}))

	r := NewReplica(nil, newValidator(t))
	for _, f := range ch.frames(t) {
		_, err := r.Apply(f)
		require.NoError(t, err)
	}

	got, ok := r.State()
	require.True(t, ok)
	want, _ := h.Snapshot()
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"Boardwalk"}, got.Players["P2"].Properties)
}

func TestReplica_IdempotentAndIgnoresStale(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, nil, "Boardwalk")
	h.Join("P1")
	h.Join("P2")
	h.Start(models.TurnBased)
	h.Handle("P1", frame(t, models.MsgBid, models.BidPayload{Player: "P1", Amount: 10}))

	frames := ch.frames(t)
	var snaps [][]byte
	for _, f := range frames {
		var m models.Message
		require.NoError(t, json.Unmarshal(f, &m))
		if m.Type == models.MsgStateSnapshot {
			snaps = append(snaps, f)
		}
	}
	require.Len(t, snaps, 2)

	r := NewReplica(nil, newValidator(t))
	changed, err := r.Apply(snaps[1])
	require.NoError(t, err)
	assert.True(t, changed)
	first, _ := r.State()

	changed, err = r.Apply(snaps[1])
	require.NoError(t, err)
	assert.False(t, changed, "duplicate")
	changed, err = r.Apply(snaps[0])
	require.NoError(t, err)
	assert.False(t, changed, "older seq")

	second, _ := r.State()
	assert.Equal(t, first, second)
}

func TestReplica_RejectsMalformedWithoutTouchingView(t *testing.T) {
	ch := &fakeChannel{}
	h := newHost(t, ch, nil, "Boardwalk")
	h.Join("P1")
	h.Join("P2")
	st, _ := h.Start(models.TurnBased)

	r := NewReplica(nil, newValidator(t))
	_, err := r.Apply(frame(t, models.MsgStateSnapshot, st))
	require.NoError(t, err)

	bad := st.Clone()
	bad.Seq = 9
	bad.Players["P1"] = models.AuctionPlayer{Money: 10, Properties: []string{"Boardwalk"}}
	_, err = r.Apply(frame(t, models.MsgStateSnapshot, bad))
	assert.ErrorIs(t, err, auction.ErrInvalidSnapshot)

	_, err = r.Apply([]byte(`{"type":"STATE_SNAPSHOT","payload":{"seq":"ten"}}`))
	assert.ErrorIs(t, err, ErrMalformedMessage)

	changed, err := r.Apply(frame(t, models.MsgParticipantJoined, models.JoinedPayload{Name: "P3"}))
	require.NoError(t, err)
	assert.False(t, changed)

	got, _ := r.State()
	assert.Equal(t, st, got)
}
