package models

import "encoding/json"

type MessageType string

const (
	MsgBid               MessageType = "BID"
	MsgPass              MessageType = "PASS"
	MsgStateSnapshot     MessageType = "STATE_SNAPSHOT"
	MsgParticipantJoined MessageType = "PARTICIPANT_JOINED"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Property names the asset the input is for. Older clients leave it out.
type BidPayload struct {
	Player   string `json:"player"`
	Amount   int    `json:"amount"`
	Property string `json:"property,omitempty"`
}

type PassPayload struct {
	Player   string `json:"player"`
	Property string `json:"property,omitempty"`
}

type JoinedPayload struct {
	Name string `json:"name"`
}

func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
