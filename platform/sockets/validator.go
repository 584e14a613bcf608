package socket

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrMalformedMessage = errors.New("malformed message")

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBase = "https://monopoly-auction.local/schemas/"

var payloadSchemas = map[models.MessageType]string{
	models.MsgBid:               "bid.schema.json",
	models.MsgPass:              "pass.schema.json",
	models.MsgStateSnapshot:     "snapshot.schema.json",
	models.MsgParticipantJoined: "joined.schema.json",
}

// Validator checks inbound frames against the message schemas before they are
// decoded.
type Validator struct {
	envelope *jsonschema.Schema
	payloads map[models.MessageType]*jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		raw, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, err
		}
		if err := c.AddResource(schemaBase+e.Name(), bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("schema %s: %w", e.Name(), err)
		}
	}

	v := &Validator{payloads: make(map[models.MessageType]*jsonschema.Schema, len(payloadSchemas))}
	if v.envelope, err = c.Compile(schemaBase + "envelope.schema.json"); err != nil {
		return nil, err
	}
	for t, name := range payloadSchemas {
		s, err := c.Compile(schemaBase + name)
		if err != nil {
			return nil, err
		}
		v.payloads[t] = s
	}
	return v, nil
}

// Decode validates a frame and returns its envelope. The payload is left raw
// for the caller to decode into the type its tag names.
func (v *Validator) Decode(frame []byte) (models.Message, error) {
	var doc interface{}
	if err := json.Unmarshal(frame, &doc); err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := v.envelope.Validate(doc); err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	var msg models.Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	payload := doc.(map[string]interface{})["payload"]
	if err := v.payloads[msg.Type].Validate(payload); err != nil {
		return models.Message{}, fmt.Errorf("%w: %s payload: %v", ErrMalformedMessage, msg.Type, err)
	}
	return msg, nil
}

func decodePayload(msg models.Message, into interface{}) error {
	if err := json.Unmarshal(msg.Payload, into); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return nil
}
