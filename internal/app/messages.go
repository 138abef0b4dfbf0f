package app

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/planningpoker/internal/core"
	"github.com/dkeye/planningpoker/internal/domain"
)

// Event names shared by inbound and outbound frames.
const (
	EventRoom         = "room"
	EventNewName      = "newName"
	EventCardSelected = "cardSelected"
	EventNewUserStory = "newUserStory"
	EventRevealCards  = "revealCards"
	EventPlayAgain    = "playAgain"
	EventPing         = "ping"

	EventParticipants = "participants"
	EventPong         = "pong"
)

// Envelope is the JSON frame exchanged with clients.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ParticipantsPayload struct {
	People     domain.People `json:"people"`
	ID         domain.ConnID `json:"id,omitempty"`
	Connect    string        `json:"connect,omitempty"`
	Disconnect string        `json:"disconnect,omitempty"`
}

type PlayAgainPayload struct {
	People domain.People `json:"people"`
}

func encode(event string, data any) (core.Frame, error) {
	env := Envelope{Type: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		env.Data = raw
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return b, nil
}
