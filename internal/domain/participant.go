// Package domain contains entity without logic, just meta-data
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ConnID is the transport-assigned identity of one live connection.
type ConnID string

// Card is a participant's estimate for the current round, kept as the raw
// JSON value the client sent so it is echoed back unchanged.
// The zero value means no card has been selected.
type Card string

func (c Card) IsSet() bool { return c != "" }

// UnmarshalJSON stores any JSON value in compact form. null clears the card.
func (c *Card) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}
	*c = Card(buf.String())
	return nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return []byte(c), nil
}

type Participant struct {
	Name string `json:"name"`
	Card Card   `json:"card,omitempty"`
}

// People is a roster snapshot keyed by connection.
type People map[ConnID]Participant
