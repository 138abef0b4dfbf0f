package signal

import (
	"encoding/json"

	"github.com/dkeye/planningpoker/internal/app"
	"github.com/dkeye/planningpoker/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRoom(id domain.ConnID, data json.RawMessage) {
	var room string
	if !decode(id, app.EventRoom, data, &room) {
		return
	}
	if room == "" {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("empty room name")
		return
	}
	ctl.Hub.JoinRoom(id, domain.RoomName(room))
}

func (ctl *SignalWSController) handleCardSelected(id domain.ConnID, data json.RawMessage) {
	type cardPayload struct {
		Room domain.RoomName `json:"room"`
		Card domain.Card     `json:"card"`
	}
	var p cardPayload
	if !decode(id, app.EventCardSelected, data, &p) {
		return
	}
	ctl.Hub.SelectCard(id, p.Room, p.Card)
}
