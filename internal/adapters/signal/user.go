package signal

import (
	"encoding/json"

	"github.com/dkeye/planningpoker/internal/app"
	"github.com/dkeye/planningpoker/internal/domain"
)

func (ctl *SignalWSController) handleRename(id domain.ConnID, data json.RawMessage) {
	type renamePayload struct {
		Room    domain.RoomName `json:"room"`
		NewName string          `json:"newName"`
	}
	var p renamePayload
	if !decode(id, app.EventNewName, data, &p) {
		return
	}
	ctl.Hub.Rename(id, p.Room, p.NewName)
}
