package signal

import (
	"encoding/json"

	"github.com/dkeye/planningpoker/internal/domain"
)

// handleNewUserStory passes the story through untouched; a frame without
// data sets a null story.
func (ctl *SignalWSController) handleNewUserStory(id domain.ConnID, data json.RawMessage) {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	ctl.Hub.NewUserStory(id, data)
}
