package signal

import "github.com/dkeye/planningpoker/internal/domain"

func (ctl *SignalWSController) handlePing(id domain.ConnID) {
	ctl.Hub.Ping(id)
}
