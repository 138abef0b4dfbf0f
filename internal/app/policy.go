package app

import (
	"errors"

	"github.com/dkeye/planningpoker/internal/core"
	"github.com/dkeye/planningpoker/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a recipient whose frame could not be queued.
type Policy interface {
	OnBackPressure(id domain.ConnID, err error) BackpressureAction
}

// SimplePolicy kicks clients that stopped draining their queue and ignores
// connections that are already closing.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ domain.ConnID, err error) BackpressureAction {
	if errors.Is(err, core.ErrBackpressure) {
		return KickMember
	}
	return NoAction
}
