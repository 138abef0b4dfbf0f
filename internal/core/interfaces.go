package core

import (
	"errors"

	"github.com/dkeye/planningpoker/internal/domain"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_connection.go github.com/dkeye/planningpoker/internal/core Connection

var (
	ErrUnknownConnection = errors.New("unknown connection")
	ErrConnectionExists  = errors.New("connection already registered")

	ErrBackpressure     = errors.New("backpressure")
	ErrConnectionClosed = errors.New("connection closed")
)

// Frame is one encoded outbound message.
type Frame []byte

// Connection abstracts the messaging transport of one client.
// Owned by the adapter; the adapter must Close() it.
type Connection interface {
	// TrySend queues f without blocking. It returns ErrBackpressure when the
	// queue is full and ErrConnectionClosed after Close.
	TrySend(f Frame) error
	Close()
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"client_count"`
}
