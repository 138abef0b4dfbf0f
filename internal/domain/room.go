package domain

// RoomName identifies a room. Rooms have no record of their own: a room
// exists while at least one connection has joined it.
type RoomName string
