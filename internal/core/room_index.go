package core

import (
	"cmp"
	"slices"

	"github.com/dkeye/planningpoker/internal/domain"
	"github.com/rs/zerolog/log"
)

type memberSet map[domain.ConnID]struct{}

// RoomIndex tracks which connections joined which rooms. A room is kept only
// while it has members.
// It is not safe for concurrent use; the hub serializes access.
type RoomIndex struct {
	rooms  map[domain.RoomName]memberSet
	byConn map[domain.ConnID]map[domain.RoomName]struct{}
}

func NewRoomIndex() *RoomIndex {
	return &RoomIndex{
		rooms:  make(map[domain.RoomName]memberSet),
		byConn: make(map[domain.ConnID]map[domain.RoomName]struct{}),
	}
}

func (x *RoomIndex) Join(id domain.ConnID, room domain.RoomName) {
	members, ok := x.rooms[room]
	if !ok {
		members = make(memberSet)
		x.rooms[room] = members
	}
	members[id] = struct{}{}

	joined, ok := x.byConn[id]
	if !ok {
		joined = make(map[domain.RoomName]struct{})
		x.byConn[id] = joined
	}
	joined[room] = struct{}{}
	log.Debug().Str("module", "core.rooms").Str("conn", string(id)).Str("room", string(room)).Int("members", len(members)).Msg("member added")
}

// Leave removes id from every room it joined and returns those rooms.
func (x *RoomIndex) Leave(id domain.ConnID) []domain.RoomName {
	joined, ok := x.byConn[id]
	if !ok {
		return nil
	}
	left := make([]domain.RoomName, 0, len(joined))
	for room := range joined {
		members := x.rooms[room]
		delete(members, id)
		if len(members) == 0 {
			delete(x.rooms, room)
		}
		left = append(left, room)
	}
	delete(x.byConn, id)
	slices.Sort(left)
	log.Debug().Str("module", "core.rooms").Str("conn", string(id)).Int("rooms", len(left)).Msg("member removed")
	return left
}

// MembersOf returns the members of room sorted by id; nil for an unknown room.
func (x *RoomIndex) MembersOf(room domain.RoomName) []domain.ConnID {
	members, ok := x.rooms[room]
	if !ok {
		return nil
	}
	out := make([]domain.ConnID, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (x *RoomIndex) RoomsOf(id domain.ConnID) []domain.RoomName {
	joined := x.byConn[id]
	out := make([]domain.RoomName, 0, len(joined))
	for room := range joined {
		out = append(out, room)
	}
	slices.Sort(out)
	return out
}

func (x *RoomIndex) Len() int { return len(x.rooms) }

func (x *RoomIndex) List() []RoomInfo {
	out := make([]RoomInfo, 0, len(x.rooms))
	for name, members := range x.rooms {
		out = append(out, RoomInfo{Name: name, MemberCount: len(members)})
	}
	slices.SortFunc(out, func(a, b RoomInfo) int { return cmp.Compare(a.Name, b.Name) })
	return out
}
