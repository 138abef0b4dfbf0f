package app

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/dkeye/planningpoker/internal/core"
	"github.com/dkeye/planningpoker/internal/domain"
	"github.com/rs/zerolog/log"
)

// Hub owns presence, room membership and the current story, and decides who
// receives what. One mutex guards all three stores: every event is applied,
// snapshotted and queued for delivery before the next one starts.
type Hub struct {
	mu       sync.Mutex
	presence *core.Presence
	rooms    *core.RoomIndex
	round    *core.Round
	conns    map[domain.ConnID]core.Connection
	policy   Policy

	framesSent    int
	framesDropped int
}

func NewHub(names *domain.NameCatalog, policy Policy) *Hub {
	if policy == nil {
		policy = SimplePolicy{}
	}
	return &Hub{
		presence: core.NewPresence(names),
		rooms:    core.NewRoomIndex(),
		round:    core.NewRound(),
		conns:    make(map[domain.ConnID]core.Connection),
		policy:   policy,
	}
}

type Stats struct {
	Connections int `json:"connections"`
	Rooms       int `json:"rooms"`

	// Frame counters since start; a dropped frame is one the policy saw.
	FramesSent    int `json:"frames_sent"`
	FramesDropped int `json:"frames_dropped"`
}

// Connect registers a new connection and gives it a default name.
func (h *Hub) Connect(id domain.ConnID, conn core.Connection) (domain.Participant, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, err := h.presence.OnConnect(id)
	if err != nil {
		return domain.Participant{}, err
	}
	h.conns[id] = conn
	log.Info().Str("module", "app.hub").Str("conn", string(id)).Str("name", p.Name).Msg("connected")
	return p, nil
}

// Disconnect drops id from every store and tells everyone left.
// Repeated calls are no-ops.
func (h *Hub) Disconnect(id domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rooms := h.rooms.Leave(id)
	delete(h.conns, id)
	p, err := h.presence.OnDisconnect(id)
	if err != nil {
		log.Debug().Err(err).Str("module", "app.hub").Str("conn", string(id)).Msg("disconnect ignored")
		return
	}
	log.Info().Str("module", "app.hub").Str("conn", string(id)).Interface("rooms", rooms).Msg("disconnected")

	h.publish(h.presence.IDs(), EventParticipants, ParticipantsPayload{
		People:     h.presence.SnapshotAll(),
		Disconnect: p.Name,
	})
}

// JoinRoom moves id into room. A connection belongs to one room at a time,
// so any previous membership is dropped first without notice.
func (h *Hub) JoinRoom(id domain.ConnID, room domain.RoomName) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.known(id, EventRoom) {
		return
	}
	if prev := h.rooms.Leave(id); len(prev) > 0 && !slices.Equal(prev, []domain.RoomName{room}) {
		log.Info().Str("module", "app.hub").Str("conn", string(id)).Interface("from", prev).Str("room", string(room)).Msg("switched room")
	}
	h.rooms.Join(id, room)

	members := h.rooms.MembersOf(room)
	people := h.presence.SnapshotFor(members)
	log.Info().Str("module", "app.hub").Str("conn", string(id)).Str("room", string(room)).Int("members", len(members)).Msg("joined room")

	h.publish([]domain.ConnID{id}, EventParticipants, ParticipantsPayload{People: people, ID: id})
	if story, ok := h.round.Get(); ok {
		h.publish([]domain.ConnID{id}, EventNewUserStory, story)
	}
	h.publish(without(members, id), EventParticipants, ParticipantsPayload{
		People:  people,
		Connect: people[id].Name,
	})
}

// Rename changes id's display name and sends the full roster to room.
// An empty room means the sender's current room.
func (h *Hub) Rename(id domain.ConnID, room domain.RoomName, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	old, ok := h.presence.Get(id)
	if !ok {
		h.ignore(id, EventNewName, core.ErrUnknownConnection)
		return
	}
	if err := h.presence.Rename(id, name); err != nil {
		h.ignore(id, EventNewName, err)
		return
	}
	log.Info().Str("module", "app.hub").Str("conn", string(id)).Str("from", old.Name).Str("name", name).Msg("renamed")
	h.publish(h.rooms.MembersOf(h.targetRoom(id, room)), EventParticipants, ParticipantsPayload{
		People: h.presence.SnapshotAll(),
	})
}

// SelectCard records id's card and sends the room's cards to the room.
func (h *Hub) SelectCard(id domain.ConnID, room domain.RoomName, card domain.Card) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.presence.SetCard(id, card); err != nil {
		h.ignore(id, EventCardSelected, err)
		return
	}
	members := h.rooms.MembersOf(h.targetRoom(id, room))
	log.Debug().Str("module", "app.hub").Str("conn", string(id)).Bool("cleared", !card.IsSet()).Int("members", len(members)).Msg("card selected")
	h.publish(members, EventCardSelected, h.presence.SnapshotFor(members))
}

// NewUserStory replaces the shared story and echoes it to every connection.
func (h *Hub) NewUserStory(id domain.ConnID, story json.RawMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.known(id, EventNewUserStory) {
		return
	}
	h.round.Set(story)
	log.Info().Str("module", "app.hub").Str("conn", string(id)).Msg("new user story")
	h.publish(h.presence.IDs(), EventNewUserStory, story)
}

// RevealCards signals every connection to show the cards it already has.
func (h *Hub) RevealCards(id domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.known(id, EventRevealCards) {
		return
	}
	log.Info().Str("module", "app.hub").Str("conn", string(id)).Msg("reveal cards")
	h.publish(h.presence.IDs(), EventRevealCards, nil)
}

// PlayAgain clears every card, in all rooms, and sends the cleared roster
// to every connection.
func (h *Hub) PlayAgain(id domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.known(id, EventPlayAgain) {
		return
	}
	h.presence.ClearAllCards()
	log.Info().Str("module", "app.hub").Str("conn", string(id)).Msg("play again")
	h.publish(h.presence.IDs(), EventPlayAgain, PlayAgainPayload{People: h.presence.SnapshotAll()})
}

func (h *Hub) Ping(id domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.known(id, EventPing) {
		return
	}
	h.publish([]domain.ConnID{id}, EventPong, nil)
}

func (h *Hub) Rooms() []core.RoomInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.List()
}

func (h *Hub) MembersOf(room domain.RoomName) domain.People {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presence.SnapshotFor(h.rooms.MembersOf(room))
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		Connections:   h.presence.Len(),
		Rooms:         h.rooms.Len(),
		FramesSent:    h.framesSent,
		FramesDropped: h.framesDropped,
	}
}

// CloseAll closes every transport connection. Their read loops then report
// the disconnects as usual.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := make([]core.Connection, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()
	for _, c := range conns {
		c.Close()
	}
	log.Info().Str("module", "app.hub").Int("conns", len(conns)).Msg("closed all connections")
}

func (h *Hub) targetRoom(id domain.ConnID, room domain.RoomName) domain.RoomName {
	if room != "" {
		return room
	}
	if joined := h.rooms.RoomsOf(id); len(joined) > 0 {
		return joined[0]
	}
	return ""
}

func (h *Hub) known(id domain.ConnID, event string) bool {
	if h.presence.Has(id) {
		return true
	}
	h.ignore(id, event, core.ErrUnknownConnection)
	return false
}

func (h *Hub) ignore(id domain.ConnID, event string, err error) {
	log.Debug().Err(err).Str("module", "app.hub").Str("conn", string(id)).Str("event", event).Msg("event ignored")
}

func without(ids []domain.ConnID, skip domain.ConnID) []domain.ConnID {
	out := make([]domain.ConnID, 0, len(ids))
	for _, id := range ids {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}
