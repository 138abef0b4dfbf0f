package core

import (
	"fmt"

	"github.com/dkeye/planningpoker/internal/domain"
	"github.com/rs/zerolog/log"
)

// Presence maps live connections to participants.
// It is not safe for concurrent use; the hub serializes access.
type Presence struct {
	names  *domain.NameCatalog
	people map[domain.ConnID]*domain.Participant
}

func NewPresence(names *domain.NameCatalog) *Presence {
	if names == nil {
		names = domain.NewNameCatalog(nil)
	}
	return &Presence{
		names:  names,
		people: make(map[domain.ConnID]*domain.Participant),
	}
}

func (p *Presence) OnConnect(id domain.ConnID) (domain.Participant, error) {
	if _, ok := p.people[id]; ok {
		return domain.Participant{}, fmt.Errorf("connect %s: %w", id, ErrConnectionExists)
	}
	person := &domain.Participant{Name: p.names.Pick()}
	p.people[id] = person
	log.Debug().Str("module", "core.presence").Str("conn", string(id)).Str("name", person.Name).Msg("participant created")
	return *person, nil
}

func (p *Presence) OnDisconnect(id domain.ConnID) (domain.Participant, error) {
	person, ok := p.people[id]
	if !ok {
		return domain.Participant{}, fmt.Errorf("disconnect %s: %w", id, ErrUnknownConnection)
	}
	delete(p.people, id)
	log.Debug().Str("module", "core.presence").Str("conn", string(id)).Msg("participant removed")
	return *person, nil
}

// Rename accepts any name, including empty and duplicate ones.
func (p *Presence) Rename(id domain.ConnID, name string) error {
	person, ok := p.people[id]
	if !ok {
		return fmt.Errorf("rename %s: %w", id, ErrUnknownConnection)
	}
	person.Name = name
	return nil
}

func (p *Presence) SetCard(id domain.ConnID, card domain.Card) error {
	person, ok := p.people[id]
	if !ok {
		return fmt.Errorf("set card %s: %w", id, ErrUnknownConnection)
	}
	person.Card = card
	return nil
}

func (p *Presence) ClearAllCards() {
	for _, person := range p.people {
		person.Card = ""
	}
}

func (p *Presence) Get(id domain.ConnID) (domain.Participant, bool) {
	person, ok := p.people[id]
	if !ok {
		return domain.Participant{}, false
	}
	return *person, true
}

func (p *Presence) Has(id domain.ConnID) bool {
	_, ok := p.people[id]
	return ok
}

func (p *Presence) Len() int { return len(p.people) }

func (p *Presence) IDs() []domain.ConnID {
	out := make([]domain.ConnID, 0, len(p.people))
	for id := range p.people {
		out = append(out, id)
	}
	return out
}

func (p *Presence) SnapshotAll() domain.People {
	out := make(domain.People, len(p.people))
	for id, person := range p.people {
		out[id] = *person
	}
	return out
}

// SnapshotFor restricts the snapshot to ids; unknown ids are skipped.
func (p *Presence) SnapshotFor(ids []domain.ConnID) domain.People {
	out := make(domain.People, len(ids))
	for _, id := range ids {
		if person, ok := p.people[id]; ok {
			out[id] = *person
		}
	}
	return out
}
