package app

import (
	"github.com/dkeye/planningpoker/internal/core"
	"github.com/dkeye/planningpoker/internal/domain"
	"github.com/rs/zerolog/log"
)

// publish encodes one frame and queues it for every id. A failed recipient
// never stops delivery to the others; the policy decides its fate.
// Callers hold h.mu.
func (h *Hub) publish(ids []domain.ConnID, event string, data any) {
	if len(ids) == 0 {
		return
	}
	frame, err := encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.fanout").Str("event", event).Msg("encode failed")
		return
	}

	var sent, dropped int

	for _, id := range ids {
		conn, ok := h.conns[id]
		if !ok {
			continue
		}
		if err := conn.TrySend(frame); err != nil {
			dropped++
			h.onDeliveryFailure(id, conn, err)
			continue
		}
		sent++
	}
	h.framesSent += sent
	h.framesDropped += dropped
	log.Debug().Str("module", "app.fanout").Str("event", event).Int("sent_to", sent).Int("dropped", dropped).Msg("broadcast result")
}

func (h *Hub) onDeliveryFailure(id domain.ConnID, conn core.Connection, err error) {
	switch h.policy.OnBackPressure(id, err) {
	case KickMember:
		log.Warn().Err(err).Str("module", "app.fanout").Str("conn", string(id)).Msg("kicking slow member")
		conn.Close()
	case DropFrame:
		log.Warn().Err(err).Str("module", "app.fanout").Str("conn", string(id)).Msg("frame dropped")
	case NoAction:
	}
}
