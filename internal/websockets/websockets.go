package websockets

import (
	"server/internal/events"
	"server/internal/logger"

	"github.com/gofiber/websocket/v2"
)

// Manager relays lead events from the bus to connected admin sockets so the
// leads view can update live without polling.
type Manager struct {
	eventBus *events.EventBus
	log      logger.Logger
}

func New(eventBus *events.EventBus) *Manager {
	return &Manager{
		eventBus: eventBus,
		log:      logger.New("websockets"),
	}
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	id, eventCh := m.eventBus.Subscribe(events.ChannelLeads)
	defer m.eventBus.Unsubscribe(events.ChannelLeads, id)

	log.Info("Admin socket connected", "subscriber", id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			if err := c.WriteJSON(event); err != nil {
				log.Er("failed to write event to socket", err, "subscriber", id)
				return
			}
		case <-done:
			log.Info("Admin socket disconnected", "subscriber", id)
			return
		}
	}
}
