package websocket

import (
	"encoding/json"
	"log"
)

// Event - конверт события для клиентов дашборда
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Manager предоставляет сервисам высокоуровневый интерфейс рассылки событий
type Manager struct {
	hub *Hub
}

// NewManager создает новый менеджер рассылки
func NewManager(hub *Hub) *Manager {
	return &Manager{hub: hub}
}

// BroadcastEvent сериализует событие и рассылает его всем подключенным клиентам
func (m *Manager) BroadcastEvent(event string, data interface{}) {
	if m == nil || m.hub == nil {
		return
	}

	payload, err := json.Marshal(Event{Type: event, Data: data})
	if err != nil {
		log.Printf("[Manager] Ошибка сериализации события %s: %v", event, err)
		return
	}

	m.hub.Broadcast(payload)
}
