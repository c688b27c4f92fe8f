package websocket

import (
	"context"
	"log"
)

// Hub хранит активные подключения дашборда и рассылает им события.
// Подключаются только преподаватели и администраторы; студентам
// live-лента не нужна.
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Входящие сообщения для рассылки всем клиентам
	broadcast chan []byte

	// Запросы на регистрацию клиентов
	register chan *Client

	// Запросы на отключение клиентов
	unregister chan *Client
}

// NewHub создает новый hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку сообщений
// до отмены контекста приложения
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("[Hub] Клиент %s подключен (всего: %d)", client.ConnectionID, len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[Hub] Клиент %s отключен (всего: %d)", client.ConnectionID, len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Медленный клиент: отключаем, чтобы не блокировать остальных
					delete(h.clients, client)
					close(client.send)
					log.Printf("[Hub] Клиент %s отключен из-за переполнения буфера", client.ConnectionID)
				}
			}

		case <-ctx.Done():
			log.Println("[Hub] Завершение работы, закрываем все соединения")
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Broadcast ставит сообщение в очередь рассылки всем клиентам
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		log.Println("[Hub] Очередь рассылки переполнена, сообщение отброшено")
	}
}
