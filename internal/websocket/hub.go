package websocket

import (
	"log"
	"sync"
)

// roomMessage — сообщение для рассылки участникам одной комнаты-чата
type roomMessage struct {
	chatID uint
	data   []byte
}

// Hub управляет активными WebSocket-соединениями и комнатами чатов.
// Каждая комната соответствует одному чату; клиент состоит в одной комнате.
type Hub struct {
	// Комнаты: chatID -> множество клиентов
	rooms map[uint]map[*Client]bool

	// Канал регистрации клиентов
	register chan *Client

	// Канал отмены регистрации клиентов
	unregister chan *Client

	// Канал рассылки по комнате
	broadcast chan roomMessage

	mu sync.RWMutex
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client, 32),
		unregister: make(chan *Client, 32),
		broadcast:  make(chan roomMessage, 256),
	}
}

// Run запускает цикл обработки событий хаба. Вызывается одной горутиной.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// Register ставит клиента в очередь на подключение к комнате
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister ставит клиента в очередь на отключение
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastToChat рассылает сообщение всем участникам комнаты
func (h *Hub) BroadcastToChat(chatID uint, data []byte) {
	h.broadcast <- roomMessage{chatID: chatID, data: data}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.ChatID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[client.ChatID] = room
	}
	room[client] = true

	log.Printf("[WebSocket] Клиент %s (пользователь %d) подключен к чату %d, участников: %d",
		client.ConnectionID, client.UserID, client.ChatID, len(room))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.ChatID]
	if !ok || !room[client] {
		return
	}

	delete(room, client)
	client.closeSend()
	if len(room) == 0 {
		delete(h.rooms, client.ChatID)
	}

	log.Printf("[WebSocket] Клиент %s отключен от чата %d", client.ConnectionID, client.ChatID)
}

func (h *Hub) deliver(message roomMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[message.chatID] {
		select {
		case client.send <- message.data:
		default:
			// Переполненный буфер: клиент отстал, соединение закрывается
			log.Printf("[WebSocket] Буфер клиента %s переполнен, отключение", client.ConnectionID)
			go h.Unregister(client)
		}
	}
}
