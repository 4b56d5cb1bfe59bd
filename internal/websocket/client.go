package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту
	writeWait = 10 * time.Second

	// Время ожидания pong-ответа от клиента
	pongWait = 30 * time.Second

	// Периодичность отправки ping-сообщений клиенту
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 4096

	// Размер буфера канала отправки сообщений клиенту
	clientBufferSize = 64
)

// MessageHandler обрабатывает входящие события клиента.
// Реализация сохраняет сообщение и рассылает его участникам комнаты.
type MessageHandler interface {
	HandleChatMessage(client *Client, payload ChatMessagePayload)
}

// Client является посредником между WebSocket-соединением и хабом
type Client struct {
	// UserID — пользователь соединения
	UserID uint

	// ChatID — комната, к которой подключен клиент
	ChatID uint

	// ConnectionID — уникальный ID соединения
	ConnectionID string

	hub     *Hub
	conn    *websocket.Conn
	handler MessageHandler

	send      chan []byte
	closeOnce sync.Once
}

// NewClient создает нового клиента для подключения к комнате чата
func NewClient(hub *Hub, conn *websocket.Conn, userID, chatID uint, handler MessageHandler) *Client {
	return &Client{
		UserID:       userID,
		ChatID:       chatID,
		ConnectionID: uuid.New().String(),
		hub:          hub,
		conn:         conn,
		handler:      handler,
		send:         make(chan []byte, clientBufferSize),
	}
}

// Send ставит сообщение в очередь отправки клиенту.
// Возвращает false при переполненном буфере.
func (c *Client) Send(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend закрывает канал отправки ровно один раз
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump читает события клиента и передает их обработчику.
// Запускается одной горутиной на соединение.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WebSocket] Неожиданное закрытие соединения %s: %v", c.ConnectionID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			c.sendError("invalid event format")
			continue
		}

		switch event.Type {
		case EventChatMessage:
			var payload ChatMessagePayload
			if err := json.Unmarshal(event.Data, &payload); err != nil {
				c.sendError("invalid chat message payload")
				continue
			}
			c.handler.HandleChatMessage(c, payload)
		default:
			c.sendError("unknown event type")
		}
	}
}

// WritePump отправляет клиенту сообщения из очереди и пинги.
// Запускается одной горутиной на соединение.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendError отправляет клиенту событие об ошибке обработки
func (c *Client) sendError(message string) {
	data, err := NewEvent(EventError, ErrorPayload{Message: message})
	if err != nil {
		return
	}
	c.Send(data)
}
