package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/quizhub-api/internal/service"
	ws "github.com/yourusername/quizhub-api/internal/websocket"
)

// upgrader настраивает переход HTTP-соединения на WebSocket
var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Происхождение проверяется CORS-слоем
		return true
	},
}

// ChatHandler обрабатывает REST-запросы чатов и WebSocket-подключения
type ChatHandler struct {
	chatService *service.ChatService
	hub         *ws.Hub
}

// NewChatHandler создает новый обработчик чатов
func NewChatHandler(chatService *service.ChatService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		hub:         hub,
	}
}

// OpenChatRequest представляет запрос на открытие чата
type OpenChatRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// OpenChat открывает или возвращает чат с другим пользователем
func (h *ChatHandler) OpenChat(c *gin.Context) {
	var req OpenChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.chatService.OpenChat(currentUserID(c), req.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, chat)
}

// ListChats возвращает чаты текущего пользователя
func (h *ChatHandler) ListChats(c *gin.Context) {
	previews, err := h.chatService.ListChats(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": previews})
}

// GetMessages возвращает сообщения чата
func (h *ChatHandler) GetMessages(c *gin.Context) {
	chatID := c.MustGet("chatID").(uint)

	messages, err := h.chatService.GetMessages(chatID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessageRequest представляет запрос на отправку сообщения
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// SendMessage отправляет сообщение через REST и рассылает его
// подключенным участникам комнаты
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID := c.MustGet("chatID").(uint)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.chatService.SendMessage(chatID, currentUserID(c), req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.broadcastMessage(chatID, message.ID, message.SenderID, message.Text)

	c.JSON(http.StatusCreated, message)
}

// ServeWS подключает текущего пользователя к комнате чата по WebSocket
func (h *ChatHandler) ServeWS(c *gin.Context) {
	chatID := c.MustGet("chatID").(uint)
	userID := currentUserID(c)

	// Участие в чате проверяется до апгрейда соединения
	if _, err := h.chatService.GetMessages(chatID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ChatHandler] Ошибка апгрейда соединения: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, userID, chatID, h)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// HandleChatMessage обрабатывает входящее WebSocket-событие chat:message
func (h *ChatHandler) HandleChatMessage(client *ws.Client, payload ws.ChatMessagePayload) {
	message, err := h.chatService.SendMessage(client.ChatID, client.UserID, payload.Text)
	if err != nil {
		data, buildErr := ws.NewEvent(ws.EventError, ws.ErrorPayload{Message: err.Error()})
		if buildErr == nil {
			client.Send(data)
		}
		return
	}

	h.broadcastMessage(client.ChatID, message.ID, message.SenderID, message.Text)
}

// broadcastMessage рассылает сохраненное сообщение участникам комнаты
func (h *ChatHandler) broadcastMessage(chatID, messageID, senderID uint, text string) {
	data, err := ws.NewEvent(ws.EventChatMessage, ws.ChatMessagePayload{
		ChatID:    chatID,
		MessageID: messageID,
		SenderID:  senderID,
		Text:      text,
	})
	if err != nil {
		log.Printf("[ChatHandler] Ошибка сериализации события: %v", err)
		return
	}
	h.hub.BroadcastToChat(chatID, data)
}
