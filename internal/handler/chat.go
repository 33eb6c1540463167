package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"
)

type ChatHandler struct {
	chatService service.ChatService
	log         logger.Logger
}

func NewChatHandler(chatService service.ChatService, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log,
	}
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.chatService.GetMessages(c.Request.Context(), roomID, actor, limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type SendMessageRequest struct {
	Content     string   `json:"content" binding:"required"`
	Subject     *string  `json:"subject"`
	Attachments []string `json:"attachments"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), actor, domain.SendMessageInput{
		RoomID:      roomID,
		Subject:     req.Subject,
		Content:     req.Content,
		Attachments: req.Attachments,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	marked, err := h.chatService.MarkRoomRead(c.Request.Context(), roomID, actor)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "marked": marked})
}

func (h *ChatHandler) Unread(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	count, err := h.chatService.UnreadCount(c.Request.Context(), roomID, actor)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "unread_count": count})
}
