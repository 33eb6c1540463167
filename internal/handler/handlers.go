package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/middleware"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"
)

type Handlers struct {
	Health     *HealthHandler
	Room       *RoomHandler
	Chat       *ChatHandler
	Moderation *ModerationHandler
	Keyword    *KeywordHandler
	Task       *TaskHandler
}

func NewHandlers(services *service.Services, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(cfg),
		Room:       NewRoomHandler(services.Room, log),
		Chat:       NewChatHandler(services.Chat, log),
		Moderation: NewModerationHandler(services.Moderation, log),
		Keyword:    NewKeywordHandler(services.Keyword, log),
		Task:       NewTaskHandler(services.Task, log),
	}
}

// fail hands err to middleware.ErrorHandler, which picks the status code.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func currentActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		c.Abort()
	}
	return actor, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		c.Abort()
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	c.Abort()
}
