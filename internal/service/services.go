package service

import (
	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/repository"
	"recruit_messaging/pkg/logger"
)

type Services struct {
	Room       RoomService
	Chat       ChatService
	Moderation ModerationService
	Keyword    KeywordService
	Task       TaskService
	RateLimit  RateLimitService
	Audit      AuditService
}

func NewServices(repos *repository.Repositories, taskCache cache.Cache, cfg *config.Config, log logger.Logger) *Services {
	audit := NewAuditService(repos.Audit, log)
	rooms := NewRoomService(repos.Room, repos.Message, repos.Company, repos.Candidate, audit, log)

	return &Services{
		Room:       rooms,
		Chat:       NewChatService(repos.Message, rooms, taskCache, log),
		Moderation: NewModerationService(repos, audit, taskCache, cfg.Moderation, log),
		Keyword:    NewKeywordService(repos.Keyword, log),
		Task:       NewTaskService(repos, taskCache, cfg.Tasks, log),
		RateLimit:  NewRateLimitService(repos.RateLimit, log),
		Audit:      audit,
	}
}
