package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"recruit_messaging/pkg/logger"
)

type Repositories struct {
	Room        RoomRepository
	Message     MessageRepository
	Keyword     KeywordRepository
	Moderation  ModerationRepository
	Company     CompanyRepository
	Candidate   CandidateRepository
	Application ApplicationRepository
	Scout       ScoutRepository
	Audit       AuditRepository
	RateLimit   RateLimitRepository
	Events      EventPublisher
}

func NewRepositories(db *pgxpool.Pool, redis *redis.Client, log logger.Logger) *Repositories {
	repos := &Repositories{
		Room:        NewRoomRepository(db, log),
		Message:     NewMessageRepository(db, log),
		Keyword:     NewKeywordRepository(db, log),
		Moderation:  NewModerationRepository(db, log),
		Company:     NewCompanyRepository(db, log),
		Candidate:   NewCandidateRepository(db, log),
		Application: NewApplicationRepository(db, log),
		Scout:       NewScoutRepository(db, log),
		Audit:       NewAuditRepository(db, log),
		RateLimit:   NewRateLimitRepository(redis, log),
		Events:      NewEventPublisher(redis, log),
	}

	log.Info("Repositories initialized")

	return repos
}
