package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/repository"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

// Lower values are listed first.
var taskPriority = map[domain.TaskKind]int{
	domain.TaskKindFlaggedMessage:         1,
	domain.TaskKindScoutReplyPending:      1,
	domain.TaskKindUnreadMessage:          2,
	domain.TaskKindNewApplication:         3,
	domain.TaskKindInterviewResultPending: 4,
	domain.TaskKindProfileIncomplete:      5,
	domain.TaskKindNoJobPostings:          6,
}

const adminTasksKey = "tasks:ADMIN"

func taskCacheKey(side domain.ActorType, sideID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s:%s", side, sideID)
}

// roomTaskKeys are the cached task lists a change in the room affects.
func roomTaskKeys(room *domain.Room) []string {
	return []string{
		taskCacheKey(domain.ActorTypeCandidate, room.CandidateID),
		taskCacheKey(domain.ActorTypeCompanyUser, room.CompanyGroupID),
	}
}

type TaskService interface {
	GetTasks(ctx context.Context, actor domain.Actor) ([]*domain.Task, error)
}

type taskService struct {
	companyRepo     repository.CompanyRepository
	candidateRepo   repository.CandidateRepository
	applicationRepo repository.ApplicationRepository
	scoutRepo       repository.ScoutRepository
	messageRepo     repository.MessageRepository
	moderationRepo  repository.ModerationRepository
	cache           cache.Cache
	cfg             config.TaskConfig
	log             logger.Logger
	now             func() time.Time
}

func NewTaskService(repos *repository.Repositories, taskCache cache.Cache, cfg config.TaskConfig, log logger.Logger) TaskService {
	return &taskService{
		companyRepo:     repos.Company,
		candidateRepo:   repos.Candidate,
		applicationRepo: repos.Application,
		scoutRepo:       repos.Scout,
		messageRepo:     repos.Message,
		moderationRepo:  repos.Moderation,
		cache:           taskCache,
		cfg:             cfg,
		log:             log,
		now:             time.Now,
	}
}

// taskCollector gathers tasks from concurrent sources. A failing source is
// logged and skipped; the result is then marked degraded and not cached.
type taskCollector struct {
	mu       sync.Mutex
	tasks    []*domain.Task
	degraded bool
	log      logger.Logger
	actor    domain.Actor
}

func (c *taskCollector) run(g *errgroup.Group, source string, fn func() ([]*domain.Task, error)) {
	g.Go(func() error {
		tasks, err := fn()
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.degraded = true
			c.log.Error("Task source failed", "source", source, "actor_type", c.actor.Type, "actor_id", c.actor.ID, "error", err)
			return nil
		}
		c.tasks = append(c.tasks, tasks...)
		return nil
	})
}

func (s *taskService) GetTasks(ctx context.Context, actor domain.Actor) ([]*domain.Task, error) {
	var key string
	var sideID uuid.UUID
	switch actor.Type {
	case domain.ActorTypeAdmin:
		key = adminTasksKey
	case domain.ActorTypeCandidate, domain.ActorTypeCompanyUser:
		var err error
		sideID, err = resolveSide(ctx, s.companyRepo, actor)
		if err != nil {
			return nil, err
		}
		key = taskCacheKey(actor.Type, sideID)
	default:
		return nil, fmt.Errorf("%w: unknown actor type %q", apperrors.ErrBadRequest, actor.Type)
	}

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	collector := &taskCollector{log: s.log, actor: actor}
	g, gctx := errgroup.WithContext(ctx)
	now := s.now().UTC()

	switch actor.Type {
	case domain.ActorTypeCompanyUser:
		s.collectCompanyTasks(gctx, g, collector, sideID, now)
	case domain.ActorTypeCandidate:
		s.collectCandidateTasks(gctx, g, collector, sideID, now)
	case domain.ActorTypeAdmin:
		s.collectAdminTasks(gctx, g, collector)
	}
	_ = g.Wait()

	tasks := collector.tasks
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	for _, t := range tasks {
		t.Priority = taskPriority[t.Kind]
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return occurredBefore(tasks[j], tasks[i])
	})

	if !collector.degraded {
		s.toCache(ctx, key, tasks)
	}

	return tasks, nil
}

// occurredBefore orders tasks without a timestamp last.
func occurredBefore(a, b *domain.Task) bool {
	switch {
	case a.OccurredAt == nil:
		return false
	case b.OccurredAt == nil:
		return true
	default:
		return a.OccurredAt.Before(*b.OccurredAt)
	}
}

func (s *taskService) fromCache(ctx context.Context, key string) ([]*domain.Task, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("Task cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var tasks []*domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.log.Warn("Task cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}
	return tasks, true
}

func (s *taskService) toCache(ctx context.Context, key string, tasks []*domain.Task) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		s.log.Warn("Failed to encode tasks for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.log.Warn("Task cache write failed", "key", key, "error", err)
	}
}

func (s *taskService) unreadTasks(ctx context.Context, side domain.ActorType, sideID uuid.UUID) ([]*domain.Task, error) {
	rooms, err := s.messageRepo.ListUnreadRooms(ctx, side, sideID, s.cfg.RowLimit)
	if err != nil {
		return nil, err
	}
	tasks := make([]*domain.Task, 0, len(rooms))
	for _, u := range rooms {
		roomID, messageID, at := u.RoomID, u.LatestMessageID, u.LatestSentAt
		tasks = append(tasks, &domain.Task{
			Kind:       domain.TaskKindUnreadMessage,
			Label:      fmt.Sprintf("%d unread message(s)", u.Count),
			RoomID:     &roomID,
			MessageID:  &messageID,
			OccurredAt: &at,
		})
	}
	return tasks, nil
}

func (s *taskService) collectCompanyTasks(ctx context.Context, g *errgroup.Group, c *taskCollector, groupID uuid.UUID, now time.Time) {
	c.run(g, "job_postings", func() ([]*domain.Task, error) {
		count, err := s.companyRepo.CountJobPostings(ctx, groupID)
		if err != nil || count > 0 {
			return nil, err
		}
		return []*domain.Task{{
			Kind:  domain.TaskKindNoJobPostings,
			Label: "No job postings yet. Publish one to start receiving applications",
		}}, nil
	})

	c.run(g, "applications", func() ([]*domain.Task, error) {
		apps, err := s.applicationRepo.ListUnviewed(ctx, groupID, s.cfg.RowLimit)
		if err != nil {
			return nil, err
		}
		tasks := make([]*domain.Task, 0, len(apps))
		for _, a := range apps {
			appID, at := a.ID, a.CreatedAt
			tasks = append(tasks, &domain.Task{
				Kind:          domain.TaskKindNewApplication,
				Label:         fmt.Sprintf("New application from %s for %s", a.CandidateName, a.JobPostingTitle),
				ApplicationID: &appID,
				OccurredAt:    &at,
			})
		}
		return tasks, nil
	})

	c.run(g, "unread_messages", func() ([]*domain.Task, error) {
		return s.unreadTasks(ctx, domain.ActorTypeCompanyUser, groupID)
	})

	c.run(g, "interviews", func() ([]*domain.Task, error) {
		interviews, err := s.applicationRepo.ListInterviewsAwaitingResult(ctx, groupID, now, s.cfg.RowLimit)
		if err != nil {
			return nil, err
		}
		tasks := make([]*domain.Task, 0, len(interviews))
		for _, i := range interviews {
			appID, at := i.ApplicationID, i.ScheduledAt
			tasks = append(tasks, &domain.Task{
				Kind:          domain.TaskKindInterviewResultPending,
				Label:         fmt.Sprintf("Enter the interview result for %s", i.CandidateName),
				ApplicationID: &appID,
				OccurredAt:    &at,
			})
		}
		return tasks, nil
	})
}

func (s *taskService) collectCandidateTasks(ctx context.Context, g *errgroup.Group, c *taskCollector, candidateID uuid.UUID, now time.Time) {
	c.run(g, "profile", func() ([]*domain.Task, error) {
		profile, err := s.candidateRepo.GetProfile(ctx, candidateID)
		if err != nil {
			return nil, err
		}
		missing := profile.MissingFields()
		if len(missing) == 0 {
			return nil, nil
		}
		return []*domain.Task{{
			Kind:  domain.TaskKindProfileIncomplete,
			Label: "Complete your profile: " + strings.Join(missing, ", "),
		}}, nil
	})

	c.run(g, "unread_messages", func() ([]*domain.Task, error) {
		return s.unreadTasks(ctx, domain.ActorTypeCandidate, candidateID)
	})

	c.run(g, "scouts", func() ([]*domain.Task, error) {
		scouts, err := s.scoutRepo.ListAwaitingReply(ctx, candidateID, now.Add(-s.cfg.ScoutReplySLA), s.cfg.RowLimit)
		if err != nil {
			return nil, err
		}
		tasks := make([]*domain.Task, 0, len(scouts))
		for _, sc := range scouts {
			scoutID, at := sc.ID, sc.SentAt
			tasks = append(tasks, &domain.Task{
				Kind:       domain.TaskKindScoutReplyPending,
				Label:      fmt.Sprintf("Reply to the scout from %s", sc.CompanyName),
				ScoutID:    &scoutID,
				RoomID:     sc.RoomID,
				OccurredAt: &at,
			})
		}
		return tasks, nil
	})
}

func (s *taskService) collectAdminTasks(ctx context.Context, g *errgroup.Group, c *taskCollector) {
	c.run(g, "moderation_queue", func() ([]*domain.Task, error) {
		items, err := s.moderationRepo.ListQueue(ctx, domain.ModerationFilter{
			Status: domain.ApprovalStatusAwaitingReview,
			Limit:  s.cfg.RowLimit,
		})
		if err != nil {
			return nil, err
		}
		tasks := make([]*domain.Task, 0, len(items))
		for _, item := range items {
			messageID, roomID, at := item.Message.ID, item.Room.ID, item.Message.SentAt
			tasks = append(tasks, &domain.Task{
				Kind:       domain.TaskKindFlaggedMessage,
				Label:      "Review message flagged for: " + strings.Join(item.Moderation.MatchedKeywords, ", "),
				RoomID:     &roomID,
				MessageID:  &messageID,
				OccurredAt: &at,
			})
		}
		return tasks, nil
	})
}
