package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/ngword"
	"recruit_messaging/internal/repository"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

const (
	enrichmentConcurrency = 8
	publishTimeout        = 5 * time.Second
)

type ModerationService interface {
	// ScanForFlags scans the most recent company messages against the active
	// keywords and moves matches into review. Messages already decided are
	// never returned or re-queued.
	ScanForFlags(ctx context.Context) ([]*domain.FlaggedMessage, error)
	ListQueue(ctx context.Context, filter domain.ModerationFilter) ([]*domain.ModerationQueueItem, error)
	Resolve(ctx context.Context, actor domain.Actor, res domain.Resolution) (*domain.ModerationRecord, error)
}

type moderationService struct {
	keywordRepo     repository.KeywordRepository
	messageRepo     repository.MessageRepository
	moderationRepo  repository.ModerationRepository
	applicationRepo repository.ApplicationRepository
	events          repository.EventPublisher
	audit           AuditService
	taskCache       cache.Cache
	cfg             config.ModerationConfig
	log             logger.Logger
	now             func() time.Time
}

func NewModerationService(repos *repository.Repositories, audit AuditService, taskCache cache.Cache, cfg config.ModerationConfig, log logger.Logger) ModerationService {
	return &moderationService{
		keywordRepo:     repos.Keyword,
		messageRepo:     repos.Message,
		moderationRepo:  repos.Moderation,
		applicationRepo: repos.Application,
		events:          repos.Events,
		audit:           audit,
		taskCache:       taskCache,
		cfg:             cfg,
		log:             log,
		now:             time.Now,
	}
}

func (s *moderationService) ScanForFlags(ctx context.Context) ([]*domain.FlaggedMessage, error) {
	keywords, err := s.keywordRepo.ListActive(ctx)
	if err != nil {
		// Fail closed: without a registry nothing is flagged.
		s.log.Error("NG keyword registry unavailable, scan skipped", "error", err)
		return []*domain.FlaggedMessage{}, nil
	}

	matcher := ngword.NewMatcher(keywords)
	if matcher.Empty() {
		return []*domain.FlaggedMessage{}, nil
	}

	candidates, err := s.messageRepo.ListRecentForScan(ctx, domain.ActorTypeCompanyUser, s.cfg.ScanWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for scan: %w", err)
	}

	pending := make([]*domain.FlaggedMessage, 0)
	for _, f := range matcher.Scan(candidates) {
		if f.Status.IsTerminal() {
			continue
		}
		pending = append(pending, f)
	}
	if len(pending) == 0 {
		return pending, nil
	}

	changed, err := s.moderationRepo.MarkAwaiting(ctx, pending, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to queue flagged messages: %w", err)
	}
	for _, f := range pending {
		f.Status = domain.ApprovalStatusAwaitingReview
	}

	if changed > 0 {
		_ = s.audit.LogEvent(ctx, nil, nil, nil, domain.EventTypeMessagesFlagged, map[string]interface{}{
			"scanned":  len(candidates),
			"flagged":  len(pending),
			"changed":  changed,
			"keywords": matcher.Len(),
		})
		s.invalidateAdminTasks(ctx)
	}

	s.log.Info("NG keyword scan finished", "scanned", len(candidates), "flagged", len(pending), "changed", changed)

	return pending, nil
}

func (s *moderationService) ListQueue(ctx context.Context, filter domain.ModerationFilter) ([]*domain.ModerationQueueItem, error) {
	if filter.Status == "" {
		filter.Status = domain.ApprovalStatusAwaitingReview
	}
	if filter.Limit <= 0 || filter.Limit > s.cfg.QueueLimit {
		filter.Limit = s.cfg.QueueLimit
	}

	items, err := s.moderationRepo.ListQueue(ctx, filter)
	if err != nil {
		s.log.Error("Moderation queue degraded to empty", "status", filter.Status, "error", err)
		return []*domain.ModerationQueueItem{}, nil
	}
	if items == nil {
		return []*domain.ModerationQueueItem{}, nil
	}

	var g errgroup.Group
	g.SetLimit(enrichmentConcurrency)
	for _, item := range items {
		item := item
		if item.Room.JobPostingID == nil {
			continue
		}
		g.Go(func() error {
			item.Application = s.linkedApplication(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return items, nil
}

func (s *moderationService) linkedApplication(ctx context.Context, item *domain.ModerationQueueItem) domain.Enrichment[*domain.ApplicationRef] {
	ref, err := s.applicationRepo.FindByCandidateAndPosting(ctx, item.Room.CandidateID, *item.Room.JobPostingID)
	switch {
	case err == nil:
		return domain.Enriched(ref)
	case errors.Is(err, apperrors.ErrNotFound):
		return domain.Enrichment[*domain.ApplicationRef]{}
	default:
		s.log.Warn("Application enrichment failed", "message_id", item.Message.ID, "error", err)
		return domain.EnrichmentFailed[*domain.ApplicationRef]("application", err)
	}
}

func (s *moderationService) Resolve(ctx context.Context, actor domain.Actor, res domain.Resolution) (*domain.ModerationRecord, error) {
	if actor.Type != domain.ActorTypeAdmin {
		return nil, fmt.Errorf("%w: only admins resolve moderation", apperrors.ErrForbidden)
	}
	if !res.Decision.IsDecision() {
		return nil, apperrors.ErrInvalidDecision
	}
	res.ReviewerID = actor.ID

	message, err := s.messageRepo.GetByID(ctx, res.MessageID)
	if err != nil {
		return nil, err
	}

	resolvedAt := s.now().UTC()
	previous, record, err := s.moderationRepo.Resolve(ctx, res, resolvedAt)
	if err != nil {
		if !errors.Is(err, apperrors.ErrModerationConflict) && !errors.Is(err, apperrors.ErrNotUnderReview) {
			s.log.Error("Failed to resolve moderation", "message_id", res.MessageID, "error", err)
		}
		return nil, err
	}

	eventType := domain.EventTypeModerationResolved
	if previous.IsTerminal() {
		eventType = domain.EventTypeModerationOverridden
		s.log.Warn("Moderation decision overridden",
			"message_id", res.MessageID, "previous", previous, "decision", res.Decision, "reviewer_id", actor.ID)
	}

	payload := map[string]interface{}{
		"previous_status": string(previous),
		"decision":        string(res.Decision),
		"version":         record.Version,
	}
	if res.Reason != "" {
		payload["reason"] = res.Reason
	}
	if res.ApplicationID != nil {
		payload["application_id"] = res.ApplicationID.String()
	}
	// Аудит
	_ = s.audit.LogEvent(ctx, &actor, &message.RoomID, &message.ID, eventType, payload)

	s.publishResolved(ctx, &domain.ModerationResolvedEvent{
		MessageID:      message.ID,
		RoomID:         message.RoomID,
		Decision:       res.Decision,
		PreviousStatus: previous,
		ReviewerID:     actor.ID,
		ApplicationID:  res.ApplicationID,
		ResolvedAt:     resolvedAt,
	})
	s.invalidateAdminTasks(ctx)

	return record, nil
}

// publishResolved never fails the resolution; the decision is already stored.
func (s *moderationService) publishResolved(ctx context.Context, event *domain.ModerationResolvedEvent) {
	if s.events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.events.PublishModerationResolved(pubCtx, event); err != nil {
		s.log.Warn("Moderation notification not delivered", "message_id", event.MessageID, "error", err)
	}
}

func (s *moderationService) invalidateAdminTasks(ctx context.Context) {
	if s.taskCache == nil {
		return
	}
	if err := s.taskCache.Invalidate(ctx, adminTasksKey); err != nil {
		s.log.Warn("Failed to invalidate admin task cache", "error", err)
	}
}
