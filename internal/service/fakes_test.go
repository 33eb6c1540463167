package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/repository"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

// fakeStore backs every fake repository so that services observe each
// other's writes the same way they would through postgres.
type fakeStore struct {
	mu sync.Mutex

	rooms        map[uuid.UUID]*domain.Room
	participants map[uuid.UUID][]*domain.Participant
	messages     []*domain.Message
	moderation   map[uuid.UUID]*domain.ModerationRecord
	keywords     map[uuid.UUID]*domain.NGKeyword

	companyUsers map[uuid.UUID]*domain.CompanyUser
	candidates   map[uuid.UUID]*domain.CandidateProfile
	jobPostings  map[uuid.UUID]int
	applications map[uuid.UUID][]*domain.Application
	appRefs      map[[2]uuid.UUID]*domain.ApplicationRef
	interviews   map[uuid.UUID][]*domain.Interview
	scouts       map[uuid.UUID][]*domain.Scout

	audit  []*domain.AuditLog
	events []*domain.ModerationResolvedEvent

	keywordErr     error
	scanErr        error
	scanCalls      int
	applicationErr error
	scoutErr       error
	participantErr error
	publishErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:        make(map[uuid.UUID]*domain.Room),
		participants: make(map[uuid.UUID][]*domain.Participant),
		moderation:   make(map[uuid.UUID]*domain.ModerationRecord),
		keywords:     make(map[uuid.UUID]*domain.NGKeyword),
		companyUsers: make(map[uuid.UUID]*domain.CompanyUser),
		candidates:   make(map[uuid.UUID]*domain.CandidateProfile),
		jobPostings:  make(map[uuid.UUID]int),
		applications: make(map[uuid.UUID][]*domain.Application),
		appRefs:      make(map[[2]uuid.UUID]*domain.ApplicationRef),
		interviews:   make(map[uuid.UUID][]*domain.Interview),
		scouts:       make(map[uuid.UUID][]*domain.Scout),
	}
}

func (s *fakeStore) repositories() *repository.Repositories {
	return &repository.Repositories{
		Room:        &fakeRoomRepo{s},
		Message:     &fakeMessageRepo{s},
		Keyword:     &fakeKeywordRepo{s},
		Moderation:  &fakeModerationRepo{s},
		Company:     &fakeCompanyRepo{s},
		Candidate:   &fakeCandidateRepo{s},
		Application: &fakeApplicationRepo{s},
		Scout:       &fakeScoutRepo{s},
		Audit:       &fakeAuditRepo{s},
		RateLimit:   nil,
		Events:      &fakeEventPublisher{s},
	}
}

func (s *fakeStore) auditEvents(eventType string) []*domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.AuditLog
	for _, a := range s.audit {
		if a.EventType == eventType {
			out = append(out, a)
		}
	}
	return out
}

func (s *fakeStore) addCompanyUser(groupID uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.companyUsers[id] = &domain.CompanyUser{ID: id, CompanyGroupID: groupID, DisplayName: "Recruiter"}
	return id
}

func (s *fakeStore) addCandidate(profile *domain.CandidateProfile) uuid.UUID {
	if profile == nil {
		profile = &domain.CandidateProfile{FullName: "Hanako Yamada"}
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	s.candidates[profile.ID] = profile
	return profile.ID
}

type fakeRoomRepo struct{ s *fakeStore }

func (r *fakeRoomRepo) findLocked(candidateID, companyGroupID uuid.UUID, jobPostingID *uuid.UUID) *domain.Room {
	for _, room := range r.s.rooms {
		if room.CandidateID != candidateID || room.CompanyGroupID != companyGroupID {
			continue
		}
		switch {
		case room.JobPostingID == nil && jobPostingID == nil:
			return room
		case room.JobPostingID != nil && jobPostingID != nil && *room.JobPostingID == *jobPostingID:
			return room
		}
	}
	return nil
}

func (r *fakeRoomRepo) FindByTriple(_ context.Context, candidateID, companyGroupID uuid.UUID, jobPostingID *uuid.UUID) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if room := r.findLocked(candidateID, companyGroupID, jobPostingID); room != nil {
		cp := *room
		return &cp, nil
	}
	return nil, apperrors.ErrRoomNotFound
}

func (r *fakeRoomRepo) CreateWithParticipants(_ context.Context, room *domain.Room, participants []*domain.Participant) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing := r.findLocked(room.CandidateID, room.CompanyGroupID, room.JobPostingID); existing != nil {
		*room = *existing
		return false, nil
	}
	if r.s.participantErr != nil {
		return false, apperrors.ErrRoomIntegrity
	}
	cp := *room
	r.s.rooms[room.ID] = &cp
	for _, p := range participants {
		p.RoomID = room.ID
		r.s.participants[room.ID] = append(r.s.participants[room.ID], p)
	}
	return true, nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *fakeRoomRepo) ListForSide(_ context.Context, side domain.ActorType, sideID uuid.UUID, limit int) ([]*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Room
	for _, room := range r.s.rooms {
		if room.SideID(side) == sideID {
			cp := *room
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRoomRepo) GetParticipants(_ context.Context, roomID uuid.UUID) ([]*domain.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*domain.Participant(nil), r.s.participants[roomID]...), nil
}

type fakeMessageRepo struct{ s *fakeStore }

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[message.RoomID]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	cp := *message
	r.s.messages = append(r.s.messages, &cp)
	room.UpdatedAt = message.SentAt
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, apperrors.ErrMessageNotFound
}

func (r *fakeMessageRepo) ListByRoom(_ context.Context, roomID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Message
	for _, m := range r.s.messages {
		if m.RoomID == roomID {
			cp := *m
			out = append(out, &cp)
		}
	}
	SortMessages(out)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) LatestByRooms(_ context.Context, roomIDs []uuid.UUID) (map[uuid.UUID]*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uuid.UUID]*domain.Message)
	for _, id := range roomIDs {
		for _, m := range r.s.messages {
			if m.RoomID != id {
				continue
			}
			if cur, ok := out[id]; !ok || m.SentAt.After(cur.SentAt) {
				cp := *m
				out[id] = &cp
			}
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) countUnreadLocked(roomID uuid.UUID, viewer domain.ActorType) int {
	n := 0
	for _, m := range r.s.messages {
		if m.RoomID == roomID && m.IsUnreadFor(viewer) {
			n++
		}
	}
	return n
}

func (r *fakeMessageRepo) CountUnread(_ context.Context, roomID uuid.UUID, viewer domain.ActorType) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.countUnreadLocked(roomID, viewer), nil
}

func (r *fakeMessageRepo) CountUnreadByRooms(_ context.Context, roomIDs []uuid.UUID, viewer domain.ActorType) (map[uuid.UUID]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uuid.UUID]int)
	for _, id := range roomIDs {
		if n := r.countUnreadLocked(id, viewer); n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, roomID uuid.UUID, viewer domain.ActorType, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var changed int64
	for _, m := range r.s.messages {
		if m.RoomID == roomID && m.IsUnreadFor(viewer) {
			m.Status = domain.MessageStatusRead
			readAt := at
			m.ReadAt = &readAt
			changed++
		}
	}
	return changed, nil
}

func (r *fakeMessageRepo) ListUnreadRooms(_ context.Context, viewer domain.ActorType, sideID uuid.UUID, limit int) ([]*domain.UnreadRoom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byRoom := make(map[uuid.UUID]*domain.UnreadRoom)
	for _, m := range r.s.messages {
		room := r.s.rooms[m.RoomID]
		if room == nil || room.SideID(viewer) != sideID || !m.IsUnreadFor(viewer) {
			continue
		}
		u, ok := byRoom[m.RoomID]
		if !ok {
			u = &domain.UnreadRoom{RoomID: m.RoomID}
			byRoom[m.RoomID] = u
		}
		u.Count++
		if m.SentAt.After(u.LatestSentAt) {
			u.LatestSentAt = m.SentAt
			u.LatestMessageID = m.ID
		}
	}
	out := make([]*domain.UnreadRoom, 0, len(byRoom))
	for _, u := range byRoom {
		out = append(out, u)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) ListRecentForScan(_ context.Context, senderType domain.ActorType, limit int) ([]*domain.ScanCandidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.scanCalls++
	if r.s.scanErr != nil {
		return nil, r.s.scanErr
	}
	var out []*domain.ScanCandidate
	for i := len(r.s.messages) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.s.messages[i]
		if m.Sender == nil || m.Sender.Type() != senderType {
			continue
		}
		status := domain.ApprovalStatusUnhandled
		if rec, ok := r.s.moderation[m.ID]; ok {
			status = rec.Status
		}
		cp := *m
		out = append(out, &domain.ScanCandidate{Message: &cp, Status: status})
	}
	return out, nil
}

type fakeKeywordRepo struct{ s *fakeStore }

func (r *fakeKeywordRepo) ListActive(_ context.Context) ([]*domain.NGKeyword, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.keywordErr != nil {
		return nil, r.s.keywordErr
	}
	var out []*domain.NGKeyword
	for _, k := range r.s.keywords {
		if k.IsActive {
			cp := *k
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeKeywordRepo) List(_ context.Context) ([]*domain.NGKeyword, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.keywordErr != nil {
		return nil, r.s.keywordErr
	}
	var out []*domain.NGKeyword
	for _, k := range r.s.keywords {
		cp := *k
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeKeywordRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.NGKeyword, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k, ok := r.s.keywords[id]
	if !ok {
		return nil, apperrors.ErrKeywordNotFound
	}
	cp := *k
	return &cp, nil
}

func (r *fakeKeywordRepo) duplicateLocked(k *domain.NGKeyword) bool {
	for _, other := range r.s.keywords {
		if other.ID != k.ID && strings.EqualFold(other.Keyword, k.Keyword) {
			return true
		}
	}
	return false
}

func (r *fakeKeywordRepo) Create(_ context.Context, keyword *domain.NGKeyword) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.duplicateLocked(keyword) {
		return apperrors.ErrKeywordExists
	}
	cp := *keyword
	r.s.keywords[keyword.ID] = &cp
	return nil
}

func (r *fakeKeywordRepo) Update(_ context.Context, keyword *domain.NGKeyword) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.keywords[keyword.ID]; !ok {
		return apperrors.ErrKeywordNotFound
	}
	if r.duplicateLocked(keyword) {
		return apperrors.ErrKeywordExists
	}
	cp := *keyword
	r.s.keywords[keyword.ID] = &cp
	return nil
}

func (r *fakeKeywordRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.keywords[id]; !ok {
		return apperrors.ErrKeywordNotFound
	}
	delete(r.s.keywords, id)
	return nil
}

type fakeModerationRepo struct{ s *fakeStore }

func sameKeywords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r *fakeModerationRepo) MarkAwaiting(_ context.Context, flagged []*domain.FlaggedMessage, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var changed int64
	for _, f := range flagged {
		rec, ok := r.s.moderation[f.Message.ID]
		switch {
		case !ok:
			r.s.moderation[f.Message.ID] = &domain.ModerationRecord{
				MessageID:       f.Message.ID,
				Status:          domain.ApprovalStatusAwaitingReview,
				MatchedKeywords: f.MatchedKeywords,
				Version:         1,
				UpdatedAt:       at,
			}
		case rec.Status == domain.ApprovalStatusUnhandled,
			rec.Status == domain.ApprovalStatusAwaitingReview && !sameKeywords(rec.MatchedKeywords, f.MatchedKeywords):
			rec.Status = domain.ApprovalStatusAwaitingReview
			rec.MatchedKeywords = f.MatchedKeywords
			rec.Version++
			rec.UpdatedAt = at
		default:
			continue
		}
		changed++
	}
	return changed, nil
}

func (r *fakeModerationRepo) GetByMessageID(_ context.Context, messageID uuid.UUID) (*domain.ModerationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.moderation[messageID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeModerationRepo) ListQueue(_ context.Context, filter domain.ModerationFilter) ([]*domain.ModerationQueueItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var items []*domain.ModerationQueueItem
	for _, m := range r.s.messages {
		rec, ok := r.s.moderation[m.ID]
		if !ok || rec.Status != filter.Status {
			continue
		}
		room := r.s.rooms[m.RoomID]
		msg := *m
		items = append(items, &domain.ModerationQueueItem{
			Message:    &msg,
			Room:       *room,
			Moderation: *rec,
		})
		if len(items) == filter.Limit {
			break
		}
	}
	return items, nil
}

func (r *fakeModerationRepo) Resolve(_ context.Context, res domain.Resolution, at time.Time) (domain.ApprovalStatus, *domain.ModerationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.moderation[res.MessageID]
	if !ok || rec.Status == domain.ApprovalStatusUnhandled {
		return domain.ApprovalStatusUnhandled, nil, apperrors.ErrNotUnderReview
	}
	previous := rec.Status
	if res.ExpectedVersion != nil && *res.ExpectedVersion != rec.Version {
		return previous, nil, apperrors.ErrModerationConflict
	}
	reviewer := res.ReviewerID
	resolvedAt := at
	rec.Status = res.Decision
	rec.ReviewerID = &reviewer
	rec.Reason = nullableText(res.Reason)
	rec.ReviewerComment = nullableText(res.Comment)
	rec.LinkedApplicationID = res.ApplicationID
	rec.ResolvedAt = &resolvedAt
	rec.Version++
	rec.UpdatedAt = at
	cp := *rec
	return previous, &cp, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type fakeCompanyRepo struct{ s *fakeStore }

func (r *fakeCompanyRepo) GetUser(_ context.Context, id uuid.UUID) (*domain.CompanyUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.companyUsers[id]
	if !ok {
		return nil, apperrors.ErrCompanyUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeCompanyRepo) CountJobPostings(_ context.Context, companyGroupID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.jobPostings[companyGroupID], nil
}

type fakeCandidateRepo struct{ s *fakeStore }

func (r *fakeCandidateRepo) GetProfile(_ context.Context, id uuid.UUID) (*domain.CandidateProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.candidates[id]
	if !ok {
		return nil, apperrors.ErrCandidateNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeApplicationRepo struct{ s *fakeStore }

func (r *fakeApplicationRepo) FindByCandidateAndPosting(_ context.Context, candidateID, jobPostingID uuid.UUID) (*domain.ApplicationRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.applicationErr != nil {
		return nil, r.s.applicationErr
	}
	ref, ok := r.s.appRefs[[2]uuid.UUID{candidateID, jobPostingID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return ref, nil
}

func (r *fakeApplicationRepo) ListUnviewed(_ context.Context, companyGroupID uuid.UUID, limit int) ([]*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.applicationErr != nil {
		return nil, r.s.applicationErr
	}
	return r.s.applications[companyGroupID], nil
}

func (r *fakeApplicationRepo) ListInterviewsAwaitingResult(_ context.Context, companyGroupID uuid.UUID, now time.Time, limit int) ([]*domain.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Interview
	for _, i := range r.s.interviews[companyGroupID] {
		if i.ScheduledAt.Before(now) {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeScoutRepo struct{ s *fakeStore }

func (r *fakeScoutRepo) ListAwaitingReply(_ context.Context, candidateID uuid.UUID, sentBefore time.Time, limit int) ([]*domain.Scout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.scoutErr != nil {
		return nil, r.s.scoutErr
	}
	var out []*domain.Scout
	for _, sc := range r.s.scouts[candidateID] {
		if sc.RepliedAt == nil && sc.SentAt.Before(sentBefore) {
			out = append(out, sc)
		}
	}
	return out, nil
}

type fakeAuditRepo struct{ s *fakeStore }

func (r *fakeAuditRepo) CreateLog(_ context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, log)
	return nil
}

type fakeEventPublisher struct{ s *fakeStore }

func (p *fakeEventPublisher) PublishModerationResolved(_ context.Context, event *domain.ModerationResolvedEvent) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.publishErr != nil {
		return p.s.publishErr
	}
	p.s.events = append(p.s.events, event)
	return nil
}

// fakeClock advances by step on every call so consecutive writes get
// strictly increasing timestamps.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type testEnv struct {
	store      *fakeStore
	clock      *fakeClock
	cache      *cache.Memory
	rooms      *roomService
	chat       *chatService
	moderation *moderationService
	tasks      *taskService
	keywords   KeywordService
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	clock := newFakeClock()
	repos := store.repositories()
	log := logger.Nop()
	taskCache := cache.NewMemory(cache.Options{TTL: time.Minute, MaxEntries: 100})

	audit := NewAuditService(repos.Audit, log)
	rooms := NewRoomService(repos.Room, repos.Message, repos.Company, repos.Candidate, audit, log).(*roomService)
	rooms.now = clock.Now
	chat := NewChatService(repos.Message, rooms, taskCache, log).(*chatService)
	chat.now = clock.Now
	moderation := NewModerationService(repos, audit, taskCache, config.ModerationConfig{ScanWindow: 300, QueueLimit: 200}, log).(*moderationService)
	moderation.now = clock.Now
	tasks := NewTaskService(repos, taskCache, config.TaskConfig{RowLimit: 50, ScoutReplySLA: 72 * time.Hour}, log).(*taskService)
	tasks.now = clock.Now

	return &testEnv{
		store:      store,
		clock:      clock,
		cache:      taskCache,
		rooms:      rooms,
		chat:       chat,
		moderation: moderation,
		tasks:      tasks,
		keywords:   NewKeywordService(repos.Keyword, log),
	}
}

// openRoom seeds a candidate and a company user and opens their room.
func (e *testEnv) openRoom(ctx context.Context) (*domain.Room, domain.Actor, domain.Actor) {
	groupID := uuid.New()
	companyUserID := e.store.addCompanyUser(groupID)
	candidateID := e.store.addCandidate(nil)
	candidate := domain.Actor{ID: candidateID, Type: domain.ActorTypeCandidate}
	company := domain.Actor{ID: companyUserID, Type: domain.ActorTypeCompanyUser}

	room, _, err := e.rooms.GetOrCreateRoom(ctx, company, candidateID, companyUserID, nil)
	if err != nil {
		panic(err)
	}
	return room, candidate, company
}

func (e *testEnv) addKeyword(text string, active bool) {
	id := uuid.New()
	e.store.keywords[id] = &domain.NGKeyword{ID: id, Keyword: text, IsActive: active}
}

var admin = domain.Actor{ID: uuid.New(), Type: domain.ActorTypeAdmin}
