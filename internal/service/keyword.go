package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/repository"
	apperrors "recruit_messaging/pkg/errors"
	"recruit_messaging/pkg/logger"
)

const maxKeywordLength = 100

type KeywordService interface {
	List(ctx context.Context) ([]*domain.NGKeyword, error)
	Create(ctx context.Context, text string, active bool) (*domain.NGKeyword, error)
	// Update changes the text and/or active flag; nil leaves a field as is.
	Update(ctx context.Context, id uuid.UUID, text *string, active *bool) (*domain.NGKeyword, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type keywordService struct {
	keywordRepo repository.KeywordRepository
	log         logger.Logger
}

func NewKeywordService(keywordRepo repository.KeywordRepository, log logger.Logger) KeywordService {
	return &keywordService{
		keywordRepo: keywordRepo,
		log:         log,
	}
}

func normalizeKeyword(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: keyword must not be empty", apperrors.ErrBadRequest)
	}
	if len([]rune(text)) > maxKeywordLength {
		return "", fmt.Errorf("%w: keyword exceeds %d characters", apperrors.ErrBadRequest, maxKeywordLength)
	}
	return text, nil
}

func (s *keywordService) List(ctx context.Context) ([]*domain.NGKeyword, error) {
	keywords, err := s.keywordRepo.List(ctx)
	if err != nil {
		s.log.Error("Keyword list degraded to empty", "error", err)
		return []*domain.NGKeyword{}, nil
	}
	if keywords == nil {
		return []*domain.NGKeyword{}, nil
	}
	return keywords, nil
}

func (s *keywordService) Create(ctx context.Context, text string, active bool) (*domain.NGKeyword, error) {
	text, err := normalizeKeyword(text)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	keyword := &domain.NGKeyword{
		ID:        uuid.New(),
		Keyword:   text,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.keywordRepo.Create(ctx, keyword); err != nil {
		return nil, err
	}

	s.log.Info("NG keyword created", "keyword_id", keyword.ID, "active", active)
	return keyword, nil
}

func (s *keywordService) Update(ctx context.Context, id uuid.UUID, text *string, active *bool) (*domain.NGKeyword, error) {
	keyword, err := s.keywordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if text != nil {
		normalized, err := normalizeKeyword(*text)
		if err != nil {
			return nil, err
		}
		keyword.Keyword = normalized
	}
	if active != nil {
		keyword.IsActive = *active
	}

	if err := s.keywordRepo.Update(ctx, keyword); err != nil {
		return nil, err
	}

	return keyword, nil
}

func (s *keywordService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.keywordRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("NG keyword deleted", "keyword_id", id)
	return nil
}
