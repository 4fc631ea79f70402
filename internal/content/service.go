package content

import (
	"context"
	defError "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cheatsheet-editor/internal/errors"
	"cheatsheet-editor/redis"
)

const (
	defaultColumns  = 2
	defaultFontSize = 14

	cacheTTL = 24 * time.Hour
)

// ContentResponse echoes the stored record to the client.
type ContentResponse struct {
	Content   string    `json:"content"`
	Columns   int       `json:"columns"`
	FontSize  int       `json:"fontSize"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateRequest carries a partial update: absent fields keep their stored
// value.
type UpdateRequest struct {
	Content  *string `json:"content"`
	Columns  *int    `json:"columns" binding:"omitempty,min=1,max=3"`
	FontSize *int    `json:"fontSize" binding:"omitempty,min=8,max=32"`
}

type Service interface {
	GetForUser(ctx context.Context, userID string) (*ContentResponse, error)
	UpdateForUser(ctx context.Context, userID string, req UpdateRequest) (*ContentResponse, error)
}

type DefaultService struct {
	repository Repository
	cache      *redis.Cache
}

func NewService(repository Repository, cache *redis.Cache) Service {
	return &DefaultService{
		repository: repository,
		cache:      cache,
	}
}

func cacheKey(userID string) string {
	return fmt.Sprintf("content:user:%s", userID)
}

// GetForUser returns the user's record, creating the default one on first
// access.
func (s *DefaultService) GetForUser(ctx context.Context, userID string) (*ContentResponse, error) {
	key := cacheKey(userID)

	var cached ContentResponse
	found, _ := s.cache.Get(ctx, key, &cached)
	if found {
		return &cached, nil
	}

	record, err := s.repository.FindByUserID(ctx, userID)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		record = &Content{
			UserID:    userID,
			Content:   "",
			Columns:   defaultColumns,
			FontSize:  defaultFontSize,
			UpdatedAt: time.Now().UTC(),
		}
		if err := s.repository.Create(ctx, record); err != nil {
			return nil, errors.Internal(err)
		}
	} else if err != nil {
		return nil, errors.Internal(err)
	}

	resp := toResponse(record)
	go s.cache.Set(context.Background(), key, resp, cacheTTL)

	return resp, nil
}

// UpdateForUser applies the provided fields wholesale over the stored
// record and echoes the result. Local wins on write.
func (s *DefaultService) UpdateForUser(ctx context.Context, userID string, req UpdateRequest) (*ContentResponse, error) {
	record, err := s.repository.FindByUserID(ctx, userID)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		record = &Content{
			UserID:   userID,
			Columns:  defaultColumns,
			FontSize: defaultFontSize,
		}
		if err := s.repository.Create(ctx, record); err != nil {
			return nil, errors.Internal(err)
		}
	} else if err != nil {
		return nil, errors.Internal(err)
	}

	if req.Content != nil {
		record.Content = *req.Content
	}
	if req.Columns != nil {
		record.Columns = *req.Columns
	}
	if req.FontSize != nil {
		record.FontSize = *req.FontSize
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repository.Save(ctx, record); err != nil {
		return nil, errors.Internal(err)
	}

	s.cache.Delete(ctx, cacheKey(userID))

	return toResponse(record), nil
}

func toResponse(record *Content) *ContentResponse {
	return &ContentResponse{
		Content:   record.Content,
		Columns:   record.Columns,
		FontSize:  record.FontSize,
		UpdatedAt: record.UpdatedAt,
	}
}
