package content

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Content, error)
	Create(ctx context.Context, record *Content) error
	Save(ctx context.Context, record *Content) error
}

type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new content repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) FindByUserID(ctx context.Context, userID string) (*Content, error) {
	var record Content
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, record *Content) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *RepositoryImpl) Save(ctx context.Context, record *Content) error {
	return r.db.WithContext(ctx).Save(record).Error
}
