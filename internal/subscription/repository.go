package subscription

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	Save(ctx context.Context, s *Subscription) error
	FindByID(ctx context.Context, id uint) (*Subscription, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*Subscription, error)
	ListByUser(ctx context.Context, userID uint) ([]Subscription, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repositoryImpl) Save(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*Subscription, error) {
	var sub Subscription
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repositoryImpl) FindByIDForUser(ctx context.Context, id, userID uint) (*Subscription, error) {
	var sub Subscription
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uint) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error
	return subs, err
}
