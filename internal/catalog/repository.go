package catalog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Plan, error)
	FindByID(ctx context.Context, id uint) (*Plan, error)
	CreateMany(ctx context.Context, plans []Plan) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	err := r.db.WithContext(ctx).Find(&plans).Error
	return plans, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uint) (*Plan, error) {
	var plan Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repositoryImpl) CreateMany(ctx context.Context, plans []Plan) error {
	return r.db.WithContext(ctx).Create(&plans).Error
}
