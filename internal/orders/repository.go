package orders

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Save(ctx context.Context, o *Order) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repositoryImpl) Save(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}
