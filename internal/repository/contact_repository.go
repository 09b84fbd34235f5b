package repository

import (
	"context"

	"gorm.io/gorm"

	"folio/internal/model"
)

// ContactRepository persists contact messages. Create and list only:
// messages are write-once.
type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, offset, limit int) ([]model.ContactMessage, error)
	Count(ctx context.Context) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepository) List(ctx context.Context, offset, limit int) ([]model.ContactMessage, error) {
	var msgs []model.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *contactRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.ContactMessage{}).Count(&total).Error
	return total, err
}
