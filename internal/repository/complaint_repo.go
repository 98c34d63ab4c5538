package repository

import (
	"context"

	"anoa.com/lesprivat/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	FindByAdvert(ctx context.Context, advertID uuid.UUID) ([]*model.Complaint, error)
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepository) FindByAdvert(ctx context.Context, advertID uuid.UUID) ([]*model.Complaint, error) {
	var complaints []*model.Complaint
	if err := r.db.WithContext(ctx).
		Preload("Complainant").
		Where("advert_id = ?", advertID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}
