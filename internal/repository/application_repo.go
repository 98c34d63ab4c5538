package repository

import (
	"context"

	"anoa.com/lesprivat/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	FindByAdvertAndApplicant(ctx context.Context, advertID, applicantID uuid.UUID) (*model.Application, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).
		Preload("Advert").
		Preload("Advert.Subject").
		Preload("Applicant").
		Preload("Applicant.Profile").
		Where("id = ?", id).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByAdvertAndApplicant(ctx context.Context, advertID, applicantID uuid.UUID) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).
		Where("advert_id = ? AND applicant_id = ?", advertID, applicantID).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// FindByUser returns applications the user is party to, both the ones they
// submitted and the ones received on their adverts.
func (r *applicationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Application, error) {
	var applications []*model.Application
	if err := r.db.WithContext(ctx).
		Preload("Advert").
		Preload("Advert.Subject").
		Preload("Applicant").
		Preload("Applicant.Profile").
		Joins("JOIN adverts ON adverts.id = applications.advert_id").
		Where("applications.applicant_id = ? OR adverts.owner_id = ?", userID, userID).
		Order("applications.created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
}
