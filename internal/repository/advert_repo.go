package repository

import (
	"context"

	"anoa.com/lesprivat/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdvertRepository interface {
	Create(ctx context.Context, advert *model.Advert) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Advert, error)
	FindActive(ctx context.Context, subjectID *uuid.UUID) ([]*model.Advert, error)
	FindBySubject(ctx context.Context, subjectID uuid.UUID) ([]*model.Advert, error)
	FindByOwnerAndSubject(ctx context.Context, ownerID, subjectID uuid.UUID) (*model.Advert, error)
	Save(ctx context.Context, advert *model.Advert) error
}

type advertRepository struct {
	db *gorm.DB
}

func NewAdvertRepository(db *gorm.DB) AdvertRepository {
	return &advertRepository{db: db}
}

func (r *advertRepository) Create(ctx context.Context, advert *model.Advert) error {
	return r.db.WithContext(ctx).Create(advert).Error
}

func (r *advertRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Advert, error) {
	var advert model.Advert
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Owner.Profile").
		Preload("Subject").
		Where("id = ?", id).
		First(&advert).Error; err != nil {
		return nil, err
	}
	return &advert, nil
}

func (r *advertRepository) FindActive(ctx context.Context, subjectID *uuid.UUID) ([]*model.Advert, error) {
	var adverts []*model.Advert

	query := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Owner.Profile").
		Preload("Subject").
		Where("is_active = ?", true).
		Order("created_at DESC")

	if subjectID != nil {
		query = query.Where("subject_id = ?", subjectID)
	}

	if err := query.Find(&adverts).Error; err != nil {
		return nil, err
	}
	return adverts, nil
}

func (r *advertRepository) FindBySubject(ctx context.Context, subjectID uuid.UUID) ([]*model.Advert, error) {
	return r.FindActive(ctx, &subjectID)
}

func (r *advertRepository) FindByOwnerAndSubject(ctx context.Context, ownerID, subjectID uuid.UUID) (*model.Advert, error) {
	var advert model.Advert
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND subject_id = ?", ownerID, subjectID).
		First(&advert).Error; err != nil {
		return nil, err
	}
	return &advert, nil
}

func (r *advertRepository) Save(ctx context.Context, advert *model.Advert) error {
	return r.db.WithContext(ctx).Save(advert).Error
}
