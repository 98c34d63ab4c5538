package repository

import (
	"context"

	"anoa.com/lesprivat/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindByAdvertAndReviewer(ctx context.Context, advertID, reviewerID uuid.UUID) (*model.Review, error)
	FindByAdvert(ctx context.Context, advertID uuid.UUID) ([]*model.Review, error)
	Save(ctx context.Context, review *model.Review) error
	AverageRating(ctx context.Context, advertID uuid.UUID) (*float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Reviewer.Profile").
		Where("id = ?", id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByAdvertAndReviewer(ctx context.Context, advertID, reviewerID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("advert_id = ? AND reviewer_id = ?", advertID, reviewerID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByAdvert(ctx context.Context, advertID uuid.UUID) ([]*model.Review, error) {
	var reviews []*model.Review
	if err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Reviewer.Profile").
		Where("advert_id = ?", advertID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// AverageRating returns the mean rating and review count for an advert.
// With zero reviews the average is nil, never 0 — an unrated advert is not
// a badly rated one.
func (r *reviewRepository) AverageRating(ctx context.Context, advertID uuid.UUID) (*float64, int64, error) {
	var result struct {
		Avg   *float64
		Count int64
	}

	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("advert_id = ?", advertID).
		Scan(&result).Error; err != nil {
		return nil, 0, err
	}

	if result.Count == 0 {
		return nil, 0, nil
	}
	return result.Avg, result.Count, nil
}
