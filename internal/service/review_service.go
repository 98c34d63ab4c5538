package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/model"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, reviewerID, advertID uuid.UUID, input dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetReview(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error)
	GetAdvertReviews(ctx context.Context, advertID uuid.UUID) ([]dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID, id uuid.UUID, input dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo      repository.ReviewRepository
	advertRepo      repository.AdvertRepository
	applicationRepo repository.ApplicationRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, advertRepo repository.AdvertRepository, applicationRepo repository.ApplicationRepository) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		advertRepo:      advertRepo,
		applicationRepo: applicationRepo,
	}
}

// CreateReview gates on a FINISHED engagement: only someone whose
// application to this advert completed may rate it, once.
func (s *reviewService) CreateReview(ctx context.Context, reviewerID, advertID uuid.UUID, input dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if input.Rating < model.RatingMin || input.Rating > model.RatingMax {
		return nil, apperror.New(400, "rating must be between 1 and 10", apperror.ErrInvalidInput)
	}

	if _, err := s.advertRepo.FindByID(ctx, advertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if existing, err := s.reviewRepo.FindByAdvertAndReviewer(ctx, advertID, reviewerID); err == nil {
		return nil, apperror.NewConflict("review", existing.ID.String())
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	application, err := s.applicationRepo.FindByAdvertAndApplicant(ctx, advertID, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(403, "you can only review adverts you finished an engagement with", apperror.ErrForbidden)
		}
		return nil, err
	}
	if application.Status != model.StatusFinished {
		return nil, apperror.New(403, "you can only review adverts you finished an engagement with", apperror.ErrForbidden)
	}

	review := &model.Review{
		Review:     input.Review,
		Rating:     input.Rating,
		AdvertID:   advertID,
		ReviewerID: reviewerID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.reviewRepo.FindByAdvertAndReviewer(ctx, advertID, reviewerID); ferr == nil {
				return nil, apperror.NewConflict("review", existing.ID.String())
			}
			return nil, apperror.NewConflict("review", "")
		}
		return nil, err
	}

	created, err := s.reviewRepo.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	resp := toReviewResponse(created)
	return &resp, nil
}

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) GetAdvertReviews(ctx context.Context, advertID uuid.UUID) ([]dto.ReviewResponse, error) {
	if _, err := s.advertRepo.FindByID(ctx, advertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByAdvert(ctx, advertID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp = append(resp, toReviewResponse(review))
	}
	return resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, id uuid.UUID, input dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if input.Rating < model.RatingMin || input.Rating > model.RatingMax {
		return nil, apperror.New(400, "rating must be between 1 and 10", apperror.ErrInvalidInput)
	}

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if review.ReviewerID != userID {
		return nil, apperror.ErrForbidden
	}

	review.Rating = input.Rating
	review.Review = input.Review
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	resp := toReviewResponse(review)
	return &resp, nil
}

func toReviewResponse(review *model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		Rating:    review.Rating,
		Review:    review.Review,
		AdvertID:  review.AdvertID,
		Reviewer:  toAuthorResponse(&review.Reviewer),
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}
}
