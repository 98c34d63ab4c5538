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

type AdvertService interface {
	CreateAdvert(ctx context.Context, ownerID uuid.UUID, input dto.CreateAdvertRequest) (*dto.AdvertResponse, error)
	UpdateAdvert(ctx context.Context, userID, advertID uuid.UUID, input dto.UpdateAdvertRequest) (*dto.AdvertResponse, error)
	GetAdvert(ctx context.Context, id uuid.UUID) (*dto.AdvertResponse, error)
	GetActiveAdverts(ctx context.Context, filter dto.AdvertFilter) ([]dto.AdvertResponse, error)
}

type advertService struct {
	advertRepo  repository.AdvertRepository
	subjectRepo repository.SubjectRepository
	reviewRepo  repository.ReviewRepository
	searchSvc   SearchService
}

func NewAdvertService(advertRepo repository.AdvertRepository, subjectRepo repository.SubjectRepository, reviewRepo repository.ReviewRepository, searchSvc SearchService) AdvertService {
	return &advertService{
		advertRepo:  advertRepo,
		subjectRepo: subjectRepo,
		reviewRepo:  reviewRepo,
		searchSvc:   searchSvc,
	}
}

// CreateAdvert enforces one advert per (owner, subject). The unique index is
// the actual guard; a lost race comes back as gorm.ErrDuplicatedKey and gets
// the same conflict answer as the pre-check, pointing at the existing row.
func (s *advertService) CreateAdvert(ctx context.Context, ownerID uuid.UUID, input dto.CreateAdvertRequest) (*dto.AdvertResponse, error) {
	subjectID, err := uuid.Parse(input.SubjectID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	if _, err := s.subjectRepo.FindByID(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if existing, err := s.advertRepo.FindByOwnerAndSubject(ctx, ownerID, subjectID); err == nil {
		return nil, apperror.NewConflict("advert", existing.ID.String())
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	advert := &model.Advert{
		Description: input.Description,
		Price:       input.Price,
		IsActive:    true,
		OwnerID:     ownerID,
		SubjectID:   subjectID,
	}
	if err := s.advertRepo.Create(ctx, advert); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.advertRepo.FindByOwnerAndSubject(ctx, ownerID, subjectID); ferr == nil {
				return nil, apperror.NewConflict("advert", existing.ID.String())
			}
			return nil, apperror.NewConflict("advert", "")
		}
		return nil, err
	}

	created, err := s.advertRepo.FindByID(ctx, advert.ID)
	if err != nil {
		return nil, err
	}

	s.searchSvc.IndexAdvert(created)

	resp := toAdvertResponse(created, nil, 0)
	return &resp, nil
}

func (s *advertService) UpdateAdvert(ctx context.Context, userID, advertID uuid.UUID, input dto.UpdateAdvertRequest) (*dto.AdvertResponse, error) {
	advert, err := s.advertRepo.FindByID(ctx, advertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if advert.OwnerID != userID {
		return nil, apperror.ErrForbidden
	}

	if input.Description != nil {
		advert.Description = *input.Description
	}
	if input.Price != nil {
		advert.Price = *input.Price
	}
	if input.IsActive != nil {
		advert.IsActive = *input.IsActive
	}

	if err := s.advertRepo.Save(ctx, advert); err != nil {
		return nil, err
	}

	if advert.IsActive {
		s.searchSvc.IndexAdvert(advert)
	} else {
		s.searchSvc.DeleteAdvert(advert.ID.String())
	}

	avg, count, err := s.reviewRepo.AverageRating(ctx, advert.ID)
	if err != nil {
		return nil, err
	}
	resp := toAdvertResponse(advert, avg, count)
	return &resp, nil
}

func (s *advertService) GetAdvert(ctx context.Context, id uuid.UUID) (*dto.AdvertResponse, error) {
	advert, err := s.advertRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	avg, count, err := s.reviewRepo.AverageRating(ctx, advert.ID)
	if err != nil {
		return nil, err
	}

	resp := toAdvertResponse(advert, avg, count)
	return &resp, nil
}

func (s *advertService) GetActiveAdverts(ctx context.Context, filter dto.AdvertFilter) ([]dto.AdvertResponse, error) {
	var subjectID *uuid.UUID
	if filter.SubjectID != "" {
		id, err := uuid.Parse(filter.SubjectID)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		subjectID = &id
	}

	adverts, err := s.advertRepo.FindActive(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.AdvertResponse, 0, len(adverts))
	for _, advert := range adverts {
		avg, count, err := s.reviewRepo.AverageRating(ctx, advert.ID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, toAdvertResponse(advert, avg, count))
	}
	return resp, nil
}

func toAdvertResponse(advert *model.Advert, avg *float64, reviewCount int64) dto.AdvertResponse {
	resp := dto.AdvertResponse{
		ID:            advert.ID,
		Description:   advert.Description,
		Price:         advert.Price,
		IsActive:      advert.IsActive,
		SubjectID:     advert.SubjectID,
		SubjectTitle:  advert.Subject.Title,
		AverageRating: avg,
		ReviewCount:   reviewCount,
		CreatedAt:     advert.CreatedAt.Format(time.RFC3339),
	}
	resp.Owner = toAuthorResponse(&advert.Owner)
	return resp
}

func toAuthorResponse(user *model.User) dto.AuthorResponse {
	resp := dto.AuthorResponse{
		ID:       user.ID,
		Username: user.Username,
	}
	if user.Profile != nil {
		resp.FullName = user.Profile.FullName
		resp.AvatarURL = user.Profile.AvatarURL
	}
	return resp
}
