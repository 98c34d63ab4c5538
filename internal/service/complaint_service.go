package service

import (
	"context"
	"errors"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/model"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type ComplaintService interface {
	CreateComplaint(ctx context.Context, complainantID, advertID uuid.UUID, input dto.CreateComplaintRequest) (*model.Complaint, error)
	// GetAdvertComplaints is owner-only; complaints are not public.
	GetAdvertComplaints(ctx context.Context, userID, advertID uuid.UUID) ([]*model.Complaint, error)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	advertRepo    repository.AdvertRepository
	sanitizer     *bluemonday.Policy
}

func NewComplaintService(complaintRepo repository.ComplaintRepository, advertRepo repository.AdvertRepository) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		advertRepo:    advertRepo,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *complaintService) CreateComplaint(ctx context.Context, complainantID, advertID uuid.UUID, input dto.CreateComplaintRequest) (*model.Complaint, error) {
	if _, err := s.advertRepo.FindByID(ctx, advertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	complaint := &model.Complaint{
		Description:   s.sanitizer.Sanitize(input.Description),
		AdvertID:      advertID,
		ComplainantID: complainantID,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *complaintService) GetAdvertComplaints(ctx context.Context, userID, advertID uuid.UUID) ([]*model.Complaint, error) {
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

	return s.complaintRepo.FindByAdvert(ctx, advertID)
}
