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

type ApplicationService interface {
	CreateApplication(ctx context.Context, applicantID, advertID uuid.UUID, input dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	GetApplication(ctx context.Context, userID, id uuid.UUID) (*dto.ApplicationResponse, error)
	GetMyApplications(ctx context.Context, userID uuid.UUID) ([]dto.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, input dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
}

type applicationService struct {
	applicationRepo repository.ApplicationRepository
	advertRepo      repository.AdvertRepository
}

func NewApplicationService(applicationRepo repository.ApplicationRepository, advertRepo repository.AdvertRepository) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		advertRepo:      advertRepo,
	}
}

func (s *applicationService) CreateApplication(ctx context.Context, applicantID, advertID uuid.UUID, input dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if _, err := s.advertRepo.FindByID(ctx, advertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if existing, err := s.applicationRepo.FindByAdvertAndApplicant(ctx, advertID, applicantID); err == nil {
		return nil, apperror.NewConflict("application", existing.ID.String())
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	application := &model.Application{
		Description: input.Description,
		Status:      model.StatusPending,
		AdvertID:    advertID,
		ApplicantID: applicantID,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		// The (advert, applicant) unique index closes the race the
		// pre-check leaves open.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.applicationRepo.FindByAdvertAndApplicant(ctx, advertID, applicantID); ferr == nil {
				return nil, apperror.NewConflict("application", existing.ID.String())
			}
			return nil, apperror.NewConflict("application", "")
		}
		return nil, err
	}

	created, err := s.applicationRepo.FindByID(ctx, application.ID)
	if err != nil {
		return nil, err
	}

	resp := toApplicationResponse(created)
	return &resp, nil
}

// GetApplication is restricted to the two parties: the advert owner and the
// applicant.
func (s *applicationService) GetApplication(ctx context.Context, userID, id uuid.UUID) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if userID != application.ApplicantID && userID != application.Advert.OwnerID {
		return nil, apperror.ErrForbidden
	}

	resp := toApplicationResponse(application)
	return &resp, nil
}

func (s *applicationService) GetMyApplications(ctx context.Context, userID uuid.UUID) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		resp = append(resp, toApplicationResponse(application))
	}
	return resp, nil
}

// UpdateStatus validates both the transition and the actor:
//
//	owner:               PENDING -> ONGOING, PENDING/ONGOING -> REJECTED
//	owner or applicant:  ONGOING -> FINISHED
//
// Terminal states are frozen and garbage status strings never reach the
// store.
func (s *applicationService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, input dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	next, err := model.ParseStatus(input.Status)
	if err != nil {
		return nil, apperror.New(400, err.Error(), apperror.ErrInvalidInput)
	}

	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	isOwner := userID == application.Advert.OwnerID
	isApplicant := userID == application.ApplicantID
	if !isOwner && !isApplicant {
		return nil, apperror.ErrForbidden
	}

	if !application.Status.CanTransition(next) {
		return nil, apperror.New(400, "cannot change status from "+string(application.Status)+" to "+string(next), apperror.ErrInvalidInput)
	}

	switch next {
	case model.StatusOngoing, model.StatusRejected:
		if !isOwner {
			return nil, apperror.ErrForbidden
		}
	case model.StatusFinished:
		// either party may mark the engagement complete
	}

	if err := s.applicationRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	application.Status = next
	resp := toApplicationResponse(application)
	return &resp, nil
}

func toApplicationResponse(application *model.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:          application.ID,
		Description: application.Description,
		Status:      string(application.Status),
		AdvertID:    application.AdvertID,
		Applicant:   toAuthorResponse(&application.Applicant),
		CreatedAt:   application.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   application.UpdatedAt.Format(time.RFC3339),
	}
}
