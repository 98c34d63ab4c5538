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

type SubjectService interface {
	CreateSubject(ctx context.Context, input dto.CreateSubjectRequest) (*model.Subject, error)
	GetSubject(ctx context.Context, id uuid.UUID) (*dto.SubjectDetailResponse, error)
	GetAllSubjects(ctx context.Context, filter dto.SubjectFilter) ([]dto.SubjectResponse, error)
	LinkSubSubject(ctx context.Context, subjectID, subID uuid.UUID) error
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
	advertRepo  repository.AdvertRepository
	reviewRepo  repository.ReviewRepository
	searchSvc   SearchService
}

func NewSubjectService(subjectRepo repository.SubjectRepository, advertRepo repository.AdvertRepository, reviewRepo repository.ReviewRepository, searchSvc SearchService) SubjectService {
	return &subjectService{
		subjectRepo: subjectRepo,
		advertRepo:  advertRepo,
		reviewRepo:  reviewRepo,
		searchSvc:   searchSvc,
	}
}

func (s *subjectService) CreateSubject(ctx context.Context, input dto.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		Title:       input.Title,
		Description: input.Description,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.searchSvc.IndexSubject(subject)
	return subject, nil
}

func (s *subjectService) GetSubject(ctx context.Context, id uuid.UUID) (*dto.SubjectDetailResponse, error) {
	subject, err := s.subjectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	adverts, err := s.advertRepo.FindBySubject(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.SubjectDetailResponse{
		SubjectResponse: toSubjectResponse(subject),
		SubSubjects:     make([]dto.SubjectResponse, 0, len(subject.SubSubjects)),
		SupSubjects:     make([]dto.SubjectResponse, 0, len(subject.SupSubjects)),
		Adverts:         make([]dto.AdvertResponse, 0, len(adverts)),
	}
	for _, sub := range subject.SubSubjects {
		resp.SubSubjects = append(resp.SubSubjects, toSubjectResponse(sub))
	}
	for _, sup := range subject.SupSubjects {
		resp.SupSubjects = append(resp.SupSubjects, toSubjectResponse(sup))
	}
	for _, advert := range adverts {
		avg, count, err := s.reviewRepo.AverageRating(ctx, advert.ID)
		if err != nil {
			return nil, err
		}
		resp.Adverts = append(resp.Adverts, toAdvertResponse(advert, avg, count))
	}

	return resp, nil
}

func (s *subjectService) GetAllSubjects(ctx context.Context, filter dto.SubjectFilter) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindAll(ctx, filter.Search)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		resp = append(resp, toSubjectResponse(subject))
	}
	return resp, nil
}

func (s *subjectService) LinkSubSubject(ctx context.Context, subjectID, subID uuid.UUID) error {
	// The hierarchy may form arbitrary graphs, only self-links are rejected.
	if subjectID == subID {
		return apperror.New(400, "a subject cannot be its own sub-subject", apperror.ErrInvalidInput)
	}

	subject, err := s.subjectRepo.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	sub, err := s.subjectRepo.FindByID(ctx, subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.subjectRepo.LinkSubSubject(ctx, subject, sub)
}

func toSubjectResponse(subject *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:          subject.ID,
		Title:       subject.Title,
		Description: subject.Description,
		CreatedAt:   subject.CreatedAt.Format(time.RFC3339),
	}
}
