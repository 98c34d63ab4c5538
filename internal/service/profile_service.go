package service

import (
	"context"
	"errors"
	"io"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/pkg/apperror"
	"anoa.com/lesprivat/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvatarFile is an uploaded avatar image.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest, avatar *AvatarFile) (*dto.ProfileResponse, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(userRepo repository.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if user.Profile == nil {
		return nil, apperror.ErrNotFound
	}

	return &dto.ProfileResponse{
		UserID:      user.ID,
		Username:    user.Username,
		FullName:    user.Profile.FullName,
		Description: user.Profile.Description,
		AvatarURL:   user.Profile.AvatarURL,
	}, nil
}

// UpdateProfile is self-only; the handler passes the authenticated user id,
// so there is no target id to check against here.
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest, avatar *AvatarFile) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if user.Profile == nil {
		return nil, apperror.ErrNotFound
	}

	profile := user.Profile
	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Description != nil {
		profile.Description = *input.Description
	}

	if avatar != nil && s.imageStorage != nil {
		oldURL := profile.AvatarURL

		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = &url

		if oldURL != nil {
			// Old avatar is unreferenced after this; ignore delete failure.
			_ = s.imageStorage.DeleteImage(ctx, *oldURL)
		}
	}

	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserID:      user.ID,
		Username:    user.Username,
		FullName:    profile.FullName,
		Description: profile.Description,
		AvatarURL:   profile.AvatarURL,
	}, nil
}
