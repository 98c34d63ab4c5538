package dto

import (
	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" form:"full_name" binding:"omitempty,max=100"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=10000"`
}

type ProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	AvatarURL   *string   `json:"avatar_url"`
}

type CreateComplaintRequest struct {
	Description string `json:"description" binding:"required,max=1000"`
}
