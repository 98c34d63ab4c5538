package dto

import (
	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	Description string `json:"description" binding:"required,max=1000"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ApplicationResponse struct {
	ID          uuid.UUID      `json:"id"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	AdvertID    uuid.UUID      `json:"advert_id"`
	Applicant   AuthorResponse `json:"applicant"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}
