package dto

import (
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
	Review string `json:"review" binding:"max=1000"`
}

type UpdateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
	Review string `json:"review" binding:"max=1000"`
}

type ReviewResponse struct {
	ID        uuid.UUID      `json:"id"`
	Rating    int            `json:"rating"`
	Review    string         `json:"review"`
	AdvertID  uuid.UUID      `json:"advert_id"`
	Reviewer  AuthorResponse `json:"reviewer"`
	CreatedAt string         `json:"created_at"`
}
