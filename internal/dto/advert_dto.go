package dto

import (
	"github.com/google/uuid"
)

type CreateAdvertRequest struct {
	SubjectID   string `json:"subject_id" binding:"required,uuid"`
	Description string `json:"description" binding:"max=10000"`
	Price       int    `json:"price" binding:"required,min=0"`
}

type UpdateAdvertRequest struct {
	Description *string `json:"description" binding:"omitempty,max=10000"`
	Price       *int    `json:"price" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active"`
}

type AdvertFilter struct {
	SubjectID string `form:"subject_id" binding:"omitempty,uuid"`
}

type AdvertResponse struct {
	ID            uuid.UUID      `json:"id"`
	Description   string         `json:"description"`
	Price         int            `json:"price"`
	IsActive      bool           `json:"is_active"`
	SubjectID     uuid.UUID      `json:"subject_id"`
	SubjectTitle  string         `json:"subject_title"`
	Owner         AuthorResponse `json:"owner"`
	AverageRating *float64       `json:"average_rating"`
	ReviewCount   int64          `json:"review_count"`
	CreatedAt     string         `json:"created_at"`
}
