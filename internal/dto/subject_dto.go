package dto

import (
	"github.com/google/uuid"
)

type CreateSubjectRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=10000"`
}

type LinkSubSubjectRequest struct {
	SubSubjectID string `json:"sub_subject_id" binding:"required,uuid"`
}

type SubjectFilter struct {
	Search string `form:"search"`
}

type SubjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
}

type SubjectDetailResponse struct {
	SubjectResponse
	SubSubjects []SubjectResponse `json:"sub_subjects"`
	SupSubjects []SubjectResponse `json:"sup_subjects"`
	Adverts     []AdvertResponse  `json:"adverts"`
}
