package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RatingMin = 1
	RatingMax = 10
)

// Review rates a finished engagement. One review per (advert, reviewer),
// and only after the reviewer's application to that advert is FINISHED.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Review     string    `gorm:"size:1000" json:"review"`
	Rating     int       `gorm:"not null" json:"rating"`
	AdvertID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_advert_reviewer" json:"advert_id"`
	Advert     Advert    `gorm:"constraint:OnDelete:CASCADE" json:"advert"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_advert_reviewer" json:"reviewer_id"`
	Reviewer   User      `gorm:"constraint:OnDelete:CASCADE" json:"reviewer"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
