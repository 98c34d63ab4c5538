package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Advert is one user's offer to teach one subject at a price. A user holds
// at most one advert per subject, enforced by the composite unique index.
// Adverts are soft-disabled via IsActive rather than deleted.
type Advert struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int       `gorm:"not null" json:"price"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_adverts_owner_subject" json:"owner_id"`
	Owner       User      `gorm:"constraint:OnDelete:CASCADE" json:"owner"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_adverts_owner_subject" json:"subject_id"`
	Subject     Subject   `gorm:"constraint:OnDelete:CASCADE" json:"subject"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Advert) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
