package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is a free-text report against an advert. No workflow attached.
type Complaint struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Description   string    `gorm:"size:1000;not null" json:"description"`
	AdvertID      uuid.UUID `gorm:"type:uuid;not null;index" json:"advert_id"`
	Advert        Advert    `gorm:"constraint:OnDelete:CASCADE" json:"advert"`
	ComplainantID uuid.UUID `gorm:"type:uuid;not null" json:"complainant_id"`
	Complainant   User      `gorm:"constraint:OnDelete:CASCADE" json:"complainant"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
