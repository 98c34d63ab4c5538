package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject is a teachable topic. Subjects form a self-referential graph:
// "Algebra" can be a sub-subject of "Mathematics" and of "Computer Science"
// at the same time. The graph is not required to be acyclic, only
// self-links are rejected (at the service layer).
type Subject struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	SubSubjects []*Subject `gorm:"many2many:subject_links;joinForeignKey:SupSubjectID;joinReferences:SubSubjectID" json:"sub_subjects,omitempty"`
	SupSubjects []*Subject `gorm:"many2many:subject_links;joinForeignKey:SubSubjectID;joinReferences:SupSubjectID" json:"sup_subjects,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
