package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the workflow state of an application.
//
//	PENDING -> ONGOING -> FINISHED
//	PENDING -> REJECTED, ONGOING -> REJECTED
//
// FINISHED and REJECTED are terminal.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "PENDING"
	StatusOngoing  ApplicationStatus = "ONGOING"
	StatusFinished ApplicationStatus = "FINISHED"
	StatusRejected ApplicationStatus = "REJECTED"
)

// ParseStatus case-folds and validates a status string. Anything outside the
// four known states is an error, never stored.
func ParseStatus(s string) (ApplicationStatus, error) {
	switch status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case StatusPending, StatusOngoing, StatusFinished, StatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("unknown application status %q", s)
	}
}

// IsTerminal reports whether no further transitions are permitted.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusRejected
}

// CanTransition reports whether the workflow permits moving from s to next.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusOngoing || next == StatusRejected
	case StatusOngoing:
		return next == StatusFinished || next == StatusRejected
	default:
		return false
	}
}

type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Description string            `gorm:"size:1000;not null" json:"description"`
	Status      ApplicationStatus `gorm:"size:10;not null;default:PENDING" json:"status"`
	AdvertID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_advert_applicant" json:"advert_id"`
	Advert      Advert            `gorm:"constraint:OnDelete:CASCADE" json:"advert"`
	ApplicantID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_advert_applicant" json:"applicant_id"`
	Applicant   User              `gorm:"constraint:OnDelete:CASCADE" json:"applicant"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return
}
