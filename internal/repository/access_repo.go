package repository

import (
	"context"

	"anoa.com/lesprivat/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessRepository provides the raw id sets the visibility resolver is
// built from: who the user has a live engagement with, and who they have
// ever exchanged a message with.
type AccessRepository interface {
	// OngoingTeachers returns owners of adverts the user has an ONGOING
	// application with.
	OngoingTeachers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// OngoingStudents returns applicants with an ONGOING application to one
	// of the user's adverts.
	OngoingStudents(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// MessageCounterparts returns every user that appears on the other end
	// of a message with the user, regardless of application status.
	MessageCounterparts(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type accessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) OngoingTeachers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Joins("JOIN adverts ON adverts.id = applications.advert_id").
		Where("applications.applicant_id = ? AND applications.status = ?", userID, model.StatusOngoing).
		Distinct().
		Pluck("adverts.owner_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *accessRepository) OngoingStudents(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Joins("JOIN adverts ON adverts.id = applications.advert_id").
		Where("adverts.owner_id = ? AND applications.status = ?", userID, model.StatusOngoing).
		Distinct().
		Pluck("applications.applicant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *accessRepository) MessageCounterparts(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var sent []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Distinct().
		Pluck("receiver_id", &sent).Error; err != nil {
		return nil, err
	}

	var received []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("receiver_id = ?", userID).
		Distinct().
		Pluck("sender_id", &received).Error; err != nil {
		return nil, err
	}

	return append(sent, received...), nil
}
