package repository

import (
	"context"
	"strings"

	"anoa.com/lesprivat/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Subject, error)
	FindAll(ctx context.Context, search string) ([]*model.Subject, error)
	LinkSubSubject(ctx context.Context, subject, sub *model.Subject) error
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).
		Preload("SubSubjects").
		Preload("SupSubjects").
		Where("id = ?", id).
		First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindAll(ctx context.Context, search string) ([]*model.Subject, error) {
	var subjects []*model.Subject

	query := r.db.WithContext(ctx).Order("title ASC")
	if search != "" {
		// LOWER(...) LIKE instead of ILIKE so the same query runs on the
		// sqlite test database.
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) LinkSubSubject(ctx context.Context, subject, sub *model.Subject) error {
	return r.db.WithContext(ctx).Model(subject).Association("SubSubjects").Append(sub)
}
