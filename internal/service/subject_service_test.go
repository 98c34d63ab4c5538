package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/pkg/apperror"
	"gorm.io/gorm"
)

func newSubjectService(db *gorm.DB) SubjectService {
	return NewSubjectService(
		repository.NewSubjectRepository(db),
		repository.NewAdvertRepository(db),
		repository.NewReviewRepository(db),
		NewSearchService(nil),
	)
}

func TestSubjectSearchIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	createSubject(t, db, "Bahasa Inggris")
	createSubject(t, db, "Matematika")

	svc := newSubjectService(db)

	for _, search := range []string{"inggris", "INGGRIS", "Inggris"} {
		subjects, err := svc.GetAllSubjects(context.Background(), dto.SubjectFilter{Search: search})
		if err != nil {
			t.Fatalf("GetAllSubjects(%q) failed: %v", search, err)
		}
		if len(subjects) != 1 || subjects[0].Title != "Bahasa Inggris" {
			t.Errorf("search %q should match exactly Bahasa Inggris, got %d entries", search, len(subjects))
		}
	}
}

func TestLinkSubSubject(t *testing.T) {
	db := setupTestDB(t)
	matematika := createSubject(t, db, "Matematika")
	aljabar := createSubject(t, db, "Aljabar")

	svc := newSubjectService(db)
	ctx := context.Background()

	if err := svc.LinkSubSubject(ctx, matematika.ID, aljabar.ID); err != nil {
		t.Fatalf("LinkSubSubject failed: %v", err)
	}

	detail, err := svc.GetSubject(ctx, matematika.ID)
	if err != nil {
		t.Fatalf("GetSubject failed: %v", err)
	}
	if len(detail.SubSubjects) != 1 || detail.SubSubjects[0].ID != aljabar.ID {
		t.Fatalf("expected Aljabar as sub subject, got %d entries", len(detail.SubSubjects))
	}

	reverse, err := svc.GetSubject(ctx, aljabar.ID)
	if err != nil {
		t.Fatalf("GetSubject failed: %v", err)
	}
	if len(reverse.SupSubjects) != 1 || reverse.SupSubjects[0].ID != matematika.ID {
		t.Fatalf("expected Matematika as sup subject, got %d entries", len(reverse.SupSubjects))
	}
}

func TestLinkSubjectToItselfRejected(t *testing.T) {
	db := setupTestDB(t)
	subject := createSubject(t, db, "Fisika")

	svc := newSubjectService(db)

	err := svc.LinkSubSubject(context.Background(), subject.ID, subject.ID)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("self link should be rejected, got %v", err)
	}
}
