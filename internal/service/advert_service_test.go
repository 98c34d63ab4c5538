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

func newAdvertService(db *gorm.DB) AdvertService {
	return NewAdvertService(
		repository.NewAdvertRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewReviewRepository(db),
		NewSearchService(nil),
	)
}

func TestCreateAdvertDuplicateSubjectPointsAtExisting(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	subject := createSubject(t, db, "Matematika")

	svc := newAdvertService(db)
	ctx := context.Background()

	first, err := svc.CreateAdvert(ctx, teacher.ID, dto.CreateAdvertRequest{
		SubjectID:   subject.ID.String(),
		Description: "les matematika SMA",
		Price:       50,
	})
	if err != nil {
		t.Fatalf("CreateAdvert failed: %v", err)
	}

	_, err = svc.CreateAdvert(ctx, teacher.ID, dto.CreateAdvertRequest{
		SubjectID:   subject.ID.String(),
		Description: "les matematika SMP",
		Price:       40,
	})
	var conflict *apperror.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if conflict.ExistingID != first.ID.String() {
		t.Errorf("conflict should carry the existing advert id, got %s", conflict.ExistingID)
	}

	// Same subject, different owner is fine.
	other := createUser(t, db, "guru2")
	if _, err := svc.CreateAdvert(ctx, other.ID, dto.CreateAdvertRequest{
		SubjectID: subject.ID.String(),
		Price:     45,
	}); err != nil {
		t.Fatalf("different owner should be allowed: %v", err)
	}

	// Same owner, different subject is fine.
	fisika := createSubject(t, db, "Fisika")
	if _, err := svc.CreateAdvert(ctx, teacher.ID, dto.CreateAdvertRequest{
		SubjectID: fisika.ID.String(),
		Price:     55,
	}); err != nil {
		t.Fatalf("different subject should be allowed: %v", err)
	}
}

func TestGetActiveAdvertsSkipsInactive(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	matematika := createSubject(t, db, "Matematika")
	fisika := createSubject(t, db, "Fisika")
	active := createAdvert(t, db, teacher, matematika, 50)
	hidden := createAdvert(t, db, teacher, fisika, 60)

	svc := newAdvertService(db)
	ctx := context.Background()

	inactive := false
	if _, err := svc.UpdateAdvert(ctx, teacher.ID, hidden.ID, dto.UpdateAdvertRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateAdvert failed: %v", err)
	}

	adverts, err := svc.GetActiveAdverts(ctx, dto.AdvertFilter{})
	if err != nil {
		t.Fatalf("GetActiveAdverts failed: %v", err)
	}
	if len(adverts) != 1 {
		t.Fatalf("expected 1 active advert, got %d", len(adverts))
	}
	if adverts[0].ID != active.ID {
		t.Errorf("unexpected advert in listing: %s", adverts[0].ID)
	}

	// Inactive adverts stay fetchable by id.
	if _, err := svc.GetAdvert(ctx, hidden.ID); err != nil {
		t.Errorf("inactive advert should still be readable by id: %v", err)
	}
}

func TestGetActiveAdvertsFiltersBySubject(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	matematika := createSubject(t, db, "Matematika")
	fisika := createSubject(t, db, "Fisika")
	createAdvert(t, db, teacher, matematika, 50)
	wanted := createAdvert(t, db, teacher, fisika, 60)

	svc := newAdvertService(db)

	adverts, err := svc.GetActiveAdverts(context.Background(), dto.AdvertFilter{SubjectID: fisika.ID.String()})
	if err != nil {
		t.Fatalf("GetActiveAdverts failed: %v", err)
	}
	if len(adverts) != 1 || adverts[0].ID != wanted.ID {
		t.Fatalf("expected only the %s advert, got %d entries", fisika.Title, len(adverts))
	}
}

func TestNonOwnerCannotUpdateAdvert(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	stranger := createUser(t, db, "orang")
	subject := createSubject(t, db, "Kimia")
	advert := createAdvert(t, db, teacher, subject, 50)

	svc := newAdvertService(db)

	price := 10
	_, err := svc.UpdateAdvert(context.Background(), stranger.ID, advert.ID, dto.UpdateAdvertRequest{Price: &price})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateAdvertUnknownSubject(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")

	svc := newAdvertService(db)

	_, err := svc.CreateAdvert(context.Background(), teacher.ID, dto.CreateAdvertRequest{
		SubjectID: "3b4d2c7e-0000-0000-0000-000000000000",
		Price:     50,
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
