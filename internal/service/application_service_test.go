package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/model"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/pkg/apperror"
	"gorm.io/gorm"
)

func newApplicationService(db *gorm.DB) ApplicationService {
	return NewApplicationService(repository.NewApplicationRepository(db), repository.NewAdvertRepository(db))
}

func TestCreateApplicationDuplicatePointsAtExisting(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Matematika")
	advert := createAdvert(t, db, teacher, subject, 20)

	svc := newApplicationService(db)
	ctx := context.Background()

	first, err := svc.CreateApplication(ctx, student.ID, advert.ID, dto.CreateApplicationRequest{Description: "saya mau belajar"})
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	if first.Status != string(model.StatusPending) {
		t.Errorf("new application should be PENDING, got %s", first.Status)
	}

	_, err = svc.CreateApplication(ctx, student.ID, advert.ID, dto.CreateApplicationRequest{Description: "sekali lagi"})
	var conflict *apperror.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if conflict.ExistingID != first.ID.String() {
		t.Errorf("conflict should carry the existing application id, got %s", conflict.ExistingID)
	}
}

func TestUpdateStatusCaseFolded(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Fisika")
	advert := createAdvert(t, db, teacher, subject, 25)
	application := createApplication(t, db, advert, student, model.StatusPending)

	svc := newApplicationService(db)

	resp, err := svc.UpdateStatus(context.Background(), teacher.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: "ongoing"})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if resp.Status != string(model.StatusOngoing) {
		t.Errorf("status should be stored in canonical form, got %s", resp.Status)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Kimia")
	advert := createAdvert(t, db, teacher, subject, 25)
	application := createApplication(t, db, advert, student, model.StatusPending)

	svc := newApplicationService(db)

	_, err := svc.UpdateStatus(context.Background(), teacher.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: "selesai banget"})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}

	var stored model.Application
	if err := db.First(&stored, "id = ?", application.ID).Error; err != nil {
		t.Fatalf("failed to reload application: %v", err)
	}
	if stored.Status != model.StatusPending {
		t.Errorf("rejected update must not touch the stored status, got %s", stored.Status)
	}
}

func TestTerminalStatusIsFrozen(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	subject := createSubject(t, db, "Biologi")
	advert := createAdvert(t, db, teacher, subject, 25)

	for _, terminal := range []model.ApplicationStatus{model.StatusFinished, model.StatusRejected} {
		applicant := createUser(t, db, "murid_"+string(terminal))
		application := createApplication(t, db, advert, applicant, terminal)

		svc := newApplicationService(db)
		for _, next := range []string{"PENDING", "ONGOING", "FINISHED", "REJECTED"} {
			_, err := svc.UpdateStatus(context.Background(), teacher.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: next})
			if !errors.Is(err, apperror.ErrInvalidInput) {
				t.Errorf("%s -> %s should be refused, got %v", terminal, next, err)
			}
		}
	}
}

func TestOnlyOwnerAcceptsOrRejects(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Sejarah")
	advert := createAdvert(t, db, teacher, subject, 25)
	application := createApplication(t, db, advert, student, model.StatusPending)

	svc := newApplicationService(db)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, student.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: "ONGOING"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("applicant must not accept their own application, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, teacher.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: "ONGOING"}); err != nil {
		t.Fatalf("owner should accept the application: %v", err)
	}

	_, err = svc.UpdateStatus(ctx, student.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: "REJECTED"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("applicant must not reject, got %v", err)
	}
}

func TestEitherPartyFinishes(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Geografi")
	advert := createAdvert(t, db, teacher, subject, 25)
	application := createApplication(t, db, advert, student, model.StatusOngoing)

	svc := newApplicationService(db)

	resp, err := svc.UpdateStatus(context.Background(), student.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: "FINISHED"})
	if err != nil {
		t.Fatalf("applicant should be able to finish the engagement: %v", err)
	}
	if resp.Status != string(model.StatusFinished) {
		t.Errorf("expected FINISHED, got %s", resp.Status)
	}
}

func TestStrangerCannotSeeOrChangeApplication(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	stranger := createUser(t, db, "orang")
	subject := createSubject(t, db, "Ekonomi")
	advert := createAdvert(t, db, teacher, subject, 25)
	application := createApplication(t, db, advert, student, model.StatusPending)

	svc := newApplicationService(db)
	ctx := context.Background()

	if _, err := svc.GetApplication(ctx, stranger.ID, application.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("stranger read should be forbidden, got %v", err)
	}

	_, err := svc.UpdateStatus(ctx, stranger.ID, application.ID, dto.UpdateApplicationStatusRequest{Status: "ONGOING"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("stranger update should be forbidden, got %v", err)
	}
}
