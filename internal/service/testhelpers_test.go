package service

import (
	"testing"

	"anoa.com/lesprivat/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing. TranslateError
// matches the production connection so unique index violations surface as
// gorm.ErrDuplicatedKey here too.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Subject{},
		&model.Advert{},
		&model.Application{},
		&model.Review{},
		&model.Message{},
		&model.Complaint{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{Username: username, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	profile := &model.Profile{UserID: user.ID, FullName: username}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to create profile for %s: %v", username, err)
	}
	user.Profile = profile
	return user
}

func createSubject(t *testing.T, db *gorm.DB, title string) *model.Subject {
	t.Helper()

	subject := &model.Subject{Title: title}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("Failed to create subject %s: %v", title, err)
	}
	return subject
}

func createAdvert(t *testing.T, db *gorm.DB, owner *model.User, subject *model.Subject, price int) *model.Advert {
	t.Helper()

	advert := &model.Advert{
		Description: "les " + subject.Title,
		Price:       price,
		IsActive:    true,
		OwnerID:     owner.ID,
		SubjectID:   subject.ID,
	}
	if err := db.Create(advert).Error; err != nil {
		t.Fatalf("Failed to create advert: %v", err)
	}
	return advert
}

func createApplication(t *testing.T, db *gorm.DB, advert *model.Advert, applicant *model.User, status model.ApplicationStatus) *model.Application {
	t.Helper()

	application := &model.Application{
		Description: "saya mau belajar",
		Status:      status,
		AdvertID:    advert.ID,
		ApplicantID: applicant.ID,
	}
	if err := db.Create(application).Error; err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}
	return application
}

func createMessage(t *testing.T, db *gorm.DB, sender, receiver *model.User, text string) *model.Message {
	t.Helper()

	message := &model.Message{
		Message:    text,
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
	}
	if err := db.Create(message).Error; err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}
	return message
}
