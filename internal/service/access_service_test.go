package service

import (
	"context"
	"testing"

	"anoa.com/lesprivat/internal/model"
	"anoa.com/lesprivat/internal/repository"
	"github.com/google/uuid"
)

func TestReachableUsersEmptyWithoutRelations(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	stranger := createUser(t, db, "orang")
	subject := createSubject(t, db, "Matematika")
	createAdvert(t, db, teacher, subject, 20)

	svc := NewAccessService(repository.NewAccessRepository(db))
	ctx := context.Background()

	for _, user := range []*model.User{teacher, student, stranger} {
		reachable, err := svc.ReachableUsers(ctx, user.ID)
		if err != nil {
			t.Fatalf("ReachableUsers failed: %v", err)
		}
		if len(reachable) != 0 {
			t.Errorf("expected empty reachable set for %s, got %d entries", user.Username, len(reachable))
		}

		viewable, err := svc.ViewableUsers(ctx, user.ID)
		if err != nil {
			t.Fatalf("ViewableUsers failed: %v", err)
		}
		if len(viewable) != 0 {
			t.Errorf("expected empty viewable set for %s, got %d entries", user.Username, len(viewable))
		}
	}
}

func TestOngoingApplicationMakesBothEndsReachable(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Fisika")
	advert := createAdvert(t, db, teacher, subject, 25)
	createApplication(t, db, advert, student, model.StatusOngoing)

	svc := NewAccessService(repository.NewAccessRepository(db))
	ctx := context.Background()

	studentReachable, err := svc.ReachableUsers(ctx, student.ID)
	if err != nil {
		t.Fatalf("ReachableUsers failed: %v", err)
	}
	if _, ok := studentReachable[teacher.ID]; !ok {
		t.Error("student should reach the advert owner")
	}

	teacherReachable, err := svc.ReachableUsers(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("ReachableUsers failed: %v", err)
	}
	if _, ok := teacherReachable[student.ID]; !ok {
		t.Error("owner should reach the applicant")
	}
}

func TestPendingApplicationGrantsNothing(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Kimia")
	advert := createAdvert(t, db, teacher, subject, 25)
	createApplication(t, db, advert, student, model.StatusPending)

	svc := NewAccessService(repository.NewAccessRepository(db))

	reachable, err := svc.ReachableUsers(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("ReachableUsers failed: %v", err)
	}
	if len(reachable) != 0 {
		t.Errorf("PENDING application must not grant reach, got %d entries", len(reachable))
	}
}

func TestUserNeverInOwnSets(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	subject := createSubject(t, db, "Biologi")
	advert := createAdvert(t, db, teacher, subject, 30)
	// Owner applying to their own advert is permitted; it must still not
	// make them reachable to themselves.
	createApplication(t, db, advert, teacher, model.StatusOngoing)
	createMessage(t, db, teacher, teacher, "catatan untuk diri sendiri")

	svc := NewAccessService(repository.NewAccessRepository(db))
	ctx := context.Background()

	reachable, err := svc.ReachableUsers(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("ReachableUsers failed: %v", err)
	}
	if _, ok := reachable[teacher.ID]; ok {
		t.Error("user must not appear in their own reachable set")
	}

	viewable, err := svc.ViewableUsers(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("ViewableUsers failed: %v", err)
	}
	if _, ok := viewable[teacher.ID]; ok {
		t.Error("user must not appear in their own viewable set")
	}
}

func TestReachableIsSubsetOfViewable(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	penpal := createUser(t, db, "teman")
	subject := createSubject(t, db, "Sejarah")
	advert := createAdvert(t, db, teacher, subject, 15)
	createApplication(t, db, advert, student, model.StatusOngoing)
	createMessage(t, db, student, penpal, "halo")

	svc := NewAccessService(repository.NewAccessRepository(db))
	ctx := context.Background()

	reachable, err := svc.ReachableUsers(ctx, student.ID)
	if err != nil {
		t.Fatalf("ReachableUsers failed: %v", err)
	}
	viewable, err := svc.ViewableUsers(ctx, student.ID)
	if err != nil {
		t.Fatalf("ViewableUsers failed: %v", err)
	}

	for id := range reachable {
		if _, ok := viewable[id]; !ok {
			t.Errorf("reachable user %s missing from viewable set", id)
		}
	}
}

func TestChatOnlyCounterpartViewableButNotReachable(t *testing.T) {
	db := setupTestDB(t)
	a := createUser(t, db, "ani")
	b := createUser(t, db, "budi")
	// Messages exist but no application ever did.
	createMessage(t, db, a, b, "halo budi")

	svc := NewAccessService(repository.NewAccessRepository(db))
	ctx := context.Background()

	for _, pair := range [][2]uuid.UUID{{a.ID, b.ID}, {b.ID, a.ID}} {
		viewable, err := svc.ViewableUsers(ctx, pair[0])
		if err != nil {
			t.Fatalf("ViewableUsers failed: %v", err)
		}
		if _, ok := viewable[pair[1]]; !ok {
			t.Error("message counterpart should be viewable")
		}

		reachable, err := svc.ReachableUsers(ctx, pair[0])
		if err != nil {
			t.Fatalf("ReachableUsers failed: %v", err)
		}
		if _, ok := reachable[pair[1]]; ok {
			t.Error("message counterpart without live application must not be reachable")
		}
	}
}

func TestRejectedApplicationKeepsHistoryVisible(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Geografi")
	advert := createAdvert(t, db, teacher, subject, 10)
	createApplication(t, db, advert, student, model.StatusRejected)
	// Conversation happened while the application was still live.
	createMessage(t, db, student, teacher, "kapan mulai?")

	svc := NewAccessService(repository.NewAccessRepository(db))
	ctx := context.Background()

	canSend, err := svc.CanMessage(ctx, student.ID, teacher.ID)
	if err != nil {
		t.Fatalf("CanMessage failed: %v", err)
	}
	if canSend {
		t.Error("rejected applicant must not be able to send new messages")
	}

	canView, err := svc.CanView(ctx, student.ID, teacher.ID)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if !canView {
		t.Error("rejected applicant must keep read access to old conversation")
	}

	canViewBack, err := svc.CanView(ctx, teacher.ID, student.ID)
	if err != nil {
		t.Fatalf("CanView failed: %v", err)
	}
	if !canViewBack {
		t.Error("owner must keep read access to old conversation too")
	}
}
