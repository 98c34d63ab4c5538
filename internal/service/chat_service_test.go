package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/model"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/pkg/apperror"
	"gorm.io/gorm"
)

func newChatService(db *gorm.DB) ChatService {
	accessSvc := NewAccessService(repository.NewAccessRepository(db))
	return NewChatService(repository.NewMessageRepository(db), repository.NewUserRepository(db), accessSvc, nil)
}

func TestSendMessageRequiresLiveEngagement(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	stranger := createUser(t, db, "orang")
	subject := createSubject(t, db, "Matematika")
	advert := createAdvert(t, db, teacher, subject, 20)
	createApplication(t, db, advert, student, model.StatusOngoing)

	svc := newChatService(db)
	ctx := context.Background()
	input := dto.SendMessageRequest{Message: "halo"}

	if _, err := svc.SendMessage(ctx, stranger.ID, teacher.ID, input); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("stranger send should be forbidden, got %v", err)
	}

	resp, err := svc.SendMessage(ctx, student.ID, teacher.ID, input)
	if err != nil {
		t.Fatalf("send within an ongoing engagement should succeed: %v", err)
	}
	if resp.Message != "halo" {
		t.Errorf("unexpected message body: %q", resp.Message)
	}

	// The other direction works too.
	if _, err := svc.SendMessage(ctx, teacher.ID, student.ID, dto.SendMessageRequest{Message: "halo juga"}); err != nil {
		t.Fatalf("owner should reach the applicant: %v", err)
	}
}

func TestSendMessageStripsMarkup(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Fisika")
	advert := createAdvert(t, db, teacher, subject, 20)
	createApplication(t, db, advert, student, model.StatusOngoing)

	svc := newChatService(db)

	resp, err := svc.SendMessage(context.Background(), student.ID, teacher.ID, dto.SendMessageRequest{
		Message: `jadwal <script>alert("x")</script>besok`,
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if strings.Contains(resp.Message, "<script>") {
		t.Errorf("markup should be stripped, got %q", resp.Message)
	}
}

func TestHistoryOutlivesEngagement(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	subject := createSubject(t, db, "Kimia")
	advert := createAdvert(t, db, teacher, subject, 20)
	application := createApplication(t, db, advert, student, model.StatusOngoing)

	svc := newChatService(db)
	ctx := context.Background()

	if _, err := svc.SendMessage(ctx, student.ID, teacher.ID, dto.SendMessageRequest{Message: "kapan mulai?"}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	err := db.Model(&model.Application{}).Where("id = ?", application.ID).Update("status", model.StatusRejected).Error
	if err != nil {
		t.Fatalf("failed to reject application: %v", err)
	}

	_, err = svc.SendMessage(ctx, student.ID, teacher.ID, dto.SendMessageRequest{Message: "masih bisa?"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("send after rejection should be forbidden, got %v", err)
	}

	for _, pair := range [][2]*model.User{{student, teacher}, {teacher, student}} {
		conversation, err := svc.GetConversation(ctx, pair[0].ID, pair[1].ID)
		if err != nil {
			t.Fatalf("history should stay readable for %s: %v", pair[0].Username, err)
		}
		if len(conversation.Messages) != 1 {
			t.Errorf("expected 1 message for %s, got %d", pair[0].Username, len(conversation.Messages))
		}
		if conversation.Reachable {
			t.Errorf("conversation should be flagged unreachable for %s", pair[0].Username)
		}
	}
}

func TestStrangerCannotReadConversation(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	student := createUser(t, db, "murid")
	stranger := createUser(t, db, "orang")
	subject := createSubject(t, db, "Biologi")
	advert := createAdvert(t, db, teacher, subject, 20)
	createApplication(t, db, advert, student, model.StatusOngoing)
	createMessage(t, db, student, teacher, "halo")

	svc := newChatService(db)

	_, err := svc.GetConversation(context.Background(), stranger.ID, teacher.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("stranger should not read the conversation, got %v", err)
	}
}

func TestListCounterpartsFlagsReachability(t *testing.T) {
	db := setupTestDB(t)
	teacher := createUser(t, db, "guru")
	current := createUser(t, db, "murid_aktif")
	former := createUser(t, db, "murid_lama")
	subject := createSubject(t, db, "Sejarah")
	advert := createAdvert(t, db, teacher, subject, 20)
	createApplication(t, db, advert, current, model.StatusOngoing)
	createApplication(t, db, advert, former, model.StatusRejected)
	createMessage(t, db, former, teacher, "dulu pernah ngobrol")

	svc := newChatService(db)

	counterparts, err := svc.ListCounterparts(context.Background(), teacher.ID)
	if err != nil {
		t.Fatalf("ListCounterparts failed: %v", err)
	}
	if len(counterparts) != 2 {
		t.Fatalf("expected 2 counterparts, got %d", len(counterparts))
	}

	byID := make(map[string]bool, len(counterparts))
	for _, counterpart := range counterparts {
		byID[counterpart.User.ID.String()] = counterpart.Reachable
	}
	if reachable, ok := byID[current.ID.String()]; !ok || !reachable {
		t.Errorf("ongoing applicant should be listed and reachable")
	}
	if reachable, ok := byID[former.ID.String()]; !ok || reachable {
		t.Errorf("former applicant should be listed but not reachable")
	}
}
