package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"anoa.com/lesprivat/internal/dto"
	"anoa.com/lesprivat/internal/model"
	"anoa.com/lesprivat/internal/repository"
	"anoa.com/lesprivat/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ChatService interface {
	// ListCounterparts returns the users whose conversations the caller may
	// open, flagged with whether new messages can still be sent.
	ListCounterparts(ctx context.Context, userID uuid.UUID) ([]dto.CounterpartResponse, error)
	// GetConversation is gated on viewable users: history stays readable
	// after an engagement ends.
	GetConversation(ctx context.Context, userID, counterpartID uuid.UUID) (*dto.ConversationResponse, error)
	// SendMessage is gated on reachable users: it refuses, rather than
	// silently drops, once no live engagement remains.
	SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, input dto.SendMessageRequest) (*dto.MessageResponse, error)
}

// ConversationChannel is the redis pub/sub channel for a pair of users,
// order-independent so both ends subscribe to the same channel.
func ConversationChannel(a, b uuid.UUID) string {
	if b.String() < a.String() {
		a, b = b, a
	}
	return fmt.Sprintf("chat:%s:%s", a.String(), b.String())
}

const messageRateLimit = 2 * time.Second

type chatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	accessSvc   AccessService
	redisClient *redis.Client
	sanitizer   *bluemonday.Policy
}

func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, accessSvc AccessService, redisClient *redis.Client) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		accessSvc:   accessSvc,
		redisClient: redisClient,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *chatService) ListCounterparts(ctx context.Context, userID uuid.UUID) ([]dto.CounterpartResponse, error) {
	viewable, err := s.accessSvc.ViewableUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	reachable, err := s.accessSvc.ReachableUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(viewable))
	for id := range viewable {
		ids = append(ids, id)
	}

	users, err := s.userRepo.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CounterpartResponse, 0, len(users))
	for _, user := range users {
		_, canSend := reachable[user.ID]
		resp = append(resp, dto.CounterpartResponse{
			User:      toAuthorResponse(user),
			Reachable: canSend,
		})
	}
	return resp, nil
}

func (s *chatService) GetConversation(ctx context.Context, userID, counterpartID uuid.UUID) (*dto.ConversationResponse, error) {
	ok, err := s.accessSvc.CanView(ctx, userID, counterpartID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.New(403, "you don't have access to this chat", apperror.ErrForbidden)
	}

	counterpart, err := s.userRepo.FindByID(ctx, counterpartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	messages, err := s.messageRepo.Conversation(ctx, userID, counterpartID)
	if err != nil {
		return nil, err
	}

	reachable, err := s.accessSvc.CanMessage(ctx, userID, counterpartID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConversationResponse{
		Counterpart: toAuthorResponse(counterpart),
		Reachable:   reachable,
		Messages:    make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(message))
	}
	return resp, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, input dto.SendMessageRequest) (*dto.MessageResponse, error) {
	ok, err := s.accessSvc.CanMessage(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.New(403, "you don't have access to this chat", apperror.ErrForbidden)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, senderID, "send_message", messageRateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	message := &model.Message{
		Message:    s.sanitizer.Sanitize(input.Message),
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	resp := toMessageResponse(message)

	if s.redisClient != nil {
		if payload, err := json.Marshal(resp); err == nil {
			s.redisClient.Publish(ctx, ConversationChannel(senderID, receiverID), payload)
		}
	}

	return &resp, nil
}

func toMessageResponse(message *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         message.ID,
		Message:    message.Message,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		CreatedAt:  message.CreatedAt.Format(time.RFC3339),
	}
}
