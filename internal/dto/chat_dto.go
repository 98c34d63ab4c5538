package dto

import (
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	Message    string    `json:"message"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	CreatedAt  string    `json:"created_at"`
}

// CounterpartResponse is one entry in the chat list: a user the caller may
// at least view history with, plus whether new messages may be sent.
type CounterpartResponse struct {
	User      AuthorResponse `json:"user"`
	Reachable bool           `json:"reachable"`
}

type ConversationResponse struct {
	Counterpart AuthorResponse    `json:"counterpart"`
	Reachable   bool              `json:"reachable"`
	Messages    []MessageResponse `json:"messages"`
}
