package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidRecord = errors.New("invalid message record")

type Message struct {
	ID         string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if m.SenderID == "" || m.ReceiverID == "" {
		return fmt.Errorf("%w: missing participant id=%s", ErrInvalidRecord, m.ID)
	}
	return nil
}

// PartnerOf returns the other participant of m from userID's point of view.
func (m Message) PartnerOf(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

type Repository interface {
	Create(ctx context.Context, m Message) error
	// ListBetween returns the thread between a and b, oldest first.
	ListBetween(ctx context.Context, a, b string) ([]Message, error)
	// ListInvolving returns every message sent or received by userID, newest first.
	ListInvolving(ctx context.Context, userID string) ([]Message, error)
	// MarkRead flips read=true on unread messages from senderID to receiverID.
	MarkRead(ctx context.Context, senderID, receiverID string) (int64, error)
}
