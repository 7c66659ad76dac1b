package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"job-portal/internal/domain/message"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/ids"
	"job-portal/internal/pkg/metrics"
)

const (
	EventNewMessage   = "new_message"
	maxMessageContent = 5000
)

// Notifier hands an event to the realtime relay. Publish must not block; it
// reports false when the event could not be queued.
type Notifier interface {
	Publish(room, event string, data any) bool
}

type Messages struct {
	base
	messages message.Repository
	users    user.Repository
	notifier Notifier
}

func NewMessages(messages message.Repository, users user.Repository, notifier Notifier, opts ...Option) *Messages {
	return &Messages{base: newBase(opts), messages: messages, users: users, notifier: notifier}
}

// Send stores a message and then pushes it to the receiver's room. Realtime
// delivery is best effort and never fails the call.
func (u *Messages) Send(ctx context.Context, actor user.User, receiverID, content string) (message.Message, error) {
	receiverID = strings.TrimSpace(receiverID)
	content = strings.TrimSpace(content)
	if receiverID == "" {
		return message.Message{}, fail(ErrInvalidInput, "receiver_id is required")
	}
	if content == "" {
		return message.Message{}, fail(ErrInvalidInput, "content must not be empty")
	}
	if utf8.RuneCountInString(content) > maxMessageContent {
		return message.Message{}, fail(ErrInvalidInput, "content is too long")
	}
	if receiverID == actor.ID {
		return message.Message{}, fail(ErrInvalidInput, "Cannot message yourself")
	}

	if _, err := u.users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return message.Message{}, fail(ErrNotFound, "Receiver not found")
		}
		return message.Message{}, internal("get receiver", err)
	}

	m := message.Message{
		ID:         ids.New(ids.PrefixMessage),
		SenderID:   actor.ID,
		ReceiverID: receiverID,
		SenderName: actor.Name,
		Content:    content,
		Read:       false,
		CreatedAt:  u.now(),
	}
	if err := u.messages.Create(ctx, m); err != nil {
		return message.Message{}, internal("create message", err)
	}
	metrics.IncrementMessagesSent()

	if u.notifier == nil || !u.notifier.Publish(m.ReceiverID, EventNewMessage, m) {
		u.logger.Printf("[Messages] realtime delivery skipped message_id=%s receiver_id=%s", m.ID, m.ReceiverID)
	}
	return m, nil
}

// Conversation returns the thread with partnerID, oldest first, and then
// marks the partner's messages to the caller as read. The returned thread
// reflects the state before the update.
func (u *Messages) Conversation(ctx context.Context, actor user.User, partnerID string) ([]message.Message, error) {
	partnerID = strings.TrimSpace(partnerID)
	if partnerID == "" {
		return nil, fail(ErrInvalidInput, "user_id is required")
	}

	thread, err := u.messages.ListBetween(ctx, actor.ID, partnerID)
	if err != nil {
		return nil, internal("list thread", err)
	}

	if _, err := u.messages.MarkRead(ctx, partnerID, actor.ID); err != nil {
		return nil, internal("mark read", err)
	}
	return thread, nil
}

// Conversations lists one summary per partner, newest activity first.
// Partners without a user record are left out.
func (u *Messages) Conversations(ctx context.Context, actor user.User) ([]message.Conversation, error) {
	msgs, err := u.messages.ListInvolving(ctx, actor.ID)
	if err != nil {
		return nil, internal("list messages", err)
	}

	convs := message.Summarize(actor.ID, msgs)
	if len(convs) == 0 {
		return convs, nil
	}

	partnerIDs := make([]string, 0, len(convs))
	for _, c := range convs {
		partnerIDs = append(partnerIDs, c.UserID)
	}
	partners, err := u.users.GetByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, internal("load partners", err)
	}

	out := make([]message.Conversation, 0, len(convs))
	for _, c := range convs {
		p, ok := partners[c.UserID]
		if !ok {
			continue
		}
		c.Name = p.Name
		c.Picture = p.Picture
		out = append(out, c)
	}
	return out, nil
}
