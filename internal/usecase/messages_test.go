package usecase

import (
	"context"
	"errors"
	"testing"

	"job-portal/internal/domain/message"
	"job-portal/internal/domain/user"
	"job-portal/internal/testfixtures"
)

func TestMessages_Send(t *testing.T) {
	store := testfixtures.NewStore()
	notifier := &fakeNotifier{}
	uc := NewMessages(store.Messages(), store.Users(), notifier, testOpts(newClock())...)
	a := store.SeedUser(user.RoleJobSeeker)
	b := store.SeedUser(user.RoleEmployer)

	m, err := uc.Send(context.Background(), a, b.ID, "  hello  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Content != "hello" || m.Read || m.SenderName != a.Name {
		t.Fatalf("unexpected message %+v", m)
	}
	if len(notifier.events) != 1 || notifier.events[0].room != b.ID || notifier.events[0].event != EventNewMessage {
		t.Fatalf("expected new_message to receiver room, got %+v", notifier.events)
	}

	cases := map[string]struct {
		receiver string
		content  string
		want     error
	}{
		"empty content": {receiver: b.ID, content: "   ", want: ErrInvalidInput},
		"self":          {receiver: a.ID, content: "hi", want: ErrInvalidInput},
		"unknown":       {receiver: "user_missing", content: "hi", want: ErrNotFound},
	}
	for name, tc := range cases {
		if _, err := uc.Send(context.Background(), a, tc.receiver, tc.content); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestMessages_Send_RealtimeFailureDoesNotFail(t *testing.T) {
	store := testfixtures.NewStore()
	uc := NewMessages(store.Messages(), store.Users(), &fakeNotifier{refuse: true}, testOpts(newClock())...)
	a := store.SeedUser(user.RoleJobSeeker)
	b := store.SeedUser(user.RoleEmployer)

	if _, err := uc.Send(context.Background(), a, b.ID, "hi"); err != nil {
		t.Fatalf("expected success despite dropped event, got %v", err)
	}
	thread, err := uc.Conversation(context.Background(), b, a.ID)
	if err != nil || len(thread) != 1 {
		t.Fatalf("expected stored message, got %d %v", len(thread), err)
	}
}

func TestMessages_ConversationMarksRead(t *testing.T) {
	store := testfixtures.NewStore()
	uc := NewMessages(store.Messages(), store.Users(), &fakeNotifier{}, testOpts(newClock())...)
	a := store.SeedUser(user.RoleJobSeeker)
	b := store.SeedUser(user.RoleEmployer)
	ctx := context.Background()

	for _, text := range []string{"one", "two"} {
		if _, err := uc.Send(ctx, a, b.ID, text); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	if _, err := uc.Send(ctx, b, a.ID, "reply"); err != nil {
		t.Fatalf("send: %v", err)
	}

	convs, err := uc.Conversations(ctx, b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(convs) != 1 || convs[0].UnreadCount != 2 || convs[0].LastMessage != "reply" || convs[0].Name != a.Name {
		t.Fatalf("unexpected conversations %+v", convs)
	}

	thread, err := uc.Conversation(ctx, b, a.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(thread) != 3 || thread[0].Content != "one" || thread[2].Content != "reply" {
		t.Fatalf("expected thread oldest first, got %+v", thread)
	}
	if thread[0].Read {
		t.Fatalf("returned thread should reflect pre-update state")
	}

	convs, err = uc.Conversations(ctx, b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if convs[0].UnreadCount != 0 {
		t.Fatalf("expected unread_count 0 after fetch, got %d", convs[0].UnreadCount)
	}

	// a's own view is untouched by b reading.
	convs, err = uc.Conversations(ctx, a)
	if err != nil || convs[0].UnreadCount != 1 {
		t.Fatalf("expected a to still have one unread, got %+v %v", convs, err)
	}
}

func TestMessages_ConversationsDropUnknownPartners(t *testing.T) {
	store := testfixtures.NewStore()
	uc := NewMessages(store.Messages(), store.Users(), &fakeNotifier{}, testOpts(newClock())...)
	a := store.SeedUser(user.RoleJobSeeker)
	b := store.SeedUser(user.RoleEmployer)
	ctx := context.Background()

	if _, err := uc.Send(ctx, a, b.ID, "hi"); err != nil {
		t.Fatalf("send: %v", err)
	}
	ghost := message.Message{
		ID:         "msg_ghost",
		SenderID:   "user_deleted",
		ReceiverID: a.ID,
		Content:    "boo",
		CreatedAt:  testfixtures.ReferenceTime().Add(-1),
	}
	if err := store.Messages().Create(ctx, ghost); err != nil {
		t.Fatalf("seed: %v", err)
	}

	convs, err := uc.Conversations(ctx, a)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(convs) != 1 || convs[0].UserID != b.ID {
		t.Fatalf("expected only known partner, got %+v", convs)
	}

	none, err := uc.Conversations(ctx, store.SeedUser(user.RoleJobSeeker))
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil list, got %v %v", none, err)
	}
}
