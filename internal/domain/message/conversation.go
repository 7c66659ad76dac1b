package message

import (
	"sort"
	"time"
)

type Conversation struct {
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Picture         *string   `json:"picture"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

// Summarize groups the messages involving userID by conversation partner.
// The newest message per partner becomes its last message, and UnreadCount
// counts unread messages addressed to userID. Results are ordered by
// LastMessageTime, newest first. Name and Picture are left for the caller.
func Summarize(userID string, msgs []Message) []Conversation {
	ordered := make([]Message, len(msgs))
	copy(ordered, msgs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	idx := make(map[string]int)
	out := make([]Conversation, 0)
	for _, m := range ordered {
		if m.SenderID != userID && m.ReceiverID != userID {
			continue
		}
		partner := m.PartnerOf(userID)

		i, ok := idx[partner]
		if !ok {
			i = len(out)
			idx[partner] = i
			out = append(out, Conversation{
				UserID:          partner,
				LastMessage:     m.Content,
				LastMessageTime: m.CreatedAt,
			})
		}

		if m.ReceiverID == userID && !m.Read {
			out[i].UnreadCount++
		}
	}
	return out
}
