package services

import (
	"sort"

	"github.com/gatormarket/backend/internal/models"
)

// Fallback names used when a referenced document no longer exists.
const (
	UnknownListingTitle = "Unknown listing"
	UnknownUsername     = "Unknown user"
)

// conversationGroup is one inbox thread before listing/account resolution.
type conversationGroup struct {
	ConversationID string
	LastMessage    string
	LastTimestamp  string
	ListingID      string
	OtherUserID    string
}

// groupConversations reduces a user's messages to one group per
// conversation, keeping the newest message of each, with groups ordered by
// that message's timestamp, newest first. Timestamps are fixed-width
// canonical strings, so plain string comparison orders them
// chronologically.
func groupConversations(userID string, msgs []models.Message) []conversationGroup {
	sorted := make([]models.Message, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	seen := make(map[string]bool, len(sorted))
	groups := make([]conversationGroup, 0)
	for _, m := range sorted {
		if seen[m.ConversationID] {
			continue
		}
		seen[m.ConversationID] = true

		other := m.SenderID
		if m.SenderID == userID {
			other = m.RecipientID
		}
		groups = append(groups, conversationGroup{
			ConversationID: m.ConversationID,
			LastMessage:    m.Body,
			LastTimestamp:  m.Timestamp,
			ListingID:      m.ListingID,
			OtherUserID:    other,
		})
	}
	return groups
}
