package services

import (
	"context"

	"github.com/gatormarket/backend/internal/models"
)

// ListMessagesOptions filters List. Zero-valued fields mean no filter;
// Limit is clamped to [1, MaxMessagePageSize].
type ListMessagesOptions struct {
	ConversationID string
	ListingID      string
	Limit          int
}

type MessageService interface {
	Create(ctx context.Context, in models.MessageInput) (string, error)
	Get(ctx context.Context, id string) (*models.Message, error)
	List(ctx context.Context, opts ListMessagesOptions) ([]models.Message, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// Conversations derives the user's inbox: one preview per distinct
	// conversation the user participates in, newest first.
	Conversations(ctx context.Context, userID string) ([]models.ConversationPreview, error)

	// FindConversation returns the conversation id of an existing thread
	// between the two users about the listing (either direction), or ""
	// when none exists.
	FindConversation(ctx context.Context, listingID, userA, userB string) (string, error)

	// UnreadCount counts unread messages addressed to the recipient.
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}
