package ident

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeLayout is the canonical interchange format for stored instants:
// ISO-8601 UTC with microsecond precision and a Z suffix. The width is
// fixed, so lexicographic order on stored strings is chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// NewID returns a unique 24-char hex document identifier (ObjectID format,
// stored as a plain string).
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// NewConversationID returns a fresh opaque conversation identifier. Minted
// by the HTTP layer when a message-send request omits one.
func NewConversationID() string {
	return uuid.New().String()
}

// Now returns the current UTC instant in TimeLayout.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}
