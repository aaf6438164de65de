package models

// Message is one message in a buyer-seller conversation about a listing.
// Sender, recipient, conversation and listing identifiers are opaque
// references; they are not verified against existing documents.
type Message struct {
	ID             string `json:"id" bson:"_id"`
	SenderID       string `json:"senderid" bson:"senderid"`
	ConversationID string `json:"conversationid" bson:"conversationid"`
	Body           string `json:"message" bson:"message"`
	ListingID      string `json:"listingid" bson:"listingid"`
	RecipientID    string `json:"recipientid" bson:"recipientid"`
	Timestamp      string `json:"timestamp" bson:"timestamp"`
	IsRead         bool   `json:"isread" bson:"isread"`
}

// MessageInput is the send payload. The HTTP layer mints a fresh
// ConversationID when the caller omits one; the repository requires it
// non-empty.
type MessageInput struct {
	SenderID       string `json:"senderid"`
	RecipientID    string `json:"recipientid"`
	ConversationID string `json:"conversationid"`
	ListingID      string `json:"listingid"`
	Body           string `json:"message"`
	IsRead         bool   `json:"isread"`
}

// ConversationPreview is one inbox row: the newest message of a
// conversation joined with the listing title and the other participant's
// username.
type ConversationPreview struct {
	ConversationID string `json:"conversationid"`
	LastMessage    string `json:"lastmessage"`
	LastTimestamp  string `json:"lasttimestamp"`
	ListingID      string `json:"listingid"`
	ListingTitle   string `json:"listingtitle"`
	OtherUserID    string `json:"otheruserid"`
	OtherUsername  string `json:"otherusername"`
}
