package models

// Canonical listing types. Input synonyms are folded onto these by the
// validate package.
const (
	TypeItem    = "item"
	TypeRequest = "request"
)

// Listing is an item for sale or a request for one ("want ad"). Timestamps
// are canonical ISO-8601 UTC strings (ident.TimeLayout); SoldAt is nil
// while the listing is unsold.
type Listing struct {
	ID        string  `json:"id" bson:"_id"`
	Type      string  `json:"type" bson:"type"`
	Title     string  `json:"title" bson:"title"`
	Price     int     `json:"price" bson:"price"`
	ImageKey  string  `json:"imagekey" bson:"imagekey"`
	CreatedAt string  `json:"createdat" bson:"createdat"`
	SoldAt    *string `json:"soldat" bson:"soldat"`
	User      string  `json:"user" bson:"user"`
}

// ListingInput is the create payload. Price arrives as a JSON number and is
// floored to a non-negative integer during validation.
type ListingInput struct {
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageKey string  `json:"imagekey"`
	User     string  `json:"user"`
}

// ListingPatch is the allow-listed partial update. Nil fields are left
// untouched; JSON fields outside this set are silently dropped when the
// request body is decoded.
type ListingPatch struct {
	Type     *string  `json:"type"`
	Title    *string  `json:"title"`
	Price    *float64 `json:"price"`
	ImageKey *string  `json:"imagekey"`
	User     *string  `json:"user"`
}
