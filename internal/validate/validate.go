// Package validate normalizes and rejects malformed input for the three
// entity kinds. Every failure is a *Error naming the offending field;
// nothing is ever partially validated.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gatormarket/backend/internal/models"
)

// Field length limits.
const (
	MaxTitleLen    = 140
	MaxUserLen     = 80
	MaxUsernameLen = 40
	MaxPasswordLen = 200
	MinPasswordLen = 8
	MaxEmailLen    = 254
	MaxRefIDLen    = 50
	MaxBodyLen     = 4000
)

// Error is the uniform invalid-input condition.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// listingTypeSynonyms folds accepted spellings onto the two canonical
// listing types.
var listingTypeSynonyms = map[string]string{
	"request":  models.TypeRequest,
	"req":      models.TypeRequest,
	"requests": models.TypeRequest,
	"item":     models.TypeItem,
	"items":    models.TypeItem,
	"listing":  models.TypeItem,
	"listings": models.TypeItem,
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ListingType normalizes raw to "item" or "request", case- and
// whitespace-insensitively.
func ListingType(raw string) (string, error) {
	t, ok := listingTypeSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", errf("type", "type must be 'request(s)' or 'item'")
	}
	return t, nil
}

// NonEmptyString trims raw and fails when the result is empty or longer
// than max.
func NonEmptyString(raw, field string, max int) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errf(field, "%s is required", field)
	}
	if len(s) > max {
		return "", errf(field, "%s must be <= %d characters", field, max)
	}
	return s, nil
}

// Price coerces raw to an integer amount in the smallest currency unit.
// Fractional input is floored; negative input fails.
func Price(raw float64) (int, error) {
	p := int(raw)
	if p < 0 {
		return 0, errf("price", "price must be >= 0")
	}
	return p, nil
}

func password(raw string) (string, error) {
	pw, err := NonEmptyString(raw, "password", MaxPasswordLen)
	if err != nil {
		return "", err
	}
	if len(pw) < MinPasswordLen {
		return "", errf("password", "password must be at least %d characters", MinPasswordLen)
	}
	return pw, nil
}

func email(raw string) (string, error) {
	em, err := NonEmptyString(raw, "email", MaxEmailLen)
	if err != nil {
		return "", err
	}
	if !emailRe.MatchString(em) {
		return "", errf("email", "email must be a valid email address")
	}
	return em, nil
}

func role(raw string) (string, error) {
	r := strings.ToLower(strings.TrimSpace(raw))
	if r != models.RoleUser && r != models.RoleAdmin {
		return "", errf("role", "role must be 'user' or 'admin'")
	}
	return r, nil
}

func refID(raw, field string) (string, error) {
	return NonEmptyString(raw, field, MaxRefIDLen)
}

// Listing validates a create payload. The returned record carries only the
// normalized input fields; the repository stamps identifier and timestamps.
func Listing(in models.ListingInput) (models.Listing, error) {
	var out models.Listing

	t, err := ListingType(in.Type)
	if err != nil {
		return out, err
	}
	title, err := NonEmptyString(in.Title, "title", MaxTitleLen)
	if err != nil {
		return out, err
	}
	price, err := Price(in.Price)
	if err != nil {
		return out, err
	}
	user, err := NonEmptyString(in.User, "user", MaxUserLen)
	if err != nil {
		return out, err
	}

	out.Type = t
	out.Title = title
	out.Price = price
	out.ImageKey = strings.TrimSpace(in.ImageKey)
	out.User = user
	return out, nil
}

// Account validates a registration payload. Role defaults to "user" and
// IsActive to true when omitted.
func Account(in models.AccountInput) (models.Account, error) {
	var out models.Account

	username, err := NonEmptyString(in.Username, "username", MaxUsernameLen)
	if err != nil {
		return out, err
	}
	pw, err := password(in.Password)
	if err != nil {
		return out, err
	}
	em, err := email(in.Email)
	if err != nil {
		return out, err
	}
	rawRole := in.Role
	if strings.TrimSpace(rawRole) == "" {
		rawRole = models.RoleUser
	}
	rl, err := role(rawRole)
	if err != nil {
		return out, err
	}

	out.Username = username
	out.Password = pw
	out.Email = em
	out.IsActive = in.IsActive == nil || *in.IsActive
	out.Role = rl
	return out, nil
}

// Message validates a send payload. Identifier fields are opaque references
// and are not checked against existing documents.
func Message(in models.MessageInput) (models.Message, error) {
	var out models.Message

	sender, err := refID(in.SenderID, "senderid")
	if err != nil {
		return out, err
	}
	recipient, err := refID(in.RecipientID, "recipientid")
	if err != nil {
		return out, err
	}
	conversation, err := refID(in.ConversationID, "conversationid")
	if err != nil {
		return out, err
	}
	listing, err := refID(in.ListingID, "listingid")
	if err != nil {
		return out, err
	}
	body, err := NonEmptyString(in.Body, "message", MaxBodyLen)
	if err != nil {
		return out, err
	}

	out.SenderID = sender
	out.RecipientID = recipient
	out.ConversationID = conversation
	out.ListingID = listing
	out.Body = body
	out.IsRead = in.IsRead
	return out, nil
}

// ListingPatch validates the fields present in p and returns the normalized
// set-fields keyed by stored field name. An empty map means nothing valid
// was supplied, which is not an error.
func ListingPatch(p models.ListingPatch) (map[string]interface{}, error) {
	set := make(map[string]interface{})
	if p.Type != nil {
		t, err := ListingType(*p.Type)
		if err != nil {
			return nil, err
		}
		set["type"] = t
	}
	if p.Title != nil {
		title, err := NonEmptyString(*p.Title, "title", MaxTitleLen)
		if err != nil {
			return nil, err
		}
		set["title"] = title
	}
	if p.Price != nil {
		price, err := Price(*p.Price)
		if err != nil {
			return nil, err
		}
		set["price"] = price
	}
	if p.ImageKey != nil {
		set["imagekey"] = strings.TrimSpace(*p.ImageKey)
	}
	if p.User != nil {
		user, err := NonEmptyString(*p.User, "user", MaxUserLen)
		if err != nil {
			return nil, err
		}
		set["user"] = user
	}
	return set, nil
}

// AccountPatch mirrors ListingPatch for account updates.
func AccountPatch(p models.AccountPatch) (map[string]interface{}, error) {
	set := make(map[string]interface{})
	if p.Username != nil {
		username, err := NonEmptyString(*p.Username, "username", MaxUsernameLen)
		if err != nil {
			return nil, err
		}
		set["username"] = username
	}
	if p.Password != nil {
		pw, err := password(*p.Password)
		if err != nil {
			return nil, err
		}
		set["password"] = pw
	}
	if p.Email != nil {
		em, err := email(*p.Email)
		if err != nil {
			return nil, err
		}
		set["email"] = em
	}
	if p.IsActive != nil {
		set["isactive"] = *p.IsActive
	}
	if p.Role != nil {
		rl, err := role(*p.Role)
		if err != nil {
			return nil, err
		}
		set["role"] = rl
	}
	return set, nil
}
