package models

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a registered user. The repository record carries the stored
// password (plaintext, matching the legacy data; not suitable for
// production); callers must go through Sanitized before exposing a record
// to a client.
type Account struct {
	ID        string `json:"_id" bson:"_id"`
	Username  string `json:"username" bson:"username"`
	Password  string `json:"password,omitempty" bson:"password"`
	Email     string `json:"email" bson:"email"`
	CreatedAt string `json:"createdat" bson:"createdat"`
	IsActive  bool   `json:"isactive" bson:"isactive"`
	Role      string `json:"role" bson:"role"`
}

// Sanitized returns a copy with the password stripped.
func (a Account) Sanitized() Account {
	a.Password = ""
	return a
}

// AccountInput is the registration payload. IsActive defaults to true and
// Role to "user" when omitted.
type AccountInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	IsActive *bool  `json:"isactive"`
	Role     string `json:"role"`
}

// AccountPatch is the allow-listed partial update for an account.
type AccountPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"isactive"`
	Role     *string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}
