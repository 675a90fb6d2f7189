package models

// User represents a registered account that owns groups.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`

	// Username is the unique login name, stored lowercase.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
