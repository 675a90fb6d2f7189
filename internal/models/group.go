package models

// Group represents a collection of members sharing expenses.
// A group belongs to exactly one owning user; only that user may read or
// modify the group, its members, and their bills.
type Group struct {
	// ID is the unique identifier for the group.
	ID int64 `json:"id"`

	// Title is the display name of the group (e.g., "Ski Trip").
	Title string `json:"title"`

	// UserID is the owning user.
	UserID int64 `json:"user_id"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}
