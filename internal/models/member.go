package models

// Member represents a participant within a group who may pay bills.
// Member names are unique within their group.
type Member struct {
	// ID is the unique identifier for the member.
	ID int64 `json:"id"`

	// Name is the member's display name.
	Name string `json:"name"`

	// GroupID is the group this member belongs to.
	GroupID int64 `json:"group_id"`

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64 `json:"created_at"`
}
