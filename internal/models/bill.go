package models

// Bill represents a single payment recorded against one member.
type Bill struct {
	// ID is the unique identifier for the bill.
	ID int64 `json:"id"`

	// Amount is the amount paid, in currency units.
	Amount float64 `json:"amount"`

	// MemberID is the member who paid this bill.
	MemberID int64 `json:"member_id"`

	// CreatedAt is the Unix timestamp when the bill was recorded.
	CreatedAt int64 `json:"created_at"`
}
