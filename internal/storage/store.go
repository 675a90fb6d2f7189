// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"billsplit/internal/models"
	"billsplit/internal/settlement"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrAccessDenied is returned when the entity exists but is not owned
	// by the requesting user.
	ErrAccessDenied = errors.New("access denied")
)

// Page describes a LIMIT/OFFSET window over a list query.
type Page struct {
	Number int // zero-based
	Size   int
}

// Limit returns the row limit for the page.
func (p Page) Limit() int { return p.Size }

// Offset returns the row offset for the page.
func (p Page) Offset() int { return p.Number * p.Size }

// Store defines the interface for billsplit storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the HTTP layer.
//
// All *OwnedBy methods distinguish ErrNotFound (entity missing) from
// ErrAccessDenied (entity owned by another user).
type Store interface {
	// Users

	// CreateUser persists a new user. The user.ID field is populated by
	// the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username. Returns (nil, nil)
	// when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// Groups

	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID int64) (*models.Group, error)
	ListGroupsByOwner(ctx context.Context, username string, page Page) ([]*models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, groupID int64) error
	GroupOwnedBy(ctx context.Context, groupID int64, username string) error

	// Members

	CreateMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, memberID int64) (*models.Member, error)
	ListMembersByGroup(ctx context.Context, groupID int64, page Page) ([]*models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, memberID int64) error
	MemberOwnedBy(ctx context.Context, memberID int64, username string) error

	// Bills

	CreateBill(ctx context.Context, bill *models.Bill) error
	GetBill(ctx context.Context, billID int64) (*models.Bill, error)
	ListBillsByMember(ctx context.Context, memberID int64, page Page) ([]*models.Bill, error)
	UpdateBill(ctx context.Context, bill *models.Bill) error
	DeleteBill(ctx context.Context, billID int64) error
	BillOwnedBy(ctx context.Context, billID int64, username string) error

	// Settlement

	// MemberTotals returns each group member's aggregated total paid,
	// computed server-side in a single query. Members with no bills
	// appear with a zero total. Results are ordered by member ID.
	MemberTotals(ctx context.Context, groupID int64) ([]settlement.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
