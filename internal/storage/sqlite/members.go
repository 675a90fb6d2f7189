package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"billsplit/internal/models"
	"billsplit/internal/settlement"
	"billsplit/internal/storage"
)

const memberOwnerQuery = `
	SELECT u.username FROM members m
	JOIN groups g ON g.id = m.group_id
	JOIN users u ON u.id = g.user_id
	WHERE m.id = ?`

// CreateMember persists a new member in member.GroupID.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO members (name, group_id, created_at) VALUES (?, ?, ?)",
		member.Name, member.GroupID, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	member.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read member id: %w", err)
	}

	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID int64) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, group_id, created_at FROM members WHERE id = ?",
		memberID,
	).Scan(&member.ID, &member.Name, &member.GroupID, &member.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// ListMembersByGroup retrieves a page of a group's members, oldest first.
func (s *SQLiteStore) ListMembersByGroup(ctx context.Context, groupID int64, page storage.Page) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, group_id, created_at FROM members
		 WHERE group_id = ?
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		groupID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.Name, &member.GroupID, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// UpdateMember updates a member's name.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.Member) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET name = ? WHERE id = ?",
		member.Name, member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check member update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteMember removes a member; their bills cascade.
func (s *SQLiteStore) DeleteMember(ctx context.Context, memberID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check member delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// MemberOwnedBy verifies that username owns the group the member belongs to.
func (s *SQLiteStore) MemberOwnedBy(ctx context.Context, memberID int64, username string) error {
	return s.ownedBy(ctx, memberOwnerQuery, memberID, username)
}

// MemberTotals aggregates the total amount paid by each member of a group
// in a single query. Members with no bills are included with a zero total.
func (s *SQLiteStore) MemberTotals(ctx context.Context, groupID int64) ([]settlement.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.name, COALESCE(SUM(b.amount), 0) FROM members m
		 LEFT JOIN bills b ON b.member_id = m.id
		 WHERE m.group_id = ?
		 GROUP BY m.id
		 ORDER BY m.id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate member totals: %w", err)
	}
	defer rows.Close()

	var expenses []settlement.Expense
	for rows.Next() {
		var e settlement.Expense
		if err := rows.Scan(&e.MemberID, &e.Name, &e.TotalPaid); err != nil {
			return nil, fmt.Errorf("failed to scan member total: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member totals: %w", err)
	}

	return expenses, nil
}
