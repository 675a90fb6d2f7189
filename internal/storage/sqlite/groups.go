package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"billsplit/internal/models"
	"billsplit/internal/storage"
)

const groupOwnerQuery = `
	SELECT u.username FROM groups g
	JOIN users u ON u.id = g.user_id
	WHERE g.id = ?`

// CreateGroup persists a new group owned by group.UserID.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (title, user_id, created_at) VALUES (?, ?, ?)",
		group.Title, group.UserID, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	group.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read group id: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, user_id, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Title, &group.UserID, &group.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListGroupsByOwner retrieves a page of the groups owned by username,
// oldest first.
func (s *SQLiteStore) ListGroupsByOwner(ctx context.Context, username string, page storage.Page) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.title, g.user_id, g.created_at FROM groups g
		 JOIN users u ON u.id = g.user_id
		 WHERE u.username = ?
		 ORDER BY g.id
		 LIMIT ? OFFSET ?`,
		username, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Title, &group.UserID, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// UpdateGroup updates a group's title.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE groups SET title = ? WHERE id = ?",
		group.Title, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check group update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteGroup removes a group; its members and their bills cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check group delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// GroupOwnedBy verifies that username owns the group.
func (s *SQLiteStore) GroupOwnedBy(ctx context.Context, groupID int64, username string) error {
	return s.ownedBy(ctx, groupOwnerQuery, groupID, username)
}
