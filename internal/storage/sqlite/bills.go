package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"billsplit/internal/models"
	"billsplit/internal/storage"
)

const billOwnerQuery = `
	SELECT u.username FROM bills b
	JOIN members m ON m.id = b.member_id
	JOIN groups g ON g.id = m.group_id
	JOIN users u ON u.id = g.user_id
	WHERE b.id = ?`

// CreateBill persists a new bill paid by bill.MemberID.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (amount, member_id, created_at) VALUES (?, ?, ?)",
		bill.Amount, bill.MemberID, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	bill.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read bill id: %w", err)
	}

	return nil
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID int64) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, amount, member_id, created_at FROM bills WHERE id = ?",
		billID,
	).Scan(&bill.ID, &bill.Amount, &bill.MemberID, &bill.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return bill, nil
}

// ListBillsByMember retrieves a page of a member's bills, oldest first.
func (s *SQLiteStore) ListBillsByMember(ctx context.Context, memberID int64, page storage.Page) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, member_id, created_at FROM bills
		 WHERE member_id = ?
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		memberID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		if err := rows.Scan(&bill.ID, &bill.Amount, &bill.MemberID, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// UpdateBill updates a bill's amount.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET amount = ? WHERE id = ?",
		bill.Amount, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check bill update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteBill removes a bill by ID.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check bill delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// BillOwnedBy verifies that username owns the group the bill's payer
// belongs to.
func (s *SQLiteStore) BillOwnedBy(ctx context.Context, billID int64, username string) error {
	return s.ownedBy(ctx, billOwnerQuery, billID, username)
}
