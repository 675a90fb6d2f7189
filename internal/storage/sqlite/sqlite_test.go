package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"billsplit/internal/models"
	"billsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "billsplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func createGroup(t *testing.T, store *SQLiteStore, title string, userID int64) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, UserID: userID}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup(%s) failed: %v", title, err)
	}
	return group
}

func createMember(t *testing.T, store *SQLiteStore, name string, groupID int64) *models.Member {
	t.Helper()
	member := &models.Member{Name: name, GroupID: groupID}
	if err := store.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("CreateMember(%s) failed: %v", name, err)
	}
	return member
}

func createBill(t *testing.T, store *SQLiteStore, amount float64, memberID int64) *models.Bill {
	t.Helper()
	bill := &models.Bill{Amount: amount, MemberID: memberID}
	if err := store.CreateBill(context.Background(), bill); err != nil {
		t.Fatalf("CreateBill(%.2f) failed: %v", amount, err)
	}
	return bill
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and timestamp", func(t *testing.T) {
		user := createUser(t, store, "alice")
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		fetched, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if fetched == nil || fetched.ID != user.ID {
			t.Errorf("GetUserByUsername = %+v, want ID %d", fetched, user.ID)
		}
	})

	t.Run("GetUserByUsername returns nil for unknown user", func(t *testing.T) {
		fetched, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if fetched != nil {
			t.Errorf("Expected nil user, got %+v", fetched)
		}
	})

	t.Run("Group CRUD round trip", func(t *testing.T) {
		user := createUser(t, store, "bob")
		group := createGroup(t, store, "Ski Trip", user.ID)

		fetched, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if fetched.Title != "Ski Trip" || fetched.UserID != user.ID {
			t.Errorf("GetGroup = %+v", fetched)
		}

		fetched.Title = "Ski Trip 2026"
		if err := store.UpdateGroup(ctx, fetched); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}
		updated, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup after update failed: %v", err)
		}
		if updated.Title != "Ski Trip 2026" {
			t.Errorf("Title = %s, want Ski Trip 2026", updated.Title)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup after delete = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListGroupsByOwner pages and scopes to owner", func(t *testing.T) {
		owner := createUser(t, store, "carol")
		other := createUser(t, store, "dave")
		for _, title := range []string{"One", "Two", "Three"} {
			createGroup(t, store, title, owner.ID)
		}
		createGroup(t, store, "Foreign", other.ID)

		page, err := store.ListGroupsByOwner(ctx, "carol", storage.Page{Number: 0, Size: 2})
		if err != nil {
			t.Fatalf("ListGroupsByOwner failed: %v", err)
		}
		if len(page) != 2 {
			t.Fatalf("page size = %d, want 2", len(page))
		}
		if page[0].Title != "One" || page[1].Title != "Two" {
			t.Errorf("page = [%s, %s], want [One, Two]", page[0].Title, page[1].Title)
		}

		rest, err := store.ListGroupsByOwner(ctx, "carol", storage.Page{Number: 1, Size: 2})
		if err != nil {
			t.Fatalf("ListGroupsByOwner failed: %v", err)
		}
		if len(rest) != 1 || rest[0].Title != "Three" {
			t.Errorf("second page = %+v, want [Three]", rest)
		}
	})

	t.Run("GroupOwnedBy distinguishes missing and foreign groups", func(t *testing.T) {
		owner := createUser(t, store, "erin")
		group := createGroup(t, store, "Dinner Club", owner.ID)

		if err := store.GroupOwnedBy(ctx, group.ID, "erin"); err != nil {
			t.Errorf("GroupOwnedBy(owner) = %v, want nil", err)
		}
		if err := store.GroupOwnedBy(ctx, group.ID, "mallory"); !errors.Is(err, storage.ErrAccessDenied) {
			t.Errorf("GroupOwnedBy(foreign) = %v, want ErrAccessDenied", err)
		}
		if err := store.GroupOwnedBy(ctx, 999999, "erin"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GroupOwnedBy(missing) = %v, want ErrNotFound", err)
		}
	})

	t.Run("Member names are unique per group", func(t *testing.T) {
		user := createUser(t, store, "frank")
		groupA := createGroup(t, store, "A", user.ID)
		groupB := createGroup(t, store, "B", user.ID)

		createMember(t, store, "Sam", groupA.ID)
		if err := store.CreateMember(ctx, &models.Member{Name: "Sam", GroupID: groupA.ID}); err == nil {
			t.Error("Expected duplicate member name in same group to fail")
		}
		if err := store.CreateMember(ctx, &models.Member{Name: "Sam", GroupID: groupB.ID}); err != nil {
			t.Errorf("Same name in another group failed: %v", err)
		}
	})

	t.Run("Deleting a group cascades to members and bills", func(t *testing.T) {
		user := createUser(t, store, "grace")
		group := createGroup(t, store, "Road Trip", user.ID)
		member := createMember(t, store, "Pat", group.ID)
		bill := createBill(t, store, 42.50, member.ID)

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetMember(ctx, member.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetMember after cascade = %v, want ErrNotFound", err)
		}
		if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetBill after cascade = %v, want ErrNotFound", err)
		}
	})

	t.Run("Bill ownership walks member and group to the user", func(t *testing.T) {
		owner := createUser(t, store, "heidi")
		group := createGroup(t, store, "Flatmates", owner.ID)
		member := createMember(t, store, "Jo", group.ID)
		bill := createBill(t, store, 12.00, member.ID)

		if err := store.BillOwnedBy(ctx, bill.ID, "heidi"); err != nil {
			t.Errorf("BillOwnedBy(owner) = %v, want nil", err)
		}
		if err := store.BillOwnedBy(ctx, bill.ID, "mallory"); !errors.Is(err, storage.ErrAccessDenied) {
			t.Errorf("BillOwnedBy(foreign) = %v, want ErrAccessDenied", err)
		}
		if err := store.MemberOwnedBy(ctx, member.ID, "heidi"); err != nil {
			t.Errorf("MemberOwnedBy(owner) = %v, want nil", err)
		}
	})
}

func TestMemberTotals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "alice")
	group := createGroup(t, store, "Camping", user.ID)

	ann := createMember(t, store, "Ann", group.ID)
	ben := createMember(t, store, "Ben", group.ID)
	_ = createMember(t, store, "Cay", group.ID)

	createBill(t, store, 100.00, ann.ID)
	createBill(t, store, 55.50, ann.ID)
	createBill(t, store, 20.00, ben.ID)
	// Cay pays nothing but must still appear with a zero total.

	totals, err := store.MemberTotals(ctx, group.ID)
	if err != nil {
		t.Fatalf("MemberTotals failed: %v", err)
	}

	if len(totals) != 3 {
		t.Fatalf("got %d totals, want 3", len(totals))
	}

	want := map[string]float64{"Ann": 155.50, "Ben": 20.00, "Cay": 0}
	for _, e := range totals {
		if want[e.Name] != e.TotalPaid {
			t.Errorf("%s total = %.2f, want %.2f", e.Name, e.TotalPaid, want[e.Name])
		}
	}

	// Ordered by member ID.
	for i := 1; i < len(totals); i++ {
		if totals[i-1].MemberID >= totals[i].MemberID {
			t.Errorf("totals not ordered by member ID: %+v", totals)
		}
	}

	t.Run("empty group yields no rows", func(t *testing.T) {
		empty := createGroup(t, store, "Empty", user.ID)
		totals, err := store.MemberTotals(ctx, empty.ID)
		if err != nil {
			t.Fatalf("MemberTotals failed: %v", err)
		}
		if len(totals) != 0 {
			t.Errorf("got %d totals, want 0", len(totals))
		}
	})
}
