// Package settlement computes who-pays-whom plans that equalize costs
// within a group.
//
// Balances are first computed as exact integers scaled by the member count
// (n*cents(paid) - totalCents, i.e. n-ths of a cent), so the zero-sum
// invariant holds exactly and no epsilon comparisons are needed. They are
// then quantized to whole cents, distributing the leftover cents largest
// remainder first, before any matching happens. Every emitted transaction
// amount is therefore a strictly positive whole number of cents and the
// plan conserves cents exactly.
package settlement

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"sort"
)

// Expense is one member's aggregated contribution: the sum of all bills
// that member paid in the group. Members with no bills appear with
// TotalPaid = 0.
type Expense struct {
	MemberID  int64
	Name      string
	TotalPaid float64
}

// Transaction is one recommended payment from a debtor to a creditor.
// Amount is always strictly positive and rounded to 2 decimal places.
type Transaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Ledger is the engine's view of the persistence layer.
type Ledger interface {
	// GroupOwnedBy verifies that username owns the group. It returns
	// storage.ErrNotFound if the group does not exist and
	// storage.ErrAccessDenied if it is owned by someone else.
	GroupOwnedBy(ctx context.Context, groupID int64, username string) error

	// MemberTotals returns one Expense per group member, aggregated
	// server-side in a single query, ordered by member ID.
	MemberTotals(ctx context.Context, groupID int64) ([]Expense, error)
}

// Engine computes settlement plans. It is stateless; concurrent calls are
// independent and each operates on a snapshot fetched at call start.
type Engine struct {
	ledger Ledger
}

// NewEngine creates an Engine backed by the given ledger.
func NewEngine(ledger Ledger) *Engine {
	return &Engine{ledger: ledger}
}

// Calculate returns the settlement plan for a group: an ordered list of
// transactions that zeroes out every member's balance relative to an equal
// share of the group's total expenses.
//
// The ownership check runs before any data is fetched; on authorization
// failure no aggregation query is issued. The computation is read-only and
// mutates no persisted state.
func (e *Engine) Calculate(ctx context.Context, groupID int64, username string) ([]Transaction, error) {
	if err := e.ledger.GroupOwnedBy(ctx, groupID, username); err != nil {
		return nil, err
	}

	expenses, err := e.ledger.MemberTotals(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("fetch member totals: %w", err)
	}

	return Plan(expenses), nil
}

// Plan computes the settlement transactions for a set of aggregated member
// expenses. It is a pure function: the same input always yields the same
// ordered transaction list.
//
// Creditors and debtors are matched greedily, largest balance first; ties
// are broken by ascending member ID. Each step fully settles at least one
// side, so the plan contains at most len(expenses)-1 transactions.
func Plan(expenses []Expense) []Transaction {
	n := int64(len(expenses))
	if n == 0 {
		return []Transaction{}
	}

	names := make(map[int64]string, n)
	paid := make([]int64, n)
	var totalCents int64
	for i, e := range expenses {
		names[e.MemberID] = e.Name
		paid[i] = toCents(e.TotalPaid)
		totalCents += paid[i]
	}

	balances := quantize(expenses, paid, totalCents)

	creditors := &balanceHeap{}
	debtors := &balanceHeap{}
	for i, e := range expenses {
		switch bal := balances[i]; {
		case bal > 0:
			heap.Push(creditors, owed{memberID: e.MemberID, amount: bal})
		case bal < 0:
			heap.Push(debtors, owed{memberID: e.MemberID, amount: -bal})
		}
	}

	transactions := []Transaction{}
	for creditors.Len() > 0 && debtors.Len() > 0 {
		creditor := heap.Pop(creditors).(owed)
		debtor := heap.Pop(debtors).(owed)

		settled := min(creditor.amount, debtor.amount)
		transactions = append(transactions, Transaction{
			From:   names[debtor.memberID],
			To:     names[creditor.memberID],
			Amount: float64(settled) / 100,
		})

		if creditor.amount -= settled; creditor.amount > 0 {
			heap.Push(creditors, creditor)
		}
		if debtor.amount -= settled; debtor.amount > 0 {
			heap.Push(debtors, debtor)
		}
	}

	return transactions
}

// quantize converts the exact scaled balances (n*paid - total, in n-ths of
// a cent) to whole cents that still sum to zero. Each balance is floored to
// cents; the leftover cents are handed out one per member, largest
// remainder first, ties by ascending member ID. Sub-cent residues collapse
// here, so no downstream transaction can round to 0.00.
func quantize(expenses []Expense, paid []int64, totalCents int64) []int64 {
	n := int64(len(expenses))
	balances := make([]int64, len(expenses))
	remainders := make([]int64, len(expenses))
	order := make([]int, len(expenses))

	var leftover int64
	for i := range expenses {
		bal := n*paid[i] - totalCents
		q, r := bal/n, bal%n
		if r < 0 {
			q--
			r += n
		}
		balances[i] = q
		remainders[i] = r
		order[i] = i
		leftover += r
	}

	sort.Slice(order, func(i, j int) bool {
		if remainders[order[i]] != remainders[order[j]] {
			return remainders[order[i]] > remainders[order[j]]
		}
		return expenses[order[i]].MemberID < expenses[order[j]].MemberID
	})

	// The scaled balances sum to zero, so leftover is a multiple of n.
	for i := int64(0); i < leftover/n; i++ {
		balances[order[i]]++
	}

	return balances
}

// toCents converts a currency amount to whole cents.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
