package settlement

// owed is one side of an outstanding balance. The amount is always a
// positive magnitude in whole cents, for creditors and debtors alike.
type owed struct {
	memberID int64
	amount   int64
}

// balanceHeap is a max-heap of outstanding balances, largest amount first.
// Equal amounts order by ascending member ID so that plans are
// deterministic for identical inputs.
type balanceHeap []owed

func (h balanceHeap) Len() int { return len(h) }

func (h balanceHeap) Less(i, j int) bool {
	if h[i].amount != h[j].amount {
		return h[i].amount > h[j].amount
	}
	return h[i].memberID < h[j].memberID
}

func (h balanceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *balanceHeap) Push(x any) {
	*h = append(*h, x.(owed))
}

func (h *balanceHeap) Pop() any {
	old := *h
	last := len(old) - 1
	item := old[last]
	*h = old[:last]
	return item
}
