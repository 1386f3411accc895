package decompose

import (
	"container/heap"

	"github.com/katalvlaran/gcs/core"
)

// item is an entry in the search priority queue: a candidate block paired
// with its precomputed key (higher explored first).
type item struct {
	block *core.Block
	key   float64
}

// blockHeap implements container/heap.Interface over []*item, ordering by
// largest key first (a max-heap).
type blockHeap []*item

func (h blockHeap) Len() int            { return len(h) }
func (h blockHeap) Less(i, j int) bool  { return h[i].key > h[j].key }
func (h blockHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *blockHeap) Push(x interface{}) { *h = append(*h, x.(*item)) }
func (h *blockHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// queue wraps blockHeap with push/pop/discard helpers specific to the
// decomposition search.
type queue struct {
	h blockHeap
}

func newQueue() *queue {
	q := &queue{}
	heap.Init(&q.h)
	return q
}

func (q *queue) len() int { return q.h.Len() }

func (q *queue) push(b *core.Block, nEq int) {
	heap.Push(&q.h, &item{block: b, key: b.Key(nEq)})
}

func (q *queue) pop() *core.Block {
	return heap.Pop(&q.h).(*item).block
}

// discardAndRebuild removes committed's equations/variables from every
// remaining candidate, drops any candidate left with no equations, and
// rebuilds the visited-signature set from the survivors -- mirroring the
// "discard + purge + re-sign" pass the decomposer runs after every commit.
func (q *queue) discardAndRebuild(committed *core.Block, nEq int, visited map[string]bool) {
	for k := range visited {
		delete(visited, k)
	}

	survivors := make(blockHeap, 0, len(q.h))
	for _, it := range q.h {
		it.block.Discard(committed)
		if it.block.IsEmpty() {
			continue
		}
		it.key = it.block.Key(nEq)
		visited[it.block.Signature()] = true
		survivors = append(survivors, it)
	}

	q.h = survivors
	heap.Init(&q.h)
}
