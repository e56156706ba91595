package groute

import (
	"container/heap"

	"github.com/lunapnr/pnrcore/design"
)

// WavefrontItem is one candidate cell waiting to be expanded by the
// maze search, carrying the direction back to its predecessor and the
// accumulated path cost used to order the search.
type WavefrontItem struct {
	Pos      design.Coord
	PathCost int64
	Pred     Direction
}

type wavefrontHeap []WavefrontItem

func (h wavefrontHeap) Len() int            { return len(h) }
func (h wavefrontHeap) Less(i, j int) bool  { return h[i].PathCost < h[j].PathCost }
func (h wavefrontHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *wavefrontHeap) Push(x interface{}) { *h = append(*h, x.(WavefrontItem)) }
func (h *wavefrontHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Wavefront is the min-priority-queue of WavefrontItems, ordered by
// PathCost, that drives the best-first maze search.
type Wavefront struct {
	items wavefrontHeap
}

// Push adds item to the wavefront.
func (w *Wavefront) Push(item WavefrontItem) { heap.Push(&w.items, item) }

// Pop removes and returns the lowest-cost item.
func (w *Wavefront) Pop() WavefrontItem { return heap.Pop(&w.items).(WavefrontItem) }

// Empty reports whether the wavefront has no pending items.
func (w *Wavefront) Empty() bool { return len(w.items) == 0 }
