package life

import (
	"golang.org/x/sync/errgroup"
)

const (
	minChunk        = 256 // particles per work item, below this fan-out is not worth it
	chunksPerWorker = 4
)

// dispatch advances every particle, splitting the grid's bucket-grouped
// order into disjoint chunks. Each index appears in exactly one chunk, so
// workers write disjoint slots of the next generation.
func (e *Engine) dispatch(k *kernel, tick uint64) error {
	order := k.grid.Order()
	n := len(order)
	if e.workers == 1 || n <= minChunk {
		return advanceChunk(k, order, tick)
	}

	chunk := max(minChunk, (n+e.workers*chunksPerWorker-1)/(e.workers*chunksPerWorker))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for lo := 0; lo < n; lo += chunk {
		part := order[lo:min(lo+chunk, n)]
		g.Go(func() error {
			return advanceChunk(k, part, tick)
		})
	}
	return g.Wait()
}

// advanceChunk turns a worker panic into a *TickError
func advanceChunk(k *kernel, part []int32, tick uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TickError{Tick: tick, Value: r}
		}
	}()
	for _, i := range part {
		k.advance(int(i))
	}
	return nil
}
