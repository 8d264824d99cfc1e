package engine

import "iter"

const (
	arenaBlockSize = 64
)

// slotArena stores values of type T in fixed-size blocks and hands out generation-checked
// handles. Freed slots are reused, with their generation bumped on every release.
// Blocks are allocated individually so pointers returned by Get stay valid while the
// arena grows.
type slotArena[T any] struct {
	blocks    []*[arenaBlockSize]T
	gens      [][arenaBlockSize]uint32
	filled    [][arenaBlockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

func newSlotArena[T any]() *slotArena[T] {
	return &slotArena[T]{}
}

// Insert stores item and returns its handle.
func (a *slotArena[T]) Insert(item T) Handle {
	var index int
	if len(a.freeSlots) > 0 {
		index = a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]
	} else {
		index = a.nextIndex
		a.nextIndex++
		if index/arenaBlockSize >= len(a.blocks) {
			a.blocks = append(a.blocks, new([arenaBlockSize]T))
			a.gens = append(a.gens, [arenaBlockSize]uint32{})
			a.filled = append(a.filled, [arenaBlockSize]bool{})
		}
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	gen := a.gens[blockIdx][slotIdx]
	if gen == 0 {
		gen = 1
		a.gens[blockIdx][slotIdx] = gen
	}

	a.blocks[blockIdx][slotIdx] = item
	a.filled[blockIdx][slotIdx] = true
	a.live++
	return NewHandle(uint32(index), gen)
}

// Get returns a pointer to the value behind h, or nil when h is stale or invalid.
func (a *slotArena[T]) Get(h Handle) *T {
	blockIdx, slotIdx, ok := a.locate(h)
	if !ok {
		return nil
	}
	return &a.blocks[blockIdx][slotIdx]
}

// Remove frees the slot behind h. It returns false when h is stale or invalid.
func (a *slotArena[T]) Remove(h Handle) bool {
	blockIdx, slotIdx, ok := a.locate(h)
	if !ok {
		return false
	}

	var zero T
	a.blocks[blockIdx][slotIdx] = zero
	a.filled[blockIdx][slotIdx] = false

	gen := a.gens[blockIdx][slotIdx] + 1
	if gen == 0 {
		gen = 1
	}
	a.gens[blockIdx][slotIdx] = gen

	a.freeSlots = append(a.freeSlots, int(h.Index()))
	a.live--
	return true
}

// Len returns the number of occupied slots.
func (a *slotArena[T]) Len() int {
	return a.live
}

// Iter yields every occupied slot in index order.
func (a *slotArena[T]) Iter() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := 0; i < a.nextIndex; i++ {
			blockIdx := i / arenaBlockSize
			slotIdx := i % arenaBlockSize

			if !a.filled[blockIdx][slotIdx] {
				continue
			}

			h := NewHandle(uint32(i), a.gens[blockIdx][slotIdx])
			if !yield(h, &a.blocks[blockIdx][slotIdx]) {
				return
			}
		}
	}
}

func (a *slotArena[T]) locate(h Handle) (int, int, bool) {
	if !h.Valid() {
		return 0, 0, false
	}

	index := int(h.Index())
	if index >= a.nextIndex {
		return 0, 0, false
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if !a.filled[blockIdx][slotIdx] || a.gens[blockIdx][slotIdx] != h.Generation() {
		return 0, 0, false
	}
	return blockIdx, slotIdx, true
}
