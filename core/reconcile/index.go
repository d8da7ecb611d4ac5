package reconcile

// collection is the working set for one pass. Slots are index-addressed so
// edits replace records in place; evicted slots are tombstoned and dropped
// when the pass completes. The identity index is built once per pass.
type collection[T Record] struct {
	slots []slot[T]
	index map[string][]int
}

type slot[T Record] struct {
	rec  T
	live bool
}

func newCollection[T Record](existing []T) *collection[T] {
	c := &collection[T]{
		slots: make([]slot[T], 0, len(existing)),
		index: make(map[string][]int, len(existing)),
	}
	for _, rec := range existing {
		c.append(rec)
	}
	return c
}

// first returns the position of the first live record matching id.
func (c *collection[T]) first(id Identity) (int, bool) {
	if id.Key == "" {
		return 0, false
	}
	for _, pos := range c.index[id.Key] {
		if c.slots[pos].live && Matches(c.slots[pos].rec, id) {
			return pos, true
		}
	}
	return 0, false
}

func (c *collection[T]) append(rec T) int {
	pos := len(c.slots)
	c.slots = append(c.slots, slot[T]{rec: rec, live: true})
	key := rec.IdentityKey()
	c.index[key] = append(c.index[key], pos)
	return pos
}

func (c *collection[T]) evict(pos int) {
	c.slots[pos].live = false
	key := c.slots[pos].rec.IdentityKey()
	c.index[key] = without(c.index[key], pos)
}

// replace puts rec at pos. The index is updated if the key changed.
func (c *collection[T]) replace(pos int, rec T) {
	oldKey := c.slots[pos].rec.IdentityKey()
	c.slots[pos].rec = rec
	if newKey := rec.IdentityKey(); newKey != oldKey {
		c.index[oldKey] = without(c.index[oldKey], pos)
		c.index[newKey] = insertSorted(c.index[newKey], pos)
	}
}

func (c *collection[T]) get(pos int) T {
	return c.slots[pos].rec
}

// records returns the live records in order.
func (c *collection[T]) records() []T {
	out := make([]T, 0, len(c.slots))
	for _, s := range c.slots {
		if s.live {
			out = append(out, s.rec)
		}
	}
	return out
}

func without(positions []int, pos int) []int {
	for i, p := range positions {
		if p == pos {
			return append(positions[:i:i], positions[i+1:]...)
		}
	}
	return positions
}

func insertSorted(positions []int, pos int) []int {
	i := 0
	for i < len(positions) && positions[i] < pos {
		i++
	}
	positions = append(positions, 0)
	copy(positions[i+1:], positions[i:])
	positions[i] = pos
	return positions
}
