package pulse

// ReadonlySignal is a lazily recomputed, cached derivation. It recomputes
// only when read while stale, however many times its dependencies changed,
// and subscribers are only rerun when the recomputed value differs.
//
// A computed nothing subscribes to holds no edges and is not registered with
// its system. It validates its cache by comparing the versions its
// dependencies had when it last ran, so one read at top level leaves nothing
// behind once the computed itself is unreachable.
type ReadonlySignal[T comparable] struct {
	*node
	rs     *ReactiveSystem
	value  T
	getter func(oldValue T) T
}

// Value recomputes if needed and registers the computed with the current
// subscriber. A panic in the getter reaches the caller and leaves the
// computed dirty so the next read retries.
func (c *ReadonlySignal[T]) Value() T {
	defer c.rs.track(c.node)
	c.refresh()
	return c.value
}

// Peek is Value without dependency registration.
func (c *ReadonlySignal[T]) Peek() T {
	c.refresh()
	return c.value
}

func (c *ReadonlySignal[T]) refresh() {
	if c.flags&fRunning != 0 {
		panic(&CycleError{Pending: []Node{c}})
	}
	if c.flags&fHasValue != 0 && c.flags&fFailed == 0 {
		if c.flags&fLinked != 0 {
			if !c.rs.checkDirty(c.node) {
				return
			}
		} else if c.rs.upToDate(c.node) {
			return
		}
	}
	c.recompute()
}

func (c *ReadonlySignal[T]) recompute() {
	rs := c.rs
	rs.counters.recomputes.Add(1)
	epoch := rs.epoch

	// cleared up front so a write made by the getter can dirty it again
	c.state = cacheClean
	c.flags &^= fFailed
	ok := false
	rs.startTracking(c.node)
	defer func() {
		rs.endTracking(c.node)
		if !ok {
			c.state = cacheDirty
			c.flags |= fFailed
		}
	}()

	next := c.getter(c.value)
	ok = true
	c.checkedAt = epoch
	if c.flags&fHasValue != 0 && same(next, c.value) {
		return
	}
	c.value = next
	c.flags |= fHasValue
	c.version++
	rs.shallowPropagate(c.node)
}

func (c *ReadonlySignal[T]) markDirty(state cacheState) bool {
	if c.flags&fFailed != 0 {
		// subscribers already saw the failure, they have to hear about
		// the retry
		c.flags &^= fFailed
		c.state = cacheDirty
		return true
	}
	if c.state >= state {
		return false
	}
	prev := c.state
	c.state = state
	return prev == cacheClean
}

func (c *ReadonlySignal[T]) notify() {
	c.rs.propagate(c.node, cacheCheck)
}

// Computed wraps getter in a lazy cache. As with signals, an uncomparable
// dynamic value behind an interface T always counts as a change.
func Computed[T comparable](rs *ReactiveSystem, getter func(oldValue T) T, opts ...NodeOption) *ReadonlySignal[T] {
	c := &ReadonlySignal[T]{
		node:   rs.newNode(kindComputed, opts),
		rs:     rs,
		getter: getter,
	}
	c.state = cacheDirty
	c.deps = newDepSet()
	c.sub = c
	return c
}
