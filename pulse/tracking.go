package pulse

// trackingStack records which subscriber is currently reading. A nil frame
// means reads are untracked.
type trackingStack struct {
	frames []*node
}

func (s *trackingStack) push(n *node) {
	s.frames = append(s.frames, n)
}

func (s *trackingStack) pop() {
	last := len(s.frames) - 1
	if last < 0 {
		panic("pulse: tracking stack underflow")
	}
	s.frames[last] = nil
	s.frames = s.frames[:last]
}

func (s *trackingStack) current() *node {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// ownerStack records which effect or scope owns newly created effects.
type ownerStack struct {
	frames []*EffectRunner
}

func (s *ownerStack) push(e *EffectRunner) {
	s.frames = append(s.frames, e)
}

func (s *ownerStack) pop() {
	last := len(s.frames) - 1
	if last < 0 {
		panic("pulse: owner stack underflow")
	}
	s.frames[last] = nil
	s.frames = s.frames[:last]
}

func (s *ownerStack) current() *EffectRunner {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// PauseTracking stops attributing reads to the current subscriber until the
// matching ResumeTracking.
func (rs *ReactiveSystem) PauseTracking() {
	rs.tracking.push(nil)
}

func (rs *ReactiveSystem) ResumeTracking() {
	rs.tracking.pop()
}

// Untrack runs fn without registering any of its reads as dependencies.
func Untrack(rs *ReactiveSystem, fn func()) {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	fn()
}

// UntrackValue reads r without registering a dependency. For computeds this
// still recomputes a stale value.
func UntrackValue[T any](rs *ReactiveSystem, r Readable[T]) (v T) {
	Untrack(rs, func() {
		v = r.Value()
	})
	return v
}

// startTracking begins a run of n: the previous dependency set is kept aside
// so edges that survive the run are not relinked.
func (rs *ReactiveSystem) startTracking(n *node) {
	n.prevDeps = n.deps
	n.deps = newDepSet()
	n.depOrder = n.depOrder[:0]
	n.flags |= fRunning
	rs.tracking.push(n)
}

// endTracking removes edges to everything n read last run but not this one.
// An unlinked computed holds no edges, so there is nothing to diff.
func (rs *ReactiveSystem) endTracking(n *node) {
	rs.tracking.pop()
	n.flags &^= fRunning
	prev := n.prevDeps
	n.prevDeps = nil
	if n.flags&fLinked == 0 {
		return
	}
	if prev != nil {
		for _, id := range prev.Difference(n.deps).ToSlice() {
			if dep, ok := rs.nodes[id]; ok {
				rs.unlink(dep, n)
			}
		}
	}
	if n.kind == kindComputed && len(n.subs) == 0 {
		// its last subscriber went away while it was running
		rs.detach(n)
	}
	rs.release(n)
}

// track registers dep with the current subscriber. An unlinked computed
// only records what it read and at which version; edges are made once
// something subscribes to it.
func (rs *ReactiveSystem) track(dep *node) {
	sub := rs.tracking.current()
	if sub == nil || sub == dep {
		return
	}
	if !sub.deps.Add(dep.id) {
		return
	}
	sub.depOrder = append(sub.depOrder, depRef{node: dep, version: dep.version})
	if sub.flags&fLinked == 0 {
		return
	}
	if sub.prevDeps != nil && sub.prevDeps.Contains(dep.id) {
		return
	}
	rs.link(dep, sub)
}
