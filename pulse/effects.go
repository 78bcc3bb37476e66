package pulse

import "slices"

type ErrFn func() error

// Dispose tears an effect or scope down. Calling it more than once is a no-op.
type Dispose func()

// EffectRunner backs both effects and effect scopes. A scope has no body
// and no dependencies; it only owns the effects created inside it.
type EffectRunner struct {
	*node
	rs       *ReactiveSystem
	fn       ErrFn
	owner    *EffectRunner
	children []*EffectRunner
	cleanups []func()
}

// Effect runs fn immediately and again whenever anything it read changes.
// An error or panic from this first run is returned as a *SetupError and
// the effect is disposed. Later failures go to the system's OnErrorFunc.
//
// Every run of fn, the first included, is an implicit batch: effects that
// depend on signals fn writes run after fn returns, not before SetValue
// returns inside fn.
func Effect(rs *ReactiveSystem, fn ErrFn, opts ...NodeOption) (Dispose, error) {
	e := rs.newEffectRunner(kindEffect, fn, opts)
	if err := rs.runEffect(e, false); err != nil {
		e.dispose()
		return e.dispose, &SetupError{Node: e, Err: err}
	}
	return e.dispose, nil
}

// EffectScope collects every effect created while scopedFn runs so they can
// be disposed together. Reads inside scopedFn are not tracked.
func EffectScope(rs *ReactiveSystem, scopedFn ErrFn, opts ...NodeOption) (Dispose, error) {
	s := rs.newEffectRunner(kindScope, nil, opts)
	if err := rs.runEffectScope(s, scopedFn); err != nil {
		s.dispose()
		return s.dispose, &SetupError{Node: s, Err: err}
	}
	return s.dispose, nil
}

// OnCleanup registers fn with the running effect (or scope). Cleanups run
// in registration order before the effect's next run and on disposal.
func OnCleanup(rs *ReactiveSystem, fn func()) {
	owner := rs.owners.current()
	if owner == nil {
		panic("pulse: OnCleanup must be called from within an effect or scope")
	}
	owner.cleanups = append(owner.cleanups, fn)
}

func (rs *ReactiveSystem) newEffectRunner(kind nodeKind, fn ErrFn, opts []NodeOption) *EffectRunner {
	e := &EffectRunner{
		node:  rs.newNode(kind, opts),
		rs:    rs,
		fn:    fn,
		owner: rs.owners.current(),
	}
	e.sub = e
	if kind == kindEffect {
		e.deps = newDepSet()
		e.flags |= fLinked
	}
	if e.owner != nil {
		e.owner.children = append(e.owner.children, e)
	}
	return e
}

// runEffect performs one run of e's body. Writes made by the body are
// batched until it returns. With check set, an effect that was only told an
// upstream computed might have changed first confirms that one did.
func (rs *ReactiveSystem) runEffect(e *EffectRunner, check bool) (err error) {
	rs.StartBatch()
	defer rs.EndBatch()
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()

	if check && !rs.checkDirty(e.node) {
		return nil
	}
	e.state = cacheClean
	rs.counters.effectRuns.Add(1)
	e.disposeChildren()
	e.runCleanups()
	if e.flags&fDisposed != 0 {
		return nil
	}

	rs.startTracking(e.node)
	rs.owners.push(e)
	defer func() {
		rs.owners.pop()
		rs.endTracking(e.node)
		if e.flags&fDisposed != 0 {
			e.teardown()
		}
	}()

	return e.fn()
}

func (rs *ReactiveSystem) runEffectScope(s *EffectRunner, scopedFn ErrFn) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	rs.owners.push(s)
	rs.tracking.push(nil)
	defer func() {
		rs.tracking.pop()
		rs.owners.pop()
	}()
	return scopedFn()
}

func (e *EffectRunner) markDirty(state cacheState) bool {
	if e.flags&fDisposed != 0 || e.kind != kindEffect {
		return false
	}
	if state > e.state {
		e.state = state
	}
	return e.flags&fQueued == 0
}

func (e *EffectRunner) notify() {
	e.rs.enqueue(e)
}

// dispose is idempotent. When called from inside the effect's own body the
// teardown waits until the body returns.
func (e *EffectRunner) dispose() {
	if e.flags&fDisposed != 0 {
		return
	}
	e.flags |= fDisposed
	e.state = cacheClean
	if e.owner != nil {
		e.owner.removeChild(e)
		e.owner = nil
	}
	if e.flags&fRunning != 0 {
		return
	}
	e.teardown()
}

func (e *EffectRunner) teardown() {
	e.disposeChildren()
	e.runCleanups()
	e.rs.unlinkAll(e.node)
}

func (e *EffectRunner) disposeChildren() {
	children := e.children
	e.children = nil
	for _, child := range children {
		child.owner = nil
		child.dispose()
	}
}

func (e *EffectRunner) removeChild(child *EffectRunner) {
	if i := slices.Index(e.children, child); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
}

// runCleanups runs untracked so reads made by teardown code never become
// dependencies of whatever happens to be running.
func (e *EffectRunner) runCleanups() {
	if len(e.cleanups) == 0 {
		return
	}
	cleanups := e.cleanups
	e.cleanups = nil
	e.rs.PauseTracking()
	defer e.rs.ResumeTracking()
	for _, fn := range cleanups {
		fn()
	}
}
