package pulse

import (
	"log/slog"
	"slices"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultMaxFlushPasses bounds how many times a single flush may drain the
// effect queue before it is treated as a feedback loop.
const DefaultMaxFlushPasses = 100

type OnErrorFunc func(from Node, err error)

// ReactiveSystem owns one dependency graph: its node registry, tracking and
// owner stacks, and batch scheduler. It is not safe for concurrent use;
// independent systems never share state.
type ReactiveSystem struct {
	batchDepth int
	flushing   bool
	queue      []*EffectRunner

	tracking trackingStack
	owners   ownerStack

	nodes  map[NodeID]*node
	lastID NodeID
	// epoch counts signal writes
	epoch uint64

	onError        OnErrorFunc
	logger         *slog.Logger
	maxFlushPasses int

	counters counters
}

type Option func(*ReactiveSystem)

func WithLogger(logger *slog.Logger) Option {
	return func(rs *ReactiveSystem) {
		rs.logger = logger
	}
}

// WithOnError replaces the handler passed to CreateReactiveSystem.
func WithOnError(onError OnErrorFunc) Option {
	return func(rs *ReactiveSystem) {
		rs.onError = onError
	}
}

// WithMaxFlushPasses overrides DefaultMaxFlushPasses. Values below one are
// ignored.
func WithMaxFlushPasses(n int) Option {
	return func(rs *ReactiveSystem) {
		if n > 0 {
			rs.maxFlushPasses = n
		}
	}
}

// CreateReactiveSystem returns an empty system. onError receives effect
// re-run failures; when nil they are logged at error level.
func CreateReactiveSystem(onError OnErrorFunc, opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		nodes:          map[NodeID]*node{},
		onError:        onError,
		logger:         slog.Default(),
		maxFlushPasses: DefaultMaxFlushPasses,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

func (rs *ReactiveSystem) EndBatch() {
	if rs.batchDepth == 0 {
		panic("pulse: EndBatch without StartBatch")
	}
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.flush()
	}
}

// Batch runs cb with effect notifications deferred; affected effects run
// once each when the outermost batch ends.
func (rs *ReactiveSystem) Batch(cb func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	cb()
}

func (rs *ReactiveSystem) newNode(kind nodeKind, opts []NodeOption) *node {
	rs.lastID++
	n := &node{id: rs.lastID, kind: kind}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func newDepSet() mapset.Set[NodeID] {
	return mapset.NewThreadUnsafeSet[NodeID]()
}

// link adds the edge dep -> sub on both sides and registers both nodes. A
// computed gaining its first subscriber attaches to its own dependencies.
func (rs *ReactiveSystem) link(dep, sub *node) {
	idle := dep.kind == kindComputed && dep.flags&fLinked == 0
	dep.subs = append(dep.subs, sub.id)
	rs.nodes[dep.id] = dep
	rs.nodes[sub.id] = sub
	if idle {
		rs.attach(dep)
	}
	rs.counters.nodes.Store(int64(len(rs.nodes)))
}

// attach turns the reads n recorded while unobserved into edges. n is
// clean unless its last run failed or a direct dependency moved since.
func (rs *ReactiveSystem) attach(n *node) {
	n.flags |= fLinked
	stale := n.flags&fFailed != 0
	for _, ref := range n.depOrder {
		rs.link(ref.node, n)
		if ref.node.version != ref.version {
			stale = true
		}
	}
	if stale {
		n.state = cacheDirty
	} else {
		n.state = cacheClean
	}
}

// unlink removes sub from dep's subscribers. The caller owns sub's side of
// the edge. A computed that loses its last subscriber detaches from its own
// dependencies so it can be collected; it relinks when observed again.
func (rs *ReactiveSystem) unlink(dep, sub *node) {
	if i := slices.Index(dep.subs, sub.id); i >= 0 {
		dep.subs = slices.Delete(dep.subs, i, i+1)
	}
	if dep.kind == kindComputed && dep.flags&fLinked != 0 && len(dep.subs) == 0 && dep.flags&fRunning == 0 {
		rs.detach(dep)
	}
	rs.release(dep)
}

// detach drops n's dependency edges but keeps what it read, and at which
// versions, so its cache can still be validated while unobserved.
func (rs *ReactiveSystem) detach(n *node) {
	n.flags &^= fLinked
	for _, ref := range n.depOrder {
		rs.unlink(ref.node, n)
	}
	rs.release(n)
}

// unlinkAll drops every dependency edge of sub.
func (rs *ReactiveSystem) unlinkAll(sub *node) {
	if sub.deps == nil {
		return
	}
	deps := sub.depOrder
	sub.deps.Clear()
	sub.depOrder = nil
	for _, ref := range deps {
		rs.unlink(ref.node, sub)
	}
	rs.release(sub)
}

// release forgets a node once it has no edges left.
func (rs *ReactiveSystem) release(n *node) {
	if n.hasEdges() || n.flags&fRunning != 0 {
		return
	}
	delete(rs.nodes, n.id)
	rs.counters.nodes.Store(int64(len(rs.nodes)))
}

// propagate raises every subscriber of n to state. A computed that was
// clean passes cacheCheck on to its own subscribers without recomputing;
// effects are queued.
func (rs *ReactiveSystem) propagate(n *node, state cacheState) {
	for _, id := range n.subs {
		sub := rs.nodes[id].sub
		if sub.markDirty(state) {
			sub.notify()
		}
	}
}

// shallowPropagate runs after a computed produced a new value: subscribers
// that were only checking now know they must run.
func (rs *ReactiveSystem) shallowPropagate(n *node) {
	for _, id := range n.subs {
		sub := rs.nodes[id]
		if sub.state == cacheCheck {
			sub.state = cacheDirty
			continue
		}
		if sub.sub.markDirty(cacheDirty) {
			sub.sub.notify()
		}
	}
}

// checkDirty resolves a cacheCheck state by refreshing n's computed
// dependencies in the order n first read them, stopping at the first one
// that changed. It reports whether n has to run.
func (rs *ReactiveSystem) checkDirty(n *node) bool {
	if n.state == cacheCheck {
		for _, ref := range n.depOrder {
			if r, ok := ref.node.sub.(refresher); ok {
				r.refresh()
			}
			if n.state == cacheDirty {
				break
			}
		}
		if n.state == cacheCheck {
			n.state = cacheClean
		}
	}
	return n.state == cacheDirty
}

// upToDate validates an unobserved computed against the versions its
// dependencies had when it last ran. Nothing is compared when no signal has
// been written since the last successful check.
func (rs *ReactiveSystem) upToDate(n *node) bool {
	if n.checkedAt == rs.epoch {
		return true
	}
	epoch := rs.epoch
	for _, ref := range n.depOrder {
		if r, ok := ref.node.sub.(refresher); ok {
			r.refresh()
		}
		if ref.node.version != ref.version {
			return false
		}
	}
	n.checkedAt = epoch
	return true
}

func (rs *ReactiveSystem) reportError(from Node, err error) {
	rs.counters.rerunErrors.Add(1)
	if rs.onError != nil {
		rs.onError(from, err)
		return
	}
	rs.logger.Error("effect re-run failed", "node", from.Name(), "err", err)
}

type counters struct {
	nodes       atomic.Int64
	pending     atomic.Int64
	flushes     atomic.Uint64
	passes      atomic.Uint64
	effectRuns  atomic.Uint64
	recomputes  atomic.Uint64
	rerunErrors atomic.Uint64
	cycles      atomic.Uint64
}

// Stats is a point-in-time view of a system's counters.
type Stats struct {
	Nodes          int64  // nodes currently holding at least one edge
	PendingEffects int64  // effects waiting in the queue
	Flushes        uint64 // completed queue drains
	FlushPasses    uint64
	EffectRuns     uint64 // setup runs and re-runs
	Recomputes     uint64
	RerunErrors    uint64
	Cycles         uint64
}

// Stats may be called from any goroutine.
func (rs *ReactiveSystem) Stats() Stats {
	c := &rs.counters
	return Stats{
		Nodes:          c.nodes.Load(),
		PendingEffects: c.pending.Load(),
		Flushes:        c.flushes.Load(),
		FlushPasses:    c.passes.Load(),
		EffectRuns:     c.effectRuns.Load(),
		Recomputes:     c.recomputes.Load(),
		RerunErrors:    c.rerunErrors.Load(),
		Cycles:         c.cycles.Load(),
	}
}
