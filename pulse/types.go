package pulse

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// NodeID addresses a node in a ReactiveSystem's registry. Ids are only
// unique within the system that issued them.
type NodeID uint64

type nodeKind uint8

const (
	kindSignal nodeKind = iota + 1
	kindComputed
	kindEffect
	kindScope
)

func (k nodeKind) String() string {
	switch k {
	case kindSignal:
		return "signal"
	case kindComputed:
		return "computed"
	case kindEffect:
		return "effect"
	case kindScope:
		return "scope"
	default:
		return "unknown"
	}
}

// cacheState orders how stale a subscriber may be. A check subscriber has
// an upstream computed that may or may not have changed; it resolves by
// refreshing its computed dependencies in read order.
type cacheState uint8

const (
	cacheClean cacheState = iota
	cacheCheck
	cacheDirty
)

type nodeFlags uint8

const (
	fHasValue nodeFlags = 1 << iota
	fRunning
	fQueued
	fDisposed
	fFailed
	// fLinked marks a subscriber whose dependencies hold edges back to it.
	// Effects are linked while alive; computeds only while something
	// subscribes to them.
	fLinked
)

// Node is the identity shared by signals, computeds, effects and scopes.
type Node interface {
	ID() NodeID
	Name() string
}

// subscriber is the capability computeds and effects share. markDirty
// raises the node's state and reports whether it needs to be notified;
// notify propagates (computed) or schedules (effect).
type subscriber interface {
	markDirty(state cacheState) bool
	notify()
}

// refresher is implemented by computeds so a checking subscriber can bring
// them up to date without reading them.
type refresher interface {
	refresh()
}

type node struct {
	id    NodeID
	kind  nodeKind
	name  string
	flags nodeFlags
	state cacheState

	// version increments every time the node's observable value changes.
	version uint64

	// subs is ordered by first subscription, which fixes notification order.
	subs []NodeID

	// deps holds what the node read during its latest run and depOrder the
	// same nodes in first-read order, with the version each had when read.
	// prevDeps is the previous run's set while a run is in flight. All are
	// nil for signals.
	deps     mapset.Set[NodeID]
	depOrder []depRef
	prevDeps mapset.Set[NodeID]

	// checkedAt is the system write epoch at which an unlinked computed was
	// last known to be current.
	checkedAt uint64

	sub subscriber
}

type depRef struct {
	node    *node
	version uint64
}

func (n *node) ID() NodeID {
	return n.id
}

func (n *node) Name() string {
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("%s#%d", n.kind, n.id)
}

func (n *node) Version() uint64 {
	return n.version
}

func (n *node) SubscriberCount() int {
	return len(n.subs)
}

func (n *node) hasEdges() bool {
	return len(n.subs) > 0 || (n.flags&fLinked != 0 && n.deps != nil && n.deps.Cardinality() > 0)
}

// NodeOption configures a node at creation.
type NodeOption func(*node)

// WithName labels a node for error messages and logs.
func WithName(name string) NodeOption {
	return func(n *node) {
		n.name = name
	}
}
