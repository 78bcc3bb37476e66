package pulse

// Readable is anything whose value can be read with tracking.
type Readable[T any] interface {
	Value() T
}

// WriteableSignal is a mutable reactive container. Change detection uses ==,
// so two distinct pointers to equal structs still count as a change. When T
// is an interface holding an uncomparable value, such as a slice in a
// Signal[any], every write counts as a change.
type WriteableSignal[T comparable] struct {
	*node
	rs    *ReactiveSystem
	value T
}

func (s *WriteableSignal[T]) Value() T {
	s.rs.track(s.node)
	return s.value
}

// Peek returns the value without registering a dependency.
func (s *WriteableSignal[T]) Peek() T {
	return s.value
}

func (s *WriteableSignal[T]) SetValue(v T) {
	if same(s.value, v) {
		return
	}
	s.value = v
	s.version++
	s.rs.epoch++
	if len(s.subs) == 0 {
		return
	}
	s.rs.StartBatch()
	s.rs.propagate(s.node, cacheDirty)
	s.rs.EndBatch()
}

func (s *WriteableSignal[T]) Update(fn func(T) T) {
	s.SetValue(fn(s.value))
}

func Signal[T comparable](rs *ReactiveSystem, initialValue T, opts ...NodeOption) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		node:  rs.newNode(kindSignal, opts),
		rs:    rs,
		value: initialValue,
	}
}

// same is == that treats a comparison panic, from an interface holding an
// uncomparable dynamic type, as inequality.
func same[T comparable](a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
