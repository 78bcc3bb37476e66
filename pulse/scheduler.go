package pulse

func (rs *ReactiveSystem) enqueue(e *EffectRunner) {
	e.flags |= fQueued
	rs.queue = append(rs.queue, e)
	rs.counters.pending.Store(int64(len(rs.queue)))
}

// flush drains the effect queue in passes. Effects keep the order in which
// they were first queued; anything queued while a pass runs goes to the next
// pass. Only the outermost call flushes, nested calls return at once.
func (rs *ReactiveSystem) flush() {
	if rs.flushing || len(rs.queue) == 0 {
		return
	}
	rs.flushing = true
	rs.tracking.push(nil)
	defer func() {
		rs.tracking.pop()
		rs.flushing = false
	}()

	for pass := 1; len(rs.queue) > 0; pass++ {
		if pass > rs.maxFlushPasses {
			err := &CycleError{Passes: rs.maxFlushPasses}
			for _, e := range rs.queue {
				if e.flags&fDisposed == 0 {
					err.Pending = append(err.Pending, e)
				}
			}
			rs.dropQueue()
			rs.counters.cycles.Add(1)
			rs.logger.Error("effect feedback loop", "passes", err.Passes, "pending", len(err.Pending))
			panic(err)
		}

		queue := rs.queue
		rs.queue = nil
		rs.counters.passes.Add(1)
		rs.logger.Debug("flush pass", "pass", pass, "effects", len(queue))

		for i, e := range queue {
			e.flags &^= fQueued
			rs.counters.pending.Store(int64(len(queue) - i - 1 + len(rs.queue)))
			if e.flags&fDisposed != 0 {
				continue
			}
			rs.rerun(e)
		}
	}
	rs.counters.pending.Store(0)
	rs.counters.flushes.Add(1)
}

func (rs *ReactiveSystem) rerun(e *EffectRunner) {
	if err := rs.runEffect(e, true); err != nil {
		rs.reportError(e, &RerunError{Node: e, Err: err})
	}
}

func (rs *ReactiveSystem) dropQueue() {
	for _, e := range rs.queue {
		e.flags &^= fQueued
		e.state = cacheClean
	}
	rs.queue = nil
	rs.counters.pending.Store(0)
}
