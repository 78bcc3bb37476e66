// Package pulse is a fine-grained reactive state engine.
//
// A ReactiveSystem owns a dependency graph of three kinds of node:
//
//	rs := pulse.CreateReactiveSystem(nil)
//	count := pulse.Signal(rs, 0)
//	doubled := pulse.Computed(rs, func(int) int { return count.Value() * 2 })
//	stop, err := pulse.Effect(rs, func() error {
//	    log.Printf("doubled is %d", doubled.Value())
//	    return nil
//	})
//	count.SetValue(5) // logs "doubled is 10" before returning
//
// Reading a signal or computed inside a computed getter or an effect body
// registers a dependency; dependencies are rebuilt on every run. Writes mark
// downstream computeds dirty without recomputing them and re-run affected
// effects, immediately outside a batch or once per effect when the
// outermost rs.Batch returns.
//
// A system is confined to a single goroutine.
package pulse
