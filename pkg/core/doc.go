// Package core implements a call-order hooks runtime.
//
// A [Root] drives one [Component]. Every render pass resets the cursors of
// the root's [RenderContext] and calls the component, which declares its
// state and effects through hooks. Each hook call consumes the next
// position, so a hook recovers its slot from the previous pass purely by
// call order.
//
// # State
//
//	count, setCount := core.UseState(ctx, 0)
//
// The first visit stores the initial value; later passes return the last
// value written through setCount. Zero values are stored like any other
// value. The setter is created once per slot.
//
// # Effects
//
//	core.UseEffect(ctx, func() { fmt.Println("count changed") }, core.Deps(count))
//
// A nil dependency list runs the effect on every pass, Deps() runs it on
// the first pass only, and a non-empty list runs it when any element
// differs from the list recorded at the same position on the previous
// pass.
//
// # Render requests
//
// A setter writes its slot and requests a pass. Under [SyncPolicy] the pass
// runs inside the setter call; under [BatchPolicy] the root is only marked
// dirty and [Root.Flush] runs one pass for any number of setter calls.
// Setters called during a pass (from effects, or from the component body)
// never start a nested pass: the root re-runs the component once the
// current pass completes, up to [DefaultMaxPasses] times.
//
// # Rules
//
// Hooks must be called unconditionally and in the same order on every
// pass, and only while a pass is running. Violations are reported as
// *errors.HookError from Render, Flush or the setter that started the
// pass: KindSlot for a changed call order, KindReentrancy for hooks called
// outside a pass or Render called inside one, KindType for nil callbacks.
//
// Roots are NOT thread-safe. Use a [Dispatcher] to hand results from
// background goroutines to the goroutine that owns the root.
package core
