package core

import (
	"reflect"

	"github.com/go-drift/hooks/pkg/errors"
)

// Setter overwrites the state slot it is bound to and requests a render
// pass. Every call requests a pass, including calls that store an equal
// value. The returned error is the error of the pass it ran, if any; see
// [Policy].
type Setter[T any] func(value T) error

// UseState declares a state slot at the current call position.
//
// initial is stored the first time the position is visited. Later passes
// return whatever was last written through the setter, including zero
// values. The returned setter is created once per slot and is the same
// function on every pass.
//
// Hooks must be called unconditionally and in the same order on every
// pass: slots are addressed by call position only.
//
//	func Counter(ctx *core.RenderContext) view.Node {
//	    count, setCount := core.UseState(ctx, 0)
//	    return view.Button(fmt.Sprint(count), func() error {
//	        return setCount(count + 1)
//	    })
//	}
func UseState[T any](ctx *RenderContext, initial T) (T, Setter[T]) {
	s := ctx.claim("core.UseState", slotState, reflect.TypeFor[T]())
	if !s.set {
		s.value = initial
		s.set = true
	}
	if s.setter == nil {
		index := s.index
		s.setter = Setter[T](func(value T) error {
			return ctx.write(index, value)
		})
	}
	return slotValue[T](ctx, s.index), s.setter.(Setter[T])
}

// UseReducer declares a state slot updated through a reducer.
//
// dispatch computes reducer(current, action) and writes the result through
// the slot's setter. The reducer passed on the latest pass is the one
// dispatch uses. Reducers should return the current state unchanged for
// actions they do not handle.
func UseReducer[S, A any](ctx *RenderContext, reducer func(state S, action A) S, initial S) (S, func(action A) error) {
	if reducer == nil {
		ctx.mustBeActive("core.UseReducer")
		panic(errors.AtSlot("core.UseReducer", errors.KindType, ctx.stateCursor, errors.ErrNilReducer))
	}
	s := ctx.claim("core.UseReducer", slotReducer, reflect.TypeFor[S]())
	if !s.set {
		s.value = initial
		s.set = true
	}
	s.reducer = reducer
	if s.dispatch == nil {
		index := s.index
		s.dispatch = func(action A) error {
			current := slotValue[S](ctx, index)
			next := ctx.slots[index].reducer.(func(S, A) S)(current, action)
			return ctx.write(index, next)
		}
	}
	return slotValue[S](ctx, s.index), s.dispatch.(func(A) error)
}

// Ref is a mutable box that persists across passes. Writing Current
// does not request a render pass.
type Ref[T any] struct {
	Current T
}

// UseRef declares a slot holding a Ref initialized to initial on first
// visit.
func UseRef[T any](ctx *RenderContext, initial T) *Ref[T] {
	s := ctx.claim("core.UseRef", slotRef, reflect.TypeFor[T]())
	if !s.set {
		s.value = &Ref[T]{Current: initial}
		s.set = true
	}
	return s.value.(*Ref[T])
}

// Deps returns a dependency list for UseEffect. Deps() with no arguments
// is an empty, non-nil list: the effect runs on the first pass only.
func Deps(values ...any) []any {
	if values == nil {
		return []any{}
	}
	return values
}

// UseEffect declares an effect at the current effect position.
//
// With deps == nil the effect runs on every pass. Otherwise it runs when
// no list was recorded at this position on the previous pass, or when the
// lists differ in length or in any element (see [SameDep]). The effect runs
// synchronously inside the pass; panics propagate to the caller of the
// pass. A nil effect is a KindType error.
func UseEffect(ctx *RenderContext, effect func(), deps []any) {
	if effect == nil {
		ctx.mustBeActive("core.UseEffect")
		panic(errors.AtSlot("core.UseEffect", errors.KindType, ctx.effectCursor, errors.ErrNilEffect))
	}
	useEffect(ctx, "core.UseEffect", func() func() {
		effect()
		return nil
	}, deps)
}

// UseEffectCleanup is UseEffect for effects that hold resources. The
// function returned by setup runs before the next invocation of setup at
// this position and when the root is disposed.
func UseEffectCleanup(ctx *RenderContext, setup func() (cleanup func()), deps []any) {
	if setup == nil {
		ctx.mustBeActive("core.UseEffectCleanup")
		panic(errors.AtSlot("core.UseEffectCleanup", errors.KindType, ctx.effectCursor, errors.ErrNilEffect))
	}
	useEffect(ctx, "core.UseEffectCleanup", setup, deps)
}

func useEffect(ctx *RenderContext, op string, setup func() func(), deps []any) {
	rec := ctx.effectAt(op)
	changed := deps == nil || !rec.recorded || rec.deps == nil || DepsChanged(rec.deps, deps)
	if changed {
		if cleanup := rec.cleanup; cleanup != nil {
			rec.cleanup = nil
			cleanup()
		}
		rec.cleanup = setup()
	}
	rec.deps = copyDeps(deps)
	rec.recorded = true
	ctx.effectCursor++
}

func copyDeps(deps []any) []any {
	if deps == nil {
		return nil
	}
	return append([]any{}, deps...)
}
