package core

import (
	"fmt"
	"reflect"

	"github.com/go-drift/hooks/pkg/errors"
)

type slotKind uint8

const (
	slotState slotKind = iota + 1
	slotReducer
	slotRef
)

func (k slotKind) String() string {
	switch k {
	case slotState:
		return "UseState"
	case slotReducer:
		return "UseReducer"
	case slotRef:
		return "UseRef"
	default:
		return "unknown"
	}
}

// slot is one persisted position in the state sequence. set is the
// present/absent tag, so zero values are valid stored values.
type slot struct {
	index int
	kind  slotKind
	typ   reflect.Type
	value any
	set   bool

	// setter and dispatch are created on first visit and reused.
	setter   any
	dispatch any
	reducer  any
}

// effectRecord is one position in the dependency sequence.
type effectRecord struct {
	deps     []any
	recorded bool
	cleanup  func()
}

// RenderContext owns the slot sequence, the dependency sequence and both
// cursors for one Root. It is handed to the component on every pass and
// is only valid while that pass runs.
//
// RenderContext is NOT thread-safe. Hooks must be called from the
// goroutine running the pass.
type RenderContext struct {
	root *Root

	slots   []*slot
	effects []*effectRecord

	stateCursor  int
	effectCursor int

	// counts from the last completed pass, -1 before the first one
	stateCount  int
	effectCount int

	active bool
	pass   int
}

func newRenderContext(root *Root) *RenderContext {
	return &RenderContext{root: root, stateCount: -1, effectCount: -1}
}

// Pass returns the 1-based number of the pass currently running.
func (c *RenderContext) Pass() int {
	return c.pass
}

// FirstPass reports whether the current pass is the first one for the root.
func (c *RenderContext) FirstPass() bool {
	return c.stateCount < 0
}

// Slots returns the number of state slots allocated so far.
func (c *RenderContext) Slots() int {
	return len(c.slots)
}

func (c *RenderContext) begin() {
	c.active = true
	c.pass++
	c.stateCursor = 0
	c.effectCursor = 0
}

// end validates that the pass made the same number of hook calls as the
// previous one.
func (c *RenderContext) end() error {
	c.active = false
	if c.stateCount >= 0 && c.stateCursor != c.stateCount {
		return errors.AtSlot("core.RenderContext", errors.KindSlot, c.stateCursor,
			fmt.Errorf("%w: %d state hooks, previous pass had %d", errors.ErrHookCount, c.stateCursor, c.stateCount))
	}
	if c.effectCount >= 0 && c.effectCursor != c.effectCount {
		return errors.AtSlot("core.RenderContext", errors.KindSlot, c.effectCursor,
			fmt.Errorf("%w: %d effect hooks, previous pass had %d", errors.ErrHookCount, c.effectCursor, c.effectCount))
	}
	c.stateCount = c.stateCursor
	c.effectCount = c.effectCursor
	return nil
}

// abort leaves the context inactive after a failed pass without
// recording hook counts.
func (c *RenderContext) abort() {
	c.active = false
}

func (c *RenderContext) mustBeActive(op string) {
	if c == nil || !c.active {
		panic(errors.New(op, errors.KindReentrancy, errors.ErrOutsideRender))
	}
}

// claim returns the slot at the state cursor and advances it. A slot
// visited before must have been declared with the same hook and type.
func (c *RenderContext) claim(op string, kind slotKind, typ reflect.Type) *slot {
	c.mustBeActive(op)
	index := c.stateCursor
	if index == len(c.slots) {
		c.slots = append(c.slots, &slot{index: index, kind: kind, typ: typ})
	}
	s := c.slots[index]
	if s.kind != kind || s.typ != typ {
		panic(errors.AtSlot(op, errors.KindSlot, index,
			fmt.Errorf("%w: %s[%v] declared, %s[%v] found", errors.ErrSlotType, kind, typ, s.kind, s.typ)))
	}
	c.stateCursor++
	return s
}

// effectAt returns the record at the effect cursor, allocating it on
// first visit. The cursor is advanced by the caller once the effect has
// been handled.
func (c *RenderContext) effectAt(op string) *effectRecord {
	c.mustBeActive(op)
	if c.effectCursor == len(c.effects) {
		c.effects = append(c.effects, &effectRecord{})
	}
	return c.effects[c.effectCursor]
}

// write stores value at index and asks the root for a new pass.
func (c *RenderContext) write(index int, value any) error {
	if c.root.disposed {
		return nil
	}
	c.slots[index].value = value
	return c.root.requestRender()
}

// slotValue returns the stored value at index as T.
func slotValue[T any](c *RenderContext, index int) T {
	v, _ := c.slots[index].value.(T)
	return v
}

// runCleanups invokes pending effect cleanups in reverse order.
func (c *RenderContext) runCleanups() {
	for i := len(c.effects) - 1; i >= 0; i-- {
		if cleanup := c.effects[i].cleanup; cleanup != nil {
			c.effects[i].cleanup = nil
			cleanup()
		}
	}
}
