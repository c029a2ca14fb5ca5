package value

import (
	"github.com/g2mt/zig/internal/arena"
	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/types"
)

// TypedValue pairs a constant value with its static type. The pair is
// immutable: operations that appear to change one side return a new pair.
type TypedValue struct {
	Ty  types.TypeID
	Val Value
}

// Make builds a TypedValue.
func Make(ty types.TypeID, val Value) TypedValue {
	return TypedValue{Ty: ty, Val: val}
}

// WithValue returns a new pair with the same type and a different value.
func (tv TypedValue) WithValue(val Value) TypedValue {
	return TypedValue{Ty: tv.Ty, Val: val}
}

// WithType returns a new pair with the same value and a different type.
func (tv TypedValue) WithType(ty types.TypeID) TypedValue {
	return TypedValue{Ty: ty, Val: tv.Val}
}

// Managed couples a TypedValue with an optional arena that owns its payload.
// When the wrapper owns an arena, releasing the wrapper invalidates every
// value copied into that arena; a borrowing wrapper releases nothing because
// the payload is on loan from longer-lived storage such as the intern pool.
type Managed struct {
	TV    TypedValue
	arena *arena.Arena
}

// ManagedOwned wraps a value whose payload lives in the given arena. The
// wrapper takes responsibility for the arena; no payload may outlive it.
func ManagedOwned(tv TypedValue, a *arena.Arena) Managed {
	return Managed{TV: tv, arena: a}
}

// ManagedBorrowed wraps a value whose storage belongs to someone else.
func ManagedBorrowed(tv TypedValue) Managed {
	return Managed{TV: tv}
}

// Owns reports whether releasing the wrapper tears down an arena.
func (m Managed) Owns() bool {
	return m.arena != nil
}

// Release frees the owned arena, if any, in one step. Releasing a borrowing
// wrapper is a no-op.
func (m *Managed) Release() {
	if m.arena != nil {
		m.arena.Release()
		m.arena = nil
	}
	m.TV = TypedValue{}
}

// EnumToInt converts an enum tag value to its integer ordinal, typed as the
// enum's underlying integer type. Enum literals resolve through the declared
// name. The second result is false when the value is not an enum tag of the
// paired type.
func EnumToInt(tv TypedValue, ctx *Context) (TypedValue, bool) {
	underlying := ctx.Types.EnumUnderlying(tv.Ty)
	if underlying == types.NoTypeID {
		return TypedValue{}, false
	}
	if tv.Val.Tag() != TagInterned {
		return TypedValue{}, false
	}
	e, ok := ctx.Pool.Get(tv.Val.Interned())
	if !ok {
		return TypedValue{}, false
	}
	var ordinal uint64
	switch e.Tag {
	case intern.TagEnumTag:
		ordinal = e.U64
	case intern.TagEnumLiteral:
		ord, found := ctx.Types.EnumTagOrdinal(tv.Ty, e.Name)
		if !found {
			return TypedValue{}, false
		}
		ordinal = ord
	default:
		return TypedValue{}, false
	}
	id, err := ctx.Pool.IntU64(ordinal)
	if err != nil {
		return TypedValue{}, false
	}
	return Make(underlying, MakeInterned(id)), true
}
