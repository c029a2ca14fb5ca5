package value

import (
	"github.com/g2mt/zig/internal/arena"
)

// Copy deep-copies v into a. The result shares no inline mutable storage with
// the source: aggregate element slices and byte buffers are re-allocated from
// the arena, nested wrappers are copied recursively. Interned references are
// copied by key only; pool entries are immutable and shared by design, so a
// key copy is a complete copy. The only error is arena.ErrOutOfMemory.
func Copy(v Value, a *arena.Arena) (Value, error) {
	switch v.tag {
	case TagInvalid, TagInterned:
		return v, nil

	case TagAggregate:
		elems, err := arena.Make[Value](a, len(v.elems))
		if err != nil {
			return Value{}, err
		}
		for i, e := range v.elems {
			c, err := Copy(e, a)
			if err != nil {
				return Value{}, err
			}
			elems[i] = c
		}
		return Value{tag: TagAggregate, elems: elems}, nil

	case TagBytes:
		b, err := a.Bytes(v.bytes)
		if err != nil {
			return Value{}, err
		}
		return Value{tag: TagBytes, bytes: b}, nil

	case TagUnion:
		tag, err := Copy(*v.aux, a)
		if err != nil {
			return Value{}, err
		}
		payload, err := Copy(*v.sub, a)
		if err != nil {
			return Value{}, err
		}
		return MakeUnion(tag, payload), nil

	case TagRepeated, TagEuPayload, TagOptPayload:
		sub, err := Copy(*v.sub, a)
		if err != nil {
			return Value{}, err
		}
		return Value{tag: v.tag, sub: &sub}, nil

	default:
		return v, nil
	}
}

// CopyTyped deep-copies a typed value; the type identity is shared, types are
// interned and immutable.
func CopyTyped(tv TypedValue, a *arena.Arena) (TypedValue, error) {
	val, err := Copy(tv.Val, a)
	if err != nil {
		return TypedValue{}, err
	}
	return TypedValue{Ty: tv.Ty, Val: val}, nil
}
