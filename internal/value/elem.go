package value

import (
	"fmt"
	"math/big"

	"github.com/g2mt/zig/internal/intern"
)

// ElemValue returns element i of a sequence value or field i of an aggregate
// value, normalized across storage variants: inline element lists, byte
// packing and single-repeated-element compression all resolve to the same
// per-position values. A zero Value means the element is not statically
// resolvable (the caller degrades); a non-nil error is pool exhaustion while
// materializing a derived element, which must propagate.
func ElemValue(v Value, i int, ctx *Context) (Value, error) {
	if i < 0 {
		return Value{}, nil
	}
	switch v.tag {
	case TagAggregate:
		if i >= len(v.elems) {
			return Value{}, nil
		}
		return v.elems[i], nil
	case TagRepeated:
		return *v.sub, nil
	case TagBytes:
		if i >= len(v.bytes) {
			return Value{}, nil
		}
		return internByte(v.bytes[i], ctx)
	case TagInterned:
		e, ok := ctx.Pool.Get(v.ip)
		if !ok {
			return Value{}, nil
		}
		switch e.Tag {
		case intern.TagAggregate:
			switch e.AggStorage {
			case intern.AggElems:
				if i >= len(e.Elems) {
					return Value{}, nil
				}
				return MakeInterned(e.Elems[i]), nil
			case intern.AggRepeated:
				return MakeInterned(e.Payload), nil
			case intern.AggBytes:
				if i >= len(e.Bytes) {
					return Value{}, nil
				}
				return internByte(e.Bytes[i], ctx)
			}
		case intern.TagSlice:
			backing, ok := derefPtr(e.Payload, ctx)
			if !ok {
				return Value{}, nil
			}
			return ElemValue(backing, i, ctx)
		}
	}
	return Value{}, nil
}

func internByte(b byte, ctx *Context) (Value, error) {
	id, err := ctx.Pool.IntU64(uint64(b))
	if err != nil {
		return Value{}, err
	}
	return MakeInterned(id), nil
}

// derefPtr resolves a pointer provenance to the value it points at, when
// that value is statically known. Runtime-dependent provenances (integer
// addresses, payload pointers) report false.
func derefPtr(id intern.ValueID, ctx *Context) (Value, bool) {
	e, ok := ctx.Pool.Get(id)
	if !ok || e.Tag != intern.TagPtr {
		return Value{}, false
	}
	switch e.PtrKind {
	case intern.PtrDecl, intern.PtrMutDecl:
		d, ok := ctx.Decls.Get(e.Decl)
		if !ok || d.Val == intern.NoValueID {
			return Value{}, false
		}
		return MakeInterned(d.Val), true
	case intern.PtrComptimeField:
		return MakeInterned(e.Payload), true
	default:
		return Value{}, false
	}
}

// resolveInt returns the semantic integer of an interned int entry. The two
// lazy storages resolve through the layout engine; a layout failure
// propagates so callers decide between erroring and failing loudly.
func resolveInt(e intern.Entry, ctx *Context) (*big.Int, error) {
	switch e.Storage {
	case intern.IntU64:
		return new(big.Int).SetUint64(e.U64), nil
	case intern.IntI64:
		return big.NewInt(e.I64), nil
	case intern.IntBig:
		return e.Big, nil
	case intern.IntLazyAlign:
		a, err := ctx.Layout.AlignOf(e.Ty)
		if err != nil {
			return nil, err
		}
		return big.NewInt(int64(a)), nil
	case intern.IntLazySize:
		s, err := ctx.Layout.SizeOf(e.Ty)
		if err != nil {
			return nil, err
		}
		return big.NewInt(int64(s)), nil
	default:
		return nil, fmt.Errorf("value: unknown int storage %d", e.Storage)
	}
}

// mustResolveInt is the comparison/hash path: unresolvable lazy layout at
// that point is a caller contract violation, not a recoverable condition.
func mustResolveInt(e intern.Entry, ctx *Context) *big.Int {
	n, err := resolveInt(e, ctx)
	if err != nil {
		panic(fmt.Errorf("value: lazy int resolution failed: %w", err))
	}
	return n
}
