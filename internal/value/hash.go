package value

import (
	"encoding/binary"
	"hash"
	"math"
	"math/big"

	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

// Hash class discriminants. Hashing covers resolved semantic content, never
// raw storage discriminants, so any two Eql-equal values hash identically.
const (
	hkUndef byte = iota + 1
	hkVoid
	hkBool
	hkType
	hkInt
	hkFloat
	hkEnum
	hkEmptyEnum
	hkErr
	hkErrorUnionErr
	hkErrorUnionPayload
	hkOptNone
	hkOptPayload
	hkPtr
	hkSlice
	hkAggregate
	hkUnion
	hkFunc
	hkExternFunc
	hkVariable
	hkRuntime
	hkMemoized
	hkOpaque
)

// Hash feeds the resolved semantic content of a typed value into h. Output is
// identical for any two values Eql accepts as equal: aggregate fields are
// hashed in the type's declared order regardless of physical storage, and
// integer storages hash their resolved numeric value. The only error is pool
// exhaustion while materializing derived elements.
func Hash(tv TypedValue, h hash.Hash, ctx *Context) error {
	if err := hashU32(h, uint32(tv.Ty)); err != nil {
		return err
	}
	return hashValue(tv.Val, tv.Ty, h, ctx)
}

func hashValue(v Value, ty types.TypeID, h hash.Hash, ctx *Context) error {
	if e, ok := internedEntry(v, ctx); ok {
		// Type-independent markers first; they can pair with any type.
		switch e.Tag {
		case intern.TagUndef:
			return hashByte(h, hkUndef)
		case intern.TagRuntimeValue:
			return hashByte(h, hkRuntime)
		case intern.TagMemoizedCall:
			return hashByte(h, hkMemoized)
		case intern.TagVariable:
			if err := hashByte(h, hkVariable); err != nil {
				return err
			}
			return hashU32(h, uint32(e.Decl))
		}
	}

	tt, ok := ctx.Types.Lookup(ty)
	if !ok {
		return hashByte(h, hkOpaque)
	}
	switch tt.Kind {
	case types.KindVoid, types.KindNoReturn:
		return hashByte(h, hkVoid)

	case types.KindBool:
		e, ok := internedEntry(v, ctx)
		if !ok || e.Tag != intern.TagBool {
			return hashByte(h, hkOpaque)
		}
		if err := hashByte(h, hkBool); err != nil {
			return err
		}
		if e.B {
			return hashByte(h, 1)
		}
		return hashByte(h, 0)

	case types.KindType:
		e, ok := internedEntry(v, ctx)
		if !ok || e.Tag != intern.TagType {
			return hashByte(h, hkOpaque)
		}
		if err := hashByte(h, hkType); err != nil {
			return err
		}
		return hashU32(h, uint32(e.Ty))

	case types.KindInt, types.KindComptimeInt:
		e, ok := internedEntry(v, ctx)
		if !ok || e.Tag != intern.TagInt {
			return hashByte(h, hkOpaque)
		}
		return hashInt(h, mustResolveInt(e, ctx))

	case types.KindFloat, types.KindComptimeFloat:
		e, ok := internedEntry(v, ctx)
		if !ok || e.Tag != intern.TagFloat {
			return hashByte(h, hkOpaque)
		}
		if err := hashByte(h, hkFloat); err != nil {
			return err
		}
		return hashU64(h, math.Float64bits(e.F))

	case types.KindEnum:
		if ord, ok := enumOrdinal(v, ty, ctx); ok {
			if err := hashByte(h, hkEnum); err != nil {
				return err
			}
			return hashU64(h, ord)
		}
		return hashByte(h, hkEmptyEnum)

	case types.KindErrorSet:
		e, ok := internedEntry(v, ctx)
		if !ok || e.Tag != intern.TagErr {
			return hashByte(h, hkOpaque)
		}
		if err := hashByte(h, hkErr); err != nil {
			return err
		}
		return hashName(h, e.Name, ctx)

	case types.KindErrorUnion:
		name, payload, ok := errorUnionParts(v, ctx)
		if !ok {
			return hashByte(h, hkOpaque)
		}
		if payload.IsZero() {
			if err := hashByte(h, hkErrorUnionErr); err != nil {
				return err
			}
			return hashName(h, name, ctx)
		}
		if err := hashByte(h, hkErrorUnionPayload); err != nil {
			return err
		}
		return hashValue(payload, ctx.Types.ErrorUnionPayload(ty), h, ctx)

	case types.KindOptional:
		payload, ok := optionalParts(v, ctx)
		if !ok {
			return hashByte(h, hkOpaque)
		}
		if payload.IsZero() {
			return hashByte(h, hkOptNone)
		}
		if err := hashByte(h, hkOptPayload); err != nil {
			return err
		}
		return hashValue(payload, ctx.Types.OptionalChild(ty), h, ctx)

	case types.KindPointer:
		e, ok := internedEntry(v, ctx)
		if !ok || e.Tag != intern.TagPtr {
			return hashByte(h, hkOpaque)
		}
		if err := hashByte(h, hkPtr); err != nil {
			return err
		}
		return hashPtrEntry(e, h, ctx)

	case types.KindSlice:
		e, ok := internedEntry(v, ctx)
		if !ok || e.Tag != intern.TagSlice {
			return hashByte(h, hkOpaque)
		}
		if err := hashByte(h, hkSlice); err != nil {
			return err
		}
		if err := hashPtrID(e.Payload, h, ctx); err != nil {
			return err
		}
		le, ok := ctx.Pool.Get(e.Len)
		if !ok || le.Tag != intern.TagInt {
			return hashByte(h, hkOpaque)
		}
		return hashInt(h, mustResolveInt(le, ctx))

	case types.KindArray, types.KindVector:
		n := int(tt.Len)
		if tt.HasSentinel {
			n++
		}
		return hashElems(v, n, func(int) types.TypeID { return tt.Elem }, h, ctx)

	case types.KindStruct:
		n := ctx.Types.FieldCount(ty)
		return hashElems(v, n, func(i int) types.TypeID { return ctx.Types.FieldType(ty, i) }, h, ctx)

	case types.KindUnion:
		if v.tag != TagUnion {
			return hashByte(h, hkOpaque)
		}
		if err := hashByte(h, hkUnion); err != nil {
			return err
		}
		tagTy := ctx.Types.UnionTagType(ty)
		if err := hashValue(v.UnionTag(), tagTy, h, ctx); err != nil {
			return err
		}
		idx, ok := unionFieldIndex(v.UnionTag(), ty, ctx)
		if !ok {
			return hashByte(h, hkOpaque)
		}
		return hashValue(v.UnionPayload(), ctx.Types.FieldType(ty, idx), h, ctx)

	case types.KindFn:
		e, ok := internedEntry(v, ctx)
		if !ok {
			return hashByte(h, hkOpaque)
		}
		switch e.Tag {
		case intern.TagFunc:
			if err := hashByte(h, hkFunc); err != nil {
				return err
			}
			return hashU32(h, uint32(e.Decl))
		case intern.TagExternFunc:
			if err := hashByte(h, hkExternFunc); err != nil {
				return err
			}
			return hashName(h, e.Name, ctx)
		default:
			return hashByte(h, hkOpaque)
		}

	default:
		return hashByte(h, hkOpaque)
	}
}

// hashElems hashes every element position in declared order through the same
// normalization path the comparison uses.
func hashElems(v Value, n int, elemTy func(int) types.TypeID, h hash.Hash, ctx *Context) error {
	if err := hashByte(h, hkAggregate); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if b, ok := byteAt(v, i, ctx); ok {
			if err := hashInt(h, new(big.Int).SetUint64(uint64(b))); err != nil {
				return err
			}
			continue
		}
		elem, err := ElemValue(v, i, ctx)
		if err != nil {
			return err
		}
		if elem.IsZero() {
			if err := hashByte(h, hkOpaque); err != nil {
				return err
			}
			continue
		}
		if err := hashValue(elem, elemTy(i), h, ctx); err != nil {
			return err
		}
	}
	return nil
}

func hashPtrID(id intern.ValueID, h hash.Hash, ctx *Context) error {
	e, ok := ctx.Pool.Get(id)
	if !ok || e.Tag != intern.TagPtr {
		return hashByte(h, hkOpaque)
	}
	return hashPtrEntry(e, h, ctx)
}

func hashPtrEntry(e intern.Entry, h hash.Hash, ctx *Context) error {
	if err := hashByte(h, byte(e.PtrKind)); err != nil {
		return err
	}
	switch e.PtrKind {
	case intern.PtrAddrInt:
		return hashU64(h, e.U64)
	case intern.PtrDecl, intern.PtrMutDecl:
		return hashU32(h, uint32(e.Decl))
	case intern.PtrComptimeField:
		return hashValue(MakeInterned(e.Payload), e.Ty, h, ctx)
	case intern.PtrEuPayload, intern.PtrOptPayload:
		return hashPtrID(e.Payload, h, ctx)
	case intern.PtrElem:
		if err := hashU64(h, e.U64); err != nil {
			return err
		}
		return hashPtrID(e.Payload, h, ctx)
	case intern.PtrField:
		if err := hashU32(h, e.FieldIndex); err != nil {
			return err
		}
		return hashPtrID(e.Payload, h, ctx)
	default:
		return hashByte(h, hkOpaque)
	}
}

// hashInt writes sign and minimal magnitude bytes of the resolved integer.
func hashInt(h hash.Hash, n *big.Int) error {
	if err := hashByte(h, hkInt); err != nil {
		return err
	}
	sign := byte(0)
	if n.Sign() < 0 {
		sign = 1
	}
	if err := hashByte(h, sign); err != nil {
		return err
	}
	mag := n.Bytes()
	if err := hashU32(h, uint32(len(mag))); err != nil {
		return err
	}
	_, err := h.Write(mag)
	return err
}

func hashName(h hash.Hash, name source.StringID, ctx *Context) error {
	if ctx.Strings != nil {
		if s, ok := ctx.Strings.Lookup(name); ok {
			if err := hashU32(h, uint32(len(s))); err != nil {
				return err
			}
			_, err := h.Write([]byte(s))
			return err
		}
	}
	return hashU32(h, uint32(name))
}

func hashByte(h hash.Hash, b byte) error {
	_, err := h.Write([]byte{b})
	return err
}

func hashU32(h hash.Hash, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := h.Write(buf[:])
	return err
}

func hashU64(h hash.Hash, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := h.Write(buf[:])
	return err
}
