package value

import (
	"math"

	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

// Eql reports whether two typed values are structurally equal. Values stored
// in physically different representations compare equal whenever their
// resolved semantic content is identical. The types must be interned-identical
// for the values to compare at all.
func Eql(a, b TypedValue, ctx *Context) bool {
	if a.Ty != b.Ty {
		return false
	}
	return valEql(a.Val, b.Val, a.Ty, ctx)
}

func valEql(a, b Value, ty types.TypeID, ctx *Context) bool {
	// Interned identity is the fast path; a miss says nothing.
	if a.tag == TagInterned && b.tag == TagInterned && ctx.Pool.Same(a.ip, b.ip) {
		return true
	}
	aUndef, bUndef := isUndef(a, ctx), isUndef(b, ctx)
	if aUndef || bUndef {
		return aUndef && bUndef
	}

	tt, ok := ctx.Types.Lookup(ty)
	if !ok {
		return false
	}
	switch tt.Kind {
	case types.KindVoid, types.KindNoReturn:
		return true

	case types.KindBool:
		ae, aok := internedEntry(a, ctx)
		be, bok := internedEntry(b, ctx)
		return aok && bok && ae.Tag == intern.TagBool && be.Tag == intern.TagBool && ae.B == be.B

	case types.KindType:
		ae, aok := internedEntry(a, ctx)
		be, bok := internedEntry(b, ctx)
		return aok && bok && ae.Tag == intern.TagType && be.Tag == intern.TagType && ae.Ty == be.Ty

	case types.KindInt, types.KindComptimeInt:
		return intEql(a, b, ctx)

	case types.KindFloat, types.KindComptimeFloat:
		ae, aok := internedEntry(a, ctx)
		be, bok := internedEntry(b, ctx)
		if !aok || !bok || ae.Tag != intern.TagFloat || be.Tag != intern.TagFloat {
			return false
		}
		// Bit equality keeps NaN handling consistent with hashing.
		return math.Float64bits(ae.F) == math.Float64bits(be.F)

	case types.KindEnum:
		return enumEql(a, b, ty, ctx)

	case types.KindErrorSet:
		ae, aok := internedEntry(a, ctx)
		be, bok := internedEntry(b, ctx)
		return aok && bok && ae.Tag == intern.TagErr && be.Tag == intern.TagErr && ae.Name == be.Name

	case types.KindErrorUnion:
		aName, aPayload, aok := errorUnionParts(a, ctx)
		bName, bPayload, bok := errorUnionParts(b, ctx)
		if !aok || !bok {
			return false
		}
		aHas, bHas := !aPayload.IsZero(), !bPayload.IsZero()
		if aHas != bHas {
			return false
		}
		if !aHas {
			return aName == bName
		}
		return valEql(aPayload, bPayload, ctx.Types.ErrorUnionPayload(ty), ctx)

	case types.KindOptional:
		aPayload, aok := optionalParts(a, ctx)
		bPayload, bok := optionalParts(b, ctx)
		if !aok || !bok {
			return false
		}
		aHas, bHas := !aPayload.IsZero(), !bPayload.IsZero()
		if aHas != bHas {
			return false
		}
		if !aHas {
			return true
		}
		return valEql(aPayload, bPayload, ctx.Types.OptionalChild(ty), ctx)

	case types.KindPointer:
		return ptrEql(a, b, ctx)

	case types.KindSlice:
		ae, aok := internedEntry(a, ctx)
		be, bok := internedEntry(b, ctx)
		if !aok || !bok || ae.Tag != intern.TagSlice || be.Tag != intern.TagSlice {
			return false
		}
		if !ptrIDEql(ae.Payload, be.Payload, ctx) {
			return false
		}
		return intEql(MakeInterned(ae.Len), MakeInterned(be.Len), ctx)

	case types.KindArray, types.KindVector:
		n := int(tt.Len)
		if tt.HasSentinel {
			n++
		}
		for i := 0; i < n; i++ {
			if !elemEql(a, b, i, tt.Elem, ctx) {
				return false
			}
		}
		return true

	case types.KindStruct:
		n := ctx.Types.FieldCount(ty)
		for i := 0; i < n; i++ {
			if !elemEql(a, b, i, ctx.Types.FieldType(ty, i), ctx) {
				return false
			}
		}
		return true

	case types.KindUnion:
		return unionEql(a, b, ty, ctx)

	case types.KindFn:
		ae, aok := internedEntry(a, ctx)
		be, bok := internedEntry(b, ctx)
		if !aok || !bok || ae.Tag != be.Tag {
			return false
		}
		switch ae.Tag {
		case intern.TagFunc:
			return ae.Decl == be.Decl
		case intern.TagExternFunc:
			return ae.Name == be.Name
		default:
			return false
		}

	default:
		return false
	}
}

// elemEql compares one normalized element position, reading byte-packed
// storage directly so comparison never needs to materialize pool entries.
func elemEql(a, b Value, i int, elemTy types.TypeID, ctx *Context) bool {
	ab, aIsByte := byteAt(a, i, ctx)
	bb, bIsByte := byteAt(b, i, ctx)
	switch {
	case aIsByte && bIsByte:
		return ab == bb
	case aIsByte:
		bv, _ := ElemValue(b, i, ctx)
		return intEqualsByte(bv, ab, ctx)
	case bIsByte:
		av, _ := ElemValue(a, i, ctx)
		return intEqualsByte(av, bb, ctx)
	default:
		av, _ := ElemValue(a, i, ctx)
		bv, _ := ElemValue(b, i, ctx)
		if av.IsZero() || bv.IsZero() {
			return av.IsZero() == bv.IsZero()
		}
		return valEql(av, bv, elemTy, ctx)
	}
}

func byteAt(v Value, i int, ctx *Context) (byte, bool) {
	switch v.tag {
	case TagBytes:
		if i < len(v.bytes) {
			return v.bytes[i], true
		}
	case TagInterned:
		e, ok := ctx.Pool.Get(v.ip)
		if ok && e.Tag == intern.TagAggregate && e.AggStorage == intern.AggBytes && i < len(e.Bytes) {
			return e.Bytes[i], true
		}
	}
	return 0, false
}

func intEqualsByte(v Value, b byte, ctx *Context) bool {
	e, ok := internedEntry(v, ctx)
	if !ok || e.Tag != intern.TagInt {
		return false
	}
	n := mustResolveInt(e, ctx)
	return n.IsUint64() && n.Uint64() == uint64(b)
}

func intEql(a, b Value, ctx *Context) bool {
	ae, aok := internedEntry(a, ctx)
	be, bok := internedEntry(b, ctx)
	if !aok || !bok || ae.Tag != intern.TagInt || be.Tag != intern.TagInt {
		return false
	}
	return mustResolveInt(ae, ctx).Cmp(mustResolveInt(be, ctx)) == 0
}

func enumEql(a, b Value, ty types.TypeID, ctx *Context) bool {
	aOrd, aok := enumOrdinal(a, ty, ctx)
	bOrd, bok := enumOrdinal(b, ty, ctx)
	if aok && bok {
		return aOrd == bOrd
	}
	// Empty-enum values have no ordinal; identity is all there is.
	ae, aHave := internedEntry(a, ctx)
	be, bHave := internedEntry(b, ctx)
	return aHave && bHave && ae.Tag == intern.TagEmptyEnumValue && be.Tag == intern.TagEmptyEnumValue
}

func enumOrdinal(v Value, ty types.TypeID, ctx *Context) (uint64, bool) {
	e, ok := internedEntry(v, ctx)
	if !ok {
		return 0, false
	}
	switch e.Tag {
	case intern.TagEnumTag:
		return e.U64, true
	case intern.TagEnumLiteral:
		return ctx.Types.EnumTagOrdinal(ty, e.Name)
	default:
		return 0, false
	}
}

func unionEql(a, b Value, ty types.TypeID, ctx *Context) bool {
	if a.tag != TagUnion || b.tag != TagUnion {
		return false
	}
	tagTy := ctx.Types.UnionTagType(ty)
	if !valEql(a.UnionTag(), b.UnionTag(), tagTy, ctx) {
		return false
	}
	idx, ok := unionFieldIndex(a.UnionTag(), ty, ctx)
	if !ok {
		return false
	}
	return valEql(a.UnionPayload(), b.UnionPayload(), ctx.Types.FieldType(ty, idx), ctx)
}

// unionFieldIndex maps an active tag value to the union field it selects.
func unionFieldIndex(tag Value, unionTy types.TypeID, ctx *Context) (int, bool) {
	info, ok := ctx.Types.UnionInfo(unionTy)
	if !ok {
		return 0, false
	}
	e, ok := internedEntry(tag, ctx)
	if !ok {
		return 0, false
	}
	var name source.StringID
	switch e.Tag {
	case intern.TagEnumTag:
		n, found := ctx.Types.EnumTagName(info.TagType, e.U64)
		if !found {
			return 0, false
		}
		name = n
	case intern.TagEnumLiteral:
		name = e.Name
	default:
		return 0, false
	}
	for i, f := range info.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// errorUnionParts normalizes the two error-union representations: the inline
// unwrapped payload and the interned error-or-payload entry. A zero payload
// with ok means the error state; the name is then the error's name.
func errorUnionParts(v Value, ctx *Context) (source.StringID, Value, bool) {
	if v.tag == TagEuPayload {
		return source.NoStringID, v.Payload(), true
	}
	e, ok := internedEntry(v, ctx)
	if !ok || e.Tag != intern.TagErrorUnion {
		return source.NoStringID, Value{}, false
	}
	if e.HasPayload {
		return source.NoStringID, MakeInterned(e.Payload), true
	}
	return e.Name, Value{}, true
}

// optionalParts normalizes the optional representations. A zero payload with
// ok means none.
func optionalParts(v Value, ctx *Context) (Value, bool) {
	if v.tag == TagOptPayload {
		return v.Payload(), true
	}
	e, ok := internedEntry(v, ctx)
	if !ok {
		return Value{}, false
	}
	switch e.Tag {
	case intern.TagOpt:
		if e.HasPayload {
			return MakeInterned(e.Payload), true
		}
		return Value{}, true
	case intern.TagNull:
		return Value{}, true
	default:
		return Value{}, false
	}
}

func ptrEql(a, b Value, ctx *Context) bool {
	ae, aok := internedEntry(a, ctx)
	be, bok := internedEntry(b, ctx)
	if !aok || !bok || ae.Tag != intern.TagPtr || be.Tag != intern.TagPtr {
		return false
	}
	return ptrEntryEql(ae, be, ctx)
}

func ptrIDEql(a, b intern.ValueID, ctx *Context) bool {
	if ctx.Pool.Same(a, b) {
		return true
	}
	ae, aok := ctx.Pool.Get(a)
	be, bok := ctx.Pool.Get(b)
	if !aok || !bok || ae.Tag != intern.TagPtr || be.Tag != intern.TagPtr {
		return false
	}
	return ptrEntryEql(ae, be, ctx)
}

func ptrEntryEql(ae, be intern.Entry, ctx *Context) bool {
	if ae.PtrKind != be.PtrKind {
		return false
	}
	switch ae.PtrKind {
	case intern.PtrAddrInt:
		return ae.U64 == be.U64
	case intern.PtrDecl, intern.PtrMutDecl:
		return ae.Decl == be.Decl
	case intern.PtrComptimeField:
		if ae.Ty != be.Ty {
			return false
		}
		return valEql(MakeInterned(ae.Payload), MakeInterned(be.Payload), ae.Ty, ctx)
	case intern.PtrEuPayload, intern.PtrOptPayload:
		return ptrIDEql(ae.Payload, be.Payload, ctx)
	case intern.PtrElem:
		return ae.U64 == be.U64 && ptrIDEql(ae.Payload, be.Payload, ctx)
	case intern.PtrField:
		return ae.FieldIndex == be.FieldIndex && ptrIDEql(ae.Payload, be.Payload, ctx)
	default:
		return false
	}
}

func internedEntry(v Value, ctx *Context) (intern.Entry, bool) {
	if v.tag != TagInterned {
		return intern.Entry{}, false
	}
	return ctx.Pool.Get(v.ip)
}

func isUndef(v Value, ctx *Context) bool {
	e, ok := internedEntry(v, ctx)
	return ok && e.Tag == intern.TagUndef
}
