package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid       TypeID
	Void          TypeID
	Bool          TypeID
	NoReturn      TypeID
	Type          TypeID
	ComptimeInt   TypeID
	ComptimeFloat TypeID
	U8            TypeID
	I32           TypeID
	U32           TypeID
	I64           TypeID
	U64           TypeID
	Usize         TypeID
	F64           TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Nominal kinds (struct, union, enum, error set) allocate a fresh slot per
// registration; structural kinds deduplicate through the descriptor map.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	structs  []StructInfo
	unions   []UnionInfo
	enums    []EnumInfo
	errsets  []ErrorSetInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	in.structs = append(in.structs, StructInfo{}) // reserve 0 as invalid sentinel
	in.unions = append(in.unions, UnionInfo{})
	in.enums = append(in.enums, EnumInfo{})
	in.errsets = append(in.errsets, ErrorSetInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.NoReturn = in.Intern(Type{Kind: KindNoReturn})
	in.builtins.Type = in.Intern(Type{Kind: KindType})
	in.builtins.ComptimeInt = in.Intern(Type{Kind: KindComptimeInt})
	in.builtins.ComptimeFloat = in.Intern(Type{Kind: KindComptimeFloat})
	in.builtins.U8 = in.Intern(MakeInt(false, 8))
	in.builtins.I32 = in.Intern(MakeInt(true, 32))
	in.builtins.U32 = in.Intern(MakeInt(false, 32))
	in.builtins.I64 = in.Intern(MakeInt(true, 64))
	in.builtins.U64 = in.Intern(MakeInt(false, 64))
	in.builtins.Usize = in.Intern(MakeInt(false, 64))
	in.builtins.F64 = in.Intern(MakeFloat(64))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Queries used by pipeline layers --------------------------------------------

// IsByte reports whether id denotes u8, the element type that switches
// sequence rendering into string form.
func (in *Interner) IsByte(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindInt && !tt.Signed && tt.Bits == 8
}

// ElemType returns the element/child type for arrays, vectors, slices,
// pointers and optionals, and the payload type for error unions.
func (in *Interner) ElemType(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch tt.Kind {
	case KindArray, KindVector, KindSlice, KindPointer, KindOptional, KindErrorUnion:
		return tt.Elem
	default:
		return NoTypeID
	}
}

// ArrayLen returns the declared length for arrays and vectors.
func (in *Interner) ArrayLen(id TypeID) (uint64, bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0, false
	}
	switch tt.Kind {
	case KindArray, KindVector:
		return tt.Len, true
	default:
		return 0, false
	}
}

// SentinelValue returns the declared numeric sentinel for the sequence type.
func (in *Interner) SentinelValue(id TypeID) (uint64, bool) {
	tt, ok := in.Lookup(id)
	if !ok || !tt.HasSentinel {
		return 0, false
	}
	return tt.Sentinel, true
}

// ErrorUnionPayload returns the payload type of an error union.
func (in *Interner) ErrorUnionPayload(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindErrorUnion {
		return NoTypeID
	}
	return tt.Elem
}

// ErrorUnionSet returns the error-set type of an error union.
func (in *Interner) ErrorUnionSet(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindErrorUnion {
		return NoTypeID
	}
	return tt.Extra
}

// OptionalChild returns the child type of an optional.
func (in *Interner) OptionalChild(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindOptional {
		return NoTypeID
	}
	return tt.Elem
}
