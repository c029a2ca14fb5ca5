// Package intern stores compile-time value payloads behind compact ValueIDs.
// The pool is the long-lived tier of the value representation: entries are
// immutable once interned and outlive every copy arena.
package intern

import (
	"fmt"
	"math/big"

	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

// ValueID identifies an interned value payload.
type ValueID uint32

// NoValueID marks the absence of a value.
const NoValueID ValueID = 0

// DeclID identifies a declaration in the declaration table. It is declared
// here so pointer provenance entries can reference declarations without the
// pool depending on the table itself.
type DeclID uint32

// NoDeclID marks the absence of a declaration.
const NoDeclID DeclID = 0

// Tag enumerates the payload variants an interned value can carry.
type Tag uint8

const (
	TagInvalid Tag = iota
	TagType        // a type used as a value
	TagUndef
	TagRuntimeValue
	TagVoid
	TagNull
	TagBool
	TagUnreachable
	TagEmptyStruct
	TagEmptyEnumValue
	TagInt
	TagFloat
	TagErr
	TagErrorUnion
	TagEnumTag
	TagEnumLiteral
	TagOpt
	TagPtr
	TagSlice
	TagAggregate
	TagVariable
	TagExternFunc
	TagFunc
	TagMemoizedCall
)

func (t Tag) String() string {
	switch t {
	case TagInvalid:
		return "invalid"
	case TagType:
		return "type"
	case TagUndef:
		return "undef"
	case TagRuntimeValue:
		return "runtime_value"
	case TagVoid:
		return "void"
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagUnreachable:
		return "unreachable"
	case TagEmptyStruct:
		return "empty_struct"
	case TagEmptyEnumValue:
		return "empty_enum_value"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagErr:
		return "err"
	case TagErrorUnion:
		return "error_union"
	case TagEnumTag:
		return "enum_tag"
	case TagEnumLiteral:
		return "enum_literal"
	case TagOpt:
		return "opt"
	case TagPtr:
		return "ptr"
	case TagSlice:
		return "slice"
	case TagAggregate:
		return "aggregate"
	case TagVariable:
		return "variable"
	case TagExternFunc:
		return "extern_func"
	case TagFunc:
		return "func"
	case TagMemoizedCall:
		return "memoized_call"
	default:
		return fmt.Sprintf("Tag(%d)", t)
	}
}

// IntStorage discriminates how a TagInt entry stores its number.
type IntStorage uint8

const (
	// IntU64 stores an unsigned 64-bit value inline.
	IntU64 IntStorage = iota
	// IntI64 stores a signed 64-bit value inline.
	IntI64
	// IntBig stores an arbitrary-precision integer.
	IntBig
	// IntLazyAlign defers to the ABI alignment of a type.
	IntLazyAlign
	// IntLazySize defers to the ABI size of a type.
	IntLazySize
)

// AggStorage discriminates how a TagAggregate entry stores its elements.
type AggStorage uint8

const (
	// AggBytes packs every element into a byte buffer.
	AggBytes AggStorage = iota
	// AggElems stores one ValueID per element.
	AggElems
	// AggRepeated stores a single ValueID standing for every element.
	AggRepeated
)

// PtrKind discriminates the provenance of a TagPtr entry.
type PtrKind uint8

const (
	// PtrAddrInt is an integer reinterpreted as an address; terminal.
	PtrAddrInt PtrKind = iota
	// PtrDecl points at a named declaration's value.
	PtrDecl
	// PtrMutDecl points at a mutable declaration's value.
	PtrMutDecl
	// PtrComptimeField is materialized from a compile-time-known field value.
	PtrComptimeField
	// PtrEuPayload points into the payload of an error union.
	PtrEuPayload
	// PtrOptPayload points into the payload of an optional.
	PtrOptPayload
	// PtrElem offsets a base pointer by a constant index.
	PtrElem
	// PtrField selects a field of a base pointer.
	PtrField
)

// Entry is the stored payload of one interned value. Which fields are
// meaningful depends on Tag (and the storage discriminants for int,
// aggregate and pointer entries).
type Entry struct {
	Tag Tag

	Storage    IntStorage
	AggStorage AggStorage
	PtrKind    PtrKind

	B    bool           // TagBool
	U64  uint64         // IntU64, enum ordinal, pointer address, elem index
	I64  int64          // IntI64
	F    float64        // TagFloat
	Big  *big.Int       // IntBig; treated as immutable once interned
	Ty   types.TypeID   // TagType payload, lazy int operand, ptr field container/field type
	Name source.StringID // err name, enum literal, extern func name

	Payload    ValueID // error-union/optional payload, pointer base, repeated element, comptime field value, slice backing pointer
	Len        ValueID // slice length
	HasPayload bool    // TagErrorUnion/TagOpt: payload present vs error name/none
	Decl       DeclID  // PtrDecl/PtrMutDecl, TagVariable, TagFunc
	FieldIndex uint32  // PtrField
	Elems      []ValueID // AggElems
	Bytes      []byte    // AggBytes
}
