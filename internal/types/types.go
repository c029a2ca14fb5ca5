package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindNoReturn
	KindType
	KindComptimeInt
	KindComptimeFloat
	KindInt
	KindFloat
	KindArray
	KindVector
	KindSlice
	KindPointer
	KindOptional
	KindErrorSet
	KindErrorUnion
	KindStruct
	KindUnion
	KindEnum
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindNoReturn:
		return "noreturn"
	case KindType:
		return "type"
	case KindComptimeInt:
		return "comptime_int"
	case KindComptimeFloat:
		return "comptime_float"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindArray:
		return "array"
	case KindVector:
		return "vector"
	case KindSlice:
		return "slice"
	case KindPointer:
		return "pointer"
	case KindOptional:
		return "optional"
	case KindErrorSet:
		return "error_set"
	case KindErrorUnion:
		return "error_union"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type. Aggregate kinds store
// their metadata in side tables addressed by Payload.
type Type struct {
	Kind        Kind
	Elem        TypeID // array/vector/slice/pointer/optional element, error-union payload
	Extra       TypeID // error-union error set
	Len         uint64 // array/vector length
	Bits        uint16 // int/float bit width
	Signed      bool   // for KindInt
	HasSentinel bool   // arrays/slices with a declared terminating element
	Sentinel    uint64 // numeric sentinel value when HasSentinel
	Payload     uint32 // side-table slot for struct/union/enum/error-set
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a fixed-width integer type.
func MakeInt(signed bool, bits uint16) Type {
	return Type{Kind: KindInt, Signed: signed, Bits: bits}
}

// MakeFloat describes a floating-point type of the given width.
func MakeFloat(bits uint16) Type {
	return Type{Kind: KindFloat, Bits: bits}
}

// MakeArray describes [len]elem.
func MakeArray(elem TypeID, length uint64) Type {
	return Type{Kind: KindArray, Elem: elem, Len: length}
}

// MakeArraySentinel describes [len:sentinel]elem with a numeric sentinel.
func MakeArraySentinel(elem TypeID, length, sentinel uint64) Type {
	return Type{Kind: KindArray, Elem: elem, Len: length, HasSentinel: true, Sentinel: sentinel}
}

// MakeVector describes @Vector(len, elem).
func MakeVector(elem TypeID, length uint64) Type {
	return Type{Kind: KindVector, Elem: elem, Len: length}
}

// MakeSlice describes []elem.
func MakeSlice(elem TypeID) Type {
	return Type{Kind: KindSlice, Elem: elem}
}

// MakePointer describes *elem.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeOptional describes ?child.
func MakeOptional(child TypeID) Type {
	return Type{Kind: KindOptional, Elem: child}
}

// MakeErrorUnion describes errSet!payload.
func MakeErrorUnion(errSet, payload TypeID) Type {
	return Type{Kind: KindErrorUnion, Elem: payload, Extra: errSet}
}
