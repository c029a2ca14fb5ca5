package intern

import (
	"math/big"
	"slices"

	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

// Seeded singletons ----------------------------------------------------------

// Undef returns the explicitly-undefined value.
func (p *Pool) Undef() ValueID { return p.undef }

// RuntimeValue returns the marker for values only known at run time.
func (p *Pool) RuntimeValue() ValueID { return p.runtimeVal }

// Void returns the void value.
func (p *Pool) Void() ValueID { return p.voidVal }

// Null returns the null value.
func (p *Pool) Null() ValueID { return p.nullVal }

// Bool returns the interned true or false value.
func (p *Pool) Bool(b bool) ValueID {
	if b {
		return p.trueVal
	}
	return p.falseVal
}

// Unreachable returns the unreachable value.
func (p *Pool) Unreachable() ValueID { return p.unreachable }

// EmptyStruct returns the zero-field aggregate value.
func (p *Pool) EmptyStruct() ValueID { return p.emptyStruct }

// EmptyEnumValue returns the value of an enum with no declared tags.
func (p *Pool) EmptyEnumValue() ValueID { return p.emptyEnum }

// MemoizedCall returns the cached-call marker; it is never rendered directly.
func (p *Pool) MemoizedCall() ValueID { return p.memoized }

// OptNone returns the none state of an optional.
func (p *Pool) OptNone() (ValueID, error) {
	return p.intern(Entry{Tag: TagOpt})
}

// Scalars --------------------------------------------------------------------

// TypeValue interns a type used as a value.
func (p *Pool) TypeValue(t types.TypeID) (ValueID, error) {
	return p.intern(Entry{Tag: TagType, Ty: t})
}

// IntU64 interns an unsigned 64-bit integer storage.
func (p *Pool) IntU64(v uint64) (ValueID, error) {
	return p.intern(Entry{Tag: TagInt, Storage: IntU64, U64: v})
}

// IntI64 interns a signed 64-bit integer storage.
func (p *Pool) IntI64(v int64) (ValueID, error) {
	return p.intern(Entry{Tag: TagInt, Storage: IntI64, I64: v})
}

// IntBig interns an arbitrary-precision integer storage. The pool keeps its
// own copy; the argument stays owned by the caller.
func (p *Pool) IntBig(v *big.Int) (ValueID, error) {
	return p.intern(Entry{Tag: TagInt, Storage: IntBig, Big: new(big.Int).Set(v)})
}

// IntLazyAlign interns "the ABI alignment of t", resolved on demand.
func (p *Pool) IntLazyAlign(t types.TypeID) (ValueID, error) {
	return p.intern(Entry{Tag: TagInt, Storage: IntLazyAlign, Ty: t})
}

// IntLazySize interns "the ABI size of t", resolved on demand.
func (p *Pool) IntLazySize(t types.TypeID) (ValueID, error) {
	return p.intern(Entry{Tag: TagInt, Storage: IntLazySize, Ty: t})
}

// Float interns a floating-point value.
func (p *Pool) Float(f float64) (ValueID, error) {
	return p.intern(Entry{Tag: TagFloat, F: f})
}

// Err interns a bare error value by name.
func (p *Pool) Err(name source.StringID) (ValueID, error) {
	return p.intern(Entry{Tag: TagErr, Name: name})
}

// ErrorUnionErr interns the error state of an error union.
func (p *Pool) ErrorUnionErr(name source.StringID) (ValueID, error) {
	return p.intern(Entry{Tag: TagErrorUnion, Name: name})
}

// ErrorUnionPayload interns the success state of an error union.
func (p *Pool) ErrorUnionPayload(payload ValueID) (ValueID, error) {
	return p.intern(Entry{Tag: TagErrorUnion, Payload: payload, HasPayload: true})
}

// EnumTag interns an enum tag by its integer ordinal.
func (p *Pool) EnumTag(ordinal uint64) (ValueID, error) {
	return p.intern(Entry{Tag: TagEnumTag, U64: ordinal})
}

// EnumLiteral interns an untyped enum literal by name.
func (p *Pool) EnumLiteral(name source.StringID) (ValueID, error) {
	return p.intern(Entry{Tag: TagEnumLiteral, Name: name})
}

// OptPayload interns the some state of an optional.
func (p *Pool) OptPayload(payload ValueID) (ValueID, error) {
	return p.intern(Entry{Tag: TagOpt, Payload: payload, HasPayload: true})
}

// Pointer provenance ---------------------------------------------------------

// PtrInt interns an integer reinterpreted as an address.
func (p *Pool) PtrInt(addr uint64) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrAddrInt, U64: addr})
}

// PtrToDecl interns a pointer to a declaration's value.
func (p *Pool) PtrToDecl(decl DeclID) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrDecl, Decl: decl})
}

// PtrToMutDecl interns a pointer to a mutable declaration's value.
func (p *Pool) PtrToMutDecl(decl DeclID) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrMutDecl, Decl: decl})
}

// PtrToComptimeField interns a pointer materialized from a compile-time-known
// field value of the given type.
func (p *Pool) PtrToComptimeField(fieldVal ValueID, fieldTy types.TypeID) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrComptimeField, Payload: fieldVal, Ty: fieldTy})
}

// PtrToEuPayload interns a pointer into the payload of an error union whose
// own value is the base pointer expression.
func (p *Pool) PtrToEuPayload(base ValueID) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrEuPayload, Payload: base})
}

// PtrToOptPayload interns a pointer into the payload of an optional.
func (p *Pool) PtrToOptPayload(base ValueID) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrOptPayload, Payload: base})
}

// PtrToElem interns a pointer offset by a constant index from a base pointer.
func (p *Pool) PtrToElem(base ValueID, index uint64) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrElem, Payload: base, U64: index})
}

// PtrToField interns a pointer to a field of a base pointer. The container
// type decides how the field renders (struct/union by name, slice backing
// store by fixed index, tuple positionally).
func (p *Pool) PtrToField(base ValueID, container types.TypeID, fieldIndex uint32) (ValueID, error) {
	return p.intern(Entry{Tag: TagPtr, PtrKind: PtrField, Payload: base, Ty: container, FieldIndex: fieldIndex})
}

// Slice interns a slice value from its backing pointer and length values.
func (p *Pool) Slice(ptr, length ValueID) (ValueID, error) {
	return p.intern(Entry{Tag: TagSlice, Payload: ptr, Len: length})
}

// Aggregates -----------------------------------------------------------------

// AggregateBytes interns a byte-packed aggregate. The pool keeps its own copy.
func (p *Pool) AggregateBytes(b []byte) (ValueID, error) {
	return p.internRaw(Entry{Tag: TagAggregate, AggStorage: AggBytes, Bytes: slices.Clone(b)})
}

// AggregateElems interns a per-element aggregate. The pool keeps its own copy.
func (p *Pool) AggregateElems(elems []ValueID) (ValueID, error) {
	return p.internRaw(Entry{Tag: TagAggregate, AggStorage: AggElems, Elems: slices.Clone(elems)})
}

// AggregateRepeated interns an aggregate with one value standing for every
// element.
func (p *Pool) AggregateRepeated(elem ValueID) (ValueID, error) {
	return p.internRaw(Entry{Tag: TagAggregate, AggStorage: AggRepeated, Payload: elem})
}

// Declarations and functions -------------------------------------------------

// Variable interns a reference to a runtime variable declaration.
func (p *Pool) Variable(decl DeclID) (ValueID, error) {
	return p.intern(Entry{Tag: TagVariable, Decl: decl})
}

// ExternFunc interns an external function reference by name.
func (p *Pool) ExternFunc(name source.StringID) (ValueID, error) {
	return p.intern(Entry{Tag: TagExternFunc, Name: name})
}

// Func interns a function body reference.
func (p *Pool) Func(decl DeclID) (ValueID, error) {
	return p.intern(Entry{Tag: TagFunc, Decl: decl})
}
