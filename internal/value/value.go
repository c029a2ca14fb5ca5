// Package value implements the typed constant-value layer: the
// representation of compile-time values, structural equality and hashing,
// arena-scoped deep copy, and bounded diagnostic rendering.
package value

import (
	"fmt"

	"github.com/g2mt/zig/internal/decls"
	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/layout"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

// Tag identifies the representation of a Value.
type Tag uint8

const (
	// TagInvalid represents an invalid value.
	TagInvalid Tag = iota
	// TagInterned references a payload in the intern pool.
	TagInterned
	// TagAggregate stores one value per field or element inline.
	TagAggregate
	// TagUnion stores an active tag and its payload inline.
	TagUnion
	// TagBytes stores a raw byte buffer inline.
	TagBytes
	// TagRepeated stores one value standing for every element.
	TagRepeated
	// TagEuPayload stores the unwrapped payload of an error union.
	TagEuPayload
	// TagOptPayload stores the unwrapped payload of an optional.
	TagOptPayload
)

func (t Tag) String() string {
	switch t {
	case TagInvalid:
		return "invalid"
	case TagInterned:
		return "interned"
	case TagAggregate:
		return "aggregate"
	case TagUnion:
		return "union"
	case TagBytes:
		return "bytes"
	case TagRepeated:
		return "repeated"
	case TagEuPayload:
		return "eu_payload"
	case TagOptPayload:
		return "opt_payload"
	default:
		return fmt.Sprintf("Tag(%d)", t)
	}
}

// Value is a compile-time constant in one of two representational tiers:
// a small set of inline payloads, or a reference into the intern pool.
// A Value's meaning is only defined relative to its paired type.
type Value struct {
	tag   Tag
	ip    intern.ValueID
	elems []Value // TagAggregate
	sub   *Value  // TagRepeated/TagEuPayload/TagOptPayload element, TagUnion payload
	aux   *Value  // TagUnion active tag
	bytes []byte  // TagBytes
}

// Tag returns the representation discriminant.
func (v Value) Tag() Tag {
	return v.tag
}

// IsZero reports whether the value is the invalid zero Value.
func (v Value) IsZero() bool {
	return v.tag == TagInvalid
}

// Interned returns the pool key of a TagInterned value.
func (v Value) Interned() intern.ValueID {
	return v.ip
}

// Elems returns the inline field/element values of a TagAggregate value.
func (v Value) Elems() []Value {
	return v.elems
}

// Bytes returns the inline buffer of a TagBytes value.
func (v Value) Bytes() []byte {
	return v.bytes
}

// RepeatedElem returns the element standing for every position of a
// TagRepeated value.
func (v Value) RepeatedElem() Value {
	return *v.sub
}

// Payload returns the wrapped value of a TagEuPayload or TagOptPayload value.
func (v Value) Payload() Value {
	return *v.sub
}

// UnionTag returns the active tag value of a TagUnion value.
func (v Value) UnionTag() Value {
	return *v.aux
}

// UnionPayload returns the active field value of a TagUnion value.
func (v Value) UnionPayload() Value {
	return *v.sub
}

// Constructors ---------------------------------------------------------------

// MakeInterned wraps a pool key as a Value.
func MakeInterned(id intern.ValueID) Value {
	return Value{tag: TagInterned, ip: id}
}

// MakeAggregate creates an inline aggregate from per-field values.
func MakeAggregate(elems []Value) Value {
	return Value{tag: TagAggregate, elems: elems}
}

// MakeUnion creates an inline union value from its active tag and payload.
func MakeUnion(tag, payload Value) Value {
	return Value{tag: TagUnion, aux: &tag, sub: &payload}
}

// MakeBytes creates an inline byte-buffer value. The buffer is owned by the
// value; callers must not mutate it afterwards.
func MakeBytes(b []byte) Value {
	return Value{tag: TagBytes, bytes: b}
}

// MakeRepeated creates a value standing for every element of a sequence.
func MakeRepeated(elem Value) Value {
	return Value{tag: TagRepeated, sub: &elem}
}

// MakeEuPayload wraps the success payload of an error union; the error-union
// wrapper is implicit in the paired type.
func MakeEuPayload(payload Value) Value {
	return Value{tag: TagEuPayload, sub: &payload}
}

// MakeOptPayload wraps the payload of an optional; the optional wrapper is
// implicit in the paired type.
func MakeOptPayload(payload Value) Value {
	return Value{tag: TagOptPayload, sub: &payload}
}

// Context bundles the read-only collaborators every operation needs. It is
// passed explicitly so signatures state exactly what they consult; nothing in
// this package reaches for ambient state.
type Context struct {
	Strings *source.Interner
	Types   *types.Interner
	Pool    *intern.Pool
	Decls   *decls.Table
	Layout  *layout.Engine
}
