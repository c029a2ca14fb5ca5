package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/g2mt/zig/internal/source"
)

// StructField describes a single field inside a struct type.
type StructField struct {
	Name source.StringID
	Type TypeID
}

// StructInfo stores metadata for a struct type.
type StructInfo struct {
	Name   source.StringID
	Tuple  bool
	Fields []StructField
}

// RegisterStruct allocates a nominal struct type slot and returns its TypeID.
func (in *Interner) RegisterStruct(name source.StringID) TypeID {
	slot := in.appendStructInfo(StructInfo{Name: name})
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// RegisterTuple allocates an anonymous tuple type slot and returns its TypeID.
func (in *Interner) RegisterTuple(fields []TypeID) TypeID {
	info := StructInfo{Tuple: true}
	for _, ft := range fields {
		info.Fields = append(info.Fields, StructField{Type: ft})
	}
	slot := in.appendStructInfo(info)
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// SetStructFields stores the resolved field descriptors for the struct type.
func (in *Interner) SetStructFields(typeID TypeID, fields []StructField) {
	info := in.structInfo(typeID)
	if info == nil {
		return
	}
	info.Fields = cloneStructFields(fields)
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(typeID TypeID) (*StructInfo, bool) {
	info := in.structInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// IsTuple reports whether the struct renders positionally.
func (in *Interner) IsTuple(typeID TypeID) bool {
	info := in.structInfo(typeID)
	return info != nil && info.Tuple
}

// FieldCount returns the number of declared fields for structs and unions.
func (in *Interner) FieldCount(typeID TypeID) int {
	if info := in.structInfo(typeID); info != nil {
		return len(info.Fields)
	}
	if info := in.unionInfo(typeID); info != nil {
		return len(info.Fields)
	}
	return 0
}

// FieldName returns the declared name of the field at index for structs and
// unions. Tuples have no field names.
func (in *Interner) FieldName(typeID TypeID, index int) (source.StringID, bool) {
	if info := in.structInfo(typeID); info != nil {
		if info.Tuple || index < 0 || index >= len(info.Fields) {
			return source.NoStringID, false
		}
		return info.Fields[index].Name, true
	}
	if info := in.unionInfo(typeID); info != nil {
		if index < 0 || index >= len(info.Fields) {
			return source.NoStringID, false
		}
		return info.Fields[index].Name, true
	}
	return source.NoStringID, false
}

// FieldType returns the type of the field at index for structs and unions.
func (in *Interner) FieldType(typeID TypeID, index int) TypeID {
	if info := in.structInfo(typeID); info != nil {
		if index < 0 || index >= len(info.Fields) {
			return NoTypeID
		}
		return info.Fields[index].Type
	}
	if info := in.unionInfo(typeID); info != nil {
		if index < 0 || index >= len(info.Fields) {
			return NoTypeID
		}
		return info.Fields[index].Type
	}
	return NoTypeID
}

func (in *Interner) structInfo(typeID TypeID) *StructInfo {
	if typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindStruct {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.structs) {
		return nil
	}
	return &in.structs[tt.Payload]
}

func (in *Interner) appendStructInfo(info StructInfo) uint32 {
	in.structs = append(in.structs, StructInfo{
		Name:   info.Name,
		Tuple:  info.Tuple,
		Fields: cloneStructFields(info.Fields),
	})
	slot, err := safecast.Conv[uint32](len(in.structs) - 1)
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	return slot
}

func cloneStructFields(fields []StructField) []StructField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]StructField, len(fields))
	copy(result, fields)
	return result
}
