package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/g2mt/zig/internal/source"
)

// UnionField describes a single variant inside a tagged union.
type UnionField struct {
	Name source.StringID
	Type TypeID
}

// UnionInfo stores metadata for a tagged union type. TagType, when present,
// is the enum whose ordinals select the active field.
type UnionInfo struct {
	Name    source.StringID
	TagType TypeID
	Fields  []UnionField
}

// RegisterUnion allocates a nominal union type slot and returns its TypeID.
func (in *Interner) RegisterUnion(name source.StringID) TypeID {
	slot := in.appendUnionInfo(UnionInfo{Name: name})
	return in.internRaw(Type{Kind: KindUnion, Payload: slot})
}

// SetUnionFields stores the resolved fields and tag enum for the union type.
func (in *Interner) SetUnionFields(typeID, tagType TypeID, fields []UnionField) {
	info := in.unionInfo(typeID)
	if info == nil {
		return
	}
	info.TagType = tagType
	info.Fields = cloneUnionFields(fields)
}

// UnionInfo returns metadata for the provided union TypeID.
func (in *Interner) UnionInfo(typeID TypeID) (*UnionInfo, bool) {
	info := in.unionInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// UnionTagType returns the tag enum of a tagged union.
func (in *Interner) UnionTagType(typeID TypeID) TypeID {
	info := in.unionInfo(typeID)
	if info == nil {
		return NoTypeID
	}
	return info.TagType
}

func (in *Interner) unionInfo(typeID TypeID) *UnionInfo {
	if typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindUnion {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.unions) {
		return nil
	}
	return &in.unions[tt.Payload]
}

func (in *Interner) appendUnionInfo(info UnionInfo) uint32 {
	in.unions = append(in.unions, UnionInfo{
		Name:    info.Name,
		TagType: info.TagType,
		Fields:  cloneUnionFields(info.Fields),
	})
	slot, err := safecast.Conv[uint32](len(in.unions) - 1)
	if err != nil {
		panic(fmt.Errorf("union info overflow: %w", err))
	}
	return slot
}

func cloneUnionFields(fields []UnionField) []UnionField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]UnionField, len(fields))
	copy(result, fields)
	return result
}
