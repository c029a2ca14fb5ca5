package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/g2mt/zig/internal/source"
)

// EnumField stores one named ordinal of an enum type.
type EnumField struct {
	Name  source.StringID
	Value uint64
}

// EnumInfo stores metadata for an enum type. Underlying is the integer type
// the tag is stored as.
type EnumInfo struct {
	Name       source.StringID
	Underlying TypeID
	Fields     []EnumField
}

// RegisterEnum allocates a nominal enum type slot and returns its TypeID.
func (in *Interner) RegisterEnum(name source.StringID, underlying TypeID) TypeID {
	slot := in.appendEnumInfo(EnumInfo{Name: name, Underlying: underlying})
	return in.internRaw(Type{Kind: KindEnum, Payload: slot})
}

// SetEnumFields stores the resolved named ordinals for the enum type.
func (in *Interner) SetEnumFields(typeID TypeID, fields []EnumField) {
	info := in.enumInfo(typeID)
	if info == nil {
		return
	}
	info.Fields = cloneEnumFields(fields)
}

// EnumInfo returns metadata for the provided enum TypeID.
func (in *Interner) EnumInfo(typeID TypeID) (*EnumInfo, bool) {
	info := in.enumInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// EnumUnderlying returns the integer type backing the enum tag.
func (in *Interner) EnumUnderlying(typeID TypeID) TypeID {
	info := in.enumInfo(typeID)
	if info == nil {
		return NoTypeID
	}
	return info.Underlying
}

// EnumTagName maps a stored ordinal back to its declared name. The second
// result is false for out-of-range ordinals of non-exhaustive or corrupted
// tags; callers degrade to a cast-from-integer rendering.
func (in *Interner) EnumTagName(typeID TypeID, ordinal uint64) (source.StringID, bool) {
	info := in.enumInfo(typeID)
	if info == nil {
		return source.NoStringID, false
	}
	for _, f := range info.Fields {
		if f.Value == ordinal {
			return f.Name, true
		}
	}
	return source.NoStringID, false
}

// EnumTagOrdinal maps a declared name to its ordinal.
func (in *Interner) EnumTagOrdinal(typeID TypeID, name source.StringID) (uint64, bool) {
	info := in.enumInfo(typeID)
	if info == nil {
		return 0, false
	}
	for _, f := range info.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

func (in *Interner) enumInfo(typeID TypeID) *EnumInfo {
	if typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindEnum {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.enums) {
		return nil
	}
	return &in.enums[tt.Payload]
}

func (in *Interner) appendEnumInfo(info EnumInfo) uint32 {
	in.enums = append(in.enums, EnumInfo{
		Name:       info.Name,
		Underlying: info.Underlying,
		Fields:     cloneEnumFields(info.Fields),
	})
	slot, err := safecast.Conv[uint32](len(in.enums) - 1)
	if err != nil {
		panic(fmt.Errorf("enum info overflow: %w", err))
	}
	return slot
}

func cloneEnumFields(fields []EnumField) []EnumField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]EnumField, len(fields))
	copy(result, fields)
	return result
}
