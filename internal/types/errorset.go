package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/g2mt/zig/internal/source"
)

// ErrorSetInfo stores the declared error names of an error-set type.
type ErrorSetInfo struct {
	Name   source.StringID
	Errors []source.StringID
}

// RegisterErrorSet allocates an error-set type slot and returns its TypeID.
func (in *Interner) RegisterErrorSet(name source.StringID, errors []source.StringID) TypeID {
	slot := in.appendErrorSetInfo(ErrorSetInfo{Name: name, Errors: cloneStringIDs(errors)})
	return in.internRaw(Type{Kind: KindErrorSet, Payload: slot})
}

// ErrorSetInfo returns metadata for the provided error-set TypeID.
func (in *Interner) ErrorSetInfo(typeID TypeID) (*ErrorSetInfo, bool) {
	info := in.errorSetInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// ErrorSetContains reports whether the error set declares the given name.
func (in *Interner) ErrorSetContains(typeID TypeID, name source.StringID) bool {
	info := in.errorSetInfo(typeID)
	if info == nil {
		return false
	}
	for _, e := range info.Errors {
		if e == name {
			return true
		}
	}
	return false
}

func (in *Interner) errorSetInfo(typeID TypeID) *ErrorSetInfo {
	if typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindErrorSet {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.errsets) {
		return nil
	}
	return &in.errsets[tt.Payload]
}

func (in *Interner) appendErrorSetInfo(info ErrorSetInfo) uint32 {
	in.errsets = append(in.errsets, info)
	slot, err := safecast.Conv[uint32](len(in.errsets) - 1)
	if err != nil {
		panic(fmt.Errorf("error set info overflow: %w", err))
	}
	return slot
}

func cloneStringIDs(ids []source.StringID) []source.StringID {
	if len(ids) == 0 {
		return nil
	}
	result := make([]source.StringID, len(ids))
	copy(result, ids)
	return result
}
