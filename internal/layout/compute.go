package layout

import (
	"math"

	"fortio.org/safecast"

	"github.com/g2mt/zig/internal/types"
)

func (e *Engine) computeLayout(id types.TypeID, state *layoutState) (TypeLayout, *Error) {
	typesIn := e.Types
	if typesIn == nil || id == types.NoTypeID {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, nil
	}

	switch tt.Kind {
	case types.KindVoid, types.KindType, types.KindComptimeInt, types.KindComptimeFloat:
		// Zero-bit and comptime-only types occupy no runtime storage.
		return TypeLayout{Size: 0, Align: 1}, nil

	case types.KindBool:
		return TypeLayout{Size: 1, Align: 1}, nil

	case types.KindNoReturn, types.KindFn:
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrUnsized, Type: id}

	case types.KindInt:
		size := intStorageBytes(tt.Bits)
		return TypeLayout{Size: size, Align: alignForSize(size)}, nil

	case types.KindFloat:
		size := intStorageBytes(tt.Bits)
		return TypeLayout{Size: size, Align: alignForSize(size)}, nil

	case types.KindPointer:
		return TypeLayout{Size: e.Target.PtrSize, Align: e.Target.PtrAlign}, nil

	case types.KindSlice:
		// Backing pointer plus usize length.
		return TypeLayout{Size: 2 * e.Target.PtrSize, Align: e.Target.PtrAlign}, nil

	case types.KindErrorSet:
		return TypeLayout{Size: 2, Align: 2}, nil

	case types.KindEnum:
		underlying := typesIn.EnumUnderlying(id)
		if underlying == types.NoTypeID {
			return TypeLayout{Size: 1, Align: 1}, nil
		}
		return e.layoutOf(underlying, state)

	case types.KindArray, types.KindVector:
		elem, err := e.layoutOf(tt.Elem, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		count := tt.Len
		if tt.HasSentinel {
			count++
		}
		total, overflow := mulSize(elem.Size, count)
		if overflow {
			return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrSizeOverflow, Type: id}
		}
		return TypeLayout{Size: total, Align: elem.Align}, nil

	case types.KindOptional:
		child, err := e.layoutOf(tt.Elem, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		childKind := types.KindInvalid
		if ct, ok := typesIn.Lookup(tt.Elem); ok {
			childKind = ct.Kind
		}
		// Optional pointers use the null address as the none state.
		if childKind == types.KindPointer {
			return child, nil
		}
		size := alignUp(child.Size+1, child.Align)
		return TypeLayout{Size: size, Align: child.Align}, nil

	case types.KindErrorUnion:
		payload, err := e.layoutOf(tt.Elem, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		errSet, err := e.layoutOf(tt.Extra, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		align := max(payload.Align, errSet.Align)
		size := alignUp(alignUp(payload.Size, errSet.Align)+errSet.Size, align)
		return TypeLayout{Size: size, Align: align}, nil

	case types.KindStruct:
		return e.layoutStruct(id, state)

	case types.KindUnion:
		return e.layoutUnion(id, state)

	default:
		return TypeLayout{Size: 0, Align: 1}, nil
	}
}

func (e *Engine) layoutStruct(id types.TypeID, state *layoutState) (TypeLayout, *Error) {
	info, ok := e.Types.StructInfo(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	offset := 0
	align := 1
	offsets := make([]int, 0, len(info.Fields))
	aligns := make([]int, 0, len(info.Fields))
	for _, f := range info.Fields {
		fl, err := e.layoutOf(f.Type, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		offset = alignUp(offset, fl.Align)
		offsets = append(offsets, offset)
		aligns = append(aligns, fl.Align)
		offset += fl.Size
		align = max(align, fl.Align)
	}
	return TypeLayout{
		Size:         alignUp(offset, align),
		Align:        align,
		FieldOffsets: offsets,
		FieldAligns:  aligns,
	}, nil
}

func (e *Engine) layoutUnion(id types.TypeID, state *layoutState) (TypeLayout, *Error) {
	info, ok := e.Types.UnionInfo(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	payloadSize := 0
	align := 1
	for _, f := range info.Fields {
		fl, err := e.layoutOf(f.Type, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		payloadSize = max(payloadSize, fl.Size)
		align = max(align, fl.Align)
	}
	tagSize := 0
	if info.TagType != types.NoTypeID {
		tl, err := e.layoutOf(info.TagType, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		tagSize = tl.Size
		align = max(align, tl.Align)
	}
	return TypeLayout{Size: alignUp(payloadSize+tagSize, align), Align: align}, nil
}

// intStorageBytes returns the ABI store size of an integer or float with the
// given bit width: the byte count rounded up to the next power of two.
func intStorageBytes(bits uint16) int {
	if bits == 0 {
		return 0
	}
	bytes := (int(bits) + 7) / 8
	size := 1
	for size < bytes {
		size *= 2
	}
	return size
}

// alignForSize caps natural alignment at 16 bytes.
func alignForSize(size int) int {
	if size == 0 {
		return 1
	}
	if size > 16 {
		return 16
	}
	return size
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + align - rem
}

func mulSize(elem int, count uint64) (int, bool) {
	if elem == 0 || count == 0 {
		return 0, false
	}
	if count > uint64(math.MaxInt)/uint64(elem) {
		return 0, true
	}
	total, err := safecast.Conv[int](uint64(elem) * count)
	if err != nil {
		return 0, true
	}
	return total, false
}
