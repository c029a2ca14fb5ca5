package types

import (
	"fmt"
	"strings"

	"github.com/g2mt/zig/internal/source"
)

// Label returns a user-friendly label for a TypeID, used in diagnostics such
// as the cast-from-integer enum rendering.
func Label(typesIn *Interner, strs *source.Interner, id TypeID) string {
	return labelDepth(typesIn, strs, id, 0)
}

func labelDepth(typesIn *Interner, strs *source.Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
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
		if tt.Signed {
			return fmt.Sprintf("i%d", tt.Bits)
		}
		return fmt.Sprintf("u%d", tt.Bits)
	case KindFloat:
		return fmt.Sprintf("f%d", tt.Bits)
	case KindArray:
		elem := labelDepth(typesIn, strs, tt.Elem, depth+1)
		if tt.HasSentinel {
			return fmt.Sprintf("[%d:%d]%s", tt.Len, tt.Sentinel, elem)
		}
		return fmt.Sprintf("[%d]%s", tt.Len, elem)
	case KindVector:
		return fmt.Sprintf("@Vector(%d, %s)", tt.Len, labelDepth(typesIn, strs, tt.Elem, depth+1))
	case KindSlice:
		return "[]" + labelDepth(typesIn, strs, tt.Elem, depth+1)
	case KindPointer:
		return "*" + labelDepth(typesIn, strs, tt.Elem, depth+1)
	case KindOptional:
		return "?" + labelDepth(typesIn, strs, tt.Elem, depth+1)
	case KindErrorSet:
		return formatErrorSetLabel(typesIn, strs, id)
	case KindErrorUnion:
		errLabel := labelDepth(typesIn, strs, tt.Extra, depth+1)
		return errLabel + "!" + labelDepth(typesIn, strs, tt.Elem, depth+1)
	case KindStruct:
		if info, ok := typesIn.StructInfo(id); ok {
			if info.Tuple {
				return formatTupleLabel(typesIn, strs, info, depth)
			}
			if name := lookupName(strs, info.Name); name != "" {
				return name
			}
		}
		return "struct"
	case KindUnion:
		if info, ok := typesIn.UnionInfo(id); ok {
			if name := lookupName(strs, info.Name); name != "" {
				return name
			}
		}
		return "union"
	case KindEnum:
		if info, ok := typesIn.EnumInfo(id); ok {
			if name := lookupName(strs, info.Name); name != "" {
				return name
			}
		}
		return "enum"
	case KindFn:
		return "fn"
	default:
		return "?"
	}
}

func formatTupleLabel(typesIn *Interner, strs *source.Interner, info *StructInfo, depth int) string {
	parts := make([]string, len(info.Fields))
	for i, f := range info.Fields {
		parts[i] = labelDepth(typesIn, strs, f.Type, depth+1)
	}
	return "struct{" + strings.Join(parts, ", ") + "}"
}

func formatErrorSetLabel(typesIn *Interner, strs *source.Interner, id TypeID) string {
	info, ok := typesIn.ErrorSetInfo(id)
	if !ok {
		return "error{}"
	}
	if name := lookupName(strs, info.Name); name != "" {
		return name
	}
	parts := make([]string, len(info.Errors))
	for i, e := range info.Errors {
		parts[i] = lookupName(strs, e)
	}
	return "error{" + strings.Join(parts, ",") + "}"
}

func lookupName(strs *source.Interner, id source.StringID) string {
	if strs == nil || id == source.NoStringID {
		return ""
	}
	name, _ := strs.Lookup(id)
	return name
}
