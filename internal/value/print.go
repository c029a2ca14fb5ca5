package value

import (
	"fmt"
	"io"
	"strconv"

	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

// RenderLimits bound the output size of a single render call independently of
// the recursion depth budget.
type RenderLimits struct {
	// MaxAggregateItems caps how many elements or fields of one aggregate are
	// printed before ", ...".
	MaxAggregateItems int
	// MaxStringLen caps how many bytes of a string render before the
	// truncation marker.
	MaxStringLen int
}

// DefaultRenderLimits returns the limits Render uses.
func DefaultRenderLimits() RenderLimits {
	return RenderLimits{MaxAggregateItems: 100, MaxStringLen: 256}
}

// ptrChainBound guards pointer provenance traversal; chains are finite by
// construction, so hitting the bound means a corrupted pool.
const ptrChainBound = 256

// Render writes a human-readable form of tv to w, descending at most depth
// levels into compound values. Output never panics on malformed or partially
// resolved values; anything the renderer cannot interpret degrades to a
// placeholder. Errors are sink write failures and pool exhaustion while
// materializing derived elements.
func Render(w io.Writer, tv TypedValue, depth int, ctx *Context) error {
	return RenderLimited(w, tv, depth, DefaultRenderLimits(), ctx)
}

// RenderLimited is Render with explicit size limits.
func RenderLimited(w io.Writer, tv TypedValue, depth int, limits RenderLimits, ctx *Context) error {
	p := &printer{w: w, limits: limits, ctx: ctx}
	return p.value(tv.Val, tv.Ty, depth)
}

type printer struct {
	w      io.Writer
	limits RenderLimits
	ctx    *Context
}

func (p *printer) value(v Value, ty types.TypeID, depth int) error {
	// Unwrap payload wrappers one step at a time; the wrapper itself prints
	// nothing, the payload prints under the payload type.
	for {
		switch v.tag {
		case TagEuPayload:
			ty = p.ctx.Types.ErrorUnionPayload(ty)
			v = v.Payload()
			depth--
			continue
		case TagOptPayload:
			ty = p.ctx.Types.OptionalChild(ty)
			v = v.Payload()
			depth--
			continue
		case TagInterned:
			e, ok := p.ctx.Pool.Get(v.ip)
			if !ok {
				return p.str("(invalid)")
			}
			switch e.Tag {
			case intern.TagErrorUnion:
				if e.HasPayload {
					ty = p.ctx.Types.ErrorUnionPayload(ty)
					v = MakeInterned(e.Payload)
					depth--
					continue
				}
			case intern.TagOpt:
				if e.HasPayload {
					ty = p.ctx.Types.OptionalChild(ty)
					v = MakeInterned(e.Payload)
					depth--
					continue
				}
			}
		}
		break
	}

	switch v.tag {
	case TagInvalid:
		return p.str("(invalid)")
	case TagAggregate, TagBytes, TagRepeated:
		return p.aggregate(v, ty, depth)
	case TagUnion:
		return p.union(v, ty, depth)
	case TagInterned:
		return p.interned(v, ty, depth)
	default:
		return p.str("(invalid)")
	}
}

func (p *printer) interned(v Value, ty types.TypeID, depth int) error {
	e, ok := p.ctx.Pool.Get(v.ip)
	if !ok {
		return p.str("(invalid)")
	}
	switch e.Tag {
	case intern.TagUndef:
		return p.str("undefined")
	case intern.TagRuntimeValue:
		return p.str("(runtime value)")
	case intern.TagVoid:
		return p.str("{}")
	case intern.TagNull:
		return p.str("null")
	case intern.TagBool:
		if e.B {
			return p.str("true")
		}
		return p.str("false")
	case intern.TagUnreachable:
		return p.str("unreachable")
	case intern.TagEmptyStruct:
		return p.str(".{}")
	case intern.TagEmptyEnumValue:
		return p.str("(empty enum value)")
	case intern.TagType:
		return p.str(types.Label(p.ctx.Types, p.ctx.Strings, e.Ty))
	case intern.TagInt:
		n, err := resolveInt(e, p.ctx)
		if err != nil {
			return err
		}
		return p.str(n.String())
	case intern.TagFloat:
		return p.str(strconv.FormatFloat(e.F, 'g', -1, 64))
	case intern.TagErr:
		return p.errName(e.Name)
	case intern.TagErrorUnion:
		// Payload case unwrapped by the caller loop.
		return p.errName(e.Name)
	case intern.TagEnumTag:
		return p.enumTag(e.U64, ty, depth)
	case intern.TagEnumLiteral:
		if err := p.str("."); err != nil {
			return err
		}
		return p.ident(e.Name)
	case intern.TagOpt:
		// Payload case unwrapped by the caller loop.
		return p.str("null")
	case intern.TagPtr:
		return p.ptrEntry(e, depth, ptrChainBound)
	case intern.TagSlice:
		return p.slice(e, ty, depth)
	case intern.TagAggregate:
		return p.aggregate(v, ty, depth)
	case intern.TagVariable:
		return p.str("(variable)")
	case intern.TagExternFunc:
		return p.str("(extern function)")
	case intern.TagFunc:
		return p.funcRef(e.Decl)
	case intern.TagMemoizedCall:
		return p.str("(memoized call)")
	default:
		return p.str("(invalid)")
	}
}

func (p *printer) enumTag(ordinal uint64, ty types.TypeID, depth int) error {
	if depth <= 0 {
		return p.str("(enum)")
	}
	if name, ok := p.ctx.Types.EnumTagName(ty, ordinal); ok {
		if err := p.str("."); err != nil {
			return err
		}
		return p.ident(name)
	}
	// Unknown ordinal renders as the cast that would produce it.
	underlying := p.ctx.Types.EnumUnderlying(ty)
	label := types.Label(p.ctx.Types, p.ctx.Strings, underlying)
	_, err := fmt.Fprintf(p.w, "@enumFromInt(%s, %d)", label, ordinal)
	return err
}

func (p *printer) funcRef(decl intern.DeclID) error {
	if p.ctx.Decls != nil {
		if d, ok := p.ctx.Decls.Get(decl); ok {
			if name, ok := p.ctx.Strings.Lookup(d.Name); ok {
				_, err := fmt.Fprintf(p.w, "(function '%s')", name)
				return err
			}
		}
	}
	return p.str("(function)")
}

func (p *printer) errName(name source.StringID) error {
	if err := p.str("error."); err != nil {
		return err
	}
	return p.ident(name)
}

// Aggregates -----------------------------------------------------------------

func (p *printer) aggregate(v Value, ty types.TypeID, depth int) error {
	tt, ok := p.ctx.Types.Lookup(ty)
	if !ok {
		return p.str("{ ... }")
	}
	switch tt.Kind {
	case types.KindArray, types.KindVector:
		return p.sequence(v, int(tt.Len), tt, depth)
	case types.KindSlice:
		// Inline aggregate under a slice type: length is the element count.
		return p.sequence(v, p.inlineLen(v), tt, depth)
	case types.KindStruct:
		return p.structVal(v, ty, depth)
	default:
		return p.str("{ ... }")
	}
}

func (p *printer) inlineLen(v Value) int {
	switch v.tag {
	case TagAggregate:
		return len(v.elems)
	case TagBytes:
		return len(v.bytes)
	case TagInterned:
		if e, ok := p.ctx.Pool.Get(v.ip); ok && e.Tag == intern.TagAggregate {
			switch e.AggStorage {
			case intern.AggElems:
				return len(e.Elems)
			case intern.AggBytes:
				return len(e.Bytes)
			}
		}
	}
	return 0
}

// sequence renders n elements of an array, vector or slice value. A byte
// element type first attempts string form; any element that is not a defined
// in-range byte falls the whole sequence back to the element list.
func (p *printer) sequence(v Value, n int, tt types.Type, depth int) error {
	if p.ctx.Types.IsByte(tt.Elem) {
		s, ok, err := p.stringBytes(v, n)
		if err != nil {
			return err
		}
		if ok {
			return p.quoted(s)
		}
	}
	if depth <= 0 {
		return p.str("{ ... }")
	}
	if n == 0 {
		return p.str(".{}")
	}
	if err := p.str(".{ "); err != nil {
		return err
	}
	shown := n
	capped := false
	if p.limits.MaxAggregateItems > 0 && shown > p.limits.MaxAggregateItems {
		shown = p.limits.MaxAggregateItems
		capped = true
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			if err := p.str(", "); err != nil {
				return err
			}
		}
		elem, err := ElemValue(v, i, p.ctx)
		if err != nil {
			return err
		}
		if elem.IsZero() {
			if err := p.str("(unknown)"); err != nil {
				return err
			}
			continue
		}
		if err := p.value(elem, tt.Elem, depth-1); err != nil {
			return err
		}
	}
	if capped {
		if err := p.str(", ..."); err != nil {
			return err
		}
	}
	return p.str(" }")
}

// stringBytes collects the sequence's bytes when every element is a defined
// byte value. The whole sequence is scanned; a single bad element disables
// string form entirely rather than producing a partial string.
func (p *printer) stringBytes(v Value, n int) ([]byte, bool, error) {
	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		if b, ok := byteAt(v, i, p.ctx); ok {
			buf = append(buf, b)
			continue
		}
		elem, err := ElemValue(v, i, p.ctx)
		if err != nil {
			return nil, false, err
		}
		e, ok := internedEntry(elem, p.ctx)
		if !ok || e.Tag != intern.TagInt {
			return nil, false, nil
		}
		bn := mustResolveInt(e, p.ctx)
		if !bn.IsUint64() || bn.Uint64() > 0xff {
			return nil, false, nil
		}
		buf = append(buf, byte(bn.Uint64()))
	}
	return buf, true, nil
}

func (p *printer) quoted(s []byte) error {
	truncated := false
	if p.limits.MaxStringLen > 0 && len(s) > p.limits.MaxStringLen {
		s = s[:p.limits.MaxStringLen]
		truncated = true
	}
	if err := p.str("\"" + escapeString(s) + "\""); err != nil {
		return err
	}
	if truncated {
		return p.str(" (truncated)")
	}
	return nil
}

func (p *printer) structVal(v Value, ty types.TypeID, depth int) error {
	if depth <= 0 {
		return p.str("{ ... }")
	}
	n := p.ctx.Types.FieldCount(ty)
	if n == 0 {
		return p.str(".{}")
	}
	tuple := p.ctx.Types.IsTuple(ty)
	if err := p.str(".{ "); err != nil {
		return err
	}
	shown := n
	capped := false
	if p.limits.MaxAggregateItems > 0 && shown > p.limits.MaxAggregateItems {
		shown = p.limits.MaxAggregateItems
		capped = true
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			if err := p.str(", "); err != nil {
				return err
			}
		}
		if !tuple {
			name, _ := p.ctx.Types.FieldName(ty, i)
			if err := p.str("."); err != nil {
				return err
			}
			if err := p.ident(name); err != nil {
				return err
			}
			if err := p.str(" = "); err != nil {
				return err
			}
		}
		field, err := ElemValue(v, i, p.ctx)
		if err != nil {
			return err
		}
		if field.IsZero() {
			if err := p.str("(unknown)"); err != nil {
				return err
			}
			continue
		}
		if err := p.value(field, p.ctx.Types.FieldType(ty, i), depth-1); err != nil {
			return err
		}
	}
	if capped {
		if err := p.str(", ..."); err != nil {
			return err
		}
	}
	return p.str(" }")
}

func (p *printer) union(v Value, ty types.TypeID, depth int) error {
	if depth <= 0 {
		return p.str("{ ... }")
	}
	idx, ok := unionFieldIndex(v.UnionTag(), ty, p.ctx)
	if !ok {
		return p.str("{ ... }")
	}
	name, _ := p.ctx.Types.FieldName(ty, idx)
	if err := p.str(".{ ."); err != nil {
		return err
	}
	if err := p.ident(name); err != nil {
		return err
	}
	if err := p.str(" = "); err != nil {
		return err
	}
	if err := p.value(v.UnionPayload(), p.ctx.Types.FieldType(ty, idx), depth-1); err != nil {
		return err
	}
	return p.str(" }")
}

// Slices ---------------------------------------------------------------------

func (p *printer) slice(e intern.Entry, ty types.TypeID, depth int) error {
	le, ok := p.ctx.Pool.Get(e.Len)
	if !ok || le.Tag != intern.TagInt {
		return p.str("{ ... }")
	}
	n, err := resolveInt(le, p.ctx)
	if err != nil {
		return err
	}
	if !n.IsUint64() {
		return p.str("{ ... }")
	}
	backing, ok := derefPtr(e.Payload, p.ctx)
	if !ok {
		return p.str("{ ... }")
	}
	tt, ok := p.ctx.Types.Lookup(ty)
	if !ok {
		return p.str("{ ... }")
	}
	return p.sequence(backing, int(n.Uint64()), tt, depth)
}

// Pointers -------------------------------------------------------------------

func (p *printer) ptrEntry(e intern.Entry, depth, bound int) error {
	if bound <= 0 || depth < 0 {
		return p.str("...")
	}
	switch e.PtrKind {
	case intern.PtrAddrInt:
		_, err := fmt.Fprintf(p.w, "0x%08x", e.U64)
		return err
	case intern.PtrDecl, intern.PtrMutDecl:
		if d, ok := p.ctx.Decls.Get(e.Decl); ok {
			return p.ident(d.Name)
		}
		return p.str("(decl)")
	case intern.PtrComptimeField:
		return p.value(MakeInterned(e.Payload), e.Ty, depth)
	case intern.PtrEuPayload:
		return p.ptrBase(e.Payload, depth-1, bound-1)
	case intern.PtrOptPayload:
		if err := p.ptrBase(e.Payload, depth-1, bound-1); err != nil {
			return err
		}
		return p.str(".?")
	case intern.PtrElem:
		if err := p.ptrBase(e.Payload, depth-1, bound-1); err != nil {
			return err
		}
		_, err := fmt.Fprintf(p.w, "[%d]", e.U64)
		return err
	case intern.PtrField:
		if err := p.ptrBase(e.Payload, depth-1, bound-1); err != nil {
			return err
		}
		return p.fieldSuffix(e.Ty, int(e.FieldIndex))
	default:
		return p.str("(pointer)")
	}
}

func (p *printer) ptrBase(id intern.ValueID, depth, bound int) error {
	e, ok := p.ctx.Pool.Get(id)
	if !ok || e.Tag != intern.TagPtr {
		return p.str("(pointer)")
	}
	return p.ptrEntry(e, depth, bound)
}

// fieldSuffix writes the access suffix a field pointer shows for its
// container: named fields by name, tuples positionally, the two synthetic
// slice backing fields as .ptr and .len.
func (p *printer) fieldSuffix(container types.TypeID, index int) error {
	tt, ok := p.ctx.Types.Lookup(container)
	if !ok {
		_, err := fmt.Fprintf(p.w, "[%d]", index)
		return err
	}
	switch tt.Kind {
	case types.KindSlice:
		if index == 0 {
			return p.str(".ptr")
		}
		return p.str(".len")
	case types.KindStruct:
		if p.ctx.Types.IsTuple(container) {
			_, err := fmt.Fprintf(p.w, "[%d]", index)
			return err
		}
		fallthrough
	case types.KindUnion:
		if name, ok := p.ctx.Types.FieldName(container, index); ok {
			if err := p.str("."); err != nil {
				return err
			}
			return p.ident(name)
		}
		_, err := fmt.Fprintf(p.w, "[%d]", index)
		return err
	default:
		_, err := fmt.Fprintf(p.w, "[%d]", index)
		return err
	}
}

// Lexical helpers ------------------------------------------------------------

func (p *printer) str(s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}

// ident writes a name, escaping it as @"..." when it is not a valid bare
// identifier.
func (p *printer) ident(name source.StringID) error {
	s, ok := p.ctx.Strings.Lookup(name)
	if !ok {
		return p.str("(unnamed)")
	}
	if isValidIdent(s) {
		return p.str(s)
	}
	return p.str("@\"" + escapeString([]byte(s)) + "\"")
}

func isValidIdent(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return !keywords[s]
}

var keywords = map[string]bool{
	"addrspace": true, "align": true, "allowzero": true, "and": true,
	"anyframe": true, "anytype": true, "asm": true, "async": true,
	"await": true, "break": true, "callconv": true, "catch": true,
	"comptime": true, "const": true, "continue": true, "defer": true,
	"else": true, "enum": true, "errdefer": true, "error": true,
	"export": true, "extern": true, "fn": true, "for": true, "if": true,
	"inline": true, "linksection": true, "noalias": true, "noinline": true,
	"nosuspend": true, "opaque": true, "or": true, "orelse": true,
	"packed": true, "pub": true, "resume": true, "return": true,
	"struct": true, "suspend": true, "switch": true, "test": true,
	"threadlocal": true, "try": true, "union": true, "unreachable": true,
	"usingnamespace": true, "var": true, "volatile": true, "while": true,
}

func escapeString(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch {
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c == '\t':
			out = append(out, '\\', 't')
		case c == '\\':
			out = append(out, '\\', '\\')
		case c == '"':
			out = append(out, '\\', '"')
		case c >= 0x20 && c < 0x7f:
			out = append(out, c)
		default:
			out = append(out, []byte(fmt.Sprintf("\\x%02x", c))...)
		}
	}
	return string(out)
}
