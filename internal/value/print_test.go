package value

import (
	"bytes"
	"strings"
	"testing"

	"github.com/g2mt/zig/internal/types"
)

func renderStr(t *testing.T, tv TypedValue, depth int, ctx *Context) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, tv, depth, ctx); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func renderLimitedStr(t *testing.T, tv TypedValue, depth int, limits RenderLimits, ctx *Context) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderLimited(&buf, tv, depth, limits, ctx); err != nil {
		t.Fatalf("RenderLimited: %v", err)
	}
	return buf.String()
}

func TestRenderScalars(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	set := ctx.Types.RegisterErrorSet(ctx.Strings.Intern("IoError"), nil)

	mainDecl := ctx.Decls.Add(declOf(ctx, "main", b.U64, 0))

	cases := []struct {
		name string
		tv   TypedValue
		want string
	}{
		{"int", Make(b.U64, intU64(t, ctx, 42)), "42"},
		{"negative int", Make(b.I64, mustID(t)(ctx.Pool.IntI64(-7))), "-7"},
		{"bool", Make(b.Bool, MakeInterned(ctx.Pool.Bool(true))), "true"},
		{"float", Make(b.F64, mustID(t)(ctx.Pool.Float(3.5))), "3.5"},
		{"void", Make(b.Void, MakeInterned(ctx.Pool.Void())), "{}"},
		{"undef", Make(b.U64, MakeInterned(ctx.Pool.Undef())), "undefined"},
		{"runtime", Make(b.U64, MakeInterned(ctx.Pool.RuntimeValue())), "(runtime value)"},
		{"unreachable", Make(b.NoReturn, MakeInterned(ctx.Pool.Unreachable())), "unreachable"},
		{"type", Make(b.Type, mustID(t)(ctx.Pool.TypeValue(b.U8))), "u8"},
		{"error", Make(set, mustID(t)(ctx.Pool.Err(ctx.Strings.Intern("OutOfMemory")))), "error.OutOfMemory"},
		{"function", Make(b.U64, mustID(t)(ctx.Pool.Func(mainDecl))), "(function 'main')"},
		{"variable", Make(b.U64, mustID(t)(ctx.Pool.Variable(mainDecl))), "(variable)"},
		{"memoized", Make(b.U64, MakeInterned(ctx.Pool.MemoizedCall())), "(memoized call)"},
	}
	for _, tc := range cases {
		if got := renderStr(t, tc.tv, 3, ctx); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRenderEnum(t *testing.T) {
	ctx := newTestContext()
	en := colorEnum(t, ctx)

	named := Make(en, mustID(t)(ctx.Pool.EnumTag(1)))
	if got := renderStr(t, named, 1, ctx); got != ".green" {
		t.Errorf("named ordinal: got %q", got)
	}
	unknown := Make(en, mustID(t)(ctx.Pool.EnumTag(7)))
	if got := renderStr(t, unknown, 1, ctx); got != "@enumFromInt(u8, 7)" {
		t.Errorf("unknown ordinal: got %q", got)
	}
	if got := renderStr(t, named, 0, ctx); got != "(enum)" {
		t.Errorf("depth 0: got %q", got)
	}
}

func TestRenderDepthBound(t *testing.T) {
	ctx := newTestContext()
	pt := pointsType(t, ctx)
	outer := ctx.Types.RegisterStruct(ctx.Strings.Intern("Outer"))
	ctx.Types.SetStructFields(outer, []types.StructField{
		{Name: ctx.Strings.Intern("inner"), Type: pt},
	})

	inner := MakeAggregate([]Value{intU64(t, ctx, 1), intU64(t, ctx, 2)})
	tv := Make(outer, MakeAggregate([]Value{inner}))

	if got := renderStr(t, tv, 2, ctx); got != ".{ .inner = .{ .x = 1, .y = 2 } }" {
		t.Errorf("depth 2: got %q", got)
	}
	if got := renderStr(t, tv, 1, ctx); got != ".{ .inner = { ... } }" {
		t.Errorf("depth 1: got %q", got)
	}
	if got := renderStr(t, tv, 0, ctx); got != "{ ... }" {
		t.Errorf("depth 0: got %q", got)
	}
}

func TestRenderString(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArray(b.U8, 5))

	tv := Make(arr, MakeBytes([]byte("hello")))
	if got := renderStr(t, tv, 0, ctx); got != `"hello"` {
		t.Errorf("got %q", got)
	}
}

func TestRenderStringEscapes(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	raw := []byte("a\nb\"c\x01")
	arr := ctx.Types.Intern(types.MakeArray(b.U8, uint64(len(raw))))

	tv := Make(arr, MakeBytes(raw))
	want := `"a\nb\"c\x01"`
	if got := renderStr(t, tv, 0, ctx); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderStringSizeBounds(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()

	short := strings.Repeat("a", 150)
	arrShort := ctx.Types.Intern(types.MakeArray(b.U8, 150))
	if got := renderStr(t, Make(arrShort, MakeBytes([]byte(short))), 0, ctx); got != `"`+short+`"` {
		t.Errorf("150 bytes: got %d chars %q...", len(got), got[:16])
	}

	long := strings.Repeat("a", 300)
	arrLong := ctx.Types.Intern(types.MakeArray(b.U8, 300))
	want := `"` + strings.Repeat("a", 256) + `" (truncated)`
	if got := renderStr(t, Make(arrLong, MakeBytes([]byte(long))), 0, ctx); got != want {
		t.Errorf("300 bytes: got %d chars, want %d", len(got), len(want))
	}
}

func TestRenderStringFallback(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArray(b.U8, 3))

	// One undefined element disables string form for the whole sequence.
	tv := Make(arr, MakeAggregate([]Value{
		intU64(t, ctx, 104),
		MakeInterned(ctx.Pool.Undef()),
		intU64(t, ctx, 105),
	}))
	if got := renderStr(t, tv, 1, ctx); got != ".{ 104, undefined, 105 }" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSentinelStripped(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArraySentinel(b.U8, 5, 0))

	// Six stored bytes, five logical characters.
	tv := Make(arr, MakeBytes([]byte("hello\x00")))
	if got := renderStr(t, tv, 0, ctx); got != `"hello"` {
		t.Errorf("got %q", got)
	}
}

func TestRenderAggregateItemCap(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArray(b.I32, 5))

	tv := Make(arr, MakeRepeated(intU64(t, ctx, 1)))
	limits := RenderLimits{MaxAggregateItems: 3, MaxStringLen: 256}
	if got := renderLimitedStr(t, tv, 1, limits, ctx); got != ".{ 1, 1, 1, ... }" {
		t.Errorf("got %q", got)
	}
}

func TestRenderTuplePositional(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	tup := ctx.Types.RegisterTuple([]types.TypeID{b.U64, b.Bool})

	tv := Make(tup, MakeAggregate([]Value{
		intU64(t, ctx, 9),
		MakeInterned(ctx.Pool.Bool(false)),
	}))
	if got := renderStr(t, tv, 1, ctx); got != ".{ 9, false }" {
		t.Errorf("got %q", got)
	}
}

func TestRenderFieldNameEscaping(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	st := ctx.Types.RegisterStruct(ctx.Strings.Intern("Odd"))
	ctx.Types.SetStructFields(st, []types.StructField{
		{Name: ctx.Strings.Intern("not valid"), Type: b.U64},
		{Name: ctx.Strings.Intern("error"), Type: b.U64},
	})

	tv := Make(st, MakeAggregate([]Value{intU64(t, ctx, 1), intU64(t, ctx, 2)}))
	want := `.{ .@"not valid" = 1, .@"error" = 2 }`
	if got := renderStr(t, tv, 1, ctx); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderUnion(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	en := colorEnum(t, ctx)
	un := ctx.Types.RegisterUnion(ctx.Strings.Intern("Shade"))
	ctx.Types.SetUnionFields(un, en, []types.UnionField{
		{Name: ctx.Strings.Intern("red"), Type: b.U8},
		{Name: ctx.Strings.Intern("green"), Type: b.U32},
		{Name: ctx.Strings.Intern("blue"), Type: b.U8},
	})

	tv := Make(un, MakeUnion(mustID(t)(ctx.Pool.EnumTag(2)), intU64(t, ctx, 9)))
	if got := renderStr(t, tv, 2, ctx); got != ".{ .blue = 9 }" {
		t.Errorf("got %q", got)
	}
	if got := renderStr(t, tv, 0, ctx); got != "{ ... }" {
		t.Errorf("depth 0: got %q", got)
	}
}

func TestRenderPointerProvenance(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	pt := pointsType(t, ctx)
	ptrTy := ctx.Types.Intern(types.MakePointer(b.I32))

	d := ctx.Decls.Add(declOf(ctx, "points", ctx.Types.Intern(types.MakeArray(pt, 4)), 0))
	base, err := ctx.Pool.PtrToDecl(d)
	if err != nil {
		t.Fatalf("PtrToDecl: %v", err)
	}
	elem, err := ctx.Pool.PtrToElem(base, 2)
	if err != nil {
		t.Fatalf("PtrToElem: %v", err)
	}
	field := mustID(t)(ctx.Pool.PtrToField(elem, pt, 0))

	if got := renderStr(t, Make(ptrTy, field), 3, ctx); got != "points[2].x" {
		t.Errorf("field chain: got %q", got)
	}

	addr := Make(ptrTy, mustID(t)(ctx.Pool.PtrInt(42)))
	if got := renderStr(t, addr, 3, ctx); got != "0x0000002a" {
		t.Errorf("address: got %q", got)
	}

	optBase := mustID(t)(ctx.Pool.PtrToOptPayload(base))
	if got := renderStr(t, Make(ptrTy, optBase), 3, ctx); got != "points.?" {
		t.Errorf("optional payload: got %q", got)
	}
}

func TestRenderSliceFieldPointers(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	sliceTy := ctx.Types.Intern(types.MakeSlice(b.U8))
	ptrTy := ctx.Types.Intern(types.MakePointer(b.U8))

	d := ctx.Decls.Add(declOf(ctx, "buf", sliceTy, 0))
	base, err := ctx.Pool.PtrToDecl(d)
	if err != nil {
		t.Fatalf("PtrToDecl: %v", err)
	}
	ptrField := mustID(t)(ctx.Pool.PtrToField(base, sliceTy, 0))
	lenField := mustID(t)(ctx.Pool.PtrToField(base, sliceTy, 1))

	if got := renderStr(t, Make(ptrTy, ptrField), 3, ctx); got != "buf.ptr" {
		t.Errorf("ptr field: got %q", got)
	}
	if got := renderStr(t, Make(ptrTy, lenField), 3, ctx); got != "buf.len" {
		t.Errorf("len field: got %q", got)
	}
}

func TestRenderSlice(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	sliceTy := ctx.Types.Intern(types.MakeSlice(b.U8))

	backing, err := ctx.Pool.AggregateBytes([]byte("hi"))
	if err != nil {
		t.Fatalf("AggregateBytes: %v", err)
	}
	d := ctx.Decls.Add(declOf(ctx, "greeting", ctx.Types.Intern(types.MakeArray(b.U8, 2)), backing))
	ptr, err := ctx.Pool.PtrToDecl(d)
	if err != nil {
		t.Fatalf("PtrToDecl: %v", err)
	}
	length, err := ctx.Pool.IntU64(2)
	if err != nil {
		t.Fatalf("IntU64: %v", err)
	}
	tv := Make(sliceTy, mustID(t)(ctx.Pool.Slice(ptr, length)))
	if got := renderStr(t, tv, 1, ctx); got != `"hi"` {
		t.Errorf("got %q", got)
	}
}

func TestRenderOptionalAndErrorUnionWrappers(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	opt := ctx.Types.Intern(types.MakeOptional(b.U64))
	set := ctx.Types.RegisterErrorSet(ctx.Strings.Intern("E"), nil)
	eu := ctx.Types.Intern(types.MakeErrorUnion(set, b.U64))

	some := Make(opt, MakeOptPayload(intU64(t, ctx, 5)))
	if got := renderStr(t, some, 1, ctx); got != "5" {
		t.Errorf("optional payload: got %q", got)
	}
	none, err := ctx.Pool.OptNone()
	if err != nil {
		t.Fatalf("OptNone: %v", err)
	}
	if got := renderStr(t, Make(opt, MakeInterned(none)), 1, ctx); got != "null" {
		t.Errorf("optional none: got %q", got)
	}

	okVal := Make(eu, MakeEuPayload(intU64(t, ctx, 6)))
	if got := renderStr(t, okVal, 1, ctx); got != "6" {
		t.Errorf("error union payload: got %q", got)
	}
	bad := Make(eu, mustID(t)(ctx.Pool.ErrorUnionErr(ctx.Strings.Intern("Broken"))))
	if got := renderStr(t, bad, 1, ctx); got != "error.Broken" {
		t.Errorf("error union error: got %q", got)
	}
}
