package value

import (
	"math/big"
	"testing"

	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

func TestEqlReflexiveAndSymmetric(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()

	vals := []TypedValue{
		Make(b.U64, intU64(t, ctx, 42)),
		Make(b.Bool, MakeInterned(ctx.Pool.Bool(true))),
		Make(b.Void, MakeInterned(ctx.Pool.Void())),
		Make(b.F64, mustID(t)(ctx.Pool.Float(3.5))),
	}
	for _, tv := range vals {
		if !Eql(tv, tv, ctx) {
			t.Errorf("value of type %d not equal to itself", tv.Ty)
		}
	}
	a := Make(b.U64, intU64(t, ctx, 1))
	c := Make(b.U64, intU64(t, ctx, 2))
	if Eql(a, c, ctx) != Eql(c, a, ctx) {
		t.Fatalf("equality is not symmetric")
	}
}

func TestEqlTypeIdentityRequired(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	v := intU64(t, ctx, 7)
	if Eql(Make(b.U64, v), Make(b.I64, v), ctx) {
		t.Fatalf("same payload under distinct types compared equal")
	}
}

func TestEqlIntStorageInvariance(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()

	asU64 := Make(b.U64, intU64(t, ctx, 42))
	asI64 := Make(b.U64, mustID(t)(ctx.Pool.IntI64(42)))
	asBig := Make(b.U64, mustID(t)(ctx.Pool.IntBig(big.NewInt(42))))

	if !Eql(asU64, asI64, ctx) || !Eql(asU64, asBig, ctx) || !Eql(asI64, asBig, ctx) {
		t.Fatalf("42 compared unequal across integer storages")
	}
	other := Make(b.U64, intU64(t, ctx, 43))
	if Eql(asBig, other, ctx) {
		t.Fatalf("42 equals 43")
	}
}

func TestEqlLazyStorageResolves(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()

	lazy := Make(b.U64, mustID(t)(ctx.Pool.IntLazySize(b.U64)))
	eager := Make(b.U64, intU64(t, ctx, 8))
	if !Eql(lazy, eager, ctx) {
		t.Fatalf("lazy size of u64 did not resolve to 8")
	}
	lazyAlign := Make(b.U64, mustID(t)(ctx.Pool.IntLazyAlign(b.U32)))
	four := Make(b.U64, intU64(t, ctx, 4))
	if !Eql(lazyAlign, four, ctx) {
		t.Fatalf("lazy align of u32 did not resolve to 4")
	}
}

func TestEqlAggregateStorageInvariance(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArray(b.U8, 3))

	asBytes := Make(arr, MakeBytes([]byte{1, 2, 3}))
	asElems := Make(arr, MakeAggregate([]Value{
		intU64(t, ctx, 1), intU64(t, ctx, 2), intU64(t, ctx, 3),
	}))
	e1, _ := ctx.Pool.IntU64(1)
	e2, _ := ctx.Pool.IntU64(2)
	e3, _ := ctx.Pool.IntU64(3)
	asPool := Make(arr, mustID(t)(ctx.Pool.AggregateElems([]intern.ValueID{e1, e2, e3})))
	asPoolBytes := Make(arr, mustID(t)(ctx.Pool.AggregateBytes([]byte{1, 2, 3})))

	forms := []TypedValue{asBytes, asElems, asPool, asPoolBytes}
	for i, x := range forms {
		for j, y := range forms {
			if !Eql(x, y, ctx) {
				t.Errorf("storage form %d != form %d", i, j)
			}
		}
	}

	different := Make(arr, MakeBytes([]byte{1, 2, 4}))
	if Eql(asBytes, different, ctx) {
		t.Fatalf("distinct byte contents compared equal")
	}
}

func TestEqlRepeatedElement(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArray(b.U8, 4))

	repeated := Make(arr, MakeRepeated(intU64(t, ctx, 9)))
	spelled := Make(arr, MakeBytes([]byte{9, 9, 9, 9}))
	if !Eql(repeated, spelled, ctx) {
		t.Fatalf("repeated element form != spelled-out form")
	}
	uneven := Make(arr, MakeBytes([]byte{9, 9, 8, 9}))
	if Eql(repeated, uneven, ctx) {
		t.Fatalf("repeated form matched unequal contents")
	}
}

func TestEqlUndef(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	undef := Make(b.U64, MakeInterned(ctx.Pool.Undef()))
	if !Eql(undef, undef, ctx) {
		t.Fatalf("undef != undef")
	}
	if Eql(undef, Make(b.U64, intU64(t, ctx, 0)), ctx) {
		t.Fatalf("undef equals a defined value")
	}
}

func TestEqlStructFields(t *testing.T) {
	ctx := newTestContext()
	st := pointsType(t, ctx)

	p1 := Make(st, MakeAggregate([]Value{intU64(t, ctx, 1), intU64(t, ctx, 2)}))
	p2 := Make(st, MakeAggregate([]Value{intU64(t, ctx, 1), intU64(t, ctx, 2)}))
	p3 := Make(st, MakeAggregate([]Value{intU64(t, ctx, 2), intU64(t, ctx, 1)}))
	if !Eql(p1, p2, ctx) {
		t.Fatalf("identical structs unequal")
	}
	if Eql(p1, p3, ctx) {
		t.Fatalf("field order ignored")
	}
}

func TestEqlOptionalStates(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	opt := ctx.Types.Intern(types.MakeOptional(b.U8))

	none, err := ctx.Pool.OptNone()
	if err != nil {
		t.Fatalf("OptNone: %v", err)
	}
	someID, _ := ctx.Pool.IntU64(5)
	some := mustID(t)(ctx.Pool.OptPayload(someID))

	tvNone := Make(opt, MakeInterned(none))
	tvNull := Make(opt, MakeInterned(ctx.Pool.Null()))
	tvSome := Make(opt, some)
	tvInline := Make(opt, MakeOptPayload(intU64(t, ctx, 5)))

	if !Eql(tvNone, tvNull, ctx) {
		t.Fatalf("opt none != null")
	}
	if Eql(tvNone, tvSome, ctx) {
		t.Fatalf("none equals payload")
	}
	if !Eql(tvSome, tvInline, ctx) {
		t.Fatalf("interned payload != inline payload wrapper")
	}
}

func TestEqlErrorUnionStates(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	oom := ctx.Strings.Intern("OutOfMemory")
	eof := ctx.Strings.Intern("EndOfStream")
	set := ctx.Types.RegisterErrorSet(ctx.Strings.Intern("IoError"), []source.StringID{oom, eof})
	eu := ctx.Types.Intern(types.MakeErrorUnion(set, b.U8))

	errA := Make(eu, mustID(t)(ctx.Pool.ErrorUnionErr(oom)))
	errB := Make(eu, mustID(t)(ctx.Pool.ErrorUnionErr(eof)))
	payloadID, _ := ctx.Pool.IntU64(1)
	okVal := Make(eu, mustID(t)(ctx.Pool.ErrorUnionPayload(payloadID)))
	okInline := Make(eu, MakeEuPayload(intU64(t, ctx, 1)))

	if Eql(errA, errB, ctx) {
		t.Fatalf("distinct errors equal")
	}
	if Eql(errA, okVal, ctx) {
		t.Fatalf("error state equals payload state")
	}
	if !Eql(okVal, okInline, ctx) {
		t.Fatalf("interned payload != inline wrapper")
	}
}

func TestEqlPointerProvenance(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	ptrTy := ctx.Types.Intern(types.MakePointer(b.I32))

	valID, _ := ctx.Pool.IntU64(10)
	d := ctx.Decls.Add(declOf(ctx, "g", b.I32, valID))

	declA := Make(ptrTy, mustID(t)(ctx.Pool.PtrToDecl(d)))
	declB := Make(ptrTy, mustID(t)(ctx.Pool.PtrToDecl(d)))
	if !Eql(declA, declB, ctx) {
		t.Fatalf("pointers to the same decl unequal")
	}

	baseID, _ := ctx.Pool.PtrToDecl(d)
	elem2a := Make(ptrTy, mustID(t)(ctx.Pool.PtrToElem(baseID, 2)))
	elem2b := Make(ptrTy, mustID(t)(ctx.Pool.PtrToElem(baseID, 2)))
	elem3 := Make(ptrTy, mustID(t)(ctx.Pool.PtrToElem(baseID, 3)))
	if !Eql(elem2a, elem2b, ctx) {
		t.Fatalf("identical element pointers unequal")
	}
	if Eql(elem2a, elem3, ctx) {
		t.Fatalf("pointers to different elements equal")
	}

	addr := Make(ptrTy, mustID(t)(ctx.Pool.PtrInt(0x1000)))
	if Eql(addr, declA, ctx) {
		t.Fatalf("address pointer equals decl pointer")
	}
}

func TestEqlUnion(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	en := colorEnum(t, ctx)
	un := ctx.Types.RegisterUnion(ctx.Strings.Intern("Shade"))
	ctx.Types.SetUnionFields(un, en, []types.UnionField{
		{Name: ctx.Strings.Intern("red"), Type: b.U8},
		{Name: ctx.Strings.Intern("green"), Type: b.U32},
		{Name: ctx.Strings.Intern("blue"), Type: b.U8},
	})

	tag0 := mustID(t)(ctx.Pool.EnumTag(0))
	tag1 := mustID(t)(ctx.Pool.EnumTag(1))
	a := Make(un, MakeUnion(tag0, intU64(t, ctx, 3)))
	aAgain := Make(un, MakeUnion(tag0, intU64(t, ctx, 3)))
	otherTag := Make(un, MakeUnion(tag1, intU64(t, ctx, 3)))
	otherPayload := Make(un, MakeUnion(tag0, intU64(t, ctx, 4)))

	if !Eql(a, aAgain, ctx) {
		t.Fatalf("identical union values unequal")
	}
	if Eql(a, otherTag, ctx) {
		t.Fatalf("different active tags equal")
	}
	if Eql(a, otherPayload, ctx) {
		t.Fatalf("different payloads equal")
	}
}
