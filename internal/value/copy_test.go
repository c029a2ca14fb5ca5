package value

import (
	"errors"
	"testing"

	"github.com/g2mt/zig/internal/arena"
	"github.com/g2mt/zig/internal/types"
)

func TestCopyRoundTrip(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	st := pointsType(t, ctx)
	arr := ctx.Types.Intern(types.MakeArray(b.U8, 3))

	cases := []TypedValue{
		Make(b.U64, intU64(t, ctx, 42)),
		Make(arr, MakeBytes([]byte{1, 2, 3})),
		Make(st, MakeAggregate([]Value{intU64(t, ctx, 1), intU64(t, ctx, 2)})),
		Make(arr, MakeRepeated(intU64(t, ctx, 0))),
	}
	a := arena.New()
	for i, tv := range cases {
		got, err := CopyTyped(tv, a)
		if err != nil {
			t.Fatalf("case %d: Copy: %v", i, err)
		}
		if !Eql(tv, got, ctx) {
			t.Errorf("case %d: copy not equal to source", i)
		}
	}
}

func TestCopyDoesNotShareStorage(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArray(b.U8, 3))

	buf := []byte{1, 2, 3}
	src := Make(arr, MakeBytes(buf))
	a := arena.New()
	got, err := CopyTyped(src, a)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}

	// Mutating the source buffer must not reach the copy.
	buf[0] = 99
	want := Make(arr, MakeBytes([]byte{1, 2, 3}))
	if !Eql(want, got, ctx) {
		t.Fatalf("copy shares byte storage with the source")
	}
}

func TestCopySurvivesSourceArenaRelease(t *testing.T) {
	ctx := newTestContext()
	st := pointsType(t, ctx)

	srcArena := arena.New()
	elems, err := arena.Make[Value](srcArena, 2)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	elems[0] = intU64(t, ctx, 3)
	elems[1] = intU64(t, ctx, 4)
	src := Make(st, MakeAggregate(elems))

	dstArena := arena.New()
	got, err := CopyTyped(src, dstArena)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	srcArena.Release()

	want := Make(st, MakeAggregate([]Value{intU64(t, ctx, 3), intU64(t, ctx, 4)}))
	if !Eql(want, got, ctx) {
		t.Fatalf("copy invalidated by releasing the source arena")
	}
}

func TestCopyBudgetExhaustion(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	arr := ctx.Types.Intern(types.MakeArray(b.U8, 64))

	tight := arena.NewWithBudget(8)
	src := Make(arr, MakeBytes(make([]byte, 64)))
	_, err := CopyTyped(src, tight)
	if !errors.Is(err, arena.ErrOutOfMemory) {
		t.Fatalf("want ErrOutOfMemory, got %v", err)
	}
}

func TestCopyNestedWrappers(t *testing.T) {
	ctx := newTestContext()
	b := ctx.Types.Builtins()
	opt := ctx.Types.Intern(types.MakeOptional(b.U8))

	src := Make(opt, MakeOptPayload(intU64(t, ctx, 7)))
	a := arena.New()
	got, err := CopyTyped(src, a)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !Eql(src, got, ctx) {
		t.Fatalf("wrapped payload copy not equal")
	}
}
