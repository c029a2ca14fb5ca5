package value

import (
	"testing"

	"github.com/g2mt/zig/internal/decls"
	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/layout"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
)

func newTestContext() *Context {
	strs := source.NewInterner()
	ti := types.NewInterner()
	return &Context{
		Strings: strs,
		Types:   ti,
		Pool:    intern.NewPool(),
		Decls:   decls.NewTable(),
		Layout:  layout.New(layout.X86_64LinuxGNU(), ti),
	}
}

func mustID(t *testing.T) func(id intern.ValueID, err error) Value {
	return func(id intern.ValueID, err error) Value {
		t.Helper()
		if err != nil {
			t.Fatalf("intern failed: %v", err)
		}
		return MakeInterned(id)
	}
}

func intU64(t *testing.T, ctx *Context, v uint64) Value {
	t.Helper()
	return mustID(t)(ctx.Pool.IntU64(v))
}

func declOf(ctx *Context, name string, ty types.TypeID, val intern.ValueID) decls.Decl {
	return decls.Decl{Name: ctx.Strings.Intern(name), Ty: ty, Val: val}
}

// pointsType registers struct Point{x: i32, y: i32} and returns its TypeID.
func pointsType(t *testing.T, ctx *Context) types.TypeID {
	t.Helper()
	b := ctx.Types.Builtins()
	st := ctx.Types.RegisterStruct(ctx.Strings.Intern("Point"))
	ctx.Types.SetStructFields(st, []types.StructField{
		{Name: ctx.Strings.Intern("x"), Type: b.I32},
		{Name: ctx.Strings.Intern("y"), Type: b.I32},
	})
	return st
}

// colorEnum registers enum Color{red=0, green=1, blue=2} over u8.
func colorEnum(t *testing.T, ctx *Context) types.TypeID {
	t.Helper()
	b := ctx.Types.Builtins()
	en := ctx.Types.RegisterEnum(ctx.Strings.Intern("Color"), b.U8)
	ctx.Types.SetEnumFields(en, []types.EnumField{
		{Name: ctx.Strings.Intern("red"), Value: 0},
		{Name: ctx.Strings.Intern("green"), Value: 1},
		{Name: ctx.Strings.Intern("blue"), Value: 2},
	})
	return en
}
