package main

import (
	"fmt"

	"github.com/g2mt/zig/internal/decls"
	"github.com/g2mt/zig/internal/intern"
	"github.com/g2mt/zig/internal/layout"
	"github.com/g2mt/zig/internal/source"
	"github.com/g2mt/zig/internal/types"
	"github.com/g2mt/zig/internal/value"
)

type corpusEntry struct {
	Name string
	TV   value.TypedValue
}

// buildCorpus constructs a representative set of constant values, one per
// rendering shape, against a fresh context. Used to eyeball renderer output
// and to refresh golden expectations.
func buildCorpus() (*value.Context, []corpusEntry, error) {
	strs := source.NewInterner()
	ti := types.NewInterner()
	ctx := &value.Context{
		Strings: strs,
		Types:   ti,
		Pool:    intern.NewPool(),
		Decls:   decls.NewTable(),
		Layout:  layout.New(layout.X86_64LinuxGNU(), ti),
	}
	b := ti.Builtins()

	var entries []corpusEntry
	add := func(name string, tv value.TypedValue) {
		entries = append(entries, corpusEntry{Name: name, TV: tv})
	}
	mustInt := func(v uint64) value.Value {
		id, err := ctx.Pool.IntU64(v)
		if err != nil {
			panic(err)
		}
		return value.MakeInterned(id)
	}

	add("u64", value.Make(b.U64, mustInt(42)))

	negID, err := ctx.Pool.IntI64(-7)
	if err != nil {
		return nil, nil, err
	}
	add("i64", value.Make(b.I64, value.MakeInterned(negID)))

	floatID, err := ctx.Pool.Float(3.5)
	if err != nil {
		return nil, nil, err
	}
	add("f64", value.Make(b.F64, value.MakeInterned(floatID)))
	add("bool", value.Make(b.Bool, value.MakeInterned(ctx.Pool.Bool(true))))
	add("undefined", value.Make(b.U64, value.MakeInterned(ctx.Pool.Undef())))

	lazyID, err := ctx.Pool.IntLazySize(b.U64)
	if err != nil {
		return nil, nil, err
	}
	add("lazy size", value.Make(b.U64, value.MakeInterned(lazyID)))

	// String and fallback shapes.
	strTy := ti.Intern(types.MakeArraySentinel(b.U8, 5, 0))
	add("string", value.Make(strTy, value.MakeBytes([]byte("hello\x00"))))
	mixedTy := ti.Intern(types.MakeArray(b.U8, 3))
	add("bytes with undef", value.Make(mixedTy, value.MakeAggregate([]value.Value{
		mustInt(104),
		value.MakeInterned(ctx.Pool.Undef()),
		mustInt(105),
	})))
	wideTy := ti.Intern(types.MakeArray(b.I32, 200))
	add("repeated", value.Make(wideTy, value.MakeRepeated(mustInt(1))))

	// Nominal types.
	pointTy := ti.RegisterStruct(strs.Intern("Point"))
	ti.SetStructFields(pointTy, []types.StructField{
		{Name: strs.Intern("x"), Type: b.I32},
		{Name: strs.Intern("y"), Type: b.I32},
	})
	point := value.Make(pointTy, value.MakeAggregate([]value.Value{mustInt(3), mustInt(4)}))
	add("struct", point)

	colorTy := ti.RegisterEnum(strs.Intern("Color"), b.U8)
	ti.SetEnumFields(colorTy, []types.EnumField{
		{Name: strs.Intern("red"), Value: 0},
		{Name: strs.Intern("green"), Value: 1},
		{Name: strs.Intern("blue"), Value: 2},
	})
	tagID, err := ctx.Pool.EnumTag(1)
	if err != nil {
		return nil, nil, err
	}
	add("enum", value.Make(colorTy, value.MakeInterned(tagID)))
	strayID, err := ctx.Pool.EnumTag(9)
	if err != nil {
		return nil, nil, err
	}
	add("enum stray ordinal", value.Make(colorTy, value.MakeInterned(strayID)))

	shadeTy := ti.RegisterUnion(strs.Intern("Shade"))
	ti.SetUnionFields(shadeTy, colorTy, []types.UnionField{
		{Name: strs.Intern("red"), Type: b.U8},
		{Name: strs.Intern("green"), Type: b.U32},
		{Name: strs.Intern("blue"), Type: b.U8},
	})
	tag0, err := ctx.Pool.EnumTag(0)
	if err != nil {
		return nil, nil, err
	}
	add("union", value.Make(shadeTy, value.MakeUnion(value.MakeInterned(tag0), mustInt(9))))

	// Optionals and error unions.
	optTy := ti.Intern(types.MakeOptional(b.U64))
	none, err := ctx.Pool.OptNone()
	if err != nil {
		return nil, nil, err
	}
	add("optional none", value.Make(optTy, value.MakeInterned(none)))
	add("optional payload", value.Make(optTy, value.MakeOptPayload(mustInt(5))))

	setTy := ti.RegisterErrorSet(strs.Intern("IoError"), []source.StringID{
		strs.Intern("OutOfMemory"),
		strs.Intern("EndOfStream"),
	})
	euTy := ti.Intern(types.MakeErrorUnion(setTy, b.U64))
	errID, err := ctx.Pool.ErrorUnionErr(strs.Intern("OutOfMemory"))
	if err != nil {
		return nil, nil, err
	}
	add("error union error", value.Make(euTy, value.MakeInterned(errID)))
	add("error union payload", value.Make(euTy, value.MakeEuPayload(mustInt(1))))

	// Pointer provenance chain over a declared array of structs.
	arrTy := ti.Intern(types.MakeArray(pointTy, 4))
	ptrI32 := ti.Intern(types.MakePointer(b.I32))
	declID := ctx.Decls.Add(decls.Decl{Name: strs.Intern("points"), Ty: arrTy})
	base, err := ctx.Pool.PtrToDecl(declID)
	if err != nil {
		return nil, nil, err
	}
	elem, err := ctx.Pool.PtrToElem(base, 2)
	if err != nil {
		return nil, nil, err
	}
	field, err := ctx.Pool.PtrToField(elem, pointTy, 0)
	if err != nil {
		return nil, nil, err
	}
	add("pointer chain", value.Make(ptrI32, value.MakeInterned(field)))
	addrID, err := ctx.Pool.PtrInt(0x2a)
	if err != nil {
		return nil, nil, err
	}
	add("pointer address", value.Make(ptrI32, value.MakeInterned(addrID)))

	// Slice over a declared byte buffer.
	backing, err := ctx.Pool.AggregateBytes([]byte("hi"))
	if err != nil {
		return nil, nil, err
	}
	bufTy := ti.Intern(types.MakeArray(b.U8, 2))
	bufDecl := ctx.Decls.Add(decls.Decl{Name: strs.Intern("greeting"), Ty: bufTy, Val: backing})
	bufPtr, err := ctx.Pool.PtrToDecl(bufDecl)
	if err != nil {
		return nil, nil, err
	}
	lenID, err := ctx.Pool.IntU64(2)
	if err != nil {
		return nil, nil, err
	}
	sliceID, err := ctx.Pool.Slice(bufPtr, lenID)
	if err != nil {
		return nil, nil, err
	}
	add("slice", value.Make(ti.Intern(types.MakeSlice(b.U8)), value.MakeInterned(sliceID)))

	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("empty corpus")
	}
	return ctx, entries, nil
}
