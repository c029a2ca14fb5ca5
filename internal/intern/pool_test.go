package intern

import (
	"errors"
	"math/big"
	"testing"

	"github.com/g2mt/zig/internal/source"
)

func TestScalarDeduplication(t *testing.T) {
	p := NewPool()
	a, err := p.IntU64(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.IntU64(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Same(a, b) {
		t.Fatalf("identical scalars must intern to the same ID")
	}
	c, _ := p.IntI64(42)
	if p.Same(a, c) {
		t.Fatalf("different storages must keep distinct identities")
	}
}

func TestBigIntDeduplication(t *testing.T) {
	p := NewPool()
	a, _ := p.IntBig(big.NewInt(1 << 40))
	b, _ := p.IntBig(big.NewInt(1 << 40))
	if !p.Same(a, b) {
		t.Fatalf("equal big integers must intern to the same ID")
	}
}

func TestBigIntIsCopied(t *testing.T) {
	p := NewPool()
	n := big.NewInt(7)
	id, _ := p.IntBig(n)
	n.SetInt64(99)
	e := p.MustGet(id)
	if e.Big.Int64() != 7 {
		t.Fatalf("pool must own its big.Int copy, got %v", e.Big)
	}
}

func TestAggregatesInternFresh(t *testing.T) {
	p := NewPool()
	one, _ := p.IntU64(1)
	a, _ := p.AggregateElems([]ValueID{one})
	b, _ := p.AggregateElems([]ValueID{one})
	if p.Same(a, b) {
		t.Fatalf("aggregates are not deduplicated by the pool")
	}
}

func TestSeededSingletons(t *testing.T) {
	p := NewPool()
	if p.Bool(true) == p.Bool(false) {
		t.Fatalf("true and false must be distinct")
	}
	if e := p.MustGet(p.Undef()); e.Tag != TagUndef {
		t.Fatalf("undef singleton has wrong tag %v", e.Tag)
	}
	if p.Same(p.Void(), p.Null()) {
		t.Fatalf("void and null must be distinct entities")
	}
}

func TestPoolBudget(t *testing.T) {
	p := NewPoolWithBudget(0)
	seeded := p.Len()
	p = NewPoolWithBudget(seeded + 1)
	if _, err := p.IntU64(1); err != nil {
		t.Fatalf("first entry within budget must succeed: %v", err)
	}
	if _, err := p.IntU64(2); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
	// Re-interning an existing scalar must not fail: no new entry needed.
	if _, err := p.IntU64(1); err != nil {
		t.Fatalf("dedup hit must not consume budget: %v", err)
	}
}

func TestProvenanceChain(t *testing.T) {
	p := NewPool()
	base, _ := p.PtrToDecl(DeclID(1))
	elem, _ := p.PtrToElem(base, 2)
	field, _ := p.PtrToField(elem, 0, 0)
	e := p.MustGet(field)
	if e.Tag != TagPtr || e.PtrKind != PtrField || e.Payload != elem {
		t.Fatalf("chain link lost: %+v", e)
	}
	if p.MustGet(e.Payload).Payload != base {
		t.Fatalf("chain must bottom out at the declaration pointer")
	}
}

func TestErrorUnionStates(t *testing.T) {
	p := NewPool()
	strs := source.NewInterner()
	errID, _ := p.ErrorUnionErr(strs.Intern("OutOfMemory"))
	payload, _ := p.IntU64(1)
	okID, _ := p.ErrorUnionPayload(payload)
	ee := p.MustGet(errID)
	oe := p.MustGet(okID)
	if ee.HasPayload || !oe.HasPayload {
		t.Fatalf("payload discriminant broken: %+v / %+v", ee, oe)
	}
}
