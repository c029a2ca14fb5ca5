package intern

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrPoolExhausted is returned when interning would exceed the pool's entry
// budget. It is the out-of-memory channel of lazily materialized elements.
var ErrPoolExhausted = errors.New("intern: pool exhausted")

// Pool stores value payloads behind stable ValueIDs. Scalar payloads are
// deduplicated through a descriptor map; aggregate payloads always get a
// fresh ID (structural equality is the value layer's job).
type Pool struct {
	entries    []Entry
	index      map[entryKey]ValueID
	maxEntries int

	undef       ValueID
	runtimeVal  ValueID
	voidVal     ValueID
	nullVal     ValueID
	trueVal     ValueID
	falseVal    ValueID
	unreachable ValueID
	emptyStruct ValueID
	emptyEnum   ValueID
	memoized    ValueID
}

// NewPool constructs a pool seeded with the singleton simple values.
func NewPool() *Pool {
	return NewPoolWithBudget(0)
}

// NewPoolWithBudget constructs a pool that refuses to grow past maxEntries
// (0 means unlimited). Seeded singletons do not count against the budget.
func NewPoolWithBudget(maxEntries int) *Pool {
	p := &Pool{
		index: make(map[entryKey]ValueID, 64),
	}
	p.entries = append(p.entries, Entry{}) // reserve 0 as invalid sentinel
	p.undef = p.mustSeed(Entry{Tag: TagUndef})
	p.runtimeVal = p.mustSeed(Entry{Tag: TagRuntimeValue})
	p.voidVal = p.mustSeed(Entry{Tag: TagVoid})
	p.nullVal = p.mustSeed(Entry{Tag: TagNull})
	p.trueVal = p.mustSeed(Entry{Tag: TagBool, B: true})
	p.falseVal = p.mustSeed(Entry{Tag: TagBool, B: false})
	p.unreachable = p.mustSeed(Entry{Tag: TagUnreachable})
	p.emptyStruct = p.mustSeed(Entry{Tag: TagEmptyStruct})
	p.emptyEnum = p.mustSeed(Entry{Tag: TagEmptyEnumValue})
	p.memoized = p.mustSeed(Entry{Tag: TagMemoizedCall})
	p.maxEntries = maxEntries
	return p
}

func (p *Pool) mustSeed(e Entry) ValueID {
	id, err := p.intern(e)
	if err != nil {
		panic(err)
	}
	return id
}

// Len returns the number of pool entries, the invalid slot included.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Get returns the payload for a ValueID.
func (p *Pool) Get(id ValueID) (Entry, bool) {
	if id == NoValueID || int(id) >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[id], true
}

// MustGet panics when id is invalid.
func (p *Pool) MustGet(id ValueID) Entry {
	e, ok := p.Get(id)
	if !ok {
		panic("intern: invalid ValueID")
	}
	return e
}

// Same reports whether two keys denote the same interned entity. This is the
// equality fast path; false does not imply structural inequality.
func (p *Pool) Same(a, b ValueID) bool {
	return a != NoValueID && a == b
}

func (p *Pool) intern(e Entry) (ValueID, error) {
	if key, ok := scalarKey(e); ok {
		if id, found := p.index[key]; found {
			return id, nil
		}
		id, err := p.internRaw(e)
		if err != nil {
			return NoValueID, err
		}
		p.index[key] = id
		return id, nil
	}
	return p.internRaw(e)
}

func (p *Pool) internRaw(e Entry) (ValueID, error) {
	if p.maxEntries > 0 && len(p.entries) >= p.maxEntries {
		return NoValueID, ErrPoolExhausted
	}
	lenEntries, err := safecast.Conv[uint32](len(p.entries))
	if err != nil {
		panic(fmt.Errorf("len(entries) overflow: %w", err))
	}
	id := ValueID(lenEntries)
	p.entries = append(p.entries, e)
	return id, nil
}

type entryKey struct {
	Tag        Tag
	Storage    IntStorage
	PtrKind    PtrKind
	B          bool
	U64        uint64
	I64        int64
	F          float64
	BigText    string
	Ty         uint32
	Name       uint32
	Payload    ValueID
	Len        ValueID
	HasPayload bool
	Decl       DeclID
	FieldIndex uint32
}

// scalarKey builds a comparable dedup key. Aggregate payloads (element lists
// and byte buffers) are excluded and always intern fresh.
func scalarKey(e Entry) (entryKey, bool) {
	if e.Tag == TagAggregate {
		return entryKey{}, false
	}
	key := entryKey{
		Tag:        e.Tag,
		Storage:    e.Storage,
		PtrKind:    e.PtrKind,
		B:          e.B,
		U64:        e.U64,
		I64:        e.I64,
		F:          e.F,
		Ty:         uint32(e.Ty),
		Name:       uint32(e.Name),
		Payload:    e.Payload,
		Len:        e.Len,
		HasPayload: e.HasPayload,
		Decl:       e.Decl,
		FieldIndex: e.FieldIndex,
	}
	if e.Big != nil {
		key.BigText = e.Big.Text(16)
	}
	return key, true
}
