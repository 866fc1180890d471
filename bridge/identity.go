package bridge

import (
	"reflect"
	"runtime"
	"sync"
	"unsafe"
	"weak"
)

// cell binds one target to its adapter. Adapter handlers hold the cell, so
// it lives exactly as long as the adapter does.
type cell struct {
	factory *synthesized
	target  reflect.Value
	adapter reflect.Value
}

type cellKeys struct {
	target, adapter   uintptr
	hasTarget, hasKey bool
}

// identityTable maps reference identities to cells without keeping either
// side alive. Entries are evicted once their cell is collected.
type identityTable struct {
	mu        sync.Mutex
	byTarget  map[uintptr]weak.Pointer[cell]
	byAdapter map[uintptr]weak.Pointer[cell]
}

func newIdentityTable() *identityTable {
	return &identityTable{
		byTarget:  make(map[uintptr]weak.Pointer[cell]),
		byAdapter: make(map[uintptr]weak.Pointer[cell]),
	}
}

func (t *identityTable) byTargetKey(key uintptr) *cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.byTarget[key].Value()
}

func (t *identityTable) byAdapterKey(key uintptr) *cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.byAdapter[key].Value()
}

// add indexes c under the identities of its target and its adapter.
func (t *identityTable) add(c *cell, withTarget bool) {
	keys := cellKeys{}
	keys.target, keys.hasTarget = identityKey(c.target)
	keys.hasTarget = keys.hasTarget && withTarget
	keys.adapter, keys.hasKey = identityKey(c.adapter)

	if !keys.hasTarget && !keys.hasKey {
		return
	}

	wp := weak.Make(c)

	t.mu.Lock()
	if keys.hasTarget {
		t.byTarget[keys.target] = wp
	}

	if keys.hasKey {
		t.byAdapter[keys.adapter] = wp
	}
	t.mu.Unlock()

	runtime.AddCleanup(c, t.evict, keys)
}

func (t *identityTable) evict(keys cellKeys) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if keys.hasTarget && t.byTarget[keys.target].Value() == nil {
		delete(t.byTarget, keys.target)
	}

	if keys.hasKey && t.byAdapter[keys.adapter].Value() == nil {
		delete(t.byAdapter, keys.adapter)
	}
}

func (t *identityTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.byTarget) + len(t.byAdapter)
}

// identityKey returns the reference identity of v. Only pointer shaped
// values have one; their interface data word is the referenced object,
// which also tells apart funcs created by reflect.MakeFunc.
func identityKey(v reflect.Value) (uintptr, bool) {
	v = concrete(v)
	if !v.IsValid() || !v.CanInterface() {
		return 0, false
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return 0, false
		}

		return dataWord(v.Interface()), true
	default:
		return 0, false
	}
}

func dataWord(x any) uintptr {
	type eface struct {
		typ, data unsafe.Pointer
	}

	return uintptr((*eface)(unsafe.Pointer(&x)).data)
}
