package emit

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"duck-bridge/internal/common"
	"duck-bridge/internal/shape"
)

var (
	ErrNoShim         = errors.New("no shim registered for interface contract")
	ErrShimMismatch   = errors.New("shim result does not implement the contract")
	ErrNotAnInterface = errors.New("shims can only be registered for interfaces")
	ErrUnknownMember  = errors.New("unknown contract member")
)

// Handler executes one contract member. Variadic arguments arrive as a
// single slice, as with reflect.MakeFunc.
type Handler func(args []reflect.Value) []reflect.Value

// Invoker receives every call made on an interface shim.
type Invoker interface {
	// Call invokes the named contract member. Variadic arguments are passed
	// as one slice. Results are returned in declaration order.
	Call(method string, args ...any) []any
}

// Shim builds a value implementing an interface contract around an Invoker.
// Shims should return pointers so that adapters have a stable identity.
type Shim func(inv Invoker) any

// Emitter turns handlers into adapter values. It is safe for concurrent use.
type Emitter struct {
	mu    sync.RWMutex
	shims map[reflect.Type]Shim
}

// NewEmitter creates an Emitter without shims.
func NewEmitter() *Emitter {
	return &Emitter{shims: make(map[reflect.Type]Shim)}
}

// Register installs the shim for an interface contract.
func (e *Emitter) Register(iface reflect.Type, shim Shim) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s", ErrNotAnInterface, common.TypeString(iface))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.shims[iface] = shim

	return nil
}

// Supports reports whether adapters of contract can be emitted.
func (e *Emitter) Supports(contract reflect.Type) bool {
	if !shape.IsContract(contract) {
		return false
	}

	if contract.Kind() != reflect.Interface {
		return true
	}

	_, ok := e.shim(contract)

	return ok
}

// Emit builds an adapter of contract whose members run handlers.
// methods and handlers are parallel slices in contract member order.
func (e *Emitter) Emit(contract reflect.Type, methods []shape.Method, handlers []Handler) (reflect.Value, error) {
	if len(methods) != len(handlers) {
		return reflect.Value{}, fmt.Errorf("emit %s: %d members but %d handlers",
			common.TypeString(contract), len(methods), len(handlers))
	}

	switch {
	case contract.Kind() == reflect.Func:
		if len(handlers) != 1 {
			return reflect.Value{}, fmt.Errorf("emit %s: callable needs exactly one handler", common.TypeString(contract))
		}

		return reflect.MakeFunc(contract, handlers[0]), nil

	case contract.Kind() == reflect.Pointer && shape.IsFuncTable(contract.Elem()):
		table := reflect.New(contract.Elem())
		for i, m := range methods {
			table.Elem().FieldByIndex(m.Field()).Set(reflect.MakeFunc(m.Type, handlers[i]))
		}

		return table, nil

	case contract.Kind() == reflect.Interface:
		shim, ok := e.shim(contract)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNoShim, common.TypeString(contract))
		}

		out := reflect.ValueOf(shim(newDispatch(contract, methods, handlers)))
		if !out.IsValid() || !out.Type().Implements(contract) {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrShimMismatch, common.TypeString(contract))
		}

		return out, nil

	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", shape.ErrNotContract, common.TypeString(contract))
	}
}

func (e *Emitter) shim(iface reflect.Type) (Shim, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	shim, ok := e.shims[iface]

	return shim, ok
}

// Out returns result i of an Invoker call as T, or the zero T for nil results.
func Out[T any](out []any, i int) T {
	if v, ok := out[i].(T); ok {
		return v
	}

	var zero T

	return zero
}
