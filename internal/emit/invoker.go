package emit

import (
	"fmt"
	"reflect"

	"duck-bridge/internal/common"
	"duck-bridge/internal/shape"
)

// dispatch is the Invoker handed to interface shims.
type dispatch struct {
	contract reflect.Type
	byName   map[string]int
	methods  []shape.Method
	handlers []Handler
}

func newDispatch(contract reflect.Type, methods []shape.Method, handlers []Handler) *dispatch {
	d := &dispatch{
		contract: contract,
		byName:   make(map[string]int, len(methods)),
		methods:  methods,
		handlers: handlers,
	}

	for i, m := range methods {
		d.byName[m.Name] = i
	}

	return d
}

func (d *dispatch) Call(method string, args ...any) []any {
	i, ok := d.byName[method]
	if !ok {
		panic(fmt.Errorf("%w: %s.%s", ErrUnknownMember, common.TypeString(d.contract), method))
	}

	ft := d.methods[i].Type
	if len(args) != ft.NumIn() {
		panic(fmt.Errorf("%s.%s called with %d arguments, want %d",
			common.TypeString(d.contract), method, len(args), ft.NumIn()))
	}

	in := make([]reflect.Value, len(args))
	for j, arg := range args {
		in[j] = argValue(arg, ft.In(j))
	}

	results := d.handlers[i](in)

	out := make([]any, len(results))
	for j, r := range results {
		if r.IsValid() {
			out[j] = r.Interface()
		}
	}

	return out
}

func argValue(arg any, t reflect.Type) reflect.Value {
	slot := reflect.New(t).Elem()
	if arg == nil {
		return slot
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(t) {
		panic(fmt.Errorf("argument of type %s is not assignable to %s",
			common.TypeString(v.Type()), common.TypeString(t)))
	}

	slot.Set(v)

	return slot
}
