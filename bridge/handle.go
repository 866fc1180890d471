package bridge

import (
	"fmt"
	"reflect"

	"duck-bridge/internal/common"
	"duck-bridge/internal/shape"
)

// Handle describes a live adapter.
type Handle struct {
	Spec Spec
	// Name is the adapter name given by the naming strategy.
	Name   string
	Target any
	// Extras lists target members the contract does not declare. They are
	// only present under the expose policy and are reached through Call.
	Extras []string

	c *cell
}

// Inspect returns the handle of an adapter created by r.
func (r *Registry) Inspect(adapter any) (*Handle, bool) {
	c := r.cellOf(adapter)
	if c == nil {
		return nil, false
	}

	h := &Handle{Spec: c.factory.spec, Name: c.factory.name, c: c}
	if c.target.CanInterface() {
		h.Target = c.target.Interface()
	}

	for _, e := range c.factory.extras {
		h.Extras = append(h.Extras, e.Display())
	}

	return h, true
}

// Plan returns the member mapping the adapter was synthesized from.
func (h *Handle) Plan() *AdapterPlan {
	return h.c.factory.plan
}

// Call invokes an exposed target member on the adapter's target.
func (h *Handle) Call(member string, args ...any) ([]any, error) {
	var m *shape.Method

	for i := range h.c.factory.extras {
		if h.c.factory.extras[i].Name == member {
			m = &h.c.factory.extras[i]
			break
		}
	}

	if m == nil {
		return nil, fmt.Errorf("%s does not expose %s", h.Name, member)
	}

	fn, err := m.Bind(h.c.target)
	if err != nil {
		return nil, err
	}

	ft := m.Type
	if (!ft.IsVariadic() && len(args) != ft.NumIn()) || (ft.IsVariadic() && len(args) < ft.NumIn()-1) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", member, ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(ft, i)

		v, ok := typed(reflect.ValueOf(a), pt)
		if !ok {
			return nil, fmt.Errorf("%s argument %d: %T is not a %s", member, i, a, common.TypeString(pt))
		}

		in[i] = v
	}

	res := fn.Call(in)

	out := make([]any, len(res))
	for i, rv := range res {
		if rv.CanInterface() {
			out[i] = rv.Interface()
		}
	}

	return out, nil
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}

	return ft.In(i)
}
