package shape

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"duck-bridge/internal/common"
)

// AliasTag is the struct tag listing alternative target names of a func-table member.
const AliasTag = "bridge"

// ErrUnbound is returned when a member cannot be bound to a receiver.
var ErrUnbound = errors.New("member is not bound")

// Method is one member of a contract or a target: an interface or concrete
// method, a func-table field, or the call of a func value (empty Name).
type Method struct {
	Name     string       // member name, empty for callables
	Type     reflect.Type // func signature, receiver stripped
	Order    int          // declaration order
	Exported bool         // whether the member is exported
	Aliases  []string     // alternative target names
	Owner    reflect.Type // type declaring the member

	index int   // method index for interfaces and concrete types
	field []int // field index path for func tables
	self  bool  // the receiver itself is the func
}

// Display returns the member name, or "call" for callables.
func (m Method) Display() string {
	if m.self {
		return "call"
	}

	return m.Name
}

// Accepts reports whether a target member named name may satisfy m.
func (m Method) Accepts(name string) bool {
	if name == m.Name {
		return true
	}

	for _, a := range m.Aliases {
		if a == name {
			return true
		}
	}

	return false
}

// IsField reports whether the member is a func-table field.
func (m Method) IsField() bool {
	return m.field != nil
}

// Field returns the func-table field index path.
func (m Method) Field() []int {
	return m.field
}

// Bind returns the callable member of recv.
func (m Method) Bind(recv reflect.Value) (reflect.Value, error) {
	if !recv.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s on invalid value", ErrUnbound, m.Display())
	}

	switch {
	case m.self:
		if recv.Kind() == reflect.Interface {
			recv = recv.Elem()
		}

		if recv.Kind() != reflect.Func || recv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil func %s", ErrUnbound, common.TypeString(recv.Type()))
		}

		return recv, nil

	case m.field != nil:
		if recv.Kind() != reflect.Pointer || recv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s on nil table", ErrUnbound, m.Name)
		}

		f := recv.Elem().FieldByIndex(m.field)
		if f.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: table field %s is nil", ErrUnbound, m.Name)
		}

		return f, nil

	default:
		if m.Owner != nil && m.Owner.Kind() == reflect.Interface && recv.Type() != m.Owner {
			if !recv.Type().Implements(m.Owner) {
				return reflect.Value{}, fmt.Errorf("%w: %s does not implement %s",
					ErrUnbound, common.TypeString(recv.Type()), common.TypeString(m.Owner))
			}

			tmp := reflect.New(m.Owner).Elem()
			tmp.Set(recv)
			recv = tmp
		}

		if recv.Kind() == reflect.Interface && recv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s on nil interface", ErrUnbound, m.Name)
		}

		return recv.Method(m.index), nil
	}
}

// ContractMethods enumerates the members of a contract in declaration order.
// Interface methods are listed in reflect's lexicographic order.
func ContractMethods(t reflect.Type, cat *Catalog) ([]Method, error) {
	if !IsContract(t) {
		return nil, fmt.Errorf("%w: %s", ErrNotContract, common.TypeString(t))
	}

	var methods []Method

	switch t.Kind() {
	case reflect.Func:
		methods = []Method{callable(t)}
	case reflect.Interface:
		methods = interfaceMethods(t)
	default:
		methods = tableMethods(t)
	}

	for i := range methods {
		methods[i].Aliases = append(methods[i].Aliases, cat.Aliases(t, methods[i].Name)...)
	}

	return methods, nil
}

// TargetMethods enumerates the callable members of a target type.
// Only exported methods of concrete types are visible to reflection.
func TargetMethods(t reflect.Type) []Method {
	if t == nil {
		return nil
	}

	switch {
	case t.Kind() == reflect.Func:
		return []Method{callable(t)}
	case t.Kind() == reflect.Interface:
		return interfaceMethods(t)
	case t.Kind() == reflect.Pointer && IsFuncTable(t.Elem()):
		return tableMethods(t)
	}

	methods := make([]Method, 0, t.NumMethod())
	for i := range t.NumMethod() {
		m := t.Method(i)
		methods = append(methods, Method{
			Name:     m.Name,
			Type:     stripReceiver(m.Type),
			Order:    i,
			Exported: m.IsExported(),
			Owner:    t,
			index:    i,
		})
	}

	return methods
}

func callable(t reflect.Type) Method {
	return Method{Type: t, Exported: true, Owner: t, self: true}
}

func interfaceMethods(t reflect.Type) []Method {
	methods := make([]Method, 0, t.NumMethod())
	for i := range t.NumMethod() {
		m := t.Method(i)
		methods = append(methods, Method{
			Name:     m.Name,
			Type:     m.Type,
			Order:    i,
			Exported: m.IsExported(),
			Owner:    t,
			index:    i,
		})
	}

	return methods
}

func tableMethods(t reflect.Type) []Method {
	var methods []Method
	for _, f := range reflect.VisibleFields(t.Elem()) {
		if f.Anonymous || f.Type.Kind() != reflect.Func {
			continue
		}

		methods = append(methods, Method{
			Name:     f.Name,
			Type:     f.Type,
			Order:    len(methods),
			Exported: f.IsExported(),
			Aliases:  parseAliases(f.Tag.Get(AliasTag)),
			Owner:    t,
			field:    f.Index,
		})
	}

	return methods
}

func parseAliases(tag string) []string {
	var aliases []string
	for _, part := range strings.Split(tag, ",") {
		if part = strings.TrimSpace(part); part != "" {
			aliases = append(aliases, part)
		}
	}

	return aliases
}

func stripReceiver(ft reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}

	out := make([]reflect.Type, 0, ft.NumOut())
	for i := range ft.NumOut() {
		out = append(out, ft.Out(i))
	}

	return reflect.FuncOf(in, out, ft.IsVariadic())
}
