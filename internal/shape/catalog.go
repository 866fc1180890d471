package shape

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"duck-bridge/internal/common"
)

var (
	ErrNotInteger   = errors.New("enumeration must be a named integer type")
	ErrNoMembers    = errors.New("enumeration needs at least one member")
	ErrNotGeneric   = errors.New("type is not a generic instantiation")
	ErrNotContract  = errors.New("type is not a contract")
	ErrNoSuchMethod = errors.New("contract has no such method")
)

// Integer is the constraint of enumeration types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// EnumInfo is the member set of one enumeration.
type EnumInfo struct {
	Type    reflect.Type
	members map[int64]string
}

// Key returns the numeric identity of an enumeration value.
// Unsigned values are reinterpreted bit for bit.
func Key(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(v.Uint())
	default:
		return v.Int()
	}
}

// Has reports whether the numeric value is a member.
func (e *EnumInfo) Has(key int64) bool {
	_, ok := e.members[key]
	return ok
}

// Name returns the member name of a numeric value.
func (e *EnumInfo) Name(key int64) string {
	if name, ok := e.members[key]; ok {
		return name
	}

	return common.UnknownStr
}

// Values returns the member values in ascending order.
func (e *EnumInfo) Values() []int64 {
	return slices.Sorted(maps.Keys(e.members))
}

// SubsetOf reports whether every member value of e is a member of other.
func (e *EnumInfo) SubsetOf(other *EnumInfo) bool {
	for k := range e.members {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

// SameValues reports whether e and other have identical value sets.
func (e *EnumInfo) SameValues(other *EnumInfo) bool {
	return len(e.members) == len(other.members) && e.SubsetOf(other)
}

// GenericInfo describes one generic instantiation.
type GenericInfo struct {
	Definition string
	Args       []reflect.Type
}

// Catalog records type facts reflection cannot see. It is safe for
// concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	enums    map[reflect.Type]*EnumInfo
	generics map[reflect.Type]GenericInfo
	aliases  map[reflect.Type]map[string][]string
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		enums:    make(map[reflect.Type]*EnumInfo),
		generics: make(map[reflect.Type]GenericInfo),
		aliases:  make(map[reflect.Type]map[string][]string),
	}
}

// RegisterEnum records the members of an enumeration type.
func RegisterEnum[E Integer](c *Catalog, members ...E) error {
	values := make([]reflect.Value, 0, len(members))
	for _, m := range members {
		values = append(values, reflect.ValueOf(m))
	}

	return c.RegisterEnumType(reflect.TypeFor[E](), values...)
}

// RegisterEnumType records the members of an enumeration type given as values.
// Member names are taken from the values' String method when present.
func (c *Catalog) RegisterEnumType(t reflect.Type, members ...reflect.Value) error {
	if t.Name() == "" || !IsScalar(t) || !isIntegerKind(t.Kind()) {
		return fmt.Errorf("%w: %s", ErrNotInteger, common.TypeString(t))
	}

	if len(members) == 0 {
		return fmt.Errorf("%w: %s", ErrNoMembers, common.TypeString(t))
	}

	info := &EnumInfo{Type: t, members: make(map[int64]string, len(members))}
	for _, m := range members {
		if m.Type() != t {
			return fmt.Errorf("member %v has type %s, want %s",
				m.Interface(), common.TypeString(m.Type()), common.TypeString(t))
		}

		info.members[Key(m)] = fmt.Sprint(m.Interface())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.enums[t] = info

	return nil
}

// Enum returns the member set of t if it is a registered enumeration.
func (c *Catalog) Enum(t reflect.Type) (*EnumInfo, bool) {
	if c == nil || t == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.enums[t]

	return info, ok
}

// RegisterGeneric records the type arguments of a generic instantiation.
// The definition is derived from the type name, e.g. "pkg.Box" for "Box[int]".
func (c *Catalog) RegisterGeneric(t reflect.Type, args ...reflect.Type) error {
	base, _, ok := strings.Cut(t.Name(), "[")
	if !ok || len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrNotGeneric, common.TypeString(t))
	}

	def := base
	if t.PkgPath() != "" {
		def = t.PkgPath() + "." + base
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generics[t] = GenericInfo{Definition: def, Args: slices.Clone(args)}

	return nil
}

// Generic returns the instantiation facts of t if registered.
func (c *Catalog) Generic(t reflect.Type) (GenericInfo, bool) {
	if c == nil || t == nil {
		return GenericInfo{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.generics[t]

	return info, ok
}

// RegisterAlias lets target methods named by aliases satisfy a contract method.
func (c *Catalog) RegisterAlias(contract reflect.Type, method string, aliases ...string) error {
	if !IsContract(contract) {
		return fmt.Errorf("%w: %s", ErrNotContract, common.TypeString(contract))
	}

	methods, err := ContractMethods(contract, nil)
	if err != nil {
		return err
	}

	if !slices.ContainsFunc(methods, func(m Method) bool { return m.Name == method }) {
		return fmt.Errorf("%w: %s.%s", ErrNoSuchMethod, common.TypeString(contract), method)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	byMethod := c.aliases[contract]
	if byMethod == nil {
		byMethod = make(map[string][]string)
		c.aliases[contract] = byMethod
	}

	byMethod[method] = append(byMethod[method], aliases...)

	return nil
}

// Aliases returns the registered aliases of a contract method.
func (c *Catalog) Aliases(contract reflect.Type, method string) []string {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.aliases[contract][method])
}

// KindOf classifies t into its bridging shape.
func (c *Catalog) KindOf(t reflect.Type) Kind {
	if t == nil {
		return KindUnknown
	}

	if _, ok := c.Enum(t); ok {
		return KindEnum
	}

	if IsArray(t) {
		return KindArray
	}

	if _, _, ok := OptionalInner(t); ok {
		return KindOptional
	}

	if IsContract(t) {
		return KindContract
	}

	if IsByRef(t) {
		return KindByRef
	}

	if IsRecord(t) {
		return KindRecord
	}

	if IsScalar(t) {
		return KindScalar
	}

	return KindOpaque
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
