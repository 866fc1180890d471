package common

import (
	"go/token"
	"path"
	"reflect"
	"strconv"
)

// UnknownStr is rendered for enum values outside their declared range.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// TypeString renders a reflect.Type with package aliases instead of full import paths,
// e.g. "*warehouse.Shelf" or "[]store.Item".
func TypeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + TypeString(t.Elem())
	}

	if t.Name() == "" {
		switch t.Kind() {
		case reflect.Slice:
			return "[]" + TypeString(t.Elem())
		case reflect.Array:
			return "[" + strconv.Itoa(t.Len()) + "]" + TypeString(t.Elem())
		case reflect.Map:
			return "map[" + TypeString(t.Key()) + "]" + TypeString(t.Elem())
		default:
			return t.String()
		}
	}

	if t.PkgPath() == "" {
		return t.Name()
	}

	return PkgAlias(t.PkgPath()) + "." + t.Name()
}

// IsExportedName reports whether an identifier starts with an upper case letter.
// Generic instantiation names such as "Box[int]" are checked by their base name.
func IsExportedName(name string) bool {
	return token.IsExported(name)
}
