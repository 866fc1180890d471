package emit

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"duck-bridge/internal/common"
)

// ErrUnsupportedType is returned when a type cannot be rendered as Go source.
var ErrUnsupportedType = errors.New("type cannot be rendered in shim source")

// DefaultBridgeImport is the import path of the package exporting Invoker and Out.
const DefaultBridgeImport = "duck-bridge/bridge"

// ShimConfig holds configuration for shim source generation.
type ShimConfig struct {
	// Package is the name of the generated package.
	Package string
	// PackagePath is the import path of the generated package; types from it are not qualified.
	PackagePath string
	// BridgeImport is the import path of the package exporting Invoker and Out.
	BridgeImport string
	// TypeName is the shim struct name. Defaults to the interface name plus "Shim", unexported.
	TypeName string
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

type shimMethod struct {
	Name       string
	Params     string
	Args       string
	Results    string
	Returns    string
	HasResults bool
}

type shimData struct {
	Package     string
	Imports     []importSpec
	Iface       string
	TypeName    string
	Constructor string
	Bridge      string
	Methods     []shimMethod
}

// typeRenderer renders reflect types as Go source, collecting imports.
type typeRenderer struct {
	local   string
	imports map[string]string
	aliases map[string]string
}

// ShimSource renders the Go source of a Shim for the interface iface.
func ShimSource(iface reflect.Type, cfg ShimConfig) ([]byte, error) {
	if iface == nil || iface.Kind() != reflect.Interface || iface.Name() == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotAnInterface, common.TypeString(iface))
	}

	if cfg.BridgeImport == "" {
		cfg.BridgeImport = DefaultBridgeImport
	}

	if cfg.TypeName == "" {
		cfg.TypeName = lowerFirst(iface.Name()) + "Shim"
	}

	r := &typeRenderer{
		local:   cfg.PackagePath,
		imports: make(map[string]string),
		aliases: make(map[string]string),
	}

	data := &shimData{
		Package:     cfg.Package,
		Iface:       common.TypeString(iface),
		TypeName:    cfg.TypeName,
		Constructor: "New" + upperFirst(iface.Name()) + "Shim",
		Bridge:      r.alias(cfg.BridgeImport),
	}

	for i := range iface.NumMethod() {
		m := iface.Method(i)
		if !m.IsExported() && iface.PkgPath() != cfg.PackagePath {
			return nil, fmt.Errorf("%w: unexported method %s of %s", ErrUnsupportedType, m.Name, data.Iface)
		}

		sm, err := r.method(m.Name, m.Type, data.Bridge)
		if err != nil {
			return nil, err
		}

		data.Methods = append(data.Methods, sm)
	}

	for path, alias := range r.imports {
		data.Imports = append(data.Imports, importSpec{Alias: alias, Path: path})
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	var buf bytes.Buffer
	if err := shimTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

func (r *typeRenderer) method(name string, ft reflect.Type, bridge string) (shimMethod, error) {
	sm := shimMethod{Name: name, HasResults: ft.NumOut() > 0}

	params := make([]string, 0, ft.NumIn())
	for i := range ft.NumIn() {
		pt := ft.In(i)
		prefix := ""

		if ft.IsVariadic() && i == ft.NumIn()-1 {
			pt = pt.Elem()
			prefix = "..."
		}

		expr, err := r.render(pt)
		if err != nil {
			return shimMethod{}, fmt.Errorf("method %s parameter %d: %w", name, i, err)
		}

		arg := "a" + strconv.Itoa(i)
		params = append(params, arg+" "+prefix+expr)
		sm.Args += ", " + arg
	}

	sm.Params = strings.Join(params, ", ")

	results := make([]string, 0, ft.NumOut())
	returns := make([]string, 0, ft.NumOut())

	for i := range ft.NumOut() {
		expr, err := r.render(ft.Out(i))
		if err != nil {
			return shimMethod{}, fmt.Errorf("method %s result %d: %w", name, i, err)
		}

		results = append(results, expr)
		returns = append(returns, fmt.Sprintf("%s.Out[%s](out, %d)", bridge, expr, i))
	}

	switch len(results) {
	case 0:
	case 1:
		sm.Results = " " + results[0]
	default:
		sm.Results = " (" + strings.Join(results, ", ") + ")"
	}

	sm.Returns = strings.Join(returns, ", ")

	return sm, nil
}

func (r *typeRenderer) render(t reflect.Type) (string, error) {
	if t.Name() != "" {
		if strings.Contains(t.Name(), "[") {
			return "", fmt.Errorf("%w: generic instantiation %s", ErrUnsupportedType, t.Name())
		}

		if t.PkgPath() == "" || t.PkgPath() == r.local {
			return t.Name(), nil
		}

		return r.alias(t.PkgPath()) + "." + t.Name(), nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		return r.prefixed("*", t.Elem())
	case reflect.Slice:
		return r.prefixed("[]", t.Elem())
	case reflect.Array:
		return r.prefixed("["+strconv.Itoa(t.Len())+"]", t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return r.prefixed("<-chan ", t.Elem())
		case reflect.SendDir:
			return r.prefixed("chan<- ", t.Elem())
		default:
			return r.prefixed("chan ", t.Elem())
		}
	case reflect.Map:
		key, err := r.render(t.Key())
		if err != nil {
			return "", err
		}

		return r.prefixed("map["+key+"]", t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any", nil
		}
	case reflect.Struct:
		if t.NumField() == 0 {
			return "struct{}", nil
		}
	case reflect.Func:
		return r.signature(t)
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t.String())
}

func (r *typeRenderer) prefixed(prefix string, elem reflect.Type) (string, error) {
	s, err := r.render(elem)
	if err != nil {
		return "", err
	}

	return prefix + s, nil
}

func (r *typeRenderer) signature(ft reflect.Type) (string, error) {
	var params, results []string

	for i := range ft.NumIn() {
		pt, prefix := ft.In(i), ""
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			pt, prefix = pt.Elem(), "..."
		}

		s, err := r.render(pt)
		if err != nil {
			return "", err
		}

		params = append(params, prefix+s)
	}

	for i := range ft.NumOut() {
		s, err := r.render(ft.Out(i))
		if err != nil {
			return "", err
		}

		results = append(results, s)
	}

	sig := "func(" + strings.Join(params, ", ") + ")"

	switch len(results) {
	case 0:
		return sig, nil
	case 1:
		return sig + " " + results[0], nil
	default:
		return sig + " (" + strings.Join(results, ", ") + ")", nil
	}
}

// alias returns the import alias of path, registering the import.
func (r *typeRenderer) alias(path string) string {
	if a, ok := r.imports[path]; ok {
		return a
	}

	base := sanitizeAlias(common.PkgAlias(path))
	alias := base

	for n := 2; ; n++ {
		if _, taken := r.aliases[alias]; !taken {
			break
		}

		alias = base + strconv.Itoa(n)
	}

	r.imports[path] = alias
	r.aliases[alias] = path

	return alias
}

func sanitizeAlias(s string) string {
	out := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}

		return '_'
	}, s)

	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "p" + out
	}

	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

var shimTemplate = template.Must(template.New("shim").Parse(`// Code generated by duck-bridge. DO NOT EDIT.

package {{.Package}}

import (
{{range .Imports}}	{{.Alias}} "{{.Path}}"
{{end}})

type {{.TypeName}} struct{ inv {{.Bridge}}.Invoker }

// {{.Constructor}} wraps inv as {{.Iface}}.
func {{.Constructor}}(inv {{.Bridge}}.Invoker) any {
	return &{{.TypeName}}{inv: inv}
}
{{range .Methods}}
func (s *{{$.TypeName}}) {{.Name}}({{.Params}}){{.Results}} {
	{{if .HasResults}}out := {{end}}s.inv.Call("{{.Name}}"{{.Args}})
{{if .HasResults}}	return {{.Returns}}
{{end}}}
{{end}}`))
