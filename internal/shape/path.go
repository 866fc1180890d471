package shape

import (
	"strconv"
	"strings"
)

// MemberPath builds a readable path to a position inside a contract.
// Examples:
//   - "Reader" for the contract itself
//   - "Reader.Read" for a member
//   - "Reader.Read.in[1]" for a parameter
//   - "Reader.Read.out[0][]" for the elements of a result
type MemberPath struct {
	parts []string
}

// NewMemberPath creates a new MemberPath from a root name.
func NewMemberPath(root string) *MemberPath {
	return &MemberPath{parts: []string{root}}
}

// Member appends a member name to the path.
func (p *MemberPath) Member(name string) *MemberPath {
	return &MemberPath{parts: append(append([]string{}, p.parts...), name)}
}

// Param appends a parameter position to the path.
func (p *MemberPath) Param(i int) *MemberPath {
	return p.Member("in[" + strconv.Itoa(i) + "]")
}

// Result appends a result position to the path.
func (p *MemberPath) Result(i int) *MemberPath {
	return p.Member("out[" + strconv.Itoa(i) + "]")
}

// Elem appends an element indicator "[]" to the last part.
func (p *MemberPath) Elem() *MemberPath {
	if len(p.parts) == 0 {
		return &MemberPath{parts: []string{"[]"}}
	}

	parts := make([]string, len(p.parts))
	copy(parts, p.parts)
	parts[len(parts)-1] += "[]"

	return &MemberPath{parts: parts}
}

// String returns the full path string.
func (p *MemberPath) String() string {
	return strings.Join(p.parts, ".")
}
