// Package stubs partitions an ordered declaration stream into nested stub
// elements and renders them as typed interface stubs. Grouping and text
// formatting are kept apart so grouping can be tested structurally.
package stubs

import "stubgen/pkg/declaration"

// Element is one emitted stub: a module-level function, a class with its
// grouped methods, or an enum-like value class.
type Element interface {
	element()
}

// FunctionStub is a module-level function.
type FunctionStub struct {
	Decl declaration.Declaration
}

// ClassStub is a class together with the methods the stream attributed to
// it. Decl is the class declaration itself when one opened the block; a
// block opened implicitly by a qualified method has no Decl of its own.
type ClassStub struct {
	Name    string
	Decl    *declaration.Declaration
	Methods []declaration.Declaration
}

// EnumMember is one value line of an enum class. The display name comes from
// the raw argument's type field and the value token from its name field; the
// input shape swaps these two fields and the swap is preserved on purpose.
type EnumMember struct {
	RawDisplayName string
	RawValueToken  string
}

// EnumStub is an enum-like value class.
type EnumStub struct {
	Name    string
	Members []EnumMember
}

func (FunctionStub) element() {}
func (ClassStub) element()    {}
func (EnumStub) element()     {}

// Declarations reports how many input declarations an element accounts for.
// Every fed declaration ends up counted by exactly one element.
func Declarations(el Element) int {
	switch e := el.(type) {
	case FunctionStub:
		return 1
	case ClassStub:
		n := len(e.Methods)
		if e.Decl != nil {
			n++
		}
		return n
	case EnumStub:
		return 1
	default:
		return 0
	}
}
