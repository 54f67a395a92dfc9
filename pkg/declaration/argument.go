// Package declaration builds typed declaration values from the raw records
// the external header parser emits, resolving each qualified name into its
// object kind, class name and member name.
package declaration

import (
	"strings"

	"stubgen/pkg/hdr"
)

// Argument is the typed form of one raw parameter record. All fields are
// opaque strings; an empty DefaultValue means the parameter has no default.
// Arguments never change after construction.
type Argument struct {
	Type         string
	Name         string
	DefaultValue string
	Modifiers    []string
}

func newArgument(raw hdr.RawArgument) Argument {
	return Argument{
		Type:         raw.Type,
		Name:         raw.Name,
		DefaultValue: raw.DefaultValue,
		Modifiers:    append([]string(nil), raw.Modifiers...),
	}
}

// TypedParam renders the argument as a "name: type" fragment, appending
// "= default" verbatim when a default is present. An empty default is
// rendered as absent, never as an empty literal.
func (a Argument) TypedParam() string {
	param := a.Name + ": " + a.Type
	if a.DefaultValue != "" {
		param += " = " + a.DefaultValue
	}
	return param
}

// HasModifier reports whether the argument carries the given modifier,
// matching both bare modifiers ("/O") and valued ones ("/A count").
// Unrecognized modifier strings are simply never matched.
func (a Argument) HasModifier(mod string) bool {
	for _, m := range a.Modifiers {
		if m == mod || strings.HasPrefix(m, mod+" ") {
			return true
		}
	}
	return false
}
