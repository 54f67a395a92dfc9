// Package hdr defines the contract with the external native header parser:
// the shape of its raw declaration records, the namespace set it reports and
// the options it understands. The parser itself lives outside this tool; its
// output is consumed through declaration dumps (see dump.go).
package hdr

// Argument modifier strings recognized by downstream consumers. Any other
// modifier is carried through untouched.
const (
	ModOutput = "/O" // output argument
	ModStatic = "/S" // static (class) method
	ModArray  = "/A" // "/A <counter>" for plain C arrays with a length counter
)

// RawArgument is one 4-field parameter record: [type, name, default, modifiers].
// An empty DefaultValue means the parameter has no default.
type RawArgument struct {
	Type         string
	Name         string
	DefaultValue string
	Modifiers    []string
}

// RawDeclaration is one 6-field declaration record in the order the header
// parser emits them. OriginalReturnType is empty when it equals CReturnType.
type RawDeclaration struct {
	QualifiedName      string
	CReturnType        string
	Modifiers          []string
	Arguments          []RawArgument
	OriginalReturnType string
	Docstring          string
}

// Options carries the two feature flags understood by the header parser.
// They request generation of platform-specific declaration variants and are
// opaque pass-through configuration as far as this tool is concerned.
type Options struct {
	UnifiedVariants bool
	DeviceVariants  bool
}

// Parser produces the ordered declaration records and the namespace set for
// one input source. Record order is load-bearing: it determines which
// methods are attributed to which class downstream.
type Parser interface {
	Parse(source string) ([]RawDeclaration, []string, error)
}
