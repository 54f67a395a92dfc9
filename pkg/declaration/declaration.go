package declaration

import (
	"strings"

	"stubgen/pkg/hdr"
)

// wrapThreshold is the rendered parameter-list length above which signatures
// are broken one parameter per line.
const wrapThreshold = 10

// Declaration is one fully typed header declaration. Kind, Name and Basename
// are derived from the qualified name at construction time and never change;
// a non-empty Basename means Name is a class name and Basename its member.
type Declaration struct {
	QualifiedName      string
	CReturnType        string
	Modifiers          []string
	Arguments          []Argument
	OriginalReturnType string
	Docstring          string

	Kind     Kind
	Name     string
	Basename string
}

// New builds a Declaration from one raw record under the given resolver.
// The only failure mode is a ResolveError from name resolution.
func New(raw hdr.RawDeclaration, resolver *Resolver) (Declaration, error) {
	kind, name, basename, err := resolver.Resolve(raw.QualifiedName)
	if err != nil {
		return Declaration{}, err
	}

	args := make([]Argument, 0, len(raw.Arguments))
	for _, rawArg := range raw.Arguments {
		args = append(args, newArgument(rawArg))
	}

	return Declaration{
		QualifiedName:      raw.QualifiedName,
		CReturnType:        raw.CReturnType,
		Modifiers:          append([]string(nil), raw.Modifiers...),
		Arguments:          args,
		OriginalReturnType: raw.OriginalReturnType,
		Docstring:          raw.Docstring,
		Kind:               kind,
		Name:               name,
		Basename:           basename,
	}, nil
}

// ReturnType is the type rendered after "->": the original return type when
// the parser reported one, otherwise the C return type.
func (d Declaration) ReturnType() string {
	if d.OriginalReturnType != "" {
		return d.OriginalReturnType
	}
	return d.CReturnType
}

// Signature renders the comma-joined parameter list. Short lists stay
// inline; anything longer than wrapThreshold goes one parameter per line.
func (d Declaration) Signature() string {
	params := make([]string, 0, len(d.Arguments))
	for _, arg := range d.Arguments {
		params = append(params, arg.TypedParam())
	}

	joined := strings.Join(params, ",\n\t")
	if len(joined) > wrapThreshold {
		joined = "\n\t" + joined + "\n"
	}
	return joined
}
