package stubs

import (
	"strings"

	"stubgen/pkg/declaration"
)

// Machine is the grouping state machine. It consumes declarations strictly
// in input order, with zero lookahead, and finalizes stub elements as the
// stream forces transitions. Its only mutable state is the currently open
// class block; one machine serves one source's declaration stream.
type Machine struct {
	root string
	open *ClassStub
}

// NewMachine creates a machine for one declaration stream. The root
// namespace feeds the enum member prefix strip ("const <root>.").
func NewMachine(rootNamespace string) *Machine {
	return &Machine{root: rootNamespace}
}

// Feed dispatches one declaration and returns any elements it completed.
// A declaration that does not extend an open class block closes the block
// and is then re-dispatched under the top-level rules, so no declaration is
// ever dropped on the class exit transition.
func (m *Machine) Feed(d declaration.Declaration) []Element {
	var out []Element

	if m.open != nil {
		if d.Kind == declaration.KindFunction && d.Basename != "" {
			m.open.Methods = append(m.open.Methods, d)
			return nil
		}
		out = append(out, *m.open)
		m.open = nil
	}

	switch {
	case d.Kind == declaration.KindEnum:
		out = append(out, m.enumStub(d))
	case d.Kind == declaration.KindClass || d.Basename != "":
		cls := &ClassStub{Name: d.Name}
		if d.Basename != "" {
			cls.Methods = append(cls.Methods, d)
		} else {
			dd := d
			cls.Decl = &dd
		}
		m.open = cls
	default:
		out = append(out, FunctionStub{Decl: d})
	}

	return out
}

// Flush finalizes the open class block at end of stream, if any. The
// machine is reusable for a fresh stream afterwards.
func (m *Machine) Flush() []Element {
	if m.open == nil {
		return nil
	}
	closed := *m.open
	m.open = nil
	return []Element{closed}
}

// Group runs a whole declaration stream through a fresh machine and returns
// the elements in emission order.
func Group(rootNamespace string, decls []declaration.Declaration) []Element {
	m := NewMachine(rootNamespace)
	var out []Element
	for _, d := range decls {
		out = append(out, m.Feed(d)...)
	}
	return append(out, m.Flush()...)
}

// enumStub builds an enum element from a declaration's arguments. Member
// identifiers come from each argument's type field with the constant
// namespace qualification stripped; the value token comes from the name
// field. See EnumMember for why the fields are swapped.
func (m *Machine) enumStub(d declaration.Declaration) EnumStub {
	prefix := "const "
	if m.root != "" {
		prefix = "const " + m.root + "."
	}

	members := make([]EnumMember, 0, len(d.Arguments))
	for _, arg := range d.Arguments {
		members = append(members, EnumMember{
			RawDisplayName: strings.TrimPrefix(arg.Type, prefix),
			RawValueToken:  arg.Name,
		})
	}
	return EnumStub{Name: d.Name, Members: members}
}
