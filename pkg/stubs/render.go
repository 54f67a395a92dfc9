package stubs

import (
	"fmt"
	"strings"
)

// Indentation is one tab, matching the stub output contract.
const indent = "\t"

// Render turns grouped elements into stub text, one element after another in
// emission order. Identical elements always render to identical bytes.
func Render(elements []Element) string {
	var b strings.Builder
	for _, el := range elements {
		renderElement(&b, el)
	}
	return b.String()
}

func renderElement(b *strings.Builder, el Element) {
	switch e := el.(type) {
	case FunctionStub:
		fmt.Fprintf(b, "def %s(%s) -> %s: ...\n",
			e.Decl.Name, e.Decl.Signature(), e.Decl.ReturnType())

	case ClassStub:
		fmt.Fprintf(b, "class %s:\n", e.Name)
		for _, method := range e.Methods {
			fmt.Fprintf(b, "%sdef %s(self): ...\n", indent, method.Basename)
		}

	case EnumStub:
		fmt.Fprintf(b, "class %s(IntFlag):\n", e.Name)
		for _, member := range e.Members {
			fmt.Fprintf(b, "%s%s: int = %s\n", indent, member.RawDisplayName, member.RawValueToken)
		}
	}
}
