package declaration

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a declaration as a module-level function, a class (or
// class-like struct) or an enum.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConstructorMarker is the canonical basename recorded when a member name
// repeats its class name. It disambiguates constructors from methods that
// merely collide with the class name.
const ConstructorMarker = "__init__"

// ResolveError reports a qualified name that still contains more than one
// separator after namespace flattening. It carries the raw name and the
// namespace set that was in effect, for diagnostics.
type ResolveError struct {
	RawName    string
	Namespaces []string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot split %q into class and member (namespaces: [%s])",
		e.RawName, strings.Join(e.Namespaces, " "))
}

// Resolver resolves qualified declaration names against a fixed namespace
// set. The set is normalized and sorted once at construction, longest prefix
// first, so resolution never depends on the caller's iteration order.
type Resolver struct {
	root       string
	namespaces []string
}

// NewResolver builds a resolver for one source. The root namespace (e.g.
// "cv") is stripped from both the namespace strings and every resolved path;
// the root itself is dropped from the set.
func NewResolver(root string, namespaces []string) *Resolver {
	prefix := ""
	if root != "" {
		prefix = root + "."
	}

	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		if ns == root {
			continue
		}
		ns = strings.TrimPrefix(ns, prefix)
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		cleaned = append(cleaned, ns)
	}

	// Longest prefix wins; ties break lexicographically.
	sort.Slice(cleaned, func(i, j int) bool {
		if len(cleaned[i]) != len(cleaned[j]) {
			return len(cleaned[i]) > len(cleaned[j])
		}
		return cleaned[i] < cleaned[j]
	})

	return &Resolver{root: root, namespaces: cleaned}
}

// Resolve turns a raw qualified name into (kind, name, basename). The name
// is space-and-dot separated: leading space-separated tokens form the kind
// marker ("class", "struct", "enum"), the last token is the dotted path. A
// path still holding more than one separator after flattening yields a
// ResolveError.
func (r *Resolver) Resolve(qualified string) (Kind, string, string, error) {
	kind := KindFunction
	path := qualified
	if tokens := strings.Fields(qualified); len(tokens) > 1 {
		kind = kindOf(tokens[0])
		path = tokens[len(tokens)-1]
	}

	if r.root != "" {
		path = strings.TrimPrefix(path, r.root+".")
	}

	// Flatten at most one namespace boundary so it is not mistaken for a
	// class/member separator.
	for _, ns := range r.namespaces {
		if strings.HasPrefix(path, ns+".") {
			path = strings.Replace(path, ".", "_", 1)
			break
		}
	}

	name, basename := path, ""
	if i := strings.Index(path, "."); i >= 0 {
		name, basename = path[:i], path[i+1:]
		if strings.Contains(basename, ".") {
			return kind, "", "", &ResolveError{RawName: qualified, Namespaces: r.namespaces}
		}
	}

	if name == basename {
		basename = ConstructorMarker
	}

	return kind, name, basename, nil
}

// kindOf maps a kind marker token. Anything that is not an enum marker is
// treated as class-like, which covers "class" and "struct" alike.
func kindOf(token string) Kind {
	if token == "enum" {
		return KindEnum
	}
	return KindClass
}
