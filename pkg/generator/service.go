// Package generator drives the stub pipeline: each input source is fed
// through the external header parser, its records become typed declarations,
// and the grouping machine turns those into rendered stub text.
package generator

import (
	"fmt"
	"strings"

	"stubgen/pkg/declaration"
	"stubgen/pkg/hdr"
	"stubgen/pkg/stubs"
)

// Service runs the declaration-to-stub pipeline over input sources in order.
type Service struct {
	parser hdr.Parser
	root   string
}

// Result summarizes one pipeline run.
type Result struct {
	Sources int    // sources that produced declarations
	Skipped int    // sources with zero declarations
	Stubs   string // concatenated stub text, in source order
}

// New creates a service over the given parser. The root namespace (e.g.
// "cv") is stripped during name resolution and enum member display.
func New(parser hdr.Parser, rootNamespace string) *Service {
	return &Service{parser: parser, root: rootNamespace}
}

// Run processes the sources strictly in order. Sources yielding zero
// declarations are skipped. A parse failure or an unresolvable name aborts
// the run with that source's error: a partially grouped source is worse
// than none, so nothing of the failing source is emitted.
func (s *Service) Run(sources []string) (*Result, error) {
	result := &Result{}
	var out strings.Builder

	for _, source := range sources {
		text, count, err := s.processSource(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		if count == 0 {
			result.Skipped++
			continue
		}
		result.Sources++
		out.WriteString(text)
	}

	result.Stubs = out.String()
	return result, nil
}

// processSource runs one source end to end: parse, resolve every record in
// input order, group, render.
func (s *Service) processSource(source string) (string, int, error) {
	raws, namespaces, err := s.parser.Parse(source)
	if err != nil {
		return "", 0, err
	}
	if len(raws) == 0 {
		return "", 0, nil
	}

	resolver := declaration.NewResolver(s.root, namespaces)
	decls := make([]declaration.Declaration, 0, len(raws))
	for _, raw := range raws {
		d, err := declaration.New(raw, resolver)
		if err != nil {
			return "", 0, err
		}
		decls = append(decls, d)
	}

	elements := stubs.Group(s.root, decls)
	return stubs.Render(elements), len(raws), nil
}
