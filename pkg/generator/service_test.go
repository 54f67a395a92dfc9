package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stubgen/pkg/declaration"
	"stubgen/pkg/generator"
	"stubgen/pkg/hdr"
)

// fakeParser serves canned parser output per source path.
type fakeParser struct {
	decls      map[string][]hdr.RawDeclaration
	namespaces map[string][]string
}

func (p *fakeParser) Parse(source string) ([]hdr.RawDeclaration, []string, error) {
	return p.decls[source], p.namespaces[source], nil
}

func decl(name string) hdr.RawDeclaration {
	return hdr.RawDeclaration{QualifiedName: name, CReturnType: "void"}
}

func TestRunEndToEnd(t *testing.T) {
	parser := &fakeParser{
		decls: map[string][]hdr.RawDeclaration{
			"core.json": {
				decl("cv.resize"),
				decl("class cv.Mat"),
				decl("cv.Mat.row"),
				decl("cv.Mat.col"),
				decl("cv.blur"),
			},
		},
	}

	svc := generator.New(parser, "cv")
	result, err := svc.Run([]string{"core.json"})
	require.NoError(t, err)

	want := "def resize() -> void: ...\n" +
		"class Mat:\n" +
		"\tdef row(self): ...\n" +
		"\tdef col(self): ...\n" +
		"def blur() -> void: ...\n"
	assert.Equal(t, want, result.Stubs)
	assert.Equal(t, 1, result.Sources)
	assert.Equal(t, 0, result.Skipped)
}

func TestRunSkipsEmptySources(t *testing.T) {
	parser := &fakeParser{
		decls: map[string][]hdr.RawDeclaration{
			"empty.json": {},
			"core.json":  {decl("cv.resize")},
		},
	}

	svc := generator.New(parser, "cv")
	result, err := svc.Run([]string{"empty.json", "core.json"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Sources)
	assert.Equal(t, "def resize() -> void: ...\n", result.Stubs)
}

func TestRunAbortsSourceOnResolveError(t *testing.T) {
	parser := &fakeParser{
		decls: map[string][]hdr.RawDeclaration{
			"bad.json": {
				decl("cv.resize"),
				decl("cv.a.b.c"),
			},
		},
	}

	svc := generator.New(parser, "cv")
	result, err := svc.Run([]string{"bad.json"})
	require.Error(t, err)
	assert.Nil(t, result)

	var resolveErr *declaration.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, "cv.a.b.c", resolveErr.RawName)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestRunNamespaceFlattening(t *testing.T) {
	parser := &fakeParser{
		decls: map[string][]hdr.RawDeclaration{
			"ml.json": {decl("cv.ml.SVM.create")},
		},
		namespaces: map[string][]string{
			"ml.json": {"cv", "cv.ml"},
		},
	}

	svc := generator.New(parser, "cv")
	result, err := svc.Run([]string{"ml.json"})
	require.NoError(t, err)

	assert.Equal(t, "class ml_SVM:\n\tdef create(self): ...\n", result.Stubs)
}

func TestRunIdempotent(t *testing.T) {
	parser := &fakeParser{
		decls: map[string][]hdr.RawDeclaration{
			"core.json": {
				decl("cv.resize"),
				decl("cv.Mat.Mat"),
				decl("cv.Mat.row"),
			},
		},
	}

	svc := generator.New(parser, "cv")
	first, err := svc.Run([]string{"core.json"})
	require.NoError(t, err)
	second, err := svc.Run([]string{"core.json"})
	require.NoError(t, err)

	assert.Equal(t, first.Stubs, second.Stubs)
}
