package stubs

import (
	"testing"

	"stubgen/pkg/declaration"
	"stubgen/pkg/hdr"
)

func mustDecl(t *testing.T, resolver *declaration.Resolver, qualified string, args ...hdr.RawArgument) declaration.Declaration {
	t.Helper()
	d, err := declaration.New(hdr.RawDeclaration{
		QualifiedName: qualified,
		CReturnType:   "void",
		Arguments:     args,
	}, resolver)
	if err != nil {
		t.Fatalf("Failed to build declaration %q: %v", qualified, err)
	}
	return d
}

func TestGroupReDispatchSequence(t *testing.T) {
	// topFn, classDecl, methodA, methodB, topFn2: the second function must
	// leave the class block and still be emitted at top level.
	r := declaration.NewResolver("cv", nil)
	decls := []declaration.Declaration{
		mustDecl(t, r, "cv.resize"),
		mustDecl(t, r, "class cv.Mat"),
		mustDecl(t, r, "cv.Mat.row"),
		mustDecl(t, r, "cv.Mat.col"),
		mustDecl(t, r, "cv.blur"),
	}

	elements := Group("cv", decls)
	if len(elements) != 3 {
		t.Fatalf("Expected 3 elements, got %d: %+v", len(elements), elements)
	}

	first, ok := elements[0].(FunctionStub)
	if !ok || first.Decl.Name != "resize" {
		t.Errorf("Expected top-level resize first, got %+v", elements[0])
	}

	cls, ok := elements[1].(ClassStub)
	if !ok || cls.Name != "Mat" {
		t.Fatalf("Expected class Mat second, got %+v", elements[1])
	}
	if len(cls.Methods) != 2 || cls.Methods[0].Basename != "row" || cls.Methods[1].Basename != "col" {
		t.Errorf("Expected methods [row col], got %+v", cls.Methods)
	}

	last, ok := elements[2].(FunctionStub)
	if !ok || last.Decl.Name != "blur" {
		t.Errorf("Expected top-level blur last, got %+v", elements[2])
	}
}

func TestGroupCompleteness(t *testing.T) {
	// Every declaration lands in exactly one element, whatever transitions
	// the stream forces.
	r := declaration.NewResolver("cv", nil)
	decls := []declaration.Declaration{
		mustDecl(t, r, "cv.resize"),
		mustDecl(t, r, "class cv.Mat"),
		mustDecl(t, r, "cv.Mat.row"),
		mustDecl(t, r, "enum cv.AccessFlag"),
		mustDecl(t, r, "cv.Algorithm.clear"),
		mustDecl(t, r, "class cv.SparseMat"),
		mustDecl(t, r, "cv.blur"),
	}

	total := 0
	for _, el := range Group("cv", decls) {
		total += Declarations(el)
	}
	if total != len(decls) {
		t.Errorf("Expected %d declarations accounted for, got %d", len(decls), total)
	}
}

func TestGroupConstructor(t *testing.T) {
	r := declaration.NewResolver("cv", nil)
	elements := Group("cv", []declaration.Declaration{
		mustDecl(t, r, "cv.Mat.Mat"),
	})

	if len(elements) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(elements))
	}
	cls, ok := elements[0].(ClassStub)
	if !ok || cls.Name != "Mat" {
		t.Fatalf("Expected class Mat, got %+v", elements[0])
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Basename != declaration.ConstructorMarker {
		t.Errorf("Expected one constructor method, got %+v", cls.Methods)
	}

	want := "class Mat:\n\tdef __init__(self): ...\n"
	if got := Render(elements); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestGroupEnumFieldSwap(t *testing.T) {
	r := declaration.NewResolver("cv", nil)
	enum := mustDecl(t, r, "enum cv.Colors",
		hdr.RawArgument{Type: "const cv.RED", Name: "0"},
		hdr.RawArgument{Type: "const cv.GREEN", Name: "1"},
	)

	elements := Group("cv", []declaration.Declaration{enum})
	if len(elements) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(elements))
	}

	stub, ok := elements[0].(EnumStub)
	if !ok || stub.Name != "Colors" {
		t.Fatalf("Expected enum Colors, got %+v", elements[0])
	}
	if stub.Members[0].RawDisplayName != "RED" || stub.Members[0].RawValueToken != "0" {
		t.Errorf("Unexpected first member: %+v", stub.Members[0])
	}

	want := "class Colors(IntFlag):\n\tRED: int = 0\n\tGREEN: int = 1\n"
	if got := Render(elements); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestGroupEnumClosesOpenClass(t *testing.T) {
	r := declaration.NewResolver("cv", nil)
	elements := Group("cv", []declaration.Declaration{
		mustDecl(t, r, "cv.Mat.row"),
		mustDecl(t, r, "enum cv.AccessFlag"),
	})

	if len(elements) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(elements))
	}
	if _, ok := elements[0].(ClassStub); !ok {
		t.Errorf("Expected class first, got %+v", elements[0])
	}
	if _, ok := elements[1].(EnumStub); !ok {
		t.Errorf("Expected enum second (re-dispatched), got %+v", elements[1])
	}
}

func TestGroupBackToBackClasses(t *testing.T) {
	r := declaration.NewResolver("cv", nil)
	elements := Group("cv", []declaration.Declaration{
		mustDecl(t, r, "class cv.Mat"),
		mustDecl(t, r, "cv.Mat.row"),
		mustDecl(t, r, "class cv.SparseMat"),
		mustDecl(t, r, "cv.SparseMat.size"),
	})

	if len(elements) != 2 {
		t.Fatalf("Expected 2 class elements, got %d", len(elements))
	}
	first := elements[0].(ClassStub)
	second := elements[1].(ClassStub)
	if first.Name != "Mat" || len(first.Methods) != 1 {
		t.Errorf("Unexpected first class: %+v", first)
	}
	if second.Name != "SparseMat" || len(second.Methods) != 1 {
		t.Errorf("Unexpected second class: %+v", second)
	}
}

func TestMachineFeedIncremental(t *testing.T) {
	r := declaration.NewResolver("cv", nil)
	m := NewMachine("cv")

	if out := m.Feed(mustDecl(t, r, "class cv.Mat")); len(out) != 0 {
		t.Errorf("Opening a class should emit nothing yet, got %+v", out)
	}
	if out := m.Feed(mustDecl(t, r, "cv.Mat.row")); len(out) != 0 {
		t.Errorf("Extending a class should emit nothing, got %+v", out)
	}

	out := m.Feed(mustDecl(t, r, "cv.blur"))
	if len(out) != 2 {
		t.Fatalf("Expected closed class plus function, got %+v", out)
	}
	if _, ok := out[0].(ClassStub); !ok {
		t.Errorf("Expected class emitted first, got %+v", out[0])
	}
	if _, ok := out[1].(FunctionStub); !ok {
		t.Errorf("Expected re-dispatched function second, got %+v", out[1])
	}

	if out := m.Flush(); len(out) != 0 {
		t.Errorf("Nothing left to flush, got %+v", out)
	}
}
