package hdr

import (
	"encoding/json"
	"fmt"
	"os"
)

// dumpFile is the on-disk shape of a declaration dump: the header parser's
// materialized output for one source. Declarations are positional 6-element
// arrays, arguments positional 4-element arrays, both kept as raw JSON until
// arity has been checked.
type dumpFile struct {
	Namespaces   []string          `json:"namespaces"`
	Declarations []json.RawMessage `json:"declarations"`
	Variants     dumpVariants      `json:"variants"`
}

// dumpVariants holds the platform-specific declaration variants the parser
// generates when the corresponding feature flag was requested.
type dumpVariants struct {
	Unified []json.RawMessage `json:"unified"`
	Device  []json.RawMessage `json:"device"`
}

// DumpParser implements Parser by reading declaration dumps from disk. The
// option flags select which variant sections of a dump are included, in the
// same way they would be forwarded to a live header parser.
type DumpParser struct {
	opts Options
}

// NewDumpParser creates a dump-backed parser with the given feature flags.
func NewDumpParser(opts Options) *DumpParser {
	return &DumpParser{opts: opts}
}

// Parse reads one dump file and returns its declaration records, in file
// order, followed by any requested variant records, plus the namespace set.
func (p *DumpParser) Parse(source string) ([]RawDeclaration, []string, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, nil, err
	}
	return p.decode(data)
}

func (p *DumpParser) decode(data []byte) ([]RawDeclaration, []string, error) {
	var file dumpFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("invalid declaration dump: %w", err)
	}

	records := file.Declarations
	if p.opts.UnifiedVariants {
		records = append(records, file.Variants.Unified...)
	}
	if p.opts.DeviceVariants {
		records = append(records, file.Variants.Device...)
	}

	decls := make([]RawDeclaration, 0, len(records))
	for i, raw := range records {
		decl, err := decodeDeclaration(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("declaration %d: %w", i, err)
		}
		decls = append(decls, decl)
	}

	return decls, file.Namespaces, nil
}

// decodeDeclaration unpacks one positional declaration record. A record of
// the wrong arity is a precondition violation and fails immediately.
func decodeDeclaration(raw json.RawMessage) (RawDeclaration, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return RawDeclaration{}, fmt.Errorf("record is not an array: %w", err)
	}
	if len(fields) != 6 {
		return RawDeclaration{}, fmt.Errorf("record has %d fields, want 6", len(fields))
	}

	var decl RawDeclaration
	if err := json.Unmarshal(fields[0], &decl.QualifiedName); err != nil {
		return RawDeclaration{}, fmt.Errorf("name field: %w", err)
	}
	if err := json.Unmarshal(fields[1], &decl.CReturnType); err != nil {
		return RawDeclaration{}, fmt.Errorf("return type field: %w", err)
	}
	if err := unmarshalStrings(fields[2], &decl.Modifiers); err != nil {
		return RawDeclaration{}, fmt.Errorf("modifiers field: %w", err)
	}

	var args []json.RawMessage
	if err := json.Unmarshal(fields[3], &args); err != nil {
		return RawDeclaration{}, fmt.Errorf("arguments field: %w", err)
	}
	for i, rawArg := range args {
		arg, err := decodeArgument(rawArg)
		if err != nil {
			return RawDeclaration{}, fmt.Errorf("argument %d: %w", i, err)
		}
		decl.Arguments = append(decl.Arguments, arg)
	}

	// The parser reports null when the original return type matches the C
	// return type; both null and "" mean absent here.
	if err := unmarshalOptionalString(fields[4], &decl.OriginalReturnType); err != nil {
		return RawDeclaration{}, fmt.Errorf("original return type field: %w", err)
	}
	if err := unmarshalOptionalString(fields[5], &decl.Docstring); err != nil {
		return RawDeclaration{}, fmt.Errorf("docstring field: %w", err)
	}

	return decl, nil
}

// decodeArgument unpacks one positional 4-element argument record.
func decodeArgument(raw json.RawMessage) (RawArgument, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return RawArgument{}, fmt.Errorf("record is not an array: %w", err)
	}
	if len(fields) != 4 {
		return RawArgument{}, fmt.Errorf("record has %d fields, want 4", len(fields))
	}

	var arg RawArgument
	if err := json.Unmarshal(fields[0], &arg.Type); err != nil {
		return RawArgument{}, fmt.Errorf("type field: %w", err)
	}
	if err := json.Unmarshal(fields[1], &arg.Name); err != nil {
		return RawArgument{}, fmt.Errorf("name field: %w", err)
	}
	if err := unmarshalOptionalString(fields[2], &arg.DefaultValue); err != nil {
		return RawArgument{}, fmt.Errorf("default field: %w", err)
	}
	if err := unmarshalStrings(fields[3], &arg.Modifiers); err != nil {
		return RawArgument{}, fmt.Errorf("modifiers field: %w", err)
	}
	return arg, nil
}

func unmarshalStrings(raw json.RawMessage, dst *[]string) error {
	if isNull(raw) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func unmarshalOptionalString(raw json.RawMessage, dst *string) error {
	if isNull(raw) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
