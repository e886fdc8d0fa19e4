package templates

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Schema describes the replicated types of one package.
type Schema struct {
	Source  string       `yaml:"-"`
	Package string       `yaml:"package"`
	Types   []TypeSchema `yaml:"types"`
}

// LoadSchema reads and validates a YAML schema file.
func LoadSchema(path string) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(filepath.Base(path), b)
}

func ParseSchema(source string, b []byte) (*Schema, error) {
	s := &Schema{Source: source}
	if err := yaml.UnmarshalStrict(b, s); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return s, nil
}

type TypeSchema struct {
	Name       string           `yaml:"name"`
	Properties []PropertySchema `yaml:"properties"`
}

type PropertySchema struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Dim > 1 declares a fixed size array; every element gets its own index.
	Dim      int  `yaml:"dim"`
	Authored bool `yaml:"authored"`
}

// PropertyLayout is a property with its assigned indices.
type PropertyLayout struct {
	PropertySchema
	Index int
	Last  int
}

func (p PropertyLayout) IsArray() bool {
	return p.Dim > 1
}

func (p PropertyLayout) Field() string {
	f := lowerFirst(p.Name)
	if token.IsKeyword(f) {
		return f + "_"
	}
	return f
}

// Match is the switch case selecting this property's indices.
func (p PropertyLayout) Match(typeName string) string {
	if p.IsArray() {
		return fmt.Sprintf("idx >= %s%s && idx <= %s%sLast", typeName, p.Name, typeName, p.Name)
	}
	return fmt.Sprintf("idx == %s%s", typeName, p.Name)
}

func (p PropertyLayout) GoType() string {
	if p.IsArray() {
		return fmt.Sprintf("[%d]%s", p.Dim, p.Type)
	}
	return p.Type
}

// Layout assigns consecutive indices in declaration order.
func (t *TypeSchema) Layout() []PropertyLayout {
	out := make([]PropertyLayout, 0, len(t.Properties))
	next := 0
	for _, p := range t.Properties {
		width := max(p.Dim, 1)
		out = append(out, PropertyLayout{
			PropertySchema: p,
			Index:          next,
			Last:           next + width - 1,
		})
		next += width
	}
	return out
}

func (t *TypeSchema) NumProperties() int {
	n := 0
	for _, p := range t.Properties {
		n += max(p.Dim, 1)
	}
	return n
}

// reserved names collide with the methods every generated type carries.
var reserved = map[string]bool{
	"Key": true, "M": true, "NumProperties": true, "Property": true, "IsAuthored": true,
}

var comparableTypes = map[string]bool{
	"bool": true, "string": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "int": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true, "uint": true,
	"float32": true, "float64": true,
}

// Validate rejects schemas the generated code could not compile from.
func (s *Schema) Validate() error {
	if !token.IsIdentifier(s.Package) {
		return fmt.Errorf("invalid package name %q", s.Package)
	}
	for _, t := range s.Types {
		if !token.IsExported(t.Name) {
			return fmt.Errorf("type %q must be exported", t.Name)
		}
		seen := map[string]bool{}
		for _, p := range t.Properties {
			if !token.IsExported(p.Name) {
				return fmt.Errorf("%s.%s: property must be exported", t.Name, p.Name)
			}
			if reserved[p.Name] {
				return fmt.Errorf("%s.%s: name is reserved", t.Name, p.Name)
			}
			if seen[p.Name] {
				return fmt.Errorf("%s.%s: duplicate property", t.Name, p.Name)
			}
			seen[p.Name] = true
			if !comparableTypes[p.Type] {
				return fmt.Errorf("%s.%s: unsupported type %q", t.Name, p.Name, p.Type)
			}
			if p.Dim < 0 {
				return fmt.Errorf("%s.%s: negative dim", t.Name, p.Name)
			}
		}
		if t.NumProperties() > 1<<16 {
			return fmt.Errorf("%s: too many properties (%d)", t.Name, t.NumProperties())
		}
	}
	return nil
}
