package typeschema

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SchemaType is the JSON type keyword of a schema.
type SchemaType string

const (
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeString  SchemaType = "string"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// FormatDateTime is the format used for temporal types.
const FormatDateTime = "date-time"

// Shape identifies which variant of a Schema is active.
type Shape int

const (
	ShapePrimitive Shape = iota
	ShapeFormattedString
	ShapeEnum
	ShapeArray
	ShapeObject
	ShapeReference
)

func (s Shape) String() string {
	switch s {
	case ShapePrimitive:
		return "primitive"
	case ShapeFormattedString:
		return "string-with-format"
	case ShapeEnum:
		return "enum"
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	case ShapeReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Schema is a normalized description of a type's shape. Exactly one shape is
// active at a time; use the constructors rather than filling fields by hand.
type Schema struct {
	Type       SchemaType
	Format     string
	Enum       []string
	Items      *Schema
	Properties []Property
	Ref        *Reference
}

// Property is a named member of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Reference points at a schema stored in a SchemaRepository.
type Reference struct {
	Identity TypeIdentity
	// Name is the repository name of the target schema.
	Name string
	// Pointer is the rendered reference, e.g. "#/components/schemas/Name".
	Pointer string
}

// Primitive returns a schema of the given primitive type.
func Primitive(t SchemaType) *Schema {
	return &Schema{Type: t}
}

// DateTime returns the string schema used for temporal types.
func DateTime() *Schema {
	return &Schema{Type: TypeString, Format: FormatDateTime}
}

// EnumOf returns a string schema restricted to members, in order.
func EnumOf(members ...string) *Schema {
	return &Schema{Type: TypeString, Enum: append([]string{}, members...)}
}

// ArrayOf returns an array schema whose elements follow items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// Object returns an object schema with properties in the given order. An object
// without properties still renders an empty property mapping.
func Object(props ...Property) *Schema {
	return &Schema{Type: TypeObject, Properties: append([]Property{}, props...)}
}

// ReferenceTo returns a reference schema for the repository entry named name.
func ReferenceTo(id TypeIdentity, name, prefix string) *Schema {
	return &Schema{Ref: &Reference{Identity: id, Name: name, Pointer: prefix + name}}
}

// Shape reports the active variant of s.
func (s *Schema) Shape() Shape {
	switch {
	case s.Ref != nil:
		return ShapeReference
	case s.Type == TypeArray:
		return ShapeArray
	case s.Type == TypeObject:
		return ShapeObject
	case s.Type == TypeString && s.Enum != nil:
		return ShapeEnum
	case s.Type == TypeString && s.Format != "":
		return ShapeFormattedString
	default:
		return ShapePrimitive
	}
}

// IsReference reports whether s points at a repository entry.
func (s *Schema) IsReference() bool {
	return s != nil && s.Ref != nil
}

// Property returns the schema of the named property.
func (s *Schema) Property(name string) (*Schema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// PropertyNames returns property names in declaration order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	return names
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{Type: s.Type, Format: s.Format}
	if s.Enum != nil {
		out.Enum = append([]string{}, s.Enum...)
	}
	if s.Items != nil {
		out.Items = s.Items.Clone()
	}
	if s.Properties != nil {
		out.Properties = make([]Property, len(s.Properties))
		for i, p := range s.Properties {
			out.Properties[i] = Property{Name: p.Name, Schema: p.Schema.Clone()}
		}
	}
	if s.Ref != nil {
		ref := *s.Ref
		out.Ref = &ref
	}
	return out
}

// MarshalJSON renders s keeping property declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Schema) writeJSON(buf *bytes.Buffer) error {
	if s == nil {
		buf.WriteString("{}")
		return nil
	}
	if s.Ref != nil {
		buf.WriteString(`{"$ref":`)
		if err := writeJSONValue(buf, s.Ref.Pointer); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	}

	buf.WriteByte('{')
	sep := false
	key := func(k string) {
		if sep {
			buf.WriteByte(',')
		}
		sep = true
		buf.WriteByte('"')
		buf.WriteString(k)
		buf.WriteString(`":`)
	}

	if s.Type != "" {
		key("type")
		if err := writeJSONValue(buf, string(s.Type)); err != nil {
			return err
		}
	}
	if s.Format != "" {
		key("format")
		if err := writeJSONValue(buf, s.Format); err != nil {
			return err
		}
	}
	if s.Enum != nil {
		key("enum")
		if err := writeJSONValue(buf, s.Enum); err != nil {
			return err
		}
	}
	if s.Items != nil {
		key("items")
		if err := s.Items.writeJSON(buf); err != nil {
			return err
		}
	}
	if s.Type == TypeObject {
		key("properties")
		buf.WriteByte('{')
		for i, p := range s.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, p.Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := p.Schema.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// MarshalYAML renders s as an ordered YAML mapping.
func (s *Schema) MarshalYAML() (any, error) {
	return s.yamlNode(), nil
}

func (s *Schema) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if s == nil {
		return node
	}
	if s.Ref != nil {
		node.Content = append(node.Content, yamlString("$ref"), yamlString(s.Ref.Pointer))
		return node
	}
	if s.Type != "" {
		node.Content = append(node.Content, yamlString("type"), yamlString(string(s.Type)))
	}
	if s.Format != "" {
		node.Content = append(node.Content, yamlString("format"), yamlString(s.Format))
	}
	if s.Enum != nil {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, m := range s.Enum {
			seq.Content = append(seq.Content, yamlString(m))
		}
		node.Content = append(node.Content, yamlString("enum"), seq)
	}
	if s.Items != nil {
		node.Content = append(node.Content, yamlString("items"), s.Items.yamlNode())
	}
	if s.Type == TypeObject {
		props := &yaml.Node{Kind: yaml.MappingNode}
		if len(s.Properties) == 0 {
			props.Style = yaml.FlowStyle
		}
		for _, p := range s.Properties {
			props.Content = append(props.Content, yamlString(p.Name), p.Schema.yamlNode())
		}
		node.Content = append(node.Content, yamlString("properties"), props)
	}
	return node
}

func yamlString(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
