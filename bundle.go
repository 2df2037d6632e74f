package typeschema

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Bundle is the result of one generation pass: the root schema plus every named
// schema the pass stored, ready to be embedded in a larger document.
type Bundle struct {
	Root    *Schema
	Schemas []Entry
}

// NewBundle snapshots repo alongside root.
func NewBundle(root *Schema, repo SchemaRepository) *Bundle {
	return &Bundle{Root: root, Schemas: repo.All()}
}

// Schema returns the named schema.
func (b *Bundle) Schema(name string) (*Schema, bool) {
	for _, e := range b.Schemas {
		if e.Name == name {
			return e.Schema, true
		}
	}
	return nil, false
}

// MarshalJSON renders {"schema": root, "schemas": {name: schema, ...}} with the
// named schemas in insertion order.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"schema":`)
	if err := b.Root.writeJSON(&buf); err != nil {
		return nil, err
	}
	buf.WriteString(`,"schemas":{`)
	for i, e := range b.Schemas {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if err := e.Schema.writeJSON(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// MarshalYAML renders the same layout as MarshalJSON.
func (b *Bundle) MarshalYAML() (any, error) {
	schemas := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range b.Schemas {
		schemas.Content = append(schemas.Content, yamlString(e.Name), e.Schema.yamlNode())
	}
	if len(b.Schemas) == 0 {
		schemas.Style = yaml.FlowStyle
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			yamlString("schema"), b.Root.yamlNode(),
			yamlString("schemas"), schemas,
		},
	}, nil
}

// Inline returns a copy of the root schema with references replaced by the
// schemas they point at. A reference met again while its own target is being
// inlined is left in place, so cyclic graphs stay finite.
func (b *Bundle) Inline() *Schema {
	byName := make(map[string]*Schema, len(b.Schemas))
	for _, e := range b.Schemas {
		byName[e.Name] = e.Schema
	}
	in := &schemaInliner{schemas: byName, resolving: make(map[string]bool)}
	for _, e := range b.Schemas {
		if e.Schema == b.Root {
			in.resolving[e.Name] = true
		}
	}
	return in.inline(b.Root)
}

// schemaInliner tracks refs currently being resolved for cycle detection.
type schemaInliner struct {
	schemas   map[string]*Schema
	resolving map[string]bool
}

func (in *schemaInliner) inline(s *Schema) *Schema {
	if s == nil {
		return nil
	}
	if s.Ref != nil {
		target, ok := in.schemas[s.Ref.Name]
		if !ok || in.resolving[s.Ref.Name] {
			return s.Clone()
		}
		in.resolving[s.Ref.Name] = true
		defer delete(in.resolving, s.Ref.Name)
		return in.inline(target)
	}

	out := &Schema{Type: s.Type, Format: s.Format}
	if s.Enum != nil {
		out.Enum = append([]string{}, s.Enum...)
	}
	if s.Items != nil {
		out.Items = in.inline(s.Items)
	}
	if s.Properties != nil {
		out.Properties = make([]Property, len(s.Properties))
		for i, p := range s.Properties {
			out.Properties[i] = Property{Name: p.Name, Schema: in.inline(p.Schema)}
		}
	}
	return out
}
