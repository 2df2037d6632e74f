package typeschema

import "github.com/google/jsonschema-go/jsonschema"

// DefsRefPrefix is the pointer prefix used by ToJSONSchema.
const DefsRefPrefix = "#/$defs/"

// ToJSONSchema converts the bundle into a standalone JSON Schema document: the
// root schema with every named schema under $defs and references rewritten to
// "#/$defs/<name>". Properties keep declaration order.
func (b *Bundle) ToJSONSchema() *jsonschema.Schema {
	root := toJSONSchema(b.Root)
	if len(b.Schemas) > 0 {
		root.Defs = make(map[string]*jsonschema.Schema, len(b.Schemas))
		for _, e := range b.Schemas {
			root.Defs[e.Name] = toJSONSchema(e.Schema)
		}
	}
	return root
}

func toJSONSchema(s *Schema) *jsonschema.Schema {
	if s == nil {
		return &jsonschema.Schema{}
	}
	if s.Ref != nil {
		return &jsonschema.Schema{Ref: DefsRefPrefix + s.Ref.Name}
	}

	out := &jsonschema.Schema{
		Type:   string(s.Type),
		Format: s.Format,
	}
	if s.Enum != nil {
		out.Enum = make([]any, len(s.Enum))
		for i, m := range s.Enum {
			out.Enum[i] = m
		}
	}
	if s.Items != nil {
		out.Items = toJSONSchema(s.Items)
	}
	if s.Type == TypeObject {
		out.Properties = make(map[string]*jsonschema.Schema, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties[p.Name] = toJSONSchema(p.Schema)
		}
		out.PropertyOrder = s.PropertyNames()
	}
	return out
}
