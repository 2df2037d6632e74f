package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lychee-technology/typeschema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of a descriptor catalog.
type catalogFile struct {
	Types []catalogType `yaml:"types"`
}

type catalogType struct {
	ID      string         `yaml:"id"`
	Kind    string         `yaml:"kind"`
	Element string         `yaml:"element"`
	Members []string       `yaml:"members"`
	Fields  []catalogField `yaml:"fields"`
}

type catalogField struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	SerializedName string `yaml:"serializedName"`
	AlternateName  string `yaml:"alternateName"`
	Skip           bool   `yaml:"skip"`
}

// Catalog holds type descriptions declared in a YAML file, keyed by identity.
type Catalog struct {
	types map[typeschema.TypeIdentity]*typeschema.Type
	order []typeschema.TypeIdentity
}

var builtinTypes = map[string]typeschema.TypeDescriptor{
	"int32":     typeschema.Int32,
	"int64":     typeschema.Int64,
	"integer":   typeschema.Integer("integer"),
	"double":    typeschema.Double,
	"float":     typeschema.Number("float"),
	"decimal":   typeschema.Decimal,
	"number":    typeschema.Number("number"),
	"string":    typeschema.String,
	"text":      typeschema.Text("text"),
	"bool":      typeschema.Bool,
	"boolean":   typeschema.Boolean("boolean"),
	"datetime":  typeschema.Temporal("datetime"),
	"timestamp": typeschema.Timestamp,
	"date":      typeschema.Temporal("date"),
}

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	zap.S().Debugw("catalog loaded", "path", path, "types", len(cat.order))
	return cat, nil
}

// ParseCatalog parses catalog YAML. Types are created first and wired second,
// so fields may refer to types declared later in the file or to themselves.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, typeschema.NewCatalogError(typeschema.ErrCodeInvalidCatalog, "malformed catalog").WithCause(err)
	}

	cat := &Catalog{types: make(map[typeschema.TypeIdentity]*typeschema.Type, len(file.Types))}

	for i, entry := range file.Types {
		id := typeschema.TypeIdentity(strings.TrimSpace(entry.ID))
		if id == "" {
			return nil, typeschema.NewCatalogError(typeschema.ErrCodeInvalidCatalog, "type entry has no id").
				WithDetail("index", i)
		}
		if _, dup := cat.types[id]; dup {
			return nil, typeschema.NewCatalogError(typeschema.ErrCodeDuplicateType, "type declared more than once").
				WithIdentity(id)
		}
		t, err := newCatalogType(id, entry)
		if err != nil {
			return nil, err
		}
		cat.types[id] = t
		cat.order = append(cat.order, id)
	}

	for _, entry := range file.Types {
		id := typeschema.TypeIdentity(strings.TrimSpace(entry.ID))
		t := cat.types[id]
		switch t.Kind() {
		case typeschema.KindEnumerable:
			t.SetElement(cat.resolve(entry.Element))
		case typeschema.KindComposite:
			fields := make([]typeschema.FieldDescriptor, 0, len(entry.Fields))
			for _, f := range entry.Fields {
				if f.Name == "" {
					return nil, typeschema.NewCatalogError(typeschema.ErrCodeInvalidCatalog, "field has no name").
						WithIdentity(id)
				}
				fd := typeschema.Field(f.Name, cat.resolve(f.Type)).
					WithSerializedName(f.SerializedName).
					WithAlternateName(f.AlternateName)
				if f.Skip {
					fd = fd.Skipped()
				}
				fields = append(fields, fd)
			}
			t.SetFields(fields...)
		}
	}

	return cat, nil
}

func newCatalogType(id typeschema.TypeIdentity, entry catalogType) (*typeschema.Type, error) {
	switch strings.ToLower(strings.TrimSpace(entry.Kind)) {
	case "", "composite", "object":
		return typeschema.Define(id), nil
	case "enum":
		return typeschema.Enum(id, entry.Members...), nil
	case "integer":
		return typeschema.Integer(id), nil
	case "number":
		return typeschema.Number(id), nil
	case "string", "text":
		return typeschema.Text(id), nil
	case "boolean":
		return typeschema.Boolean(id), nil
	case "datetime", "temporal":
		return typeschema.Temporal(id), nil
	case "sequence":
		if strings.TrimSpace(entry.Element) == "" {
			return nil, typeschema.NewCatalogError(typeschema.ErrCodeInvalidCatalog, "sequence type requires an element").
				WithIdentity(id)
		}
		return typeschema.Enumerable(id, nil), nil
	default:
		return nil, typeschema.NewCatalogError(typeschema.ErrCodeInvalidCatalog, "unknown kind").
			WithIdentity(id).
			WithDetail("kind", entry.Kind)
	}
}

// resolve maps a type reference to a descriptor. Built-in names win over catalog
// entries; names that match neither become opaque types.
func (c *Catalog) resolve(ref string) typeschema.TypeDescriptor {
	ref = strings.TrimSpace(ref)
	if t, ok := builtinTypes[ref]; ok {
		return t
	}
	if elem, ok := strings.CutPrefix(ref, "[]"); ok {
		return typeschema.SequenceOf(c.resolve(elem))
	}
	if strings.HasPrefix(ref, "sequence<") && strings.HasSuffix(ref, ">") {
		return typeschema.SequenceOf(c.resolve(ref[len("sequence<") : len(ref)-1]))
	}
	if t, ok := c.types[typeschema.TypeIdentity(ref)]; ok {
		return t
	}
	return typeschema.Opaque(typeschema.TypeIdentity(ref))
}

// Lookup returns the catalog type declared under id.
func (c *Catalog) Lookup(id typeschema.TypeIdentity) (typeschema.TypeDescriptor, error) {
	t, ok := c.types[id]
	if !ok {
		return nil, typeschema.NewTypeNotFoundError(id)
	}
	return t, nil
}

// IDs returns every declared identity in file order.
func (c *Catalog) IDs() []typeschema.TypeIdentity {
	return append([]typeschema.TypeIdentity(nil), c.order...)
}
