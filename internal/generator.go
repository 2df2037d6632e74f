package internal

import (
	"context"
	"time"

	"github.com/lychee-technology/typeschema"
	"go.uber.org/zap"
)

type schemaGenerator struct {
	naming typeschema.NameTransform
	logger *zap.SugaredLogger
}

var _ typeschema.SchemaGenerator = (*schemaGenerator)(nil)

// NewSchemaGenerator validates cfg and returns a generator using its naming
// transform. A nil logger falls back to the global zap logger.
func NewSchemaGenerator(cfg *typeschema.Config, logger *zap.Logger) (typeschema.SchemaGenerator, error) {
	if cfg == nil {
		return nil, &typeschema.ConfigError{Field: "config", Message: "is required"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.L()
	}
	return &schemaGenerator{
		naming: cfg.NamingTransform,
		logger: logger.Sugar(),
	}, nil
}

func (g *schemaGenerator) Generate(desc typeschema.TypeDescriptor, repo typeschema.SchemaRepository) (*typeschema.Schema, error) {
	if repo == nil {
		return nil, &typeschema.ConfigError{Field: "repository", Message: "is required"}
	}

	start := time.Now()
	schema := g.generate(desc, repo, rootPath(desc), false, nil)
	elapsed := time.Since(start)

	EmitGenerateDuration(context.Background(), float64(elapsed.Microseconds())/1000.0)
	g.logger.Debugw("schema generated",
		"pass", repo.PassID().String(),
		"identity", identityOf(desc),
		"shape", schema.Shape().String(),
		"durationMicroseconds", elapsed.Microseconds())

	return schema, nil
}

func (g *schemaGenerator) GenerateAll(descs []typeschema.TypeDescriptor, repo typeschema.SchemaRepository) ([]*typeschema.Schema, error) {
	out := make([]*typeschema.Schema, 0, len(descs))
	for _, desc := range descs {
		s, err := g.Generate(desc, repo)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// generate maps desc to a schema. nested is true for field and array item
// positions, where composites always render as references. enclosing holds the
// enumerables directly wrapping this position; a composite starts a new run.
func (g *schemaGenerator) generate(desc typeschema.TypeDescriptor, repo typeschema.SchemaRepository, path string, nested bool, enclosing []typeschema.TypeDescriptor) *typeschema.Schema {
	c := Classify(desc)

	switch c.Category {
	case CategoryPrimitive:
		return typeschema.Primitive(c.Type)
	case CategoryDateTime:
		return typeschema.DateTime()
	case CategoryEnum:
		return typeschema.EnumOf(c.Members...)
	case CategoryArray:
		// Arrays are not stored, so an element chain leading back to the same
		// enumerable is only caught here.
		if containsDescriptor(enclosing, desc) {
			repo.Report(typeschema.NewUnresolvableFieldWarning(path, desc.Identity(), "enumerable type contains itself"))
			return typeschema.Object()
		}
		return typeschema.ArrayOf(g.generate(c.Element, repo, path+"[]", true, append(enclosing, desc)))
	case CategoryComposite:
		id := desc.Identity()
		built := false
		ref := repo.GetOrAdd(id, func() *typeschema.Schema {
			built = true
			return g.buildObject(desc, repo)
		})
		if built && !nested {
			if s, ok := repo.Resolve(ref); ok {
				return s
			}
		}
		return ref
	default:
		repo.Report(typeschema.NewUnresolvableFieldWarning(path, identityOf(desc), c.Reason))
		return typeschema.Object()
	}
}

func (g *schemaGenerator) buildObject(desc typeschema.TypeDescriptor, repo typeschema.SchemaRepository) *typeschema.Schema {
	id := desc.Identity()
	fields := desc.Fields()
	props := make([]typeschema.Property, 0, len(fields))
	seen := NewSet[string](len(fields))

	for _, f := range fields {
		if f.Skip {
			continue
		}
		path := string(id) + "." + f.Name
		name := g.fieldName(f)
		if name == "" {
			repo.Report(typeschema.Warning{
				Code:     typeschema.ErrCodeEmptyPropertyName,
				Path:     path,
				Identity: id,
				Message:  "field resolves to an empty property name",
			})
			continue
		}
		if !seen.Add(name) {
			repo.Report(typeschema.NewDuplicatePropertyWarning(path, id, name))
			continue
		}
		props = append(props, typeschema.Property{
			Name:   name,
			Schema: g.generate(f.Type, repo, path, true, nil),
		})
	}

	return typeschema.Object(props...)
}

// fieldName resolves the property name: an explicit serialized name, then the
// alternate name, then the configured transform of the raw name.
func (g *schemaGenerator) fieldName(f typeschema.FieldDescriptor) string {
	if f.SerializedName != "" {
		return f.SerializedName
	}
	if f.AlternateName != "" {
		return f.AlternateName
	}
	return g.naming(f.Name)
}

// containsDescriptor matches by identity, or by *typeschema.Type pointer when
// the identity is empty.
func containsDescriptor(list []typeschema.TypeDescriptor, desc typeschema.TypeDescriptor) bool {
	id := desc.Identity()
	for _, d := range list {
		if id != "" {
			if d.Identity() == id {
				return true
			}
			continue
		}
		if sameDescriptor(d, desc) {
			return true
		}
	}
	return false
}

func sameDescriptor(a, b typeschema.TypeDescriptor) bool {
	ta, ok := a.(*typeschema.Type)
	if !ok {
		return false
	}
	tb, ok := b.(*typeschema.Type)
	return ok && ta == tb
}

func rootPath(desc typeschema.TypeDescriptor) string {
	if id := identityOf(desc); id != "" {
		return string(id)
	}
	return "$"
}

func identityOf(desc typeschema.TypeDescriptor) typeschema.TypeIdentity {
	if desc == nil {
		return ""
	}
	return desc.Identity()
}
