package internal

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/lychee-technology/typeschema"
	"go.uber.org/zap"
)

type repositoryEntry struct {
	name    string
	schema  *typeschema.Schema
	pending bool
}

type memorySchemaRepository struct {
	mu        sync.Mutex
	passID    uuid.UUID
	refPrefix string
	nameOf    typeschema.SchemaNameSelector
	entries   map[typeschema.TypeIdentity]*repositoryEntry
	order     []typeschema.TypeIdentity
	names     map[string]typeschema.TypeIdentity
	diag      *diagnostics
	logger    *zap.SugaredLogger
}

var _ typeschema.SchemaRepository = (*memorySchemaRepository)(nil)

// NewSchemaRepository creates an in-memory repository for one generation pass.
// A nil logger falls back to the global zap logger.
func NewSchemaRepository(cfg *typeschema.Config, logger *zap.Logger) typeschema.SchemaRepository {
	if cfg == nil {
		cfg = typeschema.DefaultConfig()
	}
	if logger == nil {
		logger = zap.L()
	}
	nameOf := cfg.SchemaNameSelector
	if nameOf == nil {
		nameOf = typeschema.DefaultSchemaName
	}
	prefix := cfg.RefPrefix
	if prefix == "" {
		prefix = typeschema.DefaultRefPrefix
	}
	passID := uuid.New()
	return &memorySchemaRepository{
		passID:    passID,
		refPrefix: prefix,
		nameOf:    nameOf,
		entries:   make(map[typeschema.TypeIdentity]*repositoryEntry),
		names:     make(map[string]typeschema.TypeIdentity),
		diag:      &diagnostics{},
		logger:    logger.Sugar().With("pass", passID.String()),
	}
}

func (r *memorySchemaRepository) PassID() uuid.UUID { return r.passID }

func (r *memorySchemaRepository) GetOrAdd(id typeschema.TypeIdentity, build func() *typeschema.Schema) *typeschema.Schema {
	r.mu.Lock()
	if e, ok := r.entries[id]; ok {
		r.mu.Unlock()
		return r.reference(id, e.name)
	}
	// Placeholder is visible before build runs so a recursive request for the
	// same identity returns a reference instead of descending again.
	name := r.uniqueName(id)
	entry := &repositoryEntry{name: name, schema: typeschema.Object(), pending: true}
	r.entries[id] = entry
	r.names[name] = id
	r.order = append(r.order, id)
	r.mu.Unlock()

	r.logger.Debugw("schema placeholder added", "identity", id, "name", name)

	schema := build()
	if schema == nil {
		schema = typeschema.Object()
	}

	r.mu.Lock()
	entry.schema = schema
	entry.pending = false
	r.mu.Unlock()

	r.logger.Debugw("schema registered", "identity", id, "name", name, "properties", len(schema.Properties))
	EmitSchemaRegistered(context.Background())

	return r.reference(id, name)
}

// uniqueName must be called with mu held.
func (r *memorySchemaRepository) uniqueName(id typeschema.TypeIdentity) string {
	base := r.nameOf(id)
	if base == "" {
		base = string(id)
	}
	name := base
	for n := 2; ; n++ {
		if _, taken := r.names[name]; !taken {
			return name
		}
		name = base + strconv.Itoa(n)
	}
}

func (r *memorySchemaRepository) reference(id typeschema.TypeIdentity, name string) *typeschema.Schema {
	return typeschema.ReferenceTo(id, name, r.refPrefix)
}

func (r *memorySchemaRepository) Lookup(id typeschema.TypeIdentity) (*typeschema.Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.pending {
		return nil, false
	}
	return e.schema, true
}

func (r *memorySchemaRepository) Resolve(s *typeschema.Schema) (*typeschema.Schema, bool) {
	if s == nil {
		return nil, false
	}
	if s.Ref == nil {
		return s, true
	}
	return r.Lookup(s.Ref.Identity)
}

func (r *memorySchemaRepository) All() []typeschema.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]typeschema.Entry, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		if e.pending {
			continue
		}
		out = append(out, typeschema.Entry{Identity: id, Name: e.name, Schema: e.schema})
	}
	return out
}

func (r *memorySchemaRepository) Report(w typeschema.Warning) {
	r.diag.report(w)
	r.logger.Warnw("schema generation warning", "code", w.Code, "path", w.Path, "identity", w.Identity, "message", w.Message)
	EmitWarning(context.Background(), w.Code)
}

func (r *memorySchemaRepository) Diagnostics() typeschema.Diagnostics { return r.diag }
