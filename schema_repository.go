package typeschema

import "github.com/google/uuid"

// Entry is one named schema held by a SchemaRepository.
type Entry struct {
	Identity TypeIdentity `json:"identity"`
	Name     string       `json:"name"`
	Schema   *Schema      `json:"schema"`
}

// SchemaRepository maps type identities to the schemas produced for them during
// one generation pass. Create one per pass and discard it once the results are read.
type SchemaRepository interface {
	// GetOrAdd returns a reference to the schema stored under id. When id is absent,
	// a placeholder becomes visible first and build runs exactly once to produce the
	// final schema; a nested GetOrAdd for the same id sees the placeholder.
	GetOrAdd(id TypeIdentity, build func() *Schema) *Schema
	// Lookup returns the finalized schema stored under id.
	Lookup(id TypeIdentity) (*Schema, bool)
	// Resolve follows a reference schema to its stored target. Non-reference schemas
	// are returned unchanged.
	Resolve(s *Schema) (*Schema, bool)
	// All returns finalized entries in insertion order.
	All() []Entry
	// Report records a non-fatal warning for this pass.
	Report(w Warning)
	Diagnostics() Diagnostics
	PassID() uuid.UUID
}

// SchemaGenerator turns type descriptions into schemas.
type SchemaGenerator interface {
	// Generate returns the schema for desc. The call that first builds a composite
	// type returns its object schema; repeated calls return a reference to it.
	Generate(desc TypeDescriptor, repo SchemaRepository) (*Schema, error)
	// GenerateAll generates each description in order against the same repository.
	GenerateAll(descs []TypeDescriptor, repo SchemaRepository) ([]*Schema, error)
}
