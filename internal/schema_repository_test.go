package internal

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/lychee-technology/typeschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository() typeschema.SchemaRepository {
	return NewSchemaRepository(typeschema.DefaultConfig(), zap.NewNop())
}

func TestGetOrAddBuildsAtMostOnce(t *testing.T) {
	repo := newTestRepository()
	calls := 0
	build := func() *typeschema.Schema {
		calls++
		return typeschema.Object()
	}

	first := repo.GetOrAdd("A.Thing", build)
	second := repo.GetOrAdd("A.Thing", build)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second, "each call returns its own reference")
	assert.Equal(t, "#/components/schemas/Thing", first.Ref.Pointer)
}

func TestGetOrAddPlaceholderVisibleDuringBuild(t *testing.T) {
	repo := newTestRepository()
	innerCalls := 0

	var inner *typeschema.Schema
	repo.GetOrAdd("Node", func() *typeschema.Schema {
		inner = repo.GetOrAdd("Node", func() *typeschema.Schema {
			innerCalls++
			return typeschema.Object()
		})

		_, ok := repo.Lookup("Node")
		assert.False(t, ok, "pending entries are not finalized")
		assert.Empty(t, repo.All(), "pending entries are not listed")

		return typeschema.Object(typeschema.Property{Name: "next", Schema: inner})
	})

	assert.Zero(t, innerCalls)
	require.True(t, inner.IsReference())
	assert.Equal(t, "Node", inner.Ref.Name)

	stored, ok := repo.Lookup("Node")
	require.True(t, ok)
	assert.Equal(t, []string{"next"}, stored.PropertyNames())
}

func TestGetOrAddNilBuildResult(t *testing.T) {
	repo := newTestRepository()
	repo.GetOrAdd("Nothing", func() *typeschema.Schema { return nil })

	stored, ok := repo.Lookup("Nothing")
	require.True(t, ok)
	assert.Equal(t, typeschema.Object(), stored)
}

func TestAllKeepsInsertionOrder(t *testing.T) {
	repo := newTestRepository()
	for _, id := range []typeschema.TypeIdentity{"C", "A", "B"} {
		repo.GetOrAdd(id, typeschema.Object().Clone)
	}

	var ids []typeschema.TypeIdentity
	for _, e := range repo.All() {
		ids = append(ids, e.Identity)
	}
	assert.Equal(t, []typeschema.TypeIdentity{"C", "A", "B"}, ids)
}

func TestAllOrdersByPlaceholder(t *testing.T) {
	repo := newTestRepository()
	repo.GetOrAdd("Outer", func() *typeschema.Schema {
		repo.GetOrAdd("Inner", typeschema.Object().Clone)
		return typeschema.Object()
	})

	entries := repo.All()
	require.Len(t, entries, 2)
	assert.Equal(t, typeschema.TypeIdentity("Outer"), entries[0].Identity)
	assert.Equal(t, typeschema.TypeIdentity("Inner"), entries[1].Identity)
}

func TestSchemaNameCollisionsGetSuffix(t *testing.T) {
	repo := newTestRepository()
	a := repo.GetOrAdd("billing.Address", typeschema.Object().Clone)
	b := repo.GetOrAdd("shipping.Address", typeschema.Object().Clone)
	c := repo.GetOrAdd("legacy.Address", typeschema.Object().Clone)

	assert.Equal(t, "Address", a.Ref.Name)
	assert.Equal(t, "Address2", b.Ref.Name)
	assert.Equal(t, "Address3", c.Ref.Name)
	assert.Equal(t, "#/components/schemas/Address2", b.Ref.Pointer)
}

func TestRepositoryUsesConfiguredNaming(t *testing.T) {
	config := typeschema.DefaultConfig()
	config.RefPrefix = typeschema.DefsRefPrefix
	config.SchemaNameSelector = func(id typeschema.TypeIdentity) string { return "T_" + string(id) }
	repo := NewSchemaRepository(config, nil)

	ref := repo.GetOrAdd("Node", typeschema.Object().Clone)
	assert.Equal(t, "T_Node", ref.Ref.Name)
	assert.Equal(t, "#/$defs/T_Node", ref.Ref.Pointer)
}

func TestResolve(t *testing.T) {
	repo := newTestRepository()
	ref := repo.GetOrAdd("Node", typeschema.Object().Clone)

	target, ok := repo.Resolve(ref)
	require.True(t, ok)
	assert.Equal(t, typeschema.ShapeObject, target.Shape())

	leaf := typeschema.Primitive(typeschema.TypeInteger)
	same, ok := repo.Resolve(leaf)
	require.True(t, ok)
	assert.Same(t, leaf, same)

	_, ok = repo.Resolve(typeschema.ReferenceTo("Missing", "Missing", typeschema.DefaultRefPrefix))
	assert.False(t, ok)

	_, ok = repo.Resolve(nil)
	assert.False(t, ok)
}

func TestPassIDIsUnique(t *testing.T) {
	a := newTestRepository()
	b := newTestRepository()
	assert.NotEqual(t, uuid.Nil, a.PassID())
	assert.NotEqual(t, a.PassID(), b.PassID())
}

func TestGetOrAddConcurrent(t *testing.T) {
	repo := newTestRepository()
	var calls atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := repo.GetOrAdd("Shared", func() *typeschema.Schema {
				calls.Add(1)
				return typeschema.Object()
			})
			assert.Equal(t, "Shared", ref.Ref.Name)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Len(t, repo.All(), 1)
}

func TestReportCollectsWarnings(t *testing.T) {
	repo := newTestRepository()
	assert.False(t, repo.Diagnostics().HasWarnings())
	assert.NoError(t, repo.Diagnostics().Strict())

	repo.Report(typeschema.NewUnresolvableFieldWarning("A.B", "X", "opaque type"))
	assert.True(t, repo.Diagnostics().HasWarnings())
	assert.Len(t, repo.Diagnostics().Warnings(), 1)
}
