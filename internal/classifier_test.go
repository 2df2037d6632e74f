package internal

import (
	"testing"

	"github.com/lychee-technology/typeschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// iterableEnum reports an element type the way an enum backed by an iterable
// representation might.
type iterableEnum struct {
	*typeschema.Type
}

func (e iterableEnum) Element() typeschema.TypeDescriptor { return typeschema.Int32 }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		desc     typeschema.TypeDescriptor
		category Category
		typ      typeschema.SchemaType
		reason   string
	}{
		{name: "int32", desc: typeschema.Int32, category: CategoryPrimitive, typ: typeschema.TypeInteger},
		{name: "int64", desc: typeschema.Int64, category: CategoryPrimitive, typ: typeschema.TypeInteger},
		{name: "double", desc: typeschema.Double, category: CategoryPrimitive, typ: typeschema.TypeNumber},
		{name: "decimal", desc: typeschema.Decimal, category: CategoryPrimitive, typ: typeschema.TypeNumber},
		{name: "text", desc: typeschema.String, category: CategoryPrimitive, typ: typeschema.TypeString},
		{name: "bool", desc: typeschema.Bool, category: CategoryPrimitive, typ: typeschema.TypeBoolean},
		{name: "timestamp", desc: typeschema.Timestamp, category: CategoryDateTime},
		{name: "enum", desc: typeschema.Enum("Color", "Red"), category: CategoryEnum},
		{name: "sequence", desc: typeschema.SequenceOf(typeschema.Int32), category: CategoryArray},
		{name: "composite", desc: typeschema.Composite("Point"), category: CategoryComposite},
		{name: "nil", desc: nil, category: CategoryUnresolvable, reason: "missing type description"},
		{name: "opaque", desc: typeschema.Opaque("Blob"), category: CategoryUnresolvable, reason: "opaque type"},
		{name: "sequence without element", desc: typeschema.SequenceOf(nil), category: CategoryUnresolvable, reason: "enumerable type has no element type"},
		{name: "anonymous composite", desc: typeschema.Composite(""), category: CategoryUnresolvable, reason: "composite type has no identity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.desc)
			assert.Equal(t, tt.category, c.Category, c.Category.String())
			assert.Equal(t, tt.typ, c.Type)
			assert.Equal(t, tt.reason, c.Reason)
		})
	}
}

func TestClassifyEnumBeforeEnumerable(t *testing.T) {
	desc := iterableEnum{typeschema.Enum("Level", "Low", "High")}
	require.NotNil(t, desc.Element())

	c := Classify(desc)
	assert.Equal(t, CategoryEnum, c.Category)
	assert.Equal(t, []string{"Low", "High"}, c.Members)
	assert.Nil(t, c.Element)
}

func TestClassifyTextBeforeEnumerable(t *testing.T) {
	desc := iterableEnum{typeschema.Text("string")}
	c := Classify(desc)
	assert.Equal(t, CategoryPrimitive, c.Category)
	assert.Equal(t, typeschema.TypeString, c.Type)
}

func TestClassifyArrayElement(t *testing.T) {
	c := Classify(typeschema.SequenceOf(typeschema.Bool))
	require.Equal(t, CategoryArray, c.Category)
	assert.Equal(t, typeschema.Bool, c.Element)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "composite", CategoryComposite.String())
	assert.Equal(t, "date-time", CategoryDateTime.String())
	assert.Equal(t, "unresolvable", Category(99).String())
}
