package typeschema

import (
	"fmt"
	"strings"
)

// TypeIdentity uniquely identifies a type description, e.g. its fully qualified name.
// Two descriptions of the same type must report the same identity.
type TypeIdentity string

// TypeKind is the classification-relevant shape of a type description.
type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindInteger
	KindNumber
	KindText
	KindBoolean
	KindEnum
	KindTemporal
	KindEnumerable
	KindComposite
)

var kindNames = map[TypeKind]string{
	KindUnknown:    "unknown",
	KindInteger:    "integer",
	KindNumber:     "number",
	KindText:       "text",
	KindBoolean:    "boolean",
	KindEnum:       "enum",
	KindTemporal:   "temporal",
	KindEnumerable: "enumerable",
	KindComposite:  "composite",
}

func (k TypeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// ParseTypeKind converts a kind name (as returned by String) back into a TypeKind.
func ParseTypeKind(name string) (TypeKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown type kind %q", name)
}

// TypeDescriptor describes a type to the schema generator.
//
// Element is meaningful for enumerables, but may also be reported by text and enum
// types whose underlying representation is iterable; the kind decides which one wins.
// Members returns enum member names in declaration order. Fields returns composite
// fields in declaration order.
type TypeDescriptor interface {
	Identity() TypeIdentity
	Kind() TypeKind
	Element() TypeDescriptor
	Members() []string
	Fields() []FieldDescriptor
}

// FieldDescriptor describes one field of a composite type.
type FieldDescriptor struct {
	// Name is the raw field name as declared.
	Name string
	Type TypeDescriptor
	// SerializedName is an explicit serialization-name override. It takes precedence
	// over every other naming rule.
	SerializedName string
	// AlternateName is a legacy naming override, used when SerializedName is empty.
	AlternateName string
	// Skip marks fields that are not readable or not publicly exposed.
	Skip bool
}

// Field returns a FieldDescriptor with the given raw name and type.
func Field(name string, t TypeDescriptor) FieldDescriptor {
	return FieldDescriptor{Name: name, Type: t}
}

// WithSerializedName returns a copy of f carrying an explicit serialization name.
func (f FieldDescriptor) WithSerializedName(name string) FieldDescriptor {
	f.SerializedName = name
	return f
}

// WithAlternateName returns a copy of f carrying a legacy naming override.
func (f FieldDescriptor) WithAlternateName(name string) FieldDescriptor {
	f.AlternateName = name
	return f
}

// Skipped returns a copy of f that is excluded from generated schemas.
func (f FieldDescriptor) Skipped() FieldDescriptor {
	f.Skip = true
	return f
}

// Type is a hand-built TypeDescriptor. Composite and enumerable types may be
// completed after construction with SetFields and SetElement, which is how
// self-referencing and mutually referencing graphs are put together.
type Type struct {
	id      TypeIdentity
	kind    TypeKind
	element TypeDescriptor
	members []string
	fields  []FieldDescriptor
}

var _ TypeDescriptor = (*Type)(nil)

// Built-in primitive descriptors.
var (
	Int32     TypeDescriptor = Integer("int32")
	Int64     TypeDescriptor = Integer("int64")
	Double    TypeDescriptor = Number("double")
	Decimal   TypeDescriptor = Number("decimal")
	String    TypeDescriptor = Text("string")
	Bool      TypeDescriptor = Boolean("bool")
	Timestamp TypeDescriptor = Temporal("timestamp")
)

func newType(id TypeIdentity, kind TypeKind) *Type {
	return &Type{id: id, kind: kind}
}

func Integer(id TypeIdentity) *Type  { return newType(id, KindInteger) }
func Number(id TypeIdentity) *Type   { return newType(id, KindNumber) }
func Text(id TypeIdentity) *Type     { return newType(id, KindText) }
func Boolean(id TypeIdentity) *Type  { return newType(id, KindBoolean) }
func Temporal(id TypeIdentity) *Type { return newType(id, KindTemporal) }

// Opaque returns a type the generator cannot classify. It degrades to an empty
// object schema and produces an unresolvable-field warning.
func Opaque(id TypeIdentity) *Type { return newType(id, KindUnknown) }

// Enum returns an enumeration type with the given ordered member names.
func Enum(id TypeIdentity, members ...string) *Type {
	t := newType(id, KindEnum)
	t.members = append([]string{}, members...)
	return t
}

// SequenceOf returns an enumerable of elem. Its identity is derived from the
// element identity, so two sequences of the same element share an identity.
func SequenceOf(elem TypeDescriptor) *Type {
	id := TypeIdentity("sequence<>")
	if elem != nil {
		id = TypeIdentity("sequence<" + string(elem.Identity()) + ">")
	}
	return Enumerable(id, elem)
}

// Enumerable returns an enumerable of elem under an explicit identity.
func Enumerable(id TypeIdentity, elem TypeDescriptor) *Type {
	t := newType(id, KindEnumerable)
	t.element = elem
	return t
}

// Composite returns a composite type with the given fields.
func Composite(id TypeIdentity, fields ...FieldDescriptor) *Type {
	return Define(id).SetFields(fields...)
}

// Define returns a composite type without fields. Use SetFields once every type
// the fields refer to exists.
func Define(id TypeIdentity) *Type {
	return newType(id, KindComposite)
}

// SetFields replaces the field list of t and returns t.
func (t *Type) SetFields(fields ...FieldDescriptor) *Type {
	t.fields = append([]FieldDescriptor{}, fields...)
	return t
}

// SetElement replaces the element type of t and returns t.
func (t *Type) SetElement(elem TypeDescriptor) *Type {
	t.element = elem
	return t
}

// A nil *Type reads as an opaque type with no identity.
func (t *Type) Identity() TypeIdentity {
	if t == nil {
		return ""
	}
	return t.id
}

func (t *Type) Kind() TypeKind {
	if t == nil {
		return KindUnknown
	}
	return t.kind
}

func (t *Type) Element() TypeDescriptor {
	if t == nil {
		return nil
	}
	return t.element
}

func (t *Type) Members() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.members...)
}

func (t *Type) Fields() []FieldDescriptor {
	if t == nil {
		return nil
	}
	return append([]FieldDescriptor(nil), t.fields...)
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", t.kind, t.id)
}
