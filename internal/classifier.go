package internal

import (
	"github.com/lychee-technology/typeschema"
)

// Category is the schema shape a type description classifies into.
type Category int

const (
	CategoryUnresolvable Category = iota
	CategoryPrimitive
	CategoryDateTime
	CategoryEnum
	CategoryArray
	CategoryComposite
)

func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "primitive"
	case CategoryDateTime:
		return "date-time"
	case CategoryEnum:
		return "enum"
	case CategoryArray:
		return "array"
	case CategoryComposite:
		return "composite"
	default:
		return "unresolvable"
	}
}

// Classification is the outcome of Classify.
type Classification struct {
	Category Category
	// Type is set for primitives.
	Type typeschema.SchemaType
	// Members is set for enums.
	Members []string
	// Element is set for arrays.
	Element typeschema.TypeDescriptor
	// Reason explains an unresolvable classification.
	Reason string
}

// Classify decides which schema shape applies to desc. The first matching rule
// wins: integer, number, text, boolean, enum, temporal, enumerable, composite.
// Enums and text are decided before the enumerable rule, so an iterable
// underlying representation never turns them into arrays.
func Classify(desc typeschema.TypeDescriptor) Classification {
	if desc == nil {
		return unresolvable("missing type description")
	}

	switch kind := desc.Kind(); kind {
	case typeschema.KindInteger:
		return Classification{Category: CategoryPrimitive, Type: typeschema.TypeInteger}
	case typeschema.KindNumber:
		return Classification{Category: CategoryPrimitive, Type: typeschema.TypeNumber}
	case typeschema.KindText:
		return Classification{Category: CategoryPrimitive, Type: typeschema.TypeString}
	case typeschema.KindBoolean:
		return Classification{Category: CategoryPrimitive, Type: typeschema.TypeBoolean}
	case typeschema.KindEnum:
		return Classification{Category: CategoryEnum, Members: desc.Members()}
	case typeschema.KindTemporal:
		return Classification{Category: CategoryDateTime}
	case typeschema.KindEnumerable:
		elem := desc.Element()
		if elem == nil {
			return unresolvable("enumerable type has no element type")
		}
		return Classification{Category: CategoryArray, Element: elem}
	case typeschema.KindComposite:
		// Composites are deduplicated by identity; without one there is nothing to
		// key the placeholder on.
		if desc.Identity() == "" {
			return unresolvable("composite type has no identity")
		}
		return Classification{Category: CategoryComposite}
	case typeschema.KindUnknown:
		return unresolvable("opaque type")
	default:
		return unresolvable("unsupported type kind " + kind.String())
	}
}

func unresolvable(reason string) Classification {
	return Classification{Category: CategoryUnresolvable, Reason: reason}
}
