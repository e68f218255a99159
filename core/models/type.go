package models

// PrimitiveKind classifies declared kinds that render as JavaScript literals.
type PrimitiveKind int

const (
	PrimitiveNone PrimitiveKind = iota
	PrimitiveString
	PrimitiveBool
	PrimitiveNumber
)

func (pk PrimitiveKind) String() string {
	switch pk {
	case PrimitiveNone:
		return "None"
	case PrimitiveString:
		return "String"
	case PrimitiveBool:
		return "Bool"
	case PrimitiveNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

type Access int

const (
	AccessPublic Access = iota
	AccessPrivate
)

// TypeDescriptor is a handle to an introspected type. Implementations must be
// comparable with == so descriptors can key dependency lookups.
type TypeDescriptor interface {
	Name() string
	Namespace() string
	Primitive() PrimitiveKind
	// Members returns every declared member in declaration order, unfiltered.
	Members() []PropertyDescriptor
}

// PropertyDescriptor describes one declared member of a type.
type PropertyDescriptor interface {
	Name() string
	Type() TypeDescriptor
	IsField() bool
	CanRead() bool
	CanWrite() bool
	ReadAccess() Access
	Excluded() bool
	Value(instance any) (any, error)
}

// Source pairs a type with the instance whose values are emitted.
type Source struct {
	Type     TypeDescriptor
	Instance any
}
