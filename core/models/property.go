package models

type PropertyKind int

const (
	PropertyPlain PropertyKind = iota
	PropertyInstance
)

func (pk PropertyKind) String() string {
	switch pk {
	case PropertyPlain:
		return "Plain"
	case PropertyInstance:
		return "Instance"
	default:
		return "Unknown"
	}
}

// ConversionRequest is the input of a single property conversion.
type ConversionRequest struct {
	Property      PropertyDescriptor
	OriginalValue any
	// Structured types in these namespaces are emitted as nested instances.
	IncludedNamespaces []string
	// Structured types in these namespaces are always serialized.
	ExcludedNamespaces []string
}

type ConvertedProperty struct {
	OriginalValue any
	Property      PropertyDescriptor
	Name          string
	Kind          PropertyKind
	Value         string
}
