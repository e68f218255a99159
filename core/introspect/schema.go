package introspect

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gtechsltn/csharp-to-js/core/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownType   = errors.New("unknown type")
	ErrDuplicateType = errors.New("duplicate type")
	ErrAmbiguousType = errors.New("ambiguous type")
	ErrInvalidValue  = errors.New("invalid value")
	ErrInvalidSchema = errors.New("invalid schema")
)

// Schema is a set of types registered explicitly from a YAML document:
//
//	types:
//	  - name: Widget
//	    namespace: app.models
//	    properties:
//	      - name: Name
//	        type: string
//	        value: Widget
//	      - name: Owner
//	        type: app.people.Person
type Schema struct {
	Types []*SchemaType
}

type schemaDocument struct {
	Types []schemaTypeSpec `yaml:"types"`
}

type schemaTypeSpec struct {
	Name       string               `yaml:"name"`
	Namespace  string               `yaml:"namespace"`
	Properties []schemaPropertySpec `yaml:"properties"`
}

type schemaPropertySpec struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Value    any    `yaml:"value"`
	Access   string `yaml:"access"`
	Field    bool   `yaml:"field"`
	Exclude  bool   `yaml:"exclude"`
	ReadOnly bool   `yaml:"readonly"`
}

// SchemaType is a TypeDescriptor registered through a schema. Builtin kinds
// are shared singletons so identity holds across schemas.
type SchemaType struct {
	name      string
	namespace string
	primitive models.PrimitiveKind
	members   []models.PropertyDescriptor
	defaults  map[string]any
}

var (
	StringType = &SchemaType{name: "string", primitive: models.PrimitiveString}
	BoolType   = &SchemaType{name: "bool", primitive: models.PrimitiveBool}
	NumberType = &SchemaType{name: "number", primitive: models.PrimitiveNumber}
	ObjectType = &SchemaType{name: "object"}
	ListType   = &SchemaType{name: "list"}
)

var builtinTypes = map[string]*SchemaType{
	"string":  StringType,
	"bool":    BoolType,
	"boolean": BoolType,
	"int":     NumberType,
	"int32":   NumberType,
	"int64":   NumberType,
	"float":   NumberType,
	"float32": NumberType,
	"float64": NumberType,
	"double":  NumberType,
	"decimal": NumberType,
	"number":  NumberType,
	"object":  ObjectType,
	"list":    ListType,
}

func (st *SchemaType) Name() string                    { return st.name }
func (st *SchemaType) Namespace() string               { return st.namespace }
func (st *SchemaType) Primitive() models.PrimitiveKind { return st.primitive }
func (st *SchemaType) Members() []models.PropertyDescriptor {
	return st.members
}

// QualifiedName is the namespace-qualified name used in schema references.
func (st *SchemaType) QualifiedName() string {
	if st.namespace == "" {
		return st.name
	}
	return st.namespace + "." + st.name
}

// Defaults returns the declared property values keyed by property name. The
// map is the instance read by the type's property descriptors.
func (st *SchemaType) Defaults() map[string]any {
	return st.defaults
}

type SchemaProperty struct {
	name     string
	typ      *SchemaType
	access   models.Access
	field    bool
	excluded bool
	readonly bool
}

func (sp *SchemaProperty) Name() string                { return sp.name }
func (sp *SchemaProperty) Type() models.TypeDescriptor { return sp.typ }
func (sp *SchemaProperty) IsField() bool               { return sp.field }
func (sp *SchemaProperty) CanRead() bool               { return true }
func (sp *SchemaProperty) CanWrite() bool              { return !sp.readonly }
func (sp *SchemaProperty) ReadAccess() models.Access   { return sp.access }
func (sp *SchemaProperty) Excluded() bool              { return sp.excluded }

func (sp *SchemaProperty) Value(instance any) (any, error) {
	values, ok := instance.(map[string]any)
	if !ok {
		if instance == nil {
			return nil, fmt.Errorf("%w: reading %s", ErrNilInstance, sp.name)
		}
		return nil, fmt.Errorf("%w: %T is not a schema instance", ErrTypeMismatch, instance)
	}
	return values[sp.name], nil
}

func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", path, err)
	}
	return schema, nil
}

func ParseSchema(data []byte) (*Schema, error) {
	var doc schemaDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	schema := &Schema{}
	byQualified := make(map[string]*SchemaType)
	byName := make(map[string][]*SchemaType)

	// First pass registers every type so properties may reference later ones.
	for _, decl := range doc.Types {
		if decl.Name == "" {
			return nil, fmt.Errorf("%w: type without a name", ErrInvalidSchema)
		}
		st := &SchemaType{
			name:      decl.Name,
			namespace: decl.Namespace,
			defaults:  make(map[string]any),
		}
		if _, exists := byQualified[st.QualifiedName()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, st.QualifiedName())
		}
		byQualified[st.QualifiedName()] = st
		byName[st.name] = append(byName[st.name], st)
		schema.Types = append(schema.Types, st)
	}

	for i, decl := range doc.Types {
		st := schema.Types[i]
		for _, ps := range decl.Properties {
			prop, err := buildProperty(ps, byQualified, byName)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", st.QualifiedName(), ps.Name, err)
			}
			st.members = append(st.members, prop)
			if ps.Value != nil {
				st.defaults[ps.Name] = ps.Value
			}
		}
	}

	return schema, nil
}

func buildProperty(ps schemaPropertySpec, byQualified map[string]*SchemaType, byName map[string][]*SchemaType) (*SchemaProperty, error) {
	if ps.Name == "" {
		return nil, fmt.Errorf("%w: property without a name", ErrInvalidSchema)
	}

	typ, err := lookupType(ps.Type, byQualified, byName)
	if err != nil {
		return nil, err
	}
	if err := checkValue(typ, ps.Value); err != nil {
		return nil, err
	}

	prop := &SchemaProperty{
		name:     ps.Name,
		typ:      typ,
		field:    ps.Field,
		excluded: ps.Exclude,
		readonly: ps.ReadOnly,
	}
	switch strings.ToLower(ps.Access) {
	case "", "public":
		prop.access = models.AccessPublic
	case "private", "internal", "protected":
		prop.access = models.AccessPrivate
	default:
		return nil, fmt.Errorf("%w: access %q", ErrInvalidSchema, ps.Access)
	}
	return prop, nil
}

func lookupType(ref string, byQualified map[string]*SchemaType, byName map[string][]*SchemaType) (*SchemaType, error) {
	if ref == "" {
		return ObjectType, nil
	}
	if builtin, ok := builtinTypes[strings.ToLower(ref)]; ok {
		return builtin, nil
	}
	if st, ok := byQualified[ref]; ok {
		return st, nil
	}
	switch candidates := byName[ref]; len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, ref)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%w: %s is declared in %d namespaces", ErrAmbiguousType, ref, len(candidates))
	}
}

func checkValue(typ *SchemaType, value any) error {
	if value == nil {
		return nil
	}
	var ok bool
	switch typ.primitive {
	case models.PrimitiveString:
		_, ok = value.(string)
	case models.PrimitiveBool:
		_, ok = value.(bool)
	case models.PrimitiveNumber:
		switch value.(type) {
		case int, int64, uint64, float64:
			ok = true
		}
	default:
		ok = true
	}
	if !ok {
		return fmt.Errorf("%w: %v is not a %s", ErrInvalidValue, value, typ.name)
	}
	return nil
}

// Sources returns every declared type paired with its default values, in
// declaration order.
func (s *Schema) Sources() []models.Source {
	sources := make([]models.Source, 0, len(s.Types))
	for _, st := range s.Types {
		sources = append(sources, models.Source{Type: st, Instance: st.Defaults()})
	}
	return sources
}
