package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/gtechsltn/csharp-to-js/core/models"
	"github.com/gtechsltn/csharp-to-js/core/naming"
	"github.com/gtechsltn/csharp-to-js/core/shared"
)

// PropertyConverter turns one discovered property and its value into an
// emittable JavaScript property.
type PropertyConverter struct {
	// NameConverter is the replaceable naming strategy.
	NameConverter naming.PropertyNameConverter
	Serializer    Serializer
}

type Option func(*PropertyConverter)

func WithNameConverter(nc naming.PropertyNameConverter) Option {
	return func(pc *PropertyConverter) {
		pc.NameConverter = nc
	}
}

func WithSerializer(s Serializer) Option {
	return func(pc *PropertyConverter) {
		pc.Serializer = s
	}
}

func NewPropertyConverter(opts ...Option) *PropertyConverter {
	pc := &PropertyConverter{
		NameConverter: naming.CamelCaseConverter{},
	}
	for _, opt := range opts {
		opt(pc)
	}
	if pc.Serializer == nil {
		pc.Serializer = NewJSONSerializer(DefaultSerializerSettings())
	}
	return pc
}

func (pc *PropertyConverter) ConvertName(property models.PropertyDescriptor) string {
	return pc.NameConverter.GetPropertyName(property)
}

// Convert classifies the property by its declared kind. Primitive kinds render
// as literals; structured kinds become a `new T()` expression when their
// namespace is included and not excluded, and are serialized otherwise.
// Types whose name is not a JavaScript identifier are always serialized.
func (pc *PropertyConverter) Convert(req models.ConversionRequest) (models.ConvertedProperty, error) {
	converted := models.ConvertedProperty{
		OriginalValue: req.OriginalValue,
		Property:      req.Property,
		Name:          pc.ConvertName(req.Property),
	}

	declared := req.Property.Type()
	if declared != nil && declared.Primitive() != models.PrimitiveNone {
		literal, err := renderLiteral(declared.Primitive(), req.OriginalValue)
		if err != nil {
			return models.ConvertedProperty{}, fmt.Errorf("property %s: %w", req.Property.Name(), err)
		}
		converted.Kind = models.PropertyPlain
		converted.Value = literal
		return converted, nil
	}

	if declared != nil && shared.IsIdentifier(declared.Name()) &&
		IsInstanceNamespace(declared.Namespace(), req.IncludedNamespaces, req.ExcludedNamespaces) {
		converted.Kind = models.PropertyInstance
		converted.Value = fmt.Sprintf("new %s()", declared.Name())
		return converted, nil
	}

	serialized, err := pc.Serializer.Serialize(req.OriginalValue)
	if err != nil {
		return models.ConvertedProperty{}, fmt.Errorf("property %s: %w", req.Property.Name(), err)
	}
	converted.Kind = models.PropertyPlain
	converted.Value = serialized
	return converted, nil
}

// IsInstanceNamespace reports whether a structured type in namespace is
// emitted as a nested instance. Exclusion wins over inclusion and the empty
// namespace never matches.
func IsInstanceNamespace(namespace string, included, excluded []string) bool {
	if namespace == "" {
		return false
	}
	if slices.Contains(excluded, namespace) {
		return false
	}
	return slices.Contains(included, namespace)
}

func renderLiteral(kind models.PrimitiveKind, value any) (string, error) {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "null", nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "null", nil
	}

	switch kind {
	case models.PrimitiveString:
		if v.Kind() != reflect.String {
			return "", fmt.Errorf("%w: %v is not a string", ErrUnsupportedValue, value)
		}
		return quoteString(v.String())

	case models.PrimitiveBool:
		if v.Kind() != reflect.Bool {
			return "", fmt.Errorf("%w: %v is not a bool", ErrUnsupportedValue, value)
		}
		return strconv.FormatBool(v.Bool()), nil

	case models.PrimitiveNumber:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(v.Int(), 10), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(v.Uint(), 10), nil
		case reflect.Float32:
			return formatFloat(v.Float(), 32), nil
		case reflect.Float64:
			return formatFloat(v.Float(), 64), nil
		}
		return "", fmt.Errorf("%w: %v is not a number", ErrUnsupportedValue, value)
	}

	return "", fmt.Errorf("%w: primitive kind %s", ErrUnsupportedValue, kind)
}

func quoteString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
