package converter

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/gtechsltn/csharp-to-js/core/introspect"
	"github.com/gtechsltn/csharp-to-js/core/naming"
	"github.com/gtechsltn/csharp-to-js/core/resolver"
)

var (
	ErrCyclicValue      = errors.New("cyclic value")
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Serializer encodes a structured value as an embedded JavaScript literal.
type Serializer interface {
	Serialize(value any) (string, error)
}

// SerializerSettings configures JSONSerializer. It is passed explicitly to
// each converter instead of living in process-wide state.
type SerializerSettings struct {
	// KeyStyle converts struct member names to object keys. Map keys are
	// written verbatim.
	KeyStyle naming.PropertyNameConverter
	// OmitNil drops object members whose value is nil.
	OmitNil bool
}

func DefaultSerializerSettings() SerializerSettings {
	return SerializerSettings{KeyStyle: naming.CamelCaseConverter{}}
}

// JSONSerializer writes compact, deterministic JSON. Struct members follow
// property discovery order and map keys are sorted.
type JSONSerializer struct {
	settings   SerializerSettings
	properties *resolver.PropertyResolver
}

func NewJSONSerializer(settings SerializerSettings) *JSONSerializer {
	if settings.KeyStyle == nil {
		settings.KeyStyle = naming.CamelCaseConverter{}
	}
	return &JSONSerializer{
		settings:   settings,
		properties: resolver.NewPropertyResolver(),
	}
}

func (js *JSONSerializer) Settings() SerializerSettings {
	return js.settings
}

func (js *JSONSerializer) Serialize(value any) (string, error) {
	var buf bytes.Buffer
	if err := js.encode(&buf, reflect.ValueOf(value), make(map[visitKey]bool)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// visitKey identifies a reference value on the current encoding path. Type
// and length are part of the key so a struct and its first field, or a slice
// and its prefix, are not mistaken for one another.
type visitKey struct {
	ptr uintptr
	len int
	typ reflect.Type
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func (js *JSONSerializer) encode(buf *bytes.Buffer, v reflect.Value, visiting map[visitKey]bool) error {
	if !v.IsValid() {
		buf.WriteString("null")
		return nil
	}

	if v.Type().Implements(jsonMarshalerType) || v.Type().Implements(textMarshalerType) {
		if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return js.writeJSON(buf, v.Interface())
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return js.encode(buf, v.Elem(), visiting)

	case reflect.Pointer:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		key := visitKey{ptr: v.Pointer(), typ: v.Type()}
		if visiting[key] {
			return fmt.Errorf("%w: %s", ErrCyclicValue, v.Type())
		}
		visiting[key] = true
		defer delete(visiting, key)
		return js.encode(buf, v.Elem(), visiting)

	case reflect.Struct:
		return js.encodeStruct(buf, v, visiting)

	case reflect.Map:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		key := visitKey{ptr: v.Pointer(), typ: v.Type()}
		if visiting[key] {
			return fmt.Errorf("%w: %s", ErrCyclicValue, v.Type())
		}
		visiting[key] = true
		defer delete(visiting, key)
		return js.encodeMap(buf, v, visiting)

	case reflect.Slice:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return js.writeJSON(buf, v.Interface())
		}
		if v.Len() > 0 {
			key := visitKey{ptr: v.Pointer(), len: v.Len(), typ: v.Type()}
			if visiting[key] {
				return fmt.Errorf("%w: %s", ErrCyclicValue, v.Type())
			}
			visiting[key] = true
			defer delete(visiting, key)
		}
		return js.encodeList(buf, v, visiting)

	case reflect.Array:
		return js.encodeList(buf, v, visiting)

	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		if !v.CanInterface() {
			return fmt.Errorf("%w: unexported %s", ErrUnsupportedValue, v.Type())
		}
		return js.writeJSON(buf, v.Interface())

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type())
	}
}

func (js *JSONSerializer) encodeStruct(buf *bytes.Buffer, v reflect.Value, visiting map[visitKey]bool) error {
	buf.WriteByte('{')
	first := true
	for _, prop := range js.properties.GetProperties(introspect.TypeOf(v.Interface())) {
		value, err := prop.Value(v.Interface())
		if err != nil {
			return err
		}
		if js.settings.OmitNil && isNil(reflect.ValueOf(value)) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := js.writeJSON(buf, js.settings.KeyStyle.GetPropertyName(prop)); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := js.encode(buf, reflect.ValueOf(value), visiting); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func (js *JSONSerializer) encodeList(buf *bytes.Buffer, v reflect.Value, visiting map[visitKey]bool) error {
	buf.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := js.encode(buf, v.Index(i), visiting); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func (js *JSONSerializer) encodeMap(buf *bytes.Buffer, v reflect.Value, visiting map[visitKey]bool) error {
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	buf.WriteByte('{')
	first := true
	for _, e := range entries {
		if js.settings.OmitNil && isNil(e.value) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := js.writeJSON(buf, e.key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := js.encode(buf, e.value, visiting); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func (js *JSONSerializer) writeJSON(buf *bytes.Buffer, value any) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	buf.Write(bytes.TrimRight(out.Bytes(), "\n"))
	return nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
