package introspect

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gtechsltn/csharp-to-js/core/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// TagName is the struct tag read by the reflection introspector.
//
//	js:"-"         member is excluded from output
//	js:",field"    member is a bare field, never a property
//	js:",readonly" member cannot be written
const TagName = "js"

var (
	ErrNilInstance  = errors.New("nil instance")
	ErrTypeMismatch = errors.New("instance does not match type")
	ErrInaccessible = errors.New("member is not accessible")
)

const memberCacheSize = 1024

// memberCache holds the flattened member list per struct type; watch mode
// reflects over the same types on every run.
var memberCache = mustMemberCache()

func mustMemberCache() *lru.Cache[reflect.Type, []models.PropertyDescriptor] {
	cache, err := lru.New[reflect.Type, []models.PropertyDescriptor](memberCacheSize)
	if err != nil {
		panic(err)
	}
	return cache
}

type reflectType struct {
	t reflect.Type
}

// TypeOf returns the descriptor of v's dynamic type, with pointers dereferenced.
func TypeOf(v any) models.TypeDescriptor {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil
	}
	return typeFor(t)
}

func TypeFor[T any]() models.TypeDescriptor {
	return typeFor(reflect.TypeFor[T]())
}

// SourceOf pairs v with its reflected type.
func SourceOf(v any) models.Source {
	return models.Source{Type: TypeOf(v), Instance: v}
}

// SourcesOf is SourceOf over a batch, preserving order.
func SourcesOf(values ...any) []models.Source {
	sources := make([]models.Source, 0, len(values))
	for _, v := range values {
		sources = append(sources, SourceOf(v))
	}
	return sources
}

func typeFor(t reflect.Type) reflectType {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return reflectType{t: t}
}

func (rt reflectType) Name() string {
	return rt.t.Name()
}

func (rt reflectType) Namespace() string {
	return rt.t.PkgPath()
}

func (rt reflectType) Primitive() models.PrimitiveKind {
	switch rt.t.Kind() {
	case reflect.String:
		return models.PrimitiveString
	case reflect.Bool:
		return models.PrimitiveBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return models.PrimitiveNumber
	default:
		return models.PrimitiveNone
	}
}

func (rt reflectType) Members() []models.PropertyDescriptor {
	if rt.t.Kind() != reflect.Struct {
		return nil
	}
	if members, ok := memberCache.Get(rt.t); ok {
		return slices.Clone(members)
	}

	var collected []*reflectProperty
	collectMembers(rt.t, rt.t, nil, map[reflect.Type]bool{rt.t: true}, &collected)

	// Promoted members are shadowed by shallower ones with the same name.
	shallowest := make(map[string]int)
	for _, p := range collected {
		if depth, ok := shallowest[p.name]; !ok || len(p.index) < depth {
			shallowest[p.name] = len(p.index)
		}
	}

	members := make([]models.PropertyDescriptor, 0, len(collected))
	taken := make(map[string]bool)
	for _, p := range collected {
		if len(p.index) != shallowest[p.name] || taken[p.name] {
			continue
		}
		taken[p.name] = true
		members = append(members, p)
	}
	memberCache.Add(rt.t, slices.Clone(members))
	return members
}

func (rt reflectType) String() string {
	return rt.t.String()
}

func collectMembers(owner, t reflect.Type, index []int, seen map[reflect.Type]bool, out *[]*reflectProperty) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		idx := append(append([]int(nil), index...), i)
		opts := parseTag(f.Tag.Get(TagName))

		if f.Anonymous && !opts.excluded {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if !seen[ft] {
					seen[ft] = true
					collectMembers(owner, ft, idx, seen, out)
				}
				continue
			}
		}

		if f.Name == "_" {
			continue
		}

		*out = append(*out, &reflectProperty{
			owner:    owner,
			name:     f.Name,
			typ:      typeFor(f.Type),
			index:    idx,
			exported: f.IsExported(),
			field:    opts.field,
			readonly: opts.readonly,
			excluded: opts.excluded,
		})
	}
}

type tagOptions struct {
	excluded bool
	field    bool
	readonly bool
}

func parseTag(tag string) tagOptions {
	if tag == "-" {
		return tagOptions{excluded: true}
	}
	var opts tagOptions
	for _, part := range strings.Split(tag, ",") {
		switch strings.TrimSpace(part) {
		case "field":
			opts.field = true
		case "readonly":
			opts.readonly = true
		}
	}
	return opts
}

type reflectProperty struct {
	owner    reflect.Type
	name     string
	typ      reflectType
	index    []int
	exported bool
	field    bool
	readonly bool
	excluded bool
}

func (rp *reflectProperty) Name() string                { return rp.name }
func (rp *reflectProperty) Type() models.TypeDescriptor { return rp.typ }
func (rp *reflectProperty) IsField() bool               { return rp.field }
func (rp *reflectProperty) CanRead() bool               { return true }
func (rp *reflectProperty) CanWrite() bool              { return !rp.readonly }
func (rp *reflectProperty) Excluded() bool              { return rp.excluded }

func (rp *reflectProperty) ReadAccess() models.Access {
	if rp.exported {
		return models.AccessPublic
	}
	return models.AccessPrivate
}

// Value reads the member from instance. A nil embedded pointer on the path
// yields a nil value rather than an error.
func (rp *reflectProperty) Value(instance any) (any, error) {
	if !rp.exported {
		return nil, fmt.Errorf("%w: %s", ErrInaccessible, rp.name)
	}

	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, fmt.Errorf("%w: reading %s", ErrNilInstance, rp.name)
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: reading %s", ErrNilInstance, rp.name)
	}
	if v.Type() != rp.owner {
		return nil, fmt.Errorf("%w: %s has no member %s", ErrTypeMismatch, v.Type(), rp.name)
	}

	field, err := v.FieldByIndexErr(rp.index)
	if err != nil {
		return nil, nil
	}
	if !field.CanInterface() {
		return nil, fmt.Errorf("%w: %s", ErrInaccessible, rp.name)
	}
	return field.Interface(), nil
}
