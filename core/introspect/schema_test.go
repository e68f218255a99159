package introspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gtechsltn/csharp-to-js/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetSchema = `
types:
  - name: Widget
    namespace: app.models
    properties:
      - name: Name
        type: string
        value: Widget
      - name: IsActive
        type: bool
        value: true
      - name: Count
        type: int
        value: 10
      - name: Owner
        type: Person
      - name: Settings
        type: object
        value:
          theme: dark
      - name: cache
        type: string
        access: private
      - name: Raw
        type: string
        field: true
      - name: Hidden
        type: string
        exclude: true
  - name: Person
    namespace: app.people
    properties:
      - name: FirstName
        type: string
        value: Ann
`

func TestParseSchema(t *testing.T) {
	schema, err := ParseSchema([]byte(widgetSchema))
	require.NoError(t, err)
	require.Len(t, schema.Types, 2)

	widget := schema.Types[0]
	person := schema.Types[1]
	assert.Equal(t, "Widget", widget.Name())
	assert.Equal(t, "app.models", widget.Namespace())
	assert.Equal(t, "app.people.Person", person.QualifiedName())
	assert.Equal(t, models.PrimitiveNone, widget.Primitive())

	members := widget.Members()
	require.Len(t, members, 8)
	assert.Equal(t, "Name", members[0].Name())
	assert.Same(t, StringType, members[0].Type())
	assert.Same(t, BoolType, members[1].Type())
	assert.Same(t, NumberType, members[2].Type())
	assert.Same(t, person, members[3].Type())
	assert.Same(t, ObjectType, members[4].Type())
	assert.Equal(t, models.AccessPrivate, members[5].ReadAccess())
	assert.True(t, members[6].IsField())
	assert.True(t, members[7].Excluded())
}

func TestSchemaValues(t *testing.T) {
	schema, err := ParseSchema([]byte(widgetSchema))
	require.NoError(t, err)

	sources := schema.Sources()
	require.Len(t, sources, 2)
	members := sources[0].Type.Members()

	name, err := members[0].Value(sources[0].Instance)
	require.NoError(t, err)
	assert.Equal(t, "Widget", name)

	count, err := members[2].Value(sources[0].Instance)
	require.NoError(t, err)
	assert.Equal(t, 10, count)

	owner, err := members[3].Value(sources[0].Instance)
	require.NoError(t, err)
	assert.Nil(t, owner)

	settings, err := members[4].Value(sources[0].Instance)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "dark"}, settings)

	_, err = members[0].Value("not an instance")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected error
	}{
		{
			name:     "unknown type",
			doc:      "types:\n  - name: A\n    properties:\n      - name: B\n        type: Missing\n",
			expected: ErrUnknownType,
		},
		{
			name:     "duplicate type",
			doc:      "types:\n  - name: A\n  - name: A\n",
			expected: ErrDuplicateType,
		},
		{
			name: "ambiguous type",
			doc: "types:\n  - name: A\n    namespace: x\n  - name: A\n    namespace: y\n" +
				"  - name: B\n    properties:\n      - name: C\n        type: A\n",
			expected: ErrAmbiguousType,
		},
		{
			name:     "value mismatch",
			doc:      "types:\n  - name: A\n    properties:\n      - name: B\n        type: int\n        value: ten\n",
			expected: ErrInvalidValue,
		},
		{
			name:     "bad access",
			doc:      "types:\n  - name: A\n    properties:\n      - name: B\n        type: int\n        access: sometimes\n",
			expected: ErrInvalidSchema,
		},
		{
			name:     "malformed yaml",
			doc:      "types: [",
			expected: ErrInvalidSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestQualifiedReferenceResolvesAmbiguity(t *testing.T) {
	doc := "types:\n  - name: A\n    namespace: x\n  - name: A\n    namespace: y\n" +
		"  - name: B\n    properties:\n      - name: C\n        type: y.A\n"

	schema, err := ParseSchema([]byte(doc))
	require.NoError(t, err)

	require.Len(t, schema.Types, 3)
	b := schema.Types[2]
	assert.Equal(t, "B", b.Name())
	assert.Same(t, schema.Types[1], b.Members()[0].Type())
	assert.Equal(t, "y.A", schema.Types[1].QualifiedName())
}

func TestLoadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(widgetSchema), 0644))

	schema, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Len(t, schema.Types, 2)

	_, err = LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
