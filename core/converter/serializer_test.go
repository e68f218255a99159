package converter

import (
	"testing"
	"time"

	"github.com/gtechsltn/csharp-to-js/core/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Street string
	Number int
}

type customer struct {
	FullName  string
	Addresses []address
	Primary   *address
	Labels    map[string]string
	Joined    time.Time
	Notes     any
	private   string
	Ignored   string `js:"-"`
}

type node struct {
	Name string
	Next *node
}

func TestSerializeStruct(t *testing.T) {
	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := customer{
		FullName:  "Ann <Lee>",
		Addresses: []address{{Street: "Main", Number: 1}},
		Labels:    map[string]string{"b": "2", "a": "1"},
		Joined:    joined,
		private:   "x",
		Ignored:   "y",
	}

	out, err := NewJSONSerializer(DefaultSerializerSettings()).Serialize(c)

	require.NoError(t, err)
	assert.Equal(t,
		`{"fullName":"Ann <Lee>","addresses":[{"street":"Main","number":1}],"primary":null,`+
			`"labels":{"a":"1","b":"2"},"joined":"2024-03-01T12:00:00Z","notes":null}`,
		out)
}

func TestSerializeOmitNilAndKeyStyle(t *testing.T) {
	settings := SerializerSettings{KeyStyle: naming.SnakeCaseConverter{}, OmitNil: true}
	c := customer{FullName: "Ann", Joined: time.Unix(0, 0).UTC()}

	out, err := NewJSONSerializer(settings).Serialize(&c)

	require.NoError(t, err)
	assert.Equal(t, `{"full_name":"Ann","joined":"1970-01-01T00:00:00Z"}`, out)
}

func TestSerializeScalarsAndCollections(t *testing.T) {
	serializer := NewJSONSerializer(SerializerSettings{})
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "null"},
		{"string", "a&b", `"a&b"`},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"bool", false, "false"},
		{"slice", []int{1, 2}, "[1,2]"},
		{"array", [2]string{"x", "y"}, `["x","y"]`},
		{"bytes", []byte("hi"), `"aGk="`},
		{"nested any", map[string]any{"k": []any{1, "two", nil}}, `{"k":[1,"two",null]}`},
		{"nil map", map[string]int(nil), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := serializer.Serialize(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestSerializeSharedPointersAreNotCycles(t *testing.T) {
	shared := &address{Street: "Main"}
	value := []*address{shared, shared}

	out, err := NewJSONSerializer(DefaultSerializerSettings()).Serialize(value)

	require.NoError(t, err)
	assert.Equal(t, `[{"street":"Main","number":0},{"street":"Main","number":0}]`, out)
}

type bag struct {
	Items []any
}

func TestSerializeCycleFails(t *testing.T) {
	a := &node{Name: "a"}
	b := &node{Name: "b", Next: a}
	a.Next = b

	selfSlice := []any{nil}
	selfSlice[0] = selfSlice

	selfMap := map[string]any{}
	selfMap["self"] = selfMap

	tests := []struct {
		name  string
		value any
	}{
		{"pointer", a},
		{"slice", selfSlice},
		{"slice in struct", bag{Items: selfSlice}},
		{"map", selfMap},
	}

	serializer := NewJSONSerializer(DefaultSerializerSettings())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serializer.Serialize(tt.value)
			assert.ErrorIs(t, err, ErrCyclicValue)
		})
	}
}

func TestSerializeRepeatedSliceIsNotACycle(t *testing.T) {
	inner := []int{1, 2}
	type pair struct {
		A []int
		B []int
	}

	out, err := NewJSONSerializer(DefaultSerializerSettings()).Serialize(pair{A: inner, B: inner[:1]})

	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2],"b":[1]}`, out)
}

func TestSerializeUnsupported(t *testing.T) {
	_, err := NewJSONSerializer(DefaultSerializerSettings()).Serialize(make(chan int))

	assert.ErrorIs(t, err, ErrUnsupportedValue)
}
