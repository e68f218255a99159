package naming

import (
	"testing"

	"github.com/gtechsltn/csharp-to-js/core/introspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dummyClass struct {
	IAmAProperty string
	HTTPServer   string
}

func TestCamelCaseConverter(t *testing.T) {
	members := introspect.TypeOf(dummyClass{}).Members()
	converter := CamelCaseConverter{}

	assert.Equal(t, "iAmAProperty", converter.GetPropertyName(members[0]))
	assert.Equal(t, "hTTPServer", converter.GetPropertyName(members[1]))
}

func TestSnakeCaseConverter(t *testing.T) {
	members := introspect.TypeOf(dummyClass{}).Members()
	converter := SnakeCaseConverter{}

	assert.Equal(t, "i_am_a_property", converter.GetPropertyName(members[0]))
	assert.Equal(t, "http_server", converter.GetPropertyName(members[1]))
}

func TestForStyle(t *testing.T) {
	tests := []struct {
		style    string
		expected PropertyNameConverter
	}{
		{"", CamelCaseConverter{}},
		{"camel", CamelCaseConverter{}},
		{"Snake", SnakeCaseConverter{}},
		{"preserve", PreserveConverter{}},
	}

	for _, tt := range tests {
		converter, err := ForStyle(tt.style)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, converter)
	}

	_, err := ForStyle("kebab")
	assert.Error(t, err)
}
