package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"IAmAProperty", "iAmAProperty"},
		{"Name", "name"},
		{"URL2Path", "uRL2Path"},
		{"already", "already"},
		{"Éclair", "éclair"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LowerFirst(tt.input), tt.input)
	}
}

func TestToTitle(t *testing.T) {
	assert.Equal(t, "Widget", ToTitle("widget"))
	assert.Equal(t, "", ToTitle(""))
}

func TestToSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"IAmAProperty", "i_am_a_property"},
		{"HTTPServer", "http_server"},
		{"IsActive", "is_active"},
		{"ID", "id"},
		{"Version2Name", "version2_name"},
		{"name", "name"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToSnake(tt.input), tt.input)
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"Widget", "_private", "$el", "Type2", "Éclair"} {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range []string{"", "2Type", "Box[int]", "Pair[string,int]", "a.b", "my-type"} {
		assert.False(t, IsIdentifier(s), s)
	}
}
