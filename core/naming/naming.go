package naming

import (
	"fmt"
	"strings"

	"github.com/gtechsltn/csharp-to-js/core/models"
	"github.com/gtechsltn/csharp-to-js/core/shared"
)

// PropertyNameConverter maps a source member name to a JavaScript identifier.
type PropertyNameConverter interface {
	GetPropertyName(property models.PropertyDescriptor) string
}

// CamelCaseConverter lower-cases the first character only; acronyms and
// digits after it pass through verbatim.
type CamelCaseConverter struct{}

func (CamelCaseConverter) GetPropertyName(property models.PropertyDescriptor) string {
	return shared.LowerFirst(property.Name())
}

type SnakeCaseConverter struct{}

func (SnakeCaseConverter) GetPropertyName(property models.PropertyDescriptor) string {
	return shared.ToSnake(property.Name())
}

// PreserveConverter keeps source names unchanged.
type PreserveConverter struct{}

func (PreserveConverter) GetPropertyName(property models.PropertyDescriptor) string {
	return property.Name()
}

const (
	StyleCamel    = "camel"
	StyleSnake    = "snake"
	StylePreserve = "preserve"
)

// ForStyle returns the converter registered for a config style name.
func ForStyle(style string) (PropertyNameConverter, error) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", StyleCamel:
		return CamelCaseConverter{}, nil
	case StyleSnake:
		return SnakeCaseConverter{}, nil
	case StylePreserve:
		return PreserveConverter{}, nil
	default:
		return nil, fmt.Errorf("unknown name style %q", style)
	}
}
