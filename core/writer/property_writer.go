package writer

import (
	"fmt"

	"github.com/gtechsltn/csharp-to-js/core/models"
)

type PropertyWriter struct{}

func NewPropertyWriter() *PropertyWriter {
	return &PropertyWriter{}
}

// Write renders the assignment without a terminator; callers join statements.
func (pw *PropertyWriter) Write(property models.ConvertedProperty) string {
	return fmt.Sprintf("this.%s = %s", property.Name, property.Value)
}
