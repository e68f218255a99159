package resolver

import "github.com/gtechsltn/csharp-to-js/core/models"

// PropertyResolver selects the members of a type that become class properties.
type PropertyResolver struct{}

func NewPropertyResolver() *PropertyResolver {
	return &PropertyResolver{}
}

// GetProperties returns the readable, writable, non-private, non-excluded
// properties of t in declaration order. Bare fields are never returned.
func (pr *PropertyResolver) GetProperties(t models.TypeDescriptor) []models.PropertyDescriptor {
	if t == nil {
		return nil
	}

	var properties []models.PropertyDescriptor
	for _, member := range t.Members() {
		if pr.isEligible(member) {
			properties = append(properties, member)
		}
	}
	return properties
}

func (pr *PropertyResolver) isEligible(member models.PropertyDescriptor) bool {
	if member.IsField() || member.Excluded() {
		return false
	}
	if !member.CanRead() || !member.CanWrite() {
		return false
	}
	return member.ReadAccess() != models.AccessPrivate
}
