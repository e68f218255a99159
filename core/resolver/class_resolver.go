package resolver

import "github.com/gtechsltn/csharp-to-js/core/models"

// ClassDependencyResolver resolves declared dependency types to the class
// records of the batch being generated together.
type ClassDependencyResolver struct {
	classes []*models.ClassRecord
	byType  map[models.TypeDescriptor]*models.ClassRecord
}

func NewClassDependencyResolver(classes []*models.ClassRecord) *ClassDependencyResolver {
	byType := make(map[models.TypeDescriptor]*models.ClassRecord, len(classes))
	for _, class := range classes {
		if class == nil || class.OriginalType == nil {
			continue
		}
		if _, exists := byType[class.OriginalType]; !exists {
			byType[class.OriginalType] = class
		}
	}
	return &ClassDependencyResolver{classes: classes, byType: byType}
}

// Resolve returns the batch records target depends on, deduplicated and in
// batch order. Dependencies outside the batch are omitted and target itself
// is never part of the result. Cycles are not detected here.
func (cr *ClassDependencyResolver) Resolve(target *models.ClassRecord) []*models.ClassRecord {
	if target == nil {
		return nil
	}

	wanted := make(map[*models.ClassRecord]bool)
	for _, dep := range target.Dependencies {
		if dep == nil || dep == target.OriginalType {
			continue
		}
		if class, ok := cr.byType[dep]; ok && class != target {
			wanted[class] = true
		}
	}

	resolved := make([]*models.ClassRecord, 0, len(wanted))
	for _, class := range cr.classes {
		if wanted[class] {
			resolved = append(resolved, class)
			delete(wanted, class)
		}
	}
	return resolved
}
