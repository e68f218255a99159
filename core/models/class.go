package models

// ClassRecord is one type slated for emission as a JavaScript class file.
type ClassRecord struct {
	OriginalType TypeDescriptor
	Name         string
	FilePath     string
	Dependencies []TypeDescriptor
}

// AddDependency appends dep unless it is already declared or is the record's own type.
func (cr *ClassRecord) AddDependency(dep TypeDescriptor) {
	if dep == nil || dep == cr.OriginalType {
		return
	}
	for _, existing := range cr.Dependencies {
		if existing == dep {
			return
		}
	}
	cr.Dependencies = append(cr.Dependencies, dep)
}
