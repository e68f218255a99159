package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubType struct{ name string }

func (s *stubType) Name() string                  { return s.name }
func (s *stubType) Namespace() string             { return "" }
func (s *stubType) Primitive() PrimitiveKind      { return PrimitiveNone }
func (s *stubType) Members() []PropertyDescriptor { return nil }

func TestAddDependencySkipsSelfAndDuplicates(t *testing.T) {
	self := &stubType{name: "Main"}
	dep := &stubType{name: "Dep"}
	record := &ClassRecord{OriginalType: self}

	record.AddDependency(dep)
	record.AddDependency(self)
	record.AddDependency(dep)
	record.AddDependency(nil)

	assert.Equal(t, []TypeDescriptor{dep}, record.Dependencies)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "Plain", PropertyPlain.String())
	assert.Equal(t, "Instance", PropertyInstance.String())
	assert.Equal(t, "Number", PrimitiveNumber.String())
}
