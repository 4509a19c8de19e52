package model

import "github.com/cppbind/cppbind/internal/types"

// DataMember is one exposed field, possibly hoisted from a PIMPL target
// (§3.1, §4.3's "Parse data members").
type DataMember struct {
	Owner         *WrappedClass // the class JS sees this member on
	DeclaringClass *WrappedClass // the class (self or ancestor) that declares it

	ShortName string
	LongName  string // fully qualified
	Type      types.TypeInfo

	IsConst bool

	DocComment  string
	Annotations []string

	jsNameResolved bool
	jsName         string

	// AccessedThrough is set when this member was hoisted from a PIMPL
	// field: it points at the PIMPL DataMember through which the outer
	// class reaches it (§3.1, at most one level of indirection).
	AccessedThrough *DataMember
}

// JSName returns the resolved JavaScript name for this member.
func (m *DataMember) JSName() string {
	return m.jsName
}

// Enum is one enum (or enum class) nested in a wrapped class (§3.1).
type Enum struct {
	Name     string
	Elements []EnumElement
}

// EnumElement is one (name, value) pair of an Enum.
type EnumElement struct {
	Name  string
	Value int
}
