package model

import "strings"

// CustomPrefix marks a custom exam id in fields that also hold ordinary exam ids.
const CustomPrefix = "custom:"

// RefKind tells ordinary exams from custom exams.
type RefKind int

const (
	RefOrdinary RefKind = iota
	RefCustom
)

// ExamRef identifies either an ordinary exam or a custom exam. On the wire it
// is a string, with custom exams written as "custom:<id>".
type ExamRef struct {
	Kind RefKind
	ID   string
}

// Ordinary returns a reference to a catalog exam.
func Ordinary(id string) ExamRef { return ExamRef{Kind: RefOrdinary, ID: id} }

// Custom returns a reference to a custom exam.
func Custom(id string) ExamRef { return ExamRef{Kind: RefCustom, ID: id} }

// ParseExamRef parses the wire form of an exam reference.
func ParseExamRef(s string) ExamRef {
	if id, ok := strings.CutPrefix(s, CustomPrefix); ok {
		return Custom(id)
	}
	return Ordinary(s)
}

// IsCustom reports whether r points at a custom exam.
func (r ExamRef) IsCustom() bool { return r.Kind == RefCustom }

// IsZero reports whether r is unset.
func (r ExamRef) IsZero() bool { return r.ID == "" && r.Kind == RefOrdinary }

func (r ExamRef) String() string {
	if r.Kind == RefCustom {
		return CustomPrefix + r.ID
	}
	return r.ID
}

// MarshalText implements encoding.TextMarshaler.
func (r ExamRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ExamRef) UnmarshalText(b []byte) error {
	*r = ParseExamRef(string(b))
	return nil
}
