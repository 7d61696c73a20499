package model

import "fmt"

// SchemaViolation reports a field that does not satisfy an entity schema.
// Entities never coerce values into shape, that is the normalizer's job.
type SchemaViolation struct {
	Field string
	Want  string
	Got   string
}

func (v *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation on field %q: want %s, got %s", v.Field, v.Want, v.Got)
}

func violation(field, want, got string) *SchemaViolation {
	return &SchemaViolation{Field: field, Want: want, Got: got}
}
