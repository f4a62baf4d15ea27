// Package validation carries the field-level input errors shared by the
// domain services. The transport layer renders them as 400 responses that
// name the offending field.
package validation

import "errors"

// FieldError reports an unusable input value on a named field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Missing reports a required field that was absent or empty.
func Missing(field string) *FieldError {
	return &FieldError{Field: field, Reason: "is required"}
}

// Invalid reports a field whose value failed validation.
func Invalid(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// AsFieldError unwraps err into a FieldError when one is present.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
