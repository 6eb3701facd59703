package validation

import "errors"

// Detail is the serializable form of a single field failure, as it appears
// in a response envelope's validation_errors list.
type Detail struct {
	Fieldname string `json:"fieldname"`
	Message   string `json:"message"`
}

// Error represents a single field-level validation failure. It always
// carries both the offending field name and a human-readable message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Details returns the failure as a one-element detail list.
func (e *Error) Details() []Detail {
	return []Detail{{Fieldname: e.Field, Message: e.Message}}
}

// Errors is an ordered aggregate of field-level failures, in validation
// order. It is only ever materialized non-empty.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 1 {
		return e[0].Message
	}
	return "Validation errors occurred."
}

// Details returns one detail per aggregated error, in original order.
func (e Errors) Details() []Detail {
	details := make([]Detail, 0, len(e))
	for _, err := range e {
		details = append(details, Detail{Fieldname: err.Field, Message: err.Message})
	}
	return details
}

// Batch collects failures from several independent validations so a caller
// can report all of them in one pass instead of failing fast. A Batch is a
// plain value scoped to its caller; it is not safe for concurrent use.
type Batch struct {
	errors Errors
}

// Validate runs a single field validation, collecting the failure (if any)
// instead of returning it.
func (b *Batch) Validate(field string, value any, opts Options) {
	if err := Validate(field, value, opts); err != nil {
		var verr *Error
		if errors.As(err, &verr) {
			b.errors = append(b.errors, verr)
			return
		}
		b.errors = append(b.errors, &Error{Field: field, Message: err.Error()})
	}
}

// Err drains the batch: nil when every validation passed, otherwise the
// ordered Errors aggregate.
func (b *Batch) Err() error {
	if len(b.errors) == 0 {
		return nil
	}
	return b.errors
}
