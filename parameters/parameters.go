// Package parameters implements the self-validating parameter container
// used by every endpoint wrapper. A container is created per call, seeded
// with the authentication fields from configuration, validated, flattened
// into a request-parameter map, and discarded.
package parameters

import (
	"github.com/prestix-studio/cloudns-api/config"
	"github.com/prestix-studio/cloudns-api/validation"
)

// Field is one named parameter together with its validation directives.
// A bare value is a Field with only Name and Value set.
type Field struct {
	Name     string
	Value    any
	Optional bool

	// As selects a validator by name distinct from the field's own name.
	As string

	// Min and Max are inclusive bounds for integer validation. A pointer to
	// zero is a real bound.
	Min *int
	Max *int
}

// Parameters is an ordered set of fields for one API call. Fields keep
// insertion order so validation failures are reported in declaration order.
type Parameters struct {
	fields []Field
}

// New builds a container seeded with the authentication fields, applies the
// caller's fields (overriding auth defaults on name collision), and
// validates every field, collecting all failures into one error.
func New(fields ...Field) (*Parameters, error) {
	p, err := NewDeferred(fields...)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewDeferred is New without the validation pass. Callers that merge in
// additional values before validating (the patch-update protocol) use this
// and call Validate explicitly.
func NewDeferred(fields ...Field) (*Parameters, error) {
	auth, err := Auth()
	if err != nil {
		return nil, err
	}

	p := &Parameters{fields: auth}
	for _, f := range fields {
		p.set(f)
	}
	return p, nil
}

// set adds a field, replacing any same-named field in place. Exactly one
// entry exists per field name.
func (p *Parameters) set(f Field) {
	for i := range p.fields {
		if p.fields[i].Name == f.Name {
			p.fields[i] = f
			return
		}
	}
	p.fields = append(p.fields, f)
}

// Validate checks every field in insertion order, collecting every failure
// rather than stopping at the first. The returned error is always the
// ordered validation.Errors aggregate, even for a single failure.
func (p *Parameters) Validate() error {
	var batch validation.Batch
	for _, f := range p.fields {
		batch.Validate(f.Name, f.Value, validation.Options{
			Optional: f.Optional,
			As:       f.As,
			Min:      f.Min,
			Max:      f.Max,
		})
	}
	return batch.Err()
}

// Map flattens the container to a fresh name-to-value map. The result is
// independent storage: mutating it affects neither the container nor any
// other map.
func (p *Parameters) Map() map[string]any {
	m := make(map[string]any, len(p.fields))
	for _, f := range p.fields {
		m[f.Name] = f.Value
	}
	return m
}

// Auth returns the authentication fields resolved from configuration, in
// priority order: primary account id, then sub-account id, then sub-account
// username, always paired with the password. Missing credentials are an
// error unless testing mode is enabled.
func Auth() ([]Field, error) {
	var fields []Field

	switch {
	case config.AuthID() != "":
		fields = append(fields, Field{Name: "auth-id", Value: config.AuthID()})
	case config.SubAuthID() != "":
		fields = append(fields, Field{Name: "sub-auth-id", Value: config.SubAuthID()})
	case config.SubAuthUser() != "":
		fields = append(fields, Field{Name: "sub-auth-user", Value: config.SubAuthUser()})
	case config.Testing():
	default:
		return nil, config.ErrMissingAuthID
	}

	if config.AuthPassword() == "" {
		if config.Testing() {
			return fields, nil
		}
		return nil, config.ErrMissingAuthPassword
	}

	return append(fields, Field{Name: "auth-password", Value: config.AuthPassword()}), nil
}

// AuthMap is Auth flattened to a map, for the account-level endpoints that
// take no other parameters.
func AuthMap() (map[string]any, error) {
	fields, err := Auth()
	if err != nil {
		return nil, err
	}
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m, nil
}
