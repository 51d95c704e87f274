// Package catalogerr defines the error kinds surfaced by the catalog core.
//
// Every error produced by validation, merging, or a repository carries one of
// the kind sentinels below so callers can branch with errors.Is without
// matching on message text.
package catalogerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat marks a malformed identifier or value shape.
	ErrFormat = errors.New("format error")
	// ErrConstraint marks an out-of-range, too-long or too-short field.
	ErrConstraint = errors.New("constraint error")
	// ErrDomain marks a seller email whose domain is not allowed.
	ErrDomain = errors.New("domain error")
	// ErrConflict marks a duplicate SKU.
	ErrConflict = errors.New("conflict error")
	// ErrNotFound marks an unknown product identifier or SKU.
	ErrNotFound = errors.New("not found")
)

// Kind names an error class in responses.
type Kind string

const (
	KindFormat     Kind = "format"
	KindConstraint Kind = "constraint"
	KindDomain     Kind = "domain"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
)

func (k Kind) sentinel() error {
	switch k {
	case KindFormat:
		return ErrFormat
	case KindDomain:
		return ErrDomain
	case KindConflict:
		return ErrConflict
	case KindNotFound:
		return ErrNotFound
	default:
		return ErrConstraint
	}
}

// FieldError reports a single invalid field.
type FieldError struct {
	Kind   Kind   `json:"kind"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is matches the kind sentinel.
func (e *FieldError) Is(target error) bool {
	return e.Kind.sentinel() == target
}

// Format returns a FieldError of kind KindFormat.
func Format(field, reason string) *FieldError {
	return &FieldError{Kind: KindFormat, Field: field, Reason: reason}
}

// Constraint returns a FieldError of kind KindConstraint.
func Constraint(field, reason string) *FieldError {
	return &FieldError{Kind: KindConstraint, Field: field, Reason: reason}
}

// Domain returns a FieldError of kind KindDomain.
func Domain(field, domain string) *FieldError {
	return &FieldError{
		Kind:   KindDomain,
		Field:  field,
		Reason: fmt.Sprintf("email domain '%s' is not allowed for sellers", domain),
	}
}

// FieldErrors aggregates every violation found in one payload.
type FieldErrors []*FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is reports whether any contained violation matches target.
func (fe FieldErrors) Is(target error) bool {
	for _, e := range fe {
		if e.Is(target) {
			return true
		}
	}
	return false
}

// Kind returns the kind of the first violation.
func (fe FieldErrors) Kind() Kind {
	if len(fe) == 0 {
		return KindConstraint
	}
	return fe[0].Kind
}

// Conflict reports a SKU already taken by another record.
func Conflict(sku string) error {
	return fmt.Errorf("product with SKU %s already exists: %w", sku, ErrConflict)
}

// NotFound reports an unknown product identifier.
func NotFound(id string) error {
	return fmt.Errorf("product with ID %s not found: %w", id, ErrNotFound)
}

// KindOf classifies err, returning "" for errors outside the taxonomy.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrDomain):
		return KindDomain
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrConstraint):
		return KindConstraint
	default:
		return ""
	}
}
