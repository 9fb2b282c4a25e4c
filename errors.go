package goshape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goshape/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeInvalidEnum = "invalid_enum"
	CodeUnknownKey  = "unknown_key"
	// Shape construction and transforms
	CodeUnknownField   = "unknown_field"
	CodeDuplicateField = "duplicate_field"
	CodeFieldConflict  = "field_conflict"
	// Classification
	CodeNoMatchingVariant = "no_matching_variant"
	CodeAmbiguousVariant  = "ambiguous_variant"
	CodeUnknownVariant    = "unknown_variant"
	CodeDuplicateVariant  = "duplicate_variant"
	CodeCapabilityDenied  = "capability_denied"
	// Entity access
	CodeFieldNotInVariant = "field_not_in_variant"
	CodeReadonlyField     = "readonly_field"
)

// Issue represents a single violation.
type Issue struct {
	Path    string // JSON Pointer (for example: /email).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected type, allowed values, etc.
	// Params carries structured parameters (e.g., {"expected":"integer"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. invalid_type at /id
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func fieldIssue(field, code, hint string, params map[string]any) Issue {
	return Issue{Path: pointer(field), Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params}
}

// pointer renders a top-level field name as a JSON Pointer (RFC 6901).
func pointer(field string) string {
	if field == "" {
		return "/"
	}
	return "/" + strings.ReplaceAll(strings.ReplaceAll(field, "~", "~0"), "/", "~1")
}

// ErrUnclassified is returned by Guard.Access before a variant was decided.
var ErrUnclassified = errors.New("goshape: value has not been classified")

// UnknownFieldError reports field names that a transform referenced but the
// base shape does not declare.
type UnknownFieldError struct {
	Shape  string
	Fields []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("goshape: shape %q has no field(s) %s", e.Shape, strings.Join(e.Fields, ", "))
}

// DuplicateFieldError reports a field declared twice in one shape.
type DuplicateFieldError struct {
	Shape string
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("goshape: shape %q declares field %q more than once", e.Shape, e.Field)
}

// FieldConflictError reports a field that two extended shapes declare with
// different types.
type FieldConflictError struct {
	Field string
	Left  Type
	Right Type
}

func (e *FieldConflictError) Error() string {
	return fmt.Sprintf("goshape: field %q declared as %s and %s", e.Field, e.Left, e.Right)
}

// NoMatchingVariantError reports that no predicate accepted the value.
type NoMatchingVariantError struct {
	Tried []Tag
}

func (e *NoMatchingVariantError) Error() string {
	return fmt.Sprintf("goshape: no variant matched (tried %s)", joinTags(e.Tried))
}

// AmbiguousVariantError reports that several predicates accepted the value in
// strict mode. Matched keeps declaration order.
type AmbiguousVariantError struct {
	Matched []Tag
}

func (e *AmbiguousVariantError) Error() string {
	return fmt.Sprintf("goshape: value matches %d variants (%s)", len(e.Matched), joinTags(e.Matched))
}

// UnknownVariantError reports a tag that is not registered.
type UnknownVariantError struct {
	Tag Tag
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("goshape: variant %q is not registered", string(e.Tag))
}

// DuplicateVariantError reports a tag registered twice.
type DuplicateVariantError struct {
	Tag Tag
}

func (e *DuplicateVariantError) Error() string {
	return fmt.Sprintf("goshape: variant %q registered more than once", string(e.Tag))
}

// MissingShapeError reports a variant registered without a shape.
type MissingShapeError struct {
	Tag Tag
}

func (e *MissingShapeError) Error() string {
	return fmt.Sprintf("goshape: variant %q has no shape", string(e.Tag))
}

// CapabilityError reports access to a classified value whose variant is not
// among the authorized tags.
type CapabilityError struct {
	Tag     Tag
	Allowed []Tag
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("goshape: variant %q not authorized (allowed %s)", string(e.Tag), joinTags(e.Allowed))
}

// ShapeValidationError carries every violation found while validating a value
// against a shape.
type ShapeValidationError struct {
	Shape  string
	Issues Issues
}

func (e *ShapeValidationError) Error() string {
	return fmt.Sprintf("goshape: %s: %s", e.Shape, e.Issues.Error())
}

// Unwrap exposes the issue list to errors.As and AsIssues.
func (e *ShapeValidationError) Unwrap() error { return e.Issues }

// FieldNotInVariantError reports access to a field outside the entity's shape.
type FieldNotInVariantError struct {
	Tag   Tag
	Field string
}

func (e *FieldNotInVariantError) Error() string {
	return fmt.Sprintf("goshape: field %q is not part of variant %q", e.Field, string(e.Tag))
}

// ReadonlyFieldError reports an update of a field declared readonly.
type ReadonlyFieldError struct {
	Tag   Tag
	Field string
}

func (e *ReadonlyFieldError) Error() string {
	return fmt.Sprintf("goshape: field %q of variant %q is readonly", e.Field, string(e.Tag))
}

func joinTags(tags []Tag) string {
	if len(tags) == 0 {
		return "none"
	}
	ss := make([]string, len(tags))
	for i, t := range tags {
		ss[i] = string(t)
	}
	return strings.Join(ss, ", ")
}
