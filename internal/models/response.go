// Package models defines the canonical response record and report types.
package models

import "time"

// Canonical field names downstream consumers depend on regardless of
// upstream naming.
const (
	FieldContent   = "content"
	FieldID        = "id"
	FieldTimestamp = "timestamp"
	FieldModel     = "model"
	FieldUsage     = "usage"
	FieldError     = "error"
)

// Diagnostic keys carried alongside the canonical fields. Consumers must
// treat both as diagnostic-only, not part of the semantic payload.
const (
	KeyOriginal   = "_original"
	KeyValidation = "_validation"
)

// OptionalFields are populated on every normalization pass, falling back
// to defaults silently when the upstream response lacks them.
var OptionalFields = []string{FieldID, FieldTimestamp, FieldModel, FieldUsage, FieldError}

// ValidationInfo records when a response was normalized and which fields
// had to fall back to defaults.
type ValidationInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Issues    []string  `json:"issues"`
}

// Usage holds token accounting as reported by the upstream API.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// NormalizedResponse is the canonical response record. The upstream shape
// is unknown at compile time, so the record is an open map keyed by
// canonical field names plus the two diagnostic keys.
type NormalizedResponse map[string]any

// Content returns the canonical content field, or nil if not requested.
func (r NormalizedResponse) Content() any {
	return r[FieldContent]
}

// Field returns the named canonical field and whether it is set.
func (r NormalizedResponse) Field(name string) (any, bool) {
	v, ok := r[name]

	return v, ok
}

// Original returns the raw upstream value the record was normalized from.
// It is retained for diagnostics only and must never be mutated.
func (r NormalizedResponse) Original() any {
	return r[KeyOriginal]
}

// Validation returns the validation sub-record, or nil if absent.
func (r NormalizedResponse) Validation() *ValidationInfo {
	info, ok := r[KeyValidation].(*ValidationInfo)
	if !ok {
		return nil
	}

	return info
}

// Issues returns the recorded validation issues, if any.
func (r NormalizedResponse) Issues() []string {
	info := r.Validation()
	if info == nil {
		return nil
	}

	return info.Issues
}

// IsDegraded reports whether at least one field fell back to a default.
func (r NormalizedResponse) IsDegraded() bool {
	return len(r.Issues()) > 0
}
