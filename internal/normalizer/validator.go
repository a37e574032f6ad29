package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"apinorm/internal/models"
	"apinorm/pkg/fieldpath"
)

// ErrMalformedSynonym is returned when a registered candidate path is not
// a well-formed dot-path.
var ErrMalformedSynonym = errors.New("malformed synonym table entry")

// FallbackContent is the human-readable content of a total-fallback record.
const FallbackContent = "We're sorry, the service is temporarily unable to process this response. Please try again."

// FallbackModel marks records generated without any upstream data.
const FallbackModel = "fallback-model"

// fallbackIssue is the single issue recorded on a total-fallback record.
const fallbackIssue = "Complete fallback response generated"

// DefaultFunc produces a default value for a canonical field. Defaults
// are generated per call; the id default must be fresh every time.
type DefaultFunc func() any

// DefaultValues returns the default table for the canonical fields.
func DefaultValues() map[string]DefaultFunc {
	return map[string]DefaultFunc{
		models.FieldContent:   func() any { return "" },
		models.FieldID:        func() any { return FallbackID() },
		models.FieldTimestamp: func() any { return time.Now().UTC() },
		models.FieldModel:     func() any { return "unknown-model" },
		models.FieldUsage:     func() any { return models.Usage{} },
		models.FieldError:     func() any { return nil },
	}
}

// FallbackID generates a practically unique identifier for records that
// carry no upstream id: a fixed prefix, millisecond time, and a short
// random suffix. Not meant to be parsed.
func FallbackID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]

	return fmt.Sprintf("fallback-%d-%s", time.Now().UnixMilli(), suffix)
}

// Validator normalizes raw responses into canonical records, recording a
// validation issue for every required field that fell back to a default.
type Validator struct {
	resolver *Resolver
	defaults map[string]DefaultFunc
}

// NewValidator creates a validator with the reference synonym mapping and
// default table.
func NewValidator() *Validator {
	return NewValidatorWith(NewResolver())
}

// NewValidatorWith creates a validator around an explicitly configured
// resolver.
func NewValidatorWith(resolver *Resolver) *Validator {
	return &Validator{
		resolver: resolver,
		defaults: DefaultValues(),
	}
}

// Resolver exposes the validator's resolver so callers can extend the
// synonym table through Register.
func (v *Validator) Resolver() *Resolver {
	return v.resolver
}

// ExtractField resolves a single canonical field against a raw response.
func (v *Validator) ExtractField(response any, field string) (any, bool) {
	return v.resolver.Extract(response, field)
}

// ValidateAndNormalize builds a canonical record from a raw response.
// Input that is not a non-nil JSON object short-circuits to the total
// fallback record; this covers nil, primitives, and arrays. Every field
// in requiredFields is extracted or defaulted with a recorded issue; the
// fixed optional fields are then extracted or defaulted silently. The
// raw input is retained unmodified under the _original key.
func (v *Validator) ValidateAndNormalize(response any, requiredFields []string) (models.NormalizedResponse, error) {
	obj, ok := response.(map[string]any)
	if !ok || obj == nil {
		return v.CreateFallbackResponse(), nil
	}

	for _, field := range requiredFields {
		for _, candidate := range v.resolver.Candidates(field) {
			if !fieldpath.Valid(candidate) {
				return nil, fmt.Errorf("%w: %q for field %q", ErrMalformedSynonym, candidate, field)
			}
		}
	}

	out := models.NormalizedResponse{}
	issues := []string{}

	for _, field := range requiredFields {
		value, found := v.resolver.Extract(obj, field)
		if !found {
			value = v.defaultFor(field)

			issues = append(issues, "Missing field: "+field)
		}

		out[field] = value
	}

	// Best-effort enrichment: optional fields default without an issue.
	for _, field := range models.OptionalFields {
		if _, set := out[field]; set {
			continue
		}

		value, found := v.resolver.Extract(obj, field)
		if !found {
			value = v.defaultFor(field)
		}

		out[field] = value
	}

	out[models.KeyOriginal] = response
	out[models.KeyValidation] = &models.ValidationInfo{
		Timestamp: time.Now().UTC(),
		Issues:    issues,
	}

	return out, nil
}

// CreateFallbackResponse builds a complete canonical record signaling
// total failure. Aside from the generated id and timestamps it is
// deterministic, and it has no side effects.
func (v *Validator) CreateFallbackResponse() models.NormalizedResponse {
	return models.NormalizedResponse{
		models.FieldContent:   FallbackContent,
		models.FieldID:        FallbackID(),
		models.FieldTimestamp: time.Now().UTC(),
		models.FieldModel:     FallbackModel,
		models.FieldUsage:     models.Usage{},
		models.FieldError:     "response was missing or malformed",
		models.KeyValidation: &models.ValidationInfo{
			Timestamp: time.Now().UTC(),
			Issues:    []string{fallbackIssue},
		},
	}
}

// defaultFor returns the default for a canonical field, or the empty
// string for fields without a registered default.
func (v *Validator) defaultFor(field string) any {
	if gen, ok := v.defaults[field]; ok {
		return gen()
	}

	return ""
}
