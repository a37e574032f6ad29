package normalizer

import (
	"errors"
	"strings"
	"testing"

	"apinorm/internal/models"
)

func TestValidator_ValidateAndNormalize_EmptyObject(t *testing.T) {
	v := NewValidator()

	resp, err := v.ValidateAndNormalize(map[string]any{}, []string{"content"})
	if err != nil {
		t.Fatalf("ValidateAndNormalize returned error: %v", err)
	}

	if resp.Content() != "" {
		t.Errorf("content = %v, want empty string", resp.Content())
	}

	issues := resp.Issues()
	if len(issues) != 1 || issues[0] != "Missing field: content" {
		t.Errorf("issues = %v, want exactly [Missing field: content]", issues)
	}
}

func TestValidator_ValidateAndNormalize_ExtractsSynonyms(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		response map[string]any
		want     any
	}{
		{
			name:     "Canonical key",
			response: map[string]any{"content": "direct"},
			want:     "direct",
		},
		{
			name:     "Synonym key",
			response: map[string]any{"text": "aliased"},
			want:     "aliased",
		},
		{
			name:     "Nested path",
			response: map[string]any{"data": map[string]any{"content": "nested"}},
			want:     "nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := v.ValidateAndNormalize(tt.response, []string{"content"})
			if err != nil {
				t.Fatalf("ValidateAndNormalize returned error: %v", err)
			}

			if resp.Content() != tt.want {
				t.Errorf("content = %v, want %v", resp.Content(), tt.want)
			}

			if resp.IsDegraded() {
				t.Errorf("unexpected issues: %v", resp.Issues())
			}
		})
	}
}

func TestValidator_ValidateAndNormalize_NullContentIsPresent(t *testing.T) {
	v := NewValidator()

	resp, err := v.ValidateAndNormalize(map[string]any{"content": nil}, []string{"content"})
	if err != nil {
		t.Fatalf("ValidateAndNormalize returned error: %v", err)
	}

	if resp.Content() != nil {
		t.Errorf("content = %v, want nil", resp.Content())
	}

	if resp.IsDegraded() {
		t.Errorf("explicit null recorded as missing: %v", resp.Issues())
	}
}

func TestValidator_ValidateAndNormalize_OptionalDefaultsAreSilent(t *testing.T) {
	v := NewValidator()

	resp, err := v.ValidateAndNormalize(map[string]any{"content": "hi"}, []string{"content"})
	if err != nil {
		t.Fatalf("ValidateAndNormalize returned error: %v", err)
	}

	if resp.IsDegraded() {
		t.Errorf("optional defaulting recorded issues: %v", resp.Issues())
	}

	for _, field := range models.OptionalFields {
		if _, ok := resp.Field(field); !ok {
			t.Errorf("optional field %q not populated", field)
		}
	}

	if resp[models.FieldModel] != "unknown-model" {
		t.Errorf("model default = %v, want unknown-model", resp[models.FieldModel])
	}

	if resp[models.FieldUsage] != (models.Usage{}) {
		t.Errorf("usage default = %v, want zero usage", resp[models.FieldUsage])
	}

	if resp[models.FieldError] != nil {
		t.Errorf("error default = %v, want nil", resp[models.FieldError])
	}
}

func TestValidator_ValidateAndNormalize_InvalidInputs(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		input any
	}{
		{name: "Nil", input: nil},
		{name: "Empty string", input: ""},
		{name: "Number", input: 123},
		{name: "Empty array", input: []any{}},
		{name: "Boolean", input: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := v.ValidateAndNormalize(tt.input, []string{"content"})
			if err != nil {
				t.Fatalf("ValidateAndNormalize returned error: %v", err)
			}

			content, _ := resp.Content().(string)
			if !strings.Contains(content, "sorry") {
				t.Errorf("content = %q, want apology text", content)
			}

			if resp[models.FieldError] == nil {
				t.Error("fallback record has nil error field")
			}

			issues := resp.Issues()
			if len(issues) != 1 || issues[0] != "Complete fallback response generated" {
				t.Errorf("issues = %v", issues)
			}
		})
	}
}

func TestValidator_ValidateAndNormalize_KeepsOriginal(t *testing.T) {
	v := NewValidator()

	raw := map[string]any{"content": "hi", "extra": "kept"}

	resp, err := v.ValidateAndNormalize(raw, []string{"content"})
	if err != nil {
		t.Fatalf("ValidateAndNormalize returned error: %v", err)
	}

	original, ok := resp.Original().(map[string]any)
	if !ok {
		t.Fatal("original not retained")
	}

	if len(original) != 2 || original["extra"] != "kept" {
		t.Errorf("original modified: %v", original)
	}

	info := resp.Validation()
	if info == nil || info.Timestamp.IsZero() {
		t.Error("validation timestamp not set")
	}
}

func TestValidator_ValidateAndNormalize_UnknownRequiredField(t *testing.T) {
	v := NewValidator()

	resp, err := v.ValidateAndNormalize(map[string]any{}, []string{"confidence"})
	if err != nil {
		t.Fatalf("ValidateAndNormalize returned error: %v", err)
	}

	value, ok := resp.Field("confidence")
	if !ok || value != "" {
		t.Errorf("unknown field default = %v, want empty string", value)
	}

	if !resp.IsDegraded() {
		t.Error("missing required field recorded no issue")
	}
}

func TestValidator_ValidateAndNormalize_MalformedSynonym(t *testing.T) {
	v := NewValidator()
	v.Resolver().Register("content", "data..message")

	_, err := v.ValidateAndNormalize(map[string]any{"content": "hi"}, []string{"content"})
	if !errors.Is(err, ErrMalformedSynonym) {
		t.Errorf("err = %v, want ErrMalformedSynonym", err)
	}
}

func TestValidator_CreateFallbackResponse(t *testing.T) {
	v := NewValidator()

	resp := v.CreateFallbackResponse()

	if resp[models.FieldModel] != FallbackModel {
		t.Errorf("model = %v, want %s", resp[models.FieldModel], FallbackModel)
	}

	if resp[models.FieldUsage] != (models.Usage{}) {
		t.Errorf("usage = %v, want zero usage", resp[models.FieldUsage])
	}

	id, _ := resp[models.FieldID].(string)
	if !strings.HasPrefix(id, "fallback-") {
		t.Errorf("id = %q, want fallback- prefix", id)
	}
}

func TestFallbackID_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)

	for i := 0; i < 1000; i++ {
		id := FallbackID()
		if seen[id] {
			t.Fatalf("duplicate fallback id after %d generations: %s", i, id)
		}

		seen[id] = true
	}
}
