package fieldpath

import "testing"

func TestLookup(t *testing.T) {
	root := map[string]any{
		"content": "hello",
		"empty":   nil,
		"data": map[string]any{
			"message": "x",
			"meta": map[string]any{
				"id": "abc-123",
			},
		},
		"choices": []any{
			map[string]any{"text": "first"},
			map[string]any{"text": "second"},
		},
		"count": float64(3),
	}

	tests := []struct {
		name     string
		path     string
		want     any
		wantOK   bool
	}{
		{name: "Top-level key", path: "content", want: "hello", wantOK: true},
		{name: "Nested one level", path: "data.message", want: "x", wantOK: true},
		{name: "Nested two levels", path: "data.meta.id", want: "abc-123", wantOK: true},
		{name: "Explicit null is present", path: "empty", want: nil, wantOK: true},
		{name: "Missing top-level key", path: "missing", want: nil, wantOK: false},
		{name: "Missing intermediate", path: "other.message", want: nil, wantOK: false},
		{name: "Missing leaf", path: "data.missing", want: nil, wantOK: false},
		{name: "Traversal into primitive", path: "content.inner", want: nil, wantOK: false},
		{name: "Traversal through null", path: "empty.inner", want: nil, wantOK: false},
		{name: "Array index", path: "choices.1.text", want: "second", wantOK: true},
		{name: "Array index out of range", path: "choices.2.text", want: nil, wantOK: false},
		{name: "Array non-numeric segment", path: "choices.text", want: nil, wantOK: false},
		{name: "Negative array index", path: "choices.-1", want: nil, wantOK: false},
		{name: "Number value", path: "count", want: float64(3), wantOK: true},
		{name: "Empty path", path: "", want: nil, wantOK: false},
		{name: "Empty segment", path: "data..message", want: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(root, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}

			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookup_NonObjectRoots(t *testing.T) {
	roots := []any{nil, "plain string", float64(123), true}

	for _, root := range roots {
		if _, ok := Lookup(root, "content"); ok {
			t.Errorf("Lookup on root %v reported presence", root)
		}
	}
}

func TestLookup_ArrayRoot(t *testing.T) {
	root := []any{map[string]any{"content": "inside"}}

	got, ok := Lookup(root, "0.content")
	if !ok || got != "inside" {
		t.Errorf("Lookup(0.content) = %v, %v; want inside, true", got, ok)
	}

	if _, ok := Lookup(root, "content"); ok {
		t.Error("Lookup(content) on array root should not be present")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"content", true},
		{"data.message", true},
		{"a.b.c.d", true},
		{"", false},
		{".content", false},
		{"content.", false},
		{"data..message", false},
	}

	for _, tt := range tests {
		if got := Valid(tt.path); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
