// Package fieldpath provides dot-path lookup over untyped JSON-decoded values.
package fieldpath

import (
	"strconv"
	"strings"
)

// Lookup traverses root along a dot-separated path and reports whether the
// path is fully present. A path like "data.metadata.id" requires "data" and
// "metadata" to resolve to traversable values; the final value itself may be
// nil (an explicit null counts as present). Lookup never mutates root.
//
// Traversable values are map[string]any (key must exist as an own key) and
// []any (segment must parse as an in-range index). Anything else terminates
// the walk as not present.
func Lookup(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	current := root

	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return nil, false
		}

		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}

			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}

			current = node[index]
		default:
			return nil, false
		}
	}

	return current, true
}

// Has reports whether the path is fully present in root.
func Has(root any, path string) bool {
	_, ok := Lookup(root, path)

	return ok
}

// Valid reports whether path is a well-formed dot-path: non-empty, with no
// empty segments and no leading or trailing dot.
func Valid(path string) bool {
	if path == "" {
		return false
	}

	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return false
		}
	}

	return true
}
