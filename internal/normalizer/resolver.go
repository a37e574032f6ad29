// Package normalizer turns heterogeneous API response shapes into the
// canonical response record.
package normalizer

import (
	"apinorm/internal/models"
	"apinorm/pkg/fieldpath"
)

// SynonymTable maps a canonical field name to an ordered list of candidate
// keys or dot-paths. List order is priority order: first present wins.
type SynonymTable map[string][]string

// DefaultSynonyms returns the reference mapping covering the response
// shapes of known API versions.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		models.FieldContent: {
			"content", "text", "message", "output",
			"data.content", "data.message", "result.text",
		},
		models.FieldID: {
			"id", "message_id", "response_id",
			"data.id", "metadata.id",
		},
		models.FieldTimestamp: {
			"timestamp", "created", "created_at", "time",
			"data.timestamp",
		},
		models.FieldModel: {
			"model", "model_name", "engine",
			"data.model",
		},
		models.FieldUsage: {
			"usage", "token_usage", "stats",
			"data.usage",
		},
		models.FieldError: {
			"error", "error_message", "err",
			"data.error",
		},
	}
}

// Resolver resolves canonical fields against a prioritized synonym table.
// Each resolver owns its table; extending coverage goes through Register
// rather than shared-structure mutation.
type Resolver struct {
	synonyms SynonymTable
}

// NewResolver creates a resolver seeded with the reference mapping.
func NewResolver() *Resolver {
	return &Resolver{synonyms: DefaultSynonyms()}
}

// NewResolverWithTable creates a resolver from a copy of the given table.
func NewResolverWithTable(table SynonymTable) *Resolver {
	synonyms := make(SynonymTable, len(table))
	for field, paths := range table {
		synonyms[field] = append([]string(nil), paths...)
	}

	return &Resolver{synonyms: synonyms}
}

// Register appends a candidate path for a canonical field, at lowest
// priority. Registering an unmapped field starts a new candidate list.
func (r *Resolver) Register(field, path string) {
	r.synonyms[field] = append(r.synonyms[field], path)
}

// Candidates returns the candidate list for a field. Unmapped fields
// resolve literally, so the field name itself is the single candidate.
func (r *Resolver) Candidates(field string) []string {
	if paths, ok := r.synonyms[field]; ok {
		return paths
	}

	return []string{field}
}

// Extract resolves a canonical field against a raw response. Candidates
// are tried in table order; the first fully present path wins and its
// value is returned even when that value is an explicit null. The second
// return value disambiguates present-but-nil from missing. The raw
// response is never mutated.
func (r *Resolver) Extract(response any, field string) (any, bool) {
	for _, candidate := range r.Candidates(field) {
		if value, ok := fieldpath.Lookup(response, candidate); ok {
			return value, true
		}
	}

	return nil, false
}
