package model

import (
	"fmt"
	"strings"
)

// reservedIDs are path segments the consuming API server claims for itself.
// A table whose sanitized name lands on one of these gets a "_1" suffix so
// the feature type stays addressable.
var reservedIDs = map[string]bool{
	"api":         true,
	"collections": true,
	"conformance": true,
	"crs":         true,
	"metadata":    true,
	"styles":      true,
	"tiles":       true,
}

// CollectionID derives the document identifier for a single table name:
// lowercase, runes outside [a-z0-9_-] replaced by '_', reserved words
// suffixed with "_1". The same rule feeds feature type names, provider type
// keys, and tileset ids — derive it here and nowhere else.
func CollectionID(table string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, table)

	if reservedIDs[id] {
		id += "_1"
	}
	return id
}

// CollectionIDs derives identifiers for a full table list, disambiguating
// post-sanitization collisions with numeric suffixes in list order. A
// suffixed candidate can itself collide with another table's literal name,
// so the suffix counts up until the id is unused — the result is always
// unique and deterministic for a given input order.
func CollectionIDs(tables []string) []string {
	ids := make([]string, len(tables))
	used := make(map[string]bool, len(tables))

	for i, table := range tables {
		base := CollectionID(table)
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		used[id] = true
		ids[i] = id
	}
	return ids
}
