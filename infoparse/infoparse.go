package infoparse

import "strings"

// Flat parses a single-entity response of the form "k=v;k=v".
// Chunks without '=' are dropped, keys and values are trimmed, and a later
// duplicate key overwrites an earlier one.
func Flat(raw string) map[string]string {
	pairs := map[string]string{}

	for _, chunk := range strings.Split(raw, ";") {
		key, value, ok := splitPair(chunk)
		if !ok {
			continue
		}

		pairs[key] = value
	}

	return pairs
}

// Multi parses a multi-entity response of the form "k=v:k=v;k=v:k=v",
// one ';'-separated chunk per entity. Blank input yields an empty list and
// empty chunks are dropped.
func Multi(raw string) []map[string]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var entities []map[string]string

	for _, chunk := range strings.Split(raw, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		pairs := map[string]string{}

		for _, pair := range strings.Split(chunk, ":") {
			key, value, ok := splitPair(pair)
			if !ok {
				continue
			}

			pairs[key] = value
		}

		entities = append(entities, pairs)
	}

	return entities
}

// splitPair splits one "k=v" pair at the first '=' only, so values that
// contain '=' survive intact.
func splitPair(pair string) (key, value string, ok bool) {
	idx := strings.IndexByte(pair, '=')
	if idx < 0 {
		return "", "", false
	}

	return strings.TrimSpace(pair[:idx]), strings.TrimSpace(pair[idx+1:]), true
}
