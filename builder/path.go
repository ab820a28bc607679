package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one canonical path token: a field name plus an optional
// non-negative list index.
type Segment struct {
	Name  string
	Index int // -1 when the segment is not index-addressed
}

// Path is an ordered sequence of canonical path segments.
type Path []Segment

// ParsePath parses a canonical path string.
// Supports: "objects", "storage-engine.type", "files[0]",
// "storage-engine.files[2].file-path".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	var segments Path

	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		seg := Segment{Name: part, Index: -1}

		// Check for index notation
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("invalid path %q: unterminated index in %q", path, part)
			}

			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("invalid path %q: bad index in %q", path, part)
			}

			seg.Name = part[:open]
			seg.Index = idx

			if seg.Name == "" {
				return nil, fmt.Errorf("invalid path %q: index without field name", path)
			}
		}

		segments = append(segments, seg)
	}

	return segments, nil
}
