package doctree

import (
	"fmt"
	"strconv"
	"strings"
)

// pathSegment is one dotted component of a lookup path: a mapping key
// followed by zero or more sequence indexes, e.g. "steps[2]".
type pathSegment struct {
	key     string
	indexes []int
}

// parsePath splits a dotted path into segments. Index brackets must close
// and contain a non-negative integer; anything else is an error so typos in
// check definitions surface instead of silently matching nothing.
func parsePath(path string) ([]pathSegment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty path")
	}

	var segments []pathSegment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("empty segment in path %q", path)
		}

		seg := pathSegment{key: part}
		if open := strings.IndexByte(part, '['); open >= 0 {
			seg.key = part[:open]
			rest := part[open:]
			for rest != "" {
				if rest[0] != '[' {
					return nil, fmt.Errorf("malformed index in path segment %q", part)
				}
				close := strings.IndexByte(rest, ']')
				if close < 0 {
					return nil, fmt.Errorf("unclosed index bracket in path segment %q", part)
				}
				idx, err := strconv.Atoi(rest[1:close])
				if err != nil || idx < 0 {
					return nil, fmt.Errorf("invalid sequence index %q in path segment %q", rest[1:close], part)
				}
				seg.indexes = append(seg.indexes, idx)
				rest = rest[close+1:]
			}
		}

		if seg.key == "" && len(segments) > 0 {
			return nil, fmt.Errorf("missing key before index in path segment %q", part)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}
