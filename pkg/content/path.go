package content

import (
	"fmt"
	"sort"
	"strings"
)

// PathSeparator splits segments in string path specs (e.g. "demographics/details").
const PathSeparator = "/"

// GroupPath is an ordered sequence of keys describing where an item nests in
// the tab hierarchy. An empty path means the item is standalone and renders
// outside any tab group. Segments are non-empty, trimmed strings.
type GroupPath []string

// IsEmpty reports whether the path has no segments (standalone item).
func (p GroupPath) IsEmpty() bool { return len(p) == 0 }

// Equal reports whether two paths have identical key sequences.
func (p GroupPath) Equal(other GroupPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns the path in "a/b/c" form, or "" for an empty path.
func (p GroupPath) String() string { return strings.Join(p, PathSeparator) }

// Dotted returns the fully-qualified "a.b.c" form used for label lookups.
func (p GroupPath) Dotted() string { return strings.Join(p, ".") }

// Clone returns an independent copy of the path.
func (p GroupPath) Clone() GroupPath {
	if p == nil {
		return nil
	}
	out := make(GroupPath, len(p))
	copy(out, p)
	return out
}

// Path builds a GroupPath from already-split keys. Keys are trimmed and
// empty keys dropped, so Path("", "a") and Path("a") are equivalent.
func Path(keys ...string) GroupPath {
	out := make(GroupPath, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParsePath splits a string spec on [PathSeparator], trims each segment, and
// drops empty segments. "a//b", "/a/b/" and "a/b" all normalize to [a b].
// A spec that normalizes to zero segments (e.g. "" or "///") is standalone.
func ParsePath(spec string) GroupPath {
	return Path(strings.Split(spec, PathSeparator)...)
}

// PathFromLevels builds a path from an explicit level-number → key map.
// Levels are sorted ascending, so {2:"details", 1:"demographics"} produces
// [demographics details]. This lets callers express deep nesting without
// string-building.
func PathFromLevels(levels map[int]string) GroupPath {
	if len(levels) == 0 {
		return nil
	}
	nums := make([]int, 0, len(levels))
	for n := range levels {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	keys := make([]string, 0, len(nums))
	for _, n := range nums {
		keys = append(keys, levels[n])
	}
	return Path(keys...)
}

// NormalizePath converts any supported path spec into a canonical GroupPath.
// It is total: input it cannot interpret becomes a one-key path of the
// value's string form rather than an error.
//
// Accepted shapes:
//   - nil → empty path (standalone)
//   - string → split on "/" (a string without separators is one key)
//   - []string, GroupPath → treated as already-split keys
//   - []any of strings → same, with non-strings stringified
//   - map[int]string, map[int64]string → level map, sorted ascending
//   - map[string]string, map[string]any with numeric keys → level map
//     (the shape TOML and JSON decoders produce)
//
// NormalizePath always returns a path that [Path] would leave unchanged, so
// normalization is a fixed point.
func NormalizePath(spec any) GroupPath {
	switch v := spec.(type) {
	case nil:
		return nil
	case GroupPath:
		return Path(v...)
	case string:
		return ParsePath(v)
	case []string:
		return Path(v...)
	case []any:
		keys := make([]string, 0, len(v))
		for _, e := range v {
			keys = append(keys, stringify(e))
		}
		return Path(keys...)
	case map[int]string:
		return PathFromLevels(v)
	case map[int64]string:
		levels := make(map[int]string, len(v))
		for n, k := range v {
			levels[int(n)] = k
		}
		return PathFromLevels(levels)
	case map[string]string:
		levels := make(map[string]any, len(v))
		for n, k := range v {
			levels[n] = k
		}
		return pathFromStringLevels(levels)
	case map[string]any:
		return pathFromStringLevels(v)
	default:
		return Path(stringify(spec))
	}
}

// pathFromStringLevels handles level maps whose keys arrive as strings, the
// shape produced by TOML tables and JSON objects. Non-numeric keys make the
// map ambiguous; the fallback sorts keys lexically so output stays stable.
func pathFromStringLevels(levels map[string]any) GroupPath {
	type entry struct {
		level int
		key   string
	}
	entries := make([]entry, 0, len(levels))
	numeric := true
	for n, k := range levels {
		var lvl int
		if _, err := fmt.Sscanf(n, "%d", &lvl); err != nil {
			numeric = false
		}
		entries = append(entries, entry{level: lvl, key: stringify(k)})
	}
	if numeric {
		sort.Slice(entries, func(i, j int) bool { return entries[i].level < entries[j].level })
	} else {
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	return Path(keys...)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
