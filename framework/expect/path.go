package expect

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/tidwall/gjson"
)

type pathSegment struct {
	key   string
	index int
	isKey bool
}

// parsePath accepts dot notation with optional array indexes and an optional leading "$",
// for example "message", "$.pageInfo.total" or "orders[0].id".
func parsePath(path string) ([]pathSegment, error) {
	rest := strings.TrimPrefix(path, "$")
	rest = strings.TrimPrefix(rest, ".")
	if rest == "" {
		return nil, nil
	}
	var segments []pathSegment
	for _, part := range strings.Split(rest, ".") {
		name := part
		var indexes []int
		if bracket := strings.Index(part, "["); bracket >= 0 {
			name = part[:bracket]
			for _, idx := range strings.Split(part[bracket:], "[")[1:] {
				if !strings.HasSuffix(idx, "]") {
					return nil, fmt.Errorf("invalid path %q: unterminated index", path)
				}
				n, err := strconv.Atoi(strings.TrimSuffix(idx, "]"))
				if err != nil || n < 0 {
					return nil, fmt.Errorf("invalid path %q: bad index %q", path, idx)
				}
				indexes = append(indexes, n)
			}
		}
		if name == "" && len(indexes) == 0 {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}
		if name != "" {
			segments = append(segments, pathSegment{key: name, isKey: true})
		}
		for _, n := range indexes {
			segments = append(segments, pathSegment{index: n})
		}
	}
	return segments, nil
}

// lookup returns the value at path in a JSON body and whether it was present at all. A key
// that is present with a JSON null value counts as present. Keys only match objects and
// indexes only match arrays.
func lookup(body []byte, path string) (ldvalue.Value, bool, error) {
	segments, err := parsePath(path)
	if err != nil {
		return ldvalue.Null(), false, err
	}
	current := gjson.ParseBytes(body)
	for _, seg := range segments {
		if seg.isKey {
			if !current.IsObject() {
				return ldvalue.Null(), false, nil
			}
			current = current.Get(gjson.Escape(seg.key))
		} else {
			if !current.IsArray() {
				return ldvalue.Null(), false, nil
			}
			current = current.Get(strconv.Itoa(seg.index))
		}
		if !current.Exists() {
			return ldvalue.Null(), false, nil
		}
	}
	if !current.Exists() {
		return ldvalue.Null(), false, nil
	}
	var value ldvalue.Value
	if err := json.Unmarshal([]byte(current.Raw), &value); err != nil {
		return ldvalue.Null(), false, fmt.Errorf("value at %q is not valid JSON: %w", path, err)
	}
	return value, true, nil
}
