package expect

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Predicate is a named test applied to the value found at a JSON path. All predicates require
// the path to be present; an absent path fails with the actual value reported as "absent".
type Predicate struct {
	description string
	test        func(ldvalue.Value) bool
}

func (p Predicate) String() string { return p.description }

// Equals matches a value that is deeply equal to the given value, which can be any type that
// encodes to JSON. Numbers are compared numerically, so Equals(1) matches 1.0.
func Equals(value interface{}) Predicate {
	expected := valueOf(value)
	return Predicate{
		description: "equals " + expected.JSONString(),
		test:        func(v ldvalue.Value) bool { return v.Equal(expected) },
	}
}

// IsNotNull matches any present value other than JSON null.
func IsNotNull() Predicate {
	return Predicate{
		description: "is not null",
		test:        func(v ldvalue.Value) bool { return !v.IsNull() },
	}
}

// IsNonEmptySequence matches a JSON array with at least one element.
func IsNonEmptySequence() Predicate {
	return Predicate{
		description: "is a non-empty array",
		test: func(v ldvalue.Value) bool {
			return v.Type() == ldvalue.ArrayType && v.Count() > 0
		},
	}
}

// IsNonEmptyString matches a JSON string that is not empty.
func IsNonEmptyString() Predicate {
	return Predicate{
		description: "is a non-empty string",
		test: func(v ldvalue.Value) bool {
			return v.Type() == ldvalue.StringType && v.StringValue() != ""
		},
	}
}

// IsNonEmpty matches a value that carries something: a number other than zero, a non-empty
// string, true, or an array or object with at least one element.
func IsNonEmpty() Predicate {
	return Predicate{
		description: "is not empty",
		test: func(v ldvalue.Value) bool {
			switch v.Type() {
			case ldvalue.NumberType:
				return v.Float64Value() != 0
			case ldvalue.StringType:
				return v.StringValue() != ""
			case ldvalue.BoolType:
				return v.BoolValue()
			case ldvalue.ArrayType, ldvalue.ObjectType:
				return v.Count() > 0
			}
			return false
		},
	}
}

// MatchesPattern matches a value whose text matches the regular expression. Strings are matched
// as-is; any other value is matched against its JSON representation. It panics if the pattern
// does not compile, in the same way as regexp.MustCompile.
func MatchesPattern(pattern string) Predicate {
	rx := regexp.MustCompile(pattern)
	return Predicate{
		description: fmt.Sprintf("matches /%s/", pattern),
		test:        func(v ldvalue.Value) bool { return !v.IsNull() && rx.MatchString(textOf(v)) },
	}
}

// Contains matches a value whose text contains the substring. Like MatchesPattern, non-string
// values are checked against their JSON representation.
func Contains(substring string) Predicate {
	return Predicate{
		description: fmt.Sprintf("contains %q", substring),
		test:        func(v ldvalue.Value) bool { return !v.IsNull() && strings.Contains(textOf(v), substring) },
	}
}

func textOf(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}

func valueOf(value interface{}) ldvalue.Value {
	if v, ok := value.(ldvalue.Value); ok {
		return v
	}
	var v ldvalue.Value
	data, err := json.Marshal(value)
	if err != nil || json.Unmarshal(data, &v) != nil {
		return ldvalue.String(fmt.Sprintf("%v", value))
	}
	return v
}
