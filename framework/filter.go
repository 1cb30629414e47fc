package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests with -run and -skip patterns that work like those of "go test":
// a pattern is split on slashes that are not inside brackets or parentheses, and each part
// is an unanchored regex for one level of the test path. "-run 'courier creation/.*/create$'"
// selects the create test of every row, and "-run '//duplicate login'" selects the duplicate
// login tests of every row. An empty part matches every name. Tests that are shallower than a
// pattern run whenever their own levels match it, since their subtests might.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter reports whether a test should run. A test runs if some -run pattern matches every
// level of its path that the pattern covers, so the parents of a selected test run, and so do
// the subtests of a selected test. A test is skipped if some -skip pattern matches every one
// of its levels down to the test itself or one of its parents.
func (r RegexFilters) AsFilter(id TestID) bool {
	if r.MustMatch.IsDefined() && !r.MustMatch.anySelects(id) {
		return false
	}
	return !r.MustNotMatch.anyCovers(id)
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []pathPattern
}

type pathPattern struct {
	source string
	levels []*regexp.Regexp
}

// match reports whether every level of id that the pattern has a part for matches that part.
// complete is false when the pattern has more parts than id has levels, meaning that only
// subtests of id can fully match.
func (p pathPattern) match(id TestID) (matched, complete bool) {
	for i, name := range id.Path {
		if i == len(p.levels) {
			break
		}
		if !p.levels[i].MatchString(name) {
			return false, false
		}
	}
	return true, len(id.Path) >= len(p.levels)
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := pathPattern{source: value}
	for _, part := range splitPattern(value) {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.levels = append(p.levels, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) anySelects(id TestID) bool {
	for _, p := range r.patterns {
		if matched, _ := p.match(id); matched {
			return true
		}
	}
	return false
}

func (r RegexList) anyCovers(id TestID) bool {
	for _, p := range r.patterns {
		if matched, complete := p.match(id); matched && complete {
			return true
		}
	}
	return false
}

func splitPattern(s string) []string {
	var parts []string
	brackets, parens := 0, 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			brackets++
		case ']':
			if brackets > 0 {
				brackets--
			}
		case '(':
			if brackets == 0 {
				parens++
			}
		case ')':
			if brackets == 0 && parens > 0 {
				parens--
			}
		case '/':
			if brackets == 0 && parens == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out)
}
