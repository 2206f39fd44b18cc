package treemap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ionutms/schemascope/pkg/errors"
)

// Level identifies one of the three nesting depths a range can filter.
type Level int

// Tree levels, outermost first.
const (
	Level1 Level = 1
	Level2 Level = 2
	Level3 Level = 3
)

// String returns the wire name of the level ("level_1"), used by the HTTP
// API's query parameters and the config file.
func (l Level) String() string {
	return fmt.Sprintf("level_%d", int(l))
}

// Range is an inclusive-start/exclusive-end slice over a level's sorted
// candidates. Out-of-bounds values are clamped, never an error: a range
// that overshoots the candidates yields an empty or truncated slice.
type Range struct {
	Start int
	End   int
}

// ParseRange parses the "start:end" wire form used by the CLI flags and
// the HTTP query parameters.
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return Range{}, errors.New(errors.ErrCodeInvalidRange, "range %q must be start:end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Range{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "range %q has invalid start", s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Range{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "range %q has invalid end", s)
	}
	if start < 0 || end < 0 {
		return Range{}, errors.New(errors.ErrCodeInvalidRange, "range %q must be non-negative", s)
	}
	return Range{Start: start, End: end}, nil
}

// String returns the wire form of the range.
func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// bounds clamps the range to a sequence of length n.
func (r Range) bounds(n int) (lo, hi int) {
	lo = min(max(r.Start, 0), n)
	hi = min(max(r.End, lo), n)
	return lo, hi
}

// Filter narrows which sorted candidates are emitted at each level. A nil
// pointer for a level means that level is unfiltered; a nil *Filter means
// no filtering at all.
type Filter struct {
	Level1 *Range
	Level2 *Range
	Level3 *Range
}

// level returns the range configured for l, or nil when absent.
func (f *Filter) level(l Level) *Range {
	if f == nil {
		return nil
	}
	switch l {
	case Level1:
		return f.Level1
	case Level2:
		return f.Level2
	case Level3:
		return f.Level3
	}
	return nil
}

// String returns a canonical wire form of the filter, e.g.
// "level_1=0:5&level_3=1:4". Unset levels are omitted; a nil or empty
// filter is the empty string. Cache keys are derived from this form.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	var parts []string
	for _, l := range []Level{Level1, Level2, Level3} {
		if r := f.level(l); r != nil {
			parts = append(parts, l.String()+"="+r.String())
		}
	}
	return strings.Join(parts, "&")
}

// SetLevel assigns a range to a level, for callers assembling a Filter
// from parsed wire values.
func (f *Filter) SetLevel(l Level, r Range) {
	switch l {
	case Level1:
		f.Level1 = &r
	case Level2:
		f.Level2 = &r
	case Level3:
		f.Level3 = &r
	}
}

// sliceStrings applies r to a sorted candidate list. A nil range keeps the
// full list.
func sliceStrings(s []string, r *Range) []string {
	if r == nil {
		return s
	}
	lo, hi := r.bounds(len(s))
	return s[lo:hi]
}

// sliceTriples applies r to zipped nodes the same way.
func sliceTriples(ts []triple, r *Range) []triple {
	if r == nil {
		return ts
	}
	lo, hi := r.bounds(len(ts))
	return ts[lo:hi]
}
