// Package filter provides predicates that suppress a transform on selected
// reads of a variable.
//
// Filters keep an access counter and are not safe for concurrent use. A
// filter instance belongs to exactly one transform.
package filter

import (
	"fmt"
	"sort"
)

// Filter decides, once per transform invocation, whether the transform's
// result is dropped in favour of its unmodified input.
type Filter interface {
	// ShouldSuppress advances the filter's access counter and reports
	// whether the current invocation must be suppressed.
	ShouldSuppress() bool
}

// AccessFilter suppresses a fixed set of invocations. Invocations are
// counted from 1: the first read of a variable is access 1.
type AccessFilter struct {
	accesses map[int]struct{}
	counter  int
}

// NewAccessFilter returns a filter suppressing the given accesses. Values
// below 1 can never match and are kept only for reporting.
func NewAccessFilter(accesses ...int) *AccessFilter {
	set := make(map[int]struct{}, len(accesses))
	for _, a := range accesses {
		set[a] = struct{}{}
	}
	return &AccessFilter{accesses: set}
}

func (f *AccessFilter) ShouldSuppress() bool {
	f.counter++
	_, ok := f.accesses[f.counter]
	return ok
}

// Accesses returns the suppressed access numbers in ascending order.
func (f *AccessFilter) Accesses() []int {
	out := make([]int, 0, len(f.accesses))
	for a := range f.accesses {
		out = append(out, a)
	}
	sort.Ints(out)
	return out
}

// Count returns the number of invocations seen so far.
func (f *AccessFilter) Count() int {
	return f.counter
}

// Reset rewinds the access counter.
func (f *AccessFilter) Reset() {
	f.counter = 0
}

// Equal reports whether both filters suppress the same accesses. The
// counters are not compared.
func (f *AccessFilter) Equal(other *AccessFilter) bool {
	if f == nil || other == nil {
		return f == other
	}
	if len(f.accesses) != len(other.accesses) {
		return false
	}
	for a := range f.accesses {
		if _, ok := other.accesses[a]; !ok {
			return false
		}
	}
	return true
}

func (f *AccessFilter) String() string {
	return fmt.Sprintf("AccessFilter%v", f.Accesses())
}
