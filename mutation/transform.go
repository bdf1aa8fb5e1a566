package mutation

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/AgnopraxLab/modvar/mutation/filter"
)

// ErrUnsupported is returned when a transform cannot produce a nearby copy of
// itself because its value comes from a corpus or from the caller. It is a
// programming error and must not be retried.
var ErrUnsupported = errors.New("unsupported operation")

// MaxNearbyDelta bounds the perturbation Nearby applies to numeric
// parameters and positions.
const MaxNearbyDelta = 256

// op is the closed set of per type mutation payloads. Every implementation
// lives in this package and switches exhaustively over its kinds.
type op[E any] interface {
	kind() Kind
	// apply computes the mutated value. ok reports whether the input is
	// present; the second result whether the output is.
	apply(in E, ok bool) (E, bool)
	equal(other op[E]) bool
	nearby(r *rand.Rand) (op[E], error)
	String() string
}

// Transform is one mutation of a value of type E, optionally gated by a
// filter and followed by another transform.
//
// Applying a transform computes its own result, replaces it by the input if
// the filter suppresses the current access, and hands the chosen value to the
// next transform. Chains therefore compose in attachment order.
type Transform[E any] struct {
	op     op[E]
	filter filter.Filter
	next   *Transform[E]
}

func newTransform[E any](o op[E]) *Transform[E] {
	return &Transform[E]{op: o}
}

// Kind returns the variant of the transform.
func (t *Transform[E]) Kind() Kind {
	return t.op.kind()
}

// Filter returns the attached filter, if any.
func (t *Transform[E]) Filter() filter.Filter {
	return t.filter
}

// SetFilter attaches f, replacing any previous filter. A nil f removes it.
func (t *Transform[E]) SetFilter(f filter.Filter) *Transform[E] {
	t.filter = f
	return t
}

// Next returns the transform applied after this one.
func (t *Transform[E]) Next() *Transform[E] {
	return t.next
}

// SetNext replaces the transform applied after this one.
func (t *Transform[E]) SetNext(next *Transform[E]) *Transform[E] {
	t.next = next
	return t
}

// Then appends next to the end of the chain and returns t.
func (t *Transform[E]) Then(next *Transform[E]) *Transform[E] {
	last := t
	for last.next != nil {
		last = last.next
	}
	last.next = next
	return t
}

// Len returns the number of transforms in the chain starting at t.
func (t *Transform[E]) Len() int {
	n := 0
	for c := t; c != nil; c = c.next {
		n++
	}
	return n
}

// Apply runs the chain on a present input.
func (t *Transform[E]) Apply(in E) E {
	out, _ := t.ApplyOptional(in, true)
	return out
}

// ApplyOptional runs the chain on an input that may be absent.
func (t *Transform[E]) ApplyOptional(in E, ok bool) (E, bool) {
	out, outOK := t.op.apply(in, ok)
	if t.filter != nil && t.filter.ShouldSuppress() {
		out, outOK = in, ok
	}
	if t.next != nil {
		return t.next.ApplyOptional(out, outOK)
	}
	return out, outOK
}

// Equal reports whether both chains consist of the same variants with the
// same parameters. Filters are not compared.
func (t *Transform[E]) Equal(other *Transform[E]) bool {
	a, b := t, other
	for a != nil && b != nil {
		if !a.op.equal(b.op) {
			return false
		}
		a, b = a.next, b.next
	}
	return a == nil && b == nil
}

// Nearby returns a new transform of the same variant whose parameters are
// slightly perturbed. Filter and chain are not copied. Corpus backed and
// caller driven transforms return ErrUnsupported.
func (t *Transform[E]) Nearby(r *rand.Rand) (*Transform[E], error) {
	o, err := t.op.nearby(r)
	if err != nil {
		return nil, err
	}
	return newTransform(o), nil
}

func (t *Transform[E]) String() string {
	var parts []string
	for c := t; c != nil; c = c.next {
		s := c.op.String()
		if c.filter != nil {
			s = fmt.Sprintf("%s[%v]", s, c.filter)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " -> ")
}

func unsupportedNearby(k Kind) error {
	return fmt.Errorf("%w: nearby copy of %v", ErrUnsupported, k)
}

// funcOp wraps a caller supplied function.
type funcOp[E any] struct {
	fn func(E) E
}

// FromFunc returns an interactive transform delegating to fn. An absent input
// is passed to fn as the zero value of E.
func FromFunc[E any](fn func(E) E) *Transform[E] {
	return newTransform[E](funcOp[E]{fn: fn})
}

func (o funcOp[E]) kind() Kind { return KindInteractive }

func (o funcOp[E]) apply(in E, ok bool) (E, bool) {
	if !ok {
		var zero E
		in = zero
	}
	return o.fn(in), true
}

func (o funcOp[E]) equal(other op[E]) bool { return false }

func (o funcOp[E]) nearby(*rand.Rand) (op[E], error) {
	return nil, unsupportedNearby(KindInteractive)
}

func (o funcOp[E]) String() string { return KindInteractive.String() }
