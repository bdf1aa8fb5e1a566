package mutation

import (
	"fmt"
	"math/rand"
)

// An absent boolean reads as false.
type boolOp struct {
	k     Kind
	value bool
}

// BoolExplicit replaces the input by v.
func BoolExplicit(v bool) *Transform[bool] {
	return newTransform[bool](boolOp{k: KindExplicit, value: v})
}

// Toggle negates the input.
func Toggle() *Transform[bool] {
	return newTransform[bool](boolOp{k: KindToggle})
}

func (o boolOp) kind() Kind { return o.k }

func (o boolOp) apply(in bool, ok bool) (bool, bool) {
	switch o.k {
	case KindExplicit:
		return o.value, true
	case KindToggle:
		return !(ok && in), true
	}
	panic(fmt.Sprintf("mutation: kind %v on bool", o.k))
}

func (o boolOp) equal(other op[bool]) bool {
	x, ok := other.(boolOp)
	return ok && x == o
}

// nearby of a boolean explicit value is its negation.
func (o boolOp) nearby(*rand.Rand) (op[bool], error) {
	out := o
	if o.k == KindExplicit {
		out.value = !o.value
	}
	return out, nil
}

func (o boolOp) String() string {
	if o.k == KindToggle {
		return o.k.String()
	}
	return fmt.Sprintf("%v(%t)", o.k, o.value)
}
