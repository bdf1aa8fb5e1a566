package mutation

import (
	"fmt"
	"math/rand"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/splice"
)

// Integer is the set of fixed width value types. Arithmetic wraps at the
// type's width and an absent input reads as zero.
type Integer interface {
	~int8 | ~int32 | ~int64
}

// maxNearbyStep bounds the perturbation of positions and counts.
const maxNearbyStep = 8

type intOp[T Integer] struct {
	k     Kind
	value T
	// n is the shift amount, the bit position or the corpus index.
	n int
}

// Explicit replaces the input by v.
func Explicit[T Integer](v T) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindExplicit, value: v})
}

// Add adds v to the input.
func Add[T Integer](v T) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindAdd, value: v})
}

// Subtract subtracts v from the input.
func Subtract[T Integer](v T) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindSubtract, value: v})
}

// Xor xors v into the input.
func Xor[T Integer](v T) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindXor, value: v})
}

// Multiply multiplies the input by v.
func Multiply[T Integer](v T) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindMultiply, value: v})
}

// ShiftLeft shifts the input left by n modulo the width of T.
func ShiftLeft[T Integer](n int) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindShiftLeft, n: n})
}

// ShiftRight shifts the input right (arithmetic) by n modulo the width of T.
func ShiftRight[T Integer](n int) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindShiftRight, n: n})
}

// AppendBits appends the significant bits of v below the input.
func AppendBits[T Integer](v T) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindAppendBits, value: v})
}

// PrependBits places the significant bits of v above the input.
func PrependBits[T Integer](v T) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindPrependBits, value: v})
}

// InsertBits splices the significant bits of v into the input at bit pos.
func InsertBits[T Integer](v T, pos int) *Transform[T] {
	return newTransform[T](intOp[T]{k: KindInsertBits, value: v, n: pos})
}

// FromFile replaces the input by the corpus value at index.
func FromFile[T Integer](c *corpus.Cache[T], index int) (*Transform[T], error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return newTransform[T](intOp[T]{k: KindExplicitFromFile, value: v, n: index}), nil
}

func (o intOp[T]) kind() Kind { return o.k }

func (o intOp[T]) apply(in T, ok bool) (T, bool) {
	if !ok {
		in = 0
	}
	switch o.k {
	case KindExplicit, KindExplicitFromFile:
		return o.value, true
	case KindAdd:
		return in + o.value, true
	case KindSubtract:
		return in - o.value, true
	case KindXor:
		return in ^ o.value, true
	case KindMultiply:
		return in * o.value, true
	case KindShiftLeft:
		return in << shiftCount[T](o.n), true
	case KindShiftRight:
		return in >> shiftCount[T](o.n), true
	case KindAppendBits:
		return splice.AppendBits(in, o.value), true
	case KindPrependBits:
		return splice.PrependBits(in, o.value), true
	case KindInsertBits:
		return splice.InsertBits(in, o.value, o.n), true
	}
	panic(fmt.Sprintf("mutation: kind %v on integer", o.k))
}

func shiftCount[T Integer](n int) uint {
	w := splice.Width[T]()
	n %= w
	if n < 0 {
		n += w
	}
	return uint(n)
}

func (o intOp[T]) equal(other op[T]) bool {
	x, ok := other.(intOp[T])
	return ok && x == o
}

func (o intOp[T]) nearby(r *rand.Rand) (op[T], error) {
	w := splice.Width[T]()
	out := o
	switch o.k {
	case KindExplicitFromFile:
		return nil, unsupportedNearby(o.k)
	case KindShiftLeft, KindShiftRight:
		out.n = (int(shiftCount[T](o.n)) + r.Intn(w)) % w
	case KindInsertBits:
		out.value += T(r.Intn(MaxNearbyDelta))
		out.n = (o.n + r.Intn(w)) % (w + 1)
	default:
		out.value += T(r.Intn(MaxNearbyDelta))
	}
	return out, nil
}

func (o intOp[T]) String() string {
	switch o.k {
	case KindShiftLeft, KindShiftRight:
		return fmt.Sprintf("%v(%d)", o.k, o.n)
	case KindInsertBits:
		return fmt.Sprintf("%v(%#b@%d)", o.k, o.value, o.n)
	case KindAppendBits, KindPrependBits:
		return fmt.Sprintf("%v(%#b)", o.k, o.value)
	case KindExplicitFromFile:
		return fmt.Sprintf("%v(#%d=%d)", o.k, o.n, o.value)
	}
	return fmt.Sprintf("%v(%d)", o.k, o.value)
}
