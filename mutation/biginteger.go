package mutation

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/splice"
)

// maxBigShift bounds random and nearby shift amounts of big integers, which
// have no native width.
const maxBigShift = 64

type bigOp struct {
	k     Kind
	value *big.Int
	// n is the shift amount, the bit position or the corpus index.
	n int
}

func newBigOp(k Kind, v *big.Int, n int) *Transform[*big.Int] {
	return newTransform[*big.Int](bigOp{k: k, value: bigOrZero(v), n: n})
}

// bigOrZero returns a private copy of v, reading nil as zero.
func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// BigExplicit replaces the input by v.
func BigExplicit(v *big.Int) *Transform[*big.Int] { return newBigOp(KindExplicit, v, 0) }

// BigAdd adds v to the input.
func BigAdd(v *big.Int) *Transform[*big.Int] { return newBigOp(KindAdd, v, 0) }

// BigSubtract subtracts v from the input.
func BigSubtract(v *big.Int) *Transform[*big.Int] { return newBigOp(KindSubtract, v, 0) }

// BigXor xors v into the input, using two's complement for negative values.
func BigXor(v *big.Int) *Transform[*big.Int] { return newBigOp(KindXor, v, 0) }

// BigMultiply multiplies the input by v.
func BigMultiply(v *big.Int) *Transform[*big.Int] { return newBigOp(KindMultiply, v, 0) }

// BigShiftLeft shifts the input left by n bits; a negative n shifts right.
func BigShiftLeft(n int) *Transform[*big.Int] { return newBigOp(KindShiftLeft, nil, n) }

// BigShiftRight shifts the input right by n bits; a negative n shifts left.
func BigShiftRight(n int) *Transform[*big.Int] { return newBigOp(KindShiftRight, nil, n) }

// BigAppendBits appends the significant bits of v below the input.
func BigAppendBits(v *big.Int) *Transform[*big.Int] { return newBigOp(KindAppendBits, v, 0) }

// BigPrependBits places the significant bits of v above the input.
func BigPrependBits(v *big.Int) *Transform[*big.Int] { return newBigOp(KindPrependBits, v, 0) }

// BigInsertBits splices the significant bits of v into the input at bit pos.
func BigInsertBits(v *big.Int, pos int) *Transform[*big.Int] {
	return newBigOp(KindInsertBits, v, pos)
}

// BigFromFile replaces the input by the corpus value at index.
func BigFromFile(c *corpus.Cache[*big.Int], index int) (*Transform[*big.Int], error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return newBigOp(KindExplicitFromFile, v, index), nil
}

func (o bigOp) kind() Kind { return o.k }

func (o bigOp) apply(in *big.Int, ok bool) (*big.Int, bool) {
	if !ok || in == nil {
		in = new(big.Int)
	}
	switch o.k {
	case KindExplicit, KindExplicitFromFile:
		return new(big.Int).Set(o.value), true
	case KindAdd:
		return new(big.Int).Add(in, o.value), true
	case KindSubtract:
		return new(big.Int).Sub(in, o.value), true
	case KindXor:
		return new(big.Int).Xor(in, o.value), true
	case KindMultiply:
		return new(big.Int).Mul(in, o.value), true
	case KindShiftLeft:
		return shiftBig(in, o.n), true
	case KindShiftRight:
		return shiftBig(in, -o.n), true
	case KindAppendBits:
		return splice.AppendBigBits(in, o.value), true
	case KindPrependBits:
		return splice.PrependBigBits(in, o.value), true
	case KindInsertBits:
		return splice.InsertBigBits(in, o.value, o.n), true
	}
	panic(fmt.Sprintf("mutation: kind %v on big integer", o.k))
}

func shiftBig(x *big.Int, n int) *big.Int {
	if n >= 0 {
		return new(big.Int).Lsh(x, uint(n))
	}
	return new(big.Int).Rsh(x, uint(-n))
}

func (o bigOp) equal(other op[*big.Int]) bool {
	x, ok := other.(bigOp)
	return ok && x.k == o.k && x.n == o.n && x.value.Cmp(o.value) == 0
}

func (o bigOp) nearby(r *rand.Rand) (op[*big.Int], error) {
	out := bigOp{k: o.k, value: new(big.Int).Set(o.value), n: o.n}
	switch o.k {
	case KindExplicitFromFile:
		return nil, unsupportedNearby(o.k)
	case KindShiftLeft, KindShiftRight:
		out.n = (o.n + r.Intn(maxBigShift)) % maxBigShift
	case KindInsertBits:
		out.value.Add(out.value, big.NewInt(int64(r.Intn(MaxNearbyDelta))))
		out.n = o.n + r.Intn(maxNearbyStep)
	default:
		out.value.Add(out.value, big.NewInt(int64(r.Intn(MaxNearbyDelta))))
	}
	return out, nil
}

func (o bigOp) String() string {
	switch o.k {
	case KindShiftLeft, KindShiftRight:
		return fmt.Sprintf("%v(%d)", o.k, o.n)
	case KindInsertBits:
		return fmt.Sprintf("%v(%v@%d)", o.k, o.value, o.n)
	case KindExplicitFromFile:
		return fmt.Sprintf("%v(#%d=%v)", o.k, o.n, o.value)
	}
	return fmt.Sprintf("%v(%v)", o.k, o.value)
}
