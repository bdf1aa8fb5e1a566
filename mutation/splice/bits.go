package splice

import (
	"math/big"
	"math/bits"
	"unsafe"
)

// Integer is the set of fixed width types supporting bit splicing.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Width returns the size of T in bits.
func Width[T Integer]() int {
	var v T
	return int(unsafe.Sizeof(v)) * 8
}

// BitLen returns the number of significant bits of v read as an unsigned
// value of T's width. Negative values therefore always use the full width.
func BitLen[T Integer](v T) int {
	w := Width[T]()
	u := uint64(v)
	if w < 64 {
		u &= 1<<uint(w) - 1
	}
	return bits.Len64(u)
}

// AppendBits shifts in left by the bit length of v and ors v into the gap.
func AppendBits[T Integer](in, v T) T {
	return in<<uint(BitLen(v)) | v
}

// PrependBits places v above the significant bits of in.
func PrependBits[T Integer](in, v T) T {
	return v<<uint(BitLen(in)) | in
}

// InsertBits splices the significant bits of v into in at bit position pos,
// normalized into [0, BitLen(in)] with the Insert rules. Bits shifted past
// the width of T are lost.
func InsertBits[T Integer](in, v T, pos int) T {
	p := uint(InsertPosition(pos, BitLen(in)))
	mask := T(1)<<p - 1
	return (((in>>p)<<uint(BitLen(v)))|v)<<p | (mask & in)
}

// AppendBigBits is AppendBits at arbitrary precision.
func AppendBigBits(in, v *big.Int) *big.Int {
	out := new(big.Int).Lsh(in, uint(v.BitLen()))
	return out.Or(out, v)
}

// PrependBigBits is PrependBits at arbitrary precision.
func PrependBigBits(in, v *big.Int) *big.Int {
	out := new(big.Int).Lsh(v, uint(in.BitLen()))
	return out.Or(out, in)
}

// InsertBigBits is InsertBits at arbitrary precision.
func InsertBigBits(in, v *big.Int, pos int) *big.Int {
	p := uint(InsertPosition(pos, in.BitLen()))
	mask := new(big.Int).Lsh(big.NewInt(1), p)
	mask.Sub(mask, big.NewInt(1))
	mask.And(mask, in)

	out := new(big.Int).Rsh(in, p)
	out.Lsh(out, uint(v.BitLen()))
	out.Or(out, v)
	out.Lsh(out, p)
	return out.Or(out, mask)
}
