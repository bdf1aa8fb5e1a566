package mutation

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/splice"
)

// Byte array transforms read an absent input as the empty array and always
// return a freshly allocated result.
type bytesOp struct {
	k     Kind
	value []byte
	pos   int
	count int
}

func newBytesOp(k Kind, value []byte, pos, count int) *Transform[[]byte] {
	return newTransform[[]byte](bytesOp{k: k, value: splice.Clone(value), pos: pos, count: count})
}

// BytesExplicit replaces the input by value.
func BytesExplicit(value []byte) *Transform[[]byte] {
	return newBytesOp(KindExplicit, value, 0, 0)
}

// BytesInsert inserts value at pos.
func BytesInsert(value []byte, pos int) *Transform[[]byte] {
	return newBytesOp(KindInsert, value, pos, 0)
}

// BytesDelete removes count bytes starting at start.
func BytesDelete(start, count int) *Transform[[]byte] {
	return newBytesOp(KindDelete, nil, start, count)
}

// BytesDuplicate repeats count bytes starting at start right after themselves.
func BytesDuplicate(start, count int) *Transform[[]byte] {
	return newBytesOp(KindDuplicate, nil, start, count)
}

// BytesShuffle permutes the input using key to pick swap partners.
func BytesShuffle(key []byte) *Transform[[]byte] {
	return newBytesOp(KindShuffle, key, 0, 0)
}

// BytesXor xors mask into the input starting at start.
func BytesXor(mask []byte, start int) *Transform[[]byte] {
	return newBytesOp(KindXor, mask, start, 0)
}

// BytesPayloadReplace overwrites the input with value starting at start.
func BytesPayloadReplace(value []byte, start int) *Transform[[]byte] {
	return newBytesOp(KindPayloadReplace, value, start, 0)
}

// BytesAppend appends value to the input.
func BytesAppend(value []byte) *Transform[[]byte] {
	return newBytesOp(KindAppend, value, 0, 0)
}

// BytesPrepend prepends value to the input.
func BytesPrepend(value []byte) *Transform[[]byte] {
	return newBytesOp(KindPrepend, value, 0, 0)
}

// BytesFromFile replaces the input by the corpus value at index.
func BytesFromFile(c *corpus.Cache[[]byte], index int) (*Transform[[]byte], error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return newBytesOp(KindExplicitFromFile, v, index, 0), nil
}

func (o bytesOp) kind() Kind { return o.k }

func (o bytesOp) apply(in []byte, _ bool) ([]byte, bool) {
	switch o.k {
	case KindExplicit, KindExplicitFromFile:
		return splice.Clone(o.value), true
	case KindInsert:
		return splice.Insert(in, o.value, o.pos), true
	case KindDelete:
		return splice.Delete(in, o.pos, o.count), true
	case KindDuplicate:
		return splice.Duplicate(in, o.pos, o.count), true
	case KindShuffle:
		return splice.Shuffle(in, o.value), true
	case KindXor:
		return splice.Xor(in, o.value, o.pos), true
	case KindPayloadReplace:
		return splice.Overwrite(in, o.value, o.pos), true
	case KindAppend:
		return splice.Append(in, o.value), true
	case KindPrepend:
		return splice.Prepend(in, o.value), true
	}
	panic(fmt.Sprintf("mutation: kind %v on byte array", o.k))
}

func (o bytesOp) equal(other op[[]byte]) bool {
	x, ok := other.(bytesOp)
	return ok && x.k == o.k && x.pos == o.pos && x.count == o.count && bytes.Equal(x.value, o.value)
}

func (o bytesOp) nearby(r *rand.Rand) (op[[]byte], error) {
	out := bytesOp{k: o.k, value: splice.Clone(o.value), pos: o.pos, count: o.count}
	switch o.k {
	case KindExplicitFromFile:
		return nil, unsupportedNearby(o.k)
	case KindDelete, KindDuplicate:
		out.pos += r.Intn(maxNearbyStep)
		out.count += r.Intn(maxNearbyStep)
	case KindInsert, KindXor, KindPayloadReplace:
		out.value = tweakByte(r, out.value)
		out.pos += r.Intn(maxNearbyStep)
	default:
		out.value = tweakByte(r, out.value)
	}
	return out, nil
}

// tweakByte overwrites one random byte of b, or returns a single random byte
// if b is empty.
func tweakByte(r *rand.Rand, b []byte) []byte {
	if len(b) == 0 {
		return []byte{byte(r.Intn(256))}
	}
	b[r.Intn(len(b))] = byte(r.Intn(256))
	return b
}

func (o bytesOp) String() string {
	switch o.k {
	case KindDelete, KindDuplicate:
		return fmt.Sprintf("%v(%d+%d)", o.k, o.pos, o.count)
	case KindInsert, KindXor, KindPayloadReplace:
		return fmt.Sprintf("%v(%s@%d)", o.k, hexutil.Encode(o.value), o.pos)
	case KindExplicitFromFile:
		return fmt.Sprintf("%v(#%d=%s)", o.k, o.pos, hexutil.Encode(o.value))
	}
	return fmt.Sprintf("%v(%s)", o.k, hexutil.Encode(o.value))
}
