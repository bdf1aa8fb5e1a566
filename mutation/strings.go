package mutation

import (
	"fmt"
	"math/rand"

	"github.com/AgnopraxLab/modvar/fuzzing"
	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/splice"
)

// String splices address characters and pass an absent input through
// unchanged. Explicit values ignore the input.
type stringOp struct {
	k     Kind
	value string
	pos   int
	count int
}

func newStringOp(k Kind, value string, pos, count int) *Transform[string] {
	return newTransform[string](stringOp{k: k, value: value, pos: pos, count: count})
}

// StringExplicit replaces the input by value.
func StringExplicit(value string) *Transform[string] {
	return newStringOp(KindExplicit, value, 0, 0)
}

// StringInsert inserts value at character position pos.
func StringInsert(value string, pos int) *Transform[string] {
	return newStringOp(KindInsert, value, pos, 0)
}

// StringDelete removes count characters starting at start.
func StringDelete(start, count int) *Transform[string] {
	return newStringOp(KindDelete, "", start, count)
}

// StringAppend appends value to the input.
func StringAppend(value string) *Transform[string] {
	return newStringOp(KindAppend, value, 0, 0)
}

// StringPrepend prepends value to the input.
func StringPrepend(value string) *Transform[string] {
	return newStringOp(KindPrepend, value, 0, 0)
}

// StringFromFile replaces the input by the corpus value at index.
func StringFromFile(c *corpus.Cache[string], index int) (*Transform[string], error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return newStringOp(KindExplicitFromFile, v, index, 0), nil
}

func (o stringOp) kind() Kind { return o.k }

func (o stringOp) apply(in string, ok bool) (string, bool) {
	switch o.k {
	case KindExplicit, KindExplicitFromFile:
		return o.value, true
	}
	if !ok {
		return "", false
	}
	switch o.k {
	case KindInsert:
		return splice.InsertString(in, o.value, o.pos), true
	case KindDelete:
		return splice.DeleteString(in, o.pos, o.count), true
	case KindAppend:
		return splice.AppendString(in, o.value), true
	case KindPrepend:
		return splice.PrependString(in, o.value), true
	}
	panic(fmt.Sprintf("mutation: kind %v on string", o.k))
}

func (o stringOp) equal(other op[string]) bool {
	x, ok := other.(stringOp)
	return ok && x == o
}

func (o stringOp) nearby(r *rand.Rand) (op[string], error) {
	out := o
	switch o.k {
	case KindExplicitFromFile:
		return nil, unsupportedNearby(o.k)
	case KindDelete:
		out.pos += r.Intn(maxNearbyStep)
		out.count += r.Intn(maxNearbyStep)
	case KindInsert:
		out.value = tweakChar(r, o.value)
		out.pos += r.Intn(maxNearbyStep)
	default:
		out.value = tweakChar(r, o.value)
	}
	return out, nil
}

// tweakChar replaces one random character of s, or returns a single random
// character if s is empty.
func tweakChar(r *rand.Rand, s string) string {
	c := fuzzing.RandString(r, 1)
	runes := []rune(s)
	if len(runes) == 0 {
		return c
	}
	runes[r.Intn(len(runes))] = rune(c[0])
	return string(runes)
}

func (o stringOp) String() string {
	switch o.k {
	case KindDelete:
		return fmt.Sprintf("%v(%d+%d)", o.k, o.pos, o.count)
	case KindInsert:
		return fmt.Sprintf("%v(%q@%d)", o.k, o.value, o.pos)
	case KindExplicitFromFile:
		return fmt.Sprintf("%v(#%d=%q)", o.k, o.pos, o.value)
	}
	return fmt.Sprintf("%v(%q)", o.k, o.value)
}
