package mutation

import (
	"bytes"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/splice"
)

// traits carries the per type behaviour of a Variable.
type traits[E any] struct {
	name   string
	equal  func(a, b E) bool
	render func(v E) string
	// clone copies a value so a read never hands out the original's memory.
	clone  func(v E) E
	// length is nil for types without length bounds.
	length func(v E) int
	random func(r *Randomizer) (*Transform[E], error)
	build  func(e PlanEntry, set *corpus.Set) (*Transform[E], error)
}

// Variable holds a value of a protocol message field together with an
// optional transform applied whenever the value is read. The original value
// is never modified by a read.
//
// A Variable and its filters belong to a single reader.
type Variable[E any] struct {
	original    E
	hasOriginal bool

	transform *Transform[E]

	expected    E
	hasExpected bool

	randomize  bool
	randomizer *Randomizer
	failed     error

	traits *traits[E]
}

var (
	byteTraits = &traits[int8]{
		name:   "byte",
		equal:  func(a, b int8) bool { return a == b },
		render: func(v int8) string { return fmt.Sprintf("%d", v) },
		clone:  same[int8],
		random: (*Randomizer).RandomByte,
		build:  buildByte,
	}
	integerTraits = &traits[int32]{
		name:   "integer",
		equal:  func(a, b int32) bool { return a == b },
		render: func(v int32) string { return fmt.Sprintf("%d", v) },
		clone:  same[int32],
		random: (*Randomizer).RandomInteger,
		build:  buildInteger,
	}
	longTraits = &traits[int64]{
		name:   "long",
		equal:  func(a, b int64) bool { return a == b },
		render: func(v int64) string { return fmt.Sprintf("%d", v) },
		clone:  same[int64],
		random: (*Randomizer).RandomLong,
		build:  buildLong,
	}
	bigIntegerTraits = &traits[*big.Int]{
		name:   "biginteger",
		equal:  bigEqual,
		render: func(v *big.Int) string { return bigOrZero(v).String() },
		clone:  cloneBig,
		random: (*Randomizer).RandomBigInteger,
		build:  buildBigInteger,
	}
	bytesTraits = &traits[[]byte]{
		name:   "array",
		equal:  bytes.Equal,
		render: hexutil.Encode,
		clone:  cloneBytes,
		length: func(v []byte) int { return len(v) },
		random: (*Randomizer).RandomBytes,
		build:  buildBytes,
	}
	stringTraits = &traits[string]{
		name:   "string",
		equal:  func(a, b string) bool { return a == b },
		render: func(v string) string { return fmt.Sprintf("%q", v) },
		clone:  same[string],
		length: utf8.RuneCountInString,
		random: (*Randomizer).RandomString,
		build:  buildString,
	}
	boolTraits = &traits[bool]{
		name:   "bool",
		equal:  func(a, b bool) bool { return a == b },
		render: func(v bool) string { return fmt.Sprintf("%t", v) },
		clone:  same[bool],
		random: (*Randomizer).RandomBool,
		build:  buildBool,
	}
)

func same[E any](v E) E { return v }

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

// cloneBytes keeps nil apart from empty.
func cloneBytes(v []byte) []byte {
	if v == nil {
		return nil
	}
	return splice.Clone(v)
}

// bigEqual compares numerically; nil equals only nil.
func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

// NewByte returns an empty int8 variable.
func NewByte() *Variable[int8] { return &Variable[int8]{traits: byteTraits} }

// NewInteger returns an empty int32 variable.
func NewInteger() *Variable[int32] { return &Variable[int32]{traits: integerTraits} }

// NewLong returns an empty int64 variable.
func NewLong() *Variable[int64] { return &Variable[int64]{traits: longTraits} }

// NewBigInteger returns an empty big integer variable.
func NewBigInteger() *Variable[*big.Int] { return &Variable[*big.Int]{traits: bigIntegerTraits} }

// NewBytes returns an empty byte array variable.
func NewBytes() *Variable[[]byte] { return &Variable[[]byte]{traits: bytesTraits} }

// NewString returns an empty string variable.
func NewString() *Variable[string] { return &Variable[string]{traits: stringTraits} }

// NewBool returns an empty boolean variable.
func NewBool() *Variable[bool] { return &Variable[bool]{traits: boolTraits} }

// Type returns the name of the value type, matching its corpus name.
func (v *Variable[E]) Type() string { return v.traits.name }

// Original returns the original value and whether it is set.
func (v *Variable[E]) Original() (E, bool) {
	return v.original, v.hasOriginal
}

// SetOriginal sets the original value.
func (v *Variable[E]) SetOriginal(value E) *Variable[E] {
	v.original, v.hasOriginal = value, true
	return v
}

// ClearOriginal unsets the original value. An attached transform stays.
func (v *Variable[E]) ClearOriginal() {
	var zero E
	v.original, v.hasOriginal = zero, false
}

func (v *Variable[E]) HasOriginal() bool { return v.hasOriginal }

// Transform returns the attached transform chain, or nil.
func (v *Variable[E]) Transform() *Transform[E] { return v.transform }

// SetTransform attaches t, replacing any previous transform.
func (v *Variable[E]) SetTransform(t *Transform[E]) *Variable[E] {
	v.transform = t
	return v
}

// ClearTransform detaches the transform. The original value stays.
func (v *Variable[E]) ClearTransform() { v.transform = nil }

func (v *Variable[E]) HasTransform() bool { return v.transform != nil }

// Expected returns the asserted value and whether an assertion is set.
func (v *Variable[E]) Expected() (E, bool) {
	return v.expected, v.hasExpected
}

// SetExpected asserts that the effective value equals value.
func (v *Variable[E]) SetExpected(value E) *Variable[E] {
	v.expected, v.hasExpected = value, true
	return v
}

func (v *Variable[E]) ClearExpected() {
	var zero E
	v.expected, v.hasExpected = zero, false
}

// HasAssertion reports whether an expected value is set.
func (v *Variable[E]) HasAssertion() bool { return v.hasExpected }

// RandomizeOnNextRead makes the next read replace the whole transform chain,
// planned entries included, by a single random transform of this value type.
func (v *Variable[E]) RandomizeOnNextRead() { v.randomize = true }

// Randomizing reports whether the next read draws a random transform.
func (v *Variable[E]) Randomizing() bool { return v.randomize }

// SetRandomizer selects the randomizer used for RandomizeOnNextRead. A nil r
// restores DefaultRandomizer.
func (v *Variable[E]) SetRandomizer(r *Randomizer) { v.randomizer = r }

func (v *Variable[E]) random() (*Transform[E], error) {
	r := v.randomizer
	if r == nil {
		r = DefaultRandomizer()
	}
	return v.traits.random(r)
}

// Lookup computes the effective value and whether it is present. A pending
// randomization is resolved first. If it fails the flag stays set, the
// transform is left untouched and every later read returns the same error.
//
// The result never shares memory with the original value.
func (v *Variable[E]) Lookup() (E, bool, error) {
	var zero E
	if v.failed != nil {
		return zero, false, v.failed
	}
	if v.randomize {
		t, err := v.random()
		if err != nil {
			v.failed = fmt.Errorf("randomize %s value: %w", v.traits.name, err)
			return zero, false, v.failed
		}
		v.transform = t
		v.randomize = false
	}
	in := v.original
	if v.hasOriginal {
		in = v.traits.clone(in)
	}
	if v.transform == nil {
		return in, v.hasOriginal, nil
	}
	out, ok := v.transform.ApplyOptional(in, v.hasOriginal)
	return out, ok, nil
}

// Value returns the effective value, or the zero value of E if it is absent.
func (v *Variable[E]) Value() (E, error) {
	out, _, err := v.Lookup()
	return out, err
}

// Validate reports whether the effective value matches the expected value.
// Without an assertion it is always true and the value is not read.
func (v *Variable[E]) Validate() (bool, error) {
	if !v.hasExpected {
		return true, nil
	}
	out, ok, err := v.Lookup()
	if err != nil {
		return false, err
	}
	return v.matches(out, ok), nil
}

func (v *Variable[E]) matches(out E, ok bool) bool {
	return ok && v.traits.equal(v.expected, out)
}

// Render reads the effective value and formats it; absent values render as
// "null".
func (v *Variable[E]) Render() (string, error) {
	out, ok, err := v.Lookup()
	if err != nil {
		return "", err
	}
	if !ok {
		return "null", nil
	}
	return v.traits.render(out), nil
}

// String describes the variable without reading it, so filters and pending
// randomizations are left alone.
func (v *Variable[E]) String() string {
	orig := "null"
	if v.hasOriginal {
		orig = v.traits.render(v.original)
	}
	if v.transform == nil {
		return orig
	}
	return fmt.Sprintf("%s <%v>", orig, v.transform)
}
