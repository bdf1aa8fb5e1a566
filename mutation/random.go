package mutation

import (
	"fmt"
	"math/big"
	"math/rand"
	"sync"

	"github.com/AgnopraxLab/modvar/fuzzing"
	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/splice"
)

// Kinds drawn by the random factories, uniformly.
var (
	byteKinds = []Kind{
		KindAdd, KindSubtract, KindXor, KindExplicit, KindShiftLeft, KindShiftRight, KindMultiply,
	}
	integerKinds = []Kind{
		KindAdd, KindSubtract, KindXor, KindExplicit, KindShiftLeft, KindShiftRight, KindMultiply,
		KindAppendBits, KindPrependBits, KindInsertBits, KindExplicitFromFile,
	}
	bytesKinds = []Kind{
		KindXor, KindExplicit, KindInsert, KindDelete, KindExplicitFromFile, KindDuplicate,
		KindShuffle, KindPayloadReplace, KindAppend, KindPrepend,
	}
	stringKinds = []Kind{
		KindExplicit, KindInsert, KindDelete, KindAppend, KindPrepend, KindExplicitFromFile,
	}
	boolKinds = []Kind{KindExplicit, KindToggle}
)

// Randomizer synthesizes random transforms for every value type. Parameters
// are bounded by its MutationConfig and explicit values may be drawn from its
// corpus set, which is loaded on first use.
//
// A corpus failure is final. After the first one every factory returns that
// error, whatever kind it would have drawn next.
//
// A Randomizer is safe for concurrent use; runs are reproducible only when a
// single goroutine draws from it.
type Randomizer struct {
	mu     sync.Mutex
	rng    *rand.Rand
	cfg    *MutationConfig
	corpus *corpus.Set
	err    error
}

// NewRandomizer returns a randomizer seeded from the "randomizer" stream of
// cfg.Seed. A nil cfg selects
// DefaultMutationConfig and a nil set the corpus named by cfg.
func NewRandomizer(cfg *MutationConfig, set *corpus.Set) *Randomizer {
	if cfg == nil {
		cfg = DefaultMutationConfig()
	}
	if set == nil {
		set = cfg.Corpus()
	}
	return &Randomizer{
		rng:    fuzzing.NewRand(fuzzing.SubSeed(cfg.Seed, "randomizer")),
		cfg:    cfg.Clone(),
		corpus: set,
	}
}

var (
	defaultRandomizerOnce sync.Once
	defaultRandomizer     *Randomizer
)

// DefaultRandomizer is used by variables that were never bound to another
// randomizer. It is time seeded and reads the embedded corpora.
func DefaultRandomizer() *Randomizer {
	defaultRandomizerOnce.Do(func() {
		defaultRandomizer = NewRandomizer(nil, corpus.Shared())
	})
	return defaultRandomizer
}

// Corpus returns the corpus set explicit values are drawn from.
func (r *Randomizer) Corpus() *corpus.Set {
	return r.corpus
}

// Err returns the corpus failure that disabled the randomizer, if any.
func (r *Randomizer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// fail records the first corpus failure. r.mu must be held.
func (r *Randomizer) fail(err error) error {
	if err != nil && r.err == nil {
		r.err = err
	}
	return err
}

// Intn returns a value in [0, n) from the randomizer's source.
func (r *Randomizer) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fuzzing.RandIntn(r.rng, n)
}

func pick(r *rand.Rand, kinds []Kind) Kind {
	return kinds[r.Intn(len(kinds))]
}

// RandomByte returns a random transform for int8 values.
func (r *Randomizer) RandomByte() (*Transform[int8], error) {
	return randomInteger[int8](r, byteKinds, nil)
}

// RandomInteger returns a random transform for int32 values.
func (r *Randomizer) RandomInteger() (*Transform[int32], error) {
	return randomInteger(r, integerKinds, r.corpus.Integers)
}

// RandomLong returns a random transform for int64 values.
func (r *Randomizer) RandomLong() (*Transform[int64], error) {
	return randomInteger(r, integerKinds, r.corpus.Longs)
}

func randomInteger[T Integer](r *Randomizer, kinds []Kind, c *corpus.Cache[T]) (*Transform[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	k := pick(r.rng, kinds)
	w := splice.Width[T]()
	v := T(fuzzing.RandIntn(r.rng, r.cfg.MaxModificationValue))
	switch k {
	case KindExplicitFromFile:
		t, err := FromFile(c, fuzzing.RandIntn(r.rng, r.cfg.MaxFileEntries))
		return t, r.fail(err)
	case KindShiftLeft:
		return ShiftLeft[T](r.rng.Intn(w)), nil
	case KindShiftRight:
		return ShiftRight[T](r.rng.Intn(w)), nil
	case KindInsertBits:
		return InsertBits(v, r.rng.Intn(w+1)), nil
	}
	return newTransform[T](intOp[T]{k: k, value: v}), nil
}

// RandomBigInteger returns a random transform for big integers.
func (r *Randomizer) RandomBigInteger() (*Transform[*big.Int], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	k := pick(r.rng, integerKinds)
	v := fuzzing.RandBigIntN(r.rng, big.NewInt(int64(r.cfg.MaxModificationValue)))
	switch k {
	case KindExplicitFromFile:
		t, err := BigFromFile(r.corpus.BigIntegers, fuzzing.RandIntn(r.rng, r.cfg.MaxFileEntries))
		return t, r.fail(err)
	case KindShiftLeft, KindShiftRight:
		return newBigOp(k, nil, r.rng.Intn(maxBigShift)), nil
	case KindInsertBits:
		return BigInsertBits(v, r.rng.Intn(maxBigShift)), nil
	}
	return newBigOp(k, v, 0), nil
}

// RandomBytes returns a random transform for byte arrays.
func (r *Randomizer) RandomBytes() (*Transform[[]byte], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var (
		k     = pick(r.rng, bytesKinds)
		pos   = fuzzing.RandIntn(r.rng, r.cfg.MaxConfigParameter)
		count = fuzzing.RandIntRange(r.rng, 1, r.cfg.MaxConfigParameter)
		value = fuzzing.RandBytes(r.rng, fuzzing.RandIntRange(r.rng, 1, r.cfg.ModifiedArrayLength))
	)
	switch k {
	case KindExplicit:
		return BytesExplicit(fuzzing.RandBytes(r.rng, fuzzing.RandIntn(r.rng, r.cfg.ModifiedArrayLength))), nil
	case KindExplicitFromFile:
		t, err := BytesFromFile(r.corpus.Bytes, fuzzing.RandIntn(r.rng, r.cfg.MaxFileEntries))
		return t, r.fail(err)
	case KindInsert:
		return BytesInsert(value, pos), nil
	case KindDelete:
		return BytesDelete(pos, count), nil
	case KindDuplicate:
		return BytesDuplicate(pos, count), nil
	case KindShuffle:
		return BytesShuffle(value), nil
	case KindXor:
		return BytesXor(value, pos), nil
	case KindPayloadReplace:
		return BytesPayloadReplace(value, pos), nil
	case KindAppend:
		return BytesAppend(value), nil
	case KindPrepend:
		return BytesPrepend(value), nil
	}
	panic(fmt.Sprintf("mutation: random kind %v on byte array", k))
}

// RandomString returns a random transform for strings.
func (r *Randomizer) RandomString() (*Transform[string], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var (
		k     = pick(r.rng, stringKinds)
		pos   = fuzzing.RandIntn(r.rng, r.cfg.MaxConfigParameter)
		value = fuzzing.RandString(r.rng, fuzzing.RandIntRange(r.rng, 1, r.cfg.MaxStringLength))
	)
	switch k {
	case KindExplicit:
		return StringExplicit(value), nil
	case KindExplicitFromFile:
		t, err := StringFromFile(r.corpus.Strings, fuzzing.RandIntn(r.rng, r.cfg.MaxFileEntries))
		return t, r.fail(err)
	case KindInsert:
		return StringInsert(value, pos), nil
	case KindDelete:
		return StringDelete(pos, fuzzing.RandIntRange(r.rng, 1, r.cfg.MaxConfigParameter)), nil
	case KindAppend:
		return StringAppend(value), nil
	case KindPrepend:
		return StringPrepend(value), nil
	}
	panic(fmt.Sprintf("mutation: random kind %v on string", k))
}

// RandomBool returns a random transform for booleans.
func (r *Randomizer) RandomBool() (*Transform[bool], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	if pick(r.rng, boolKinds) == KindToggle {
		return Toggle(), nil
	}
	return BoolExplicit(fuzzing.RandBool(r.rng)), nil
}
