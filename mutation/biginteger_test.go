package mutation

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
)

func TestBigIntegerTransforms(t *testing.T) {
	huge, _ := new(big.Int).SetString("0x10000000000000000", 0)
	tests := []struct {
		name string
		tr   *Transform[*big.Int]
		in   int64
		want *big.Int
	}{
		{"explicit", BigExplicit(big.NewInt(7)), 1, big.NewInt(7)},
		{"add", BigAdd(big.NewInt(4)), 10, big.NewInt(14)},
		{"subtract", BigSubtract(big.NewInt(20)), 10, big.NewInt(-10)},
		{"xor", BigXor(big.NewInt(3)), 14, big.NewInt(13)},
		{"xor negative", BigXor(big.NewInt(-1)), 0, big.NewInt(-1)},
		{"multiply no overflow", BigMultiply(big.NewInt(1 << 32)), 1 << 32, huge},
		{"shift left", BigShiftLeft(64), 1, huge},
		{"shift left negative", BigShiftLeft(-2), 16, big.NewInt(4)},
		{"shift right", BigShiftRight(2), 16, big.NewInt(4)},
		{"shift right negative", BigShiftRight(-2), 1, big.NewInt(4)},
		{"append bits", BigAppendBits(big.NewInt(0b11)), 0b1010, big.NewInt(0b101011)},
		{"prepend bits", BigPrependBits(big.NewInt(0b11)), 0b1010, big.NewInt(0b111010)},
		{"insert bits", BigInsertBits(big.NewInt(0b11), 2), 0b1010, big.NewInt(0b101110)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Apply(big.NewInt(tt.in))
			assert.Zero(t, tt.want.Cmp(got), "got %v want %v", got, tt.want)
		})
	}
}

// TestBigIntegerValueSemantics tests that neither input nor operands are shared
func TestBigIntegerValueSemantics(t *testing.T) {
	in := big.NewInt(10)
	operand := big.NewInt(5)
	tr := BigAdd(operand)
	operand.SetInt64(1000)

	out := tr.Apply(in)
	assert.Equal(t, int64(15), out.Int64())
	assert.Equal(t, int64(10), in.Int64())

	explicit := BigExplicit(big.NewInt(3))
	first := explicit.Apply(nil)
	first.SetInt64(0)
	assert.Equal(t, int64(3), explicit.Apply(nil).Int64())
}

func TestBigIntegerAbsentInput(t *testing.T) {
	out, ok := BigAdd(big.NewInt(5)).ApplyOptional(nil, false)
	assert.True(t, ok)
	assert.Equal(t, int64(5), out.Int64())

	out, ok = BigShiftLeft(3).ApplyOptional(nil, true)
	assert.True(t, ok)
	assert.Zero(t, out.Sign())

	assert.Equal(t, int64(5), BigExplicit(nil).Then(BigAdd(big.NewInt(5))).Apply(nil).Int64())
}

func TestBigIntegerFromFile(t *testing.T) {
	c := corpus.Shared().BigIntegers
	n, err := c.Len()
	require.NoError(t, err)

	direct, err := BigFromFile(c, 3)
	require.NoError(t, err)
	wrapped, err := BigFromFile(c, 3+2*n)
	require.NoError(t, err)
	assert.Equal(t, int64(255), direct.Apply(nil).Int64())
	assert.False(t, direct.Equal(BigExplicit(big.NewInt(255))))
	assert.Zero(t, direct.Apply(nil).Cmp(wrapped.Apply(nil)))

	_, err = direct.Nearby(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestBigIntegerEqual(t *testing.T) {
	assert.True(t, BigAdd(big.NewInt(4)).Equal(BigAdd(big.NewInt(4))))
	assert.False(t, BigAdd(big.NewInt(4)).Equal(BigAdd(big.NewInt(-4))))
	assert.True(t, BigShiftLeft(3).Equal(BigShiftLeft(3)))
	assert.False(t, BigShiftLeft(3).Equal(BigShiftRight(3)))
}

func TestBigIntegerNearbyShiftBounded(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		n, err := BigShiftRight(63).Nearby(r)
		require.NoError(t, err)
		shift := n.op.(bigOp).n
		assert.GreaterOrEqual(t, shift, 0)
		assert.Less(t, shift, maxBigShift)
	}
}
