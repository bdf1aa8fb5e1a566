package mutation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/filter"
)

// TestTransformChain tests that chained transforms compose in attachment order
func TestTransformChain(t *testing.T) {
	tr := Add[int32](4).Then(Xor[int32](3))

	assert.Equal(t, int32(13), tr.Apply(10))
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, KindAdd, tr.Kind())
	assert.Equal(t, KindXor, tr.Next().Kind())
	assert.Equal(t, "add(4) -> xor(3)", tr.String())
}

func TestTransformThenAppendsAtEnd(t *testing.T) {
	tr := Add[int64](1).Then(Multiply[int64](2)).Then(Subtract[int64](3))

	require.Equal(t, 3, tr.Len())
	assert.Equal(t, KindSubtract, tr.Next().Next().Kind())
	assert.Equal(t, int64((5+1)*2-3), tr.Apply(5))

	tr.SetNext(nil)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, int64(6), tr.Apply(5))
}

// TestTransformFilter tests that suppressed reads yield the untransformed input
func TestTransformFilter(t *testing.T) {
	v := NewInteger().SetOriginal(10)
	v.SetTransform(Add[int32](1).SetFilter(filter.NewAccessFilter(1, 3)))

	var reads []int32
	for i := 0; i < 5; i++ {
		got, err := v.Value()
		require.NoError(t, err)
		reads = append(reads, got)
	}
	assert.Equal(t, []int32{10, 11, 10, 11, 11}, reads)
}

func TestTransformFilterInChain(t *testing.T) {
	// Only the second step is gated; the first always applies.
	tr := Add[int32](4).Then(Xor[int32](3).SetFilter(filter.NewAccessFilter(2)))

	assert.Equal(t, int32(13), tr.Apply(10))
	assert.Equal(t, int32(14), tr.Apply(10))
	assert.Equal(t, int32(13), tr.Apply(10))
	assert.Equal(t, "add(4) -> xor(3)[AccessFilter[2]]", tr.String())
}

func TestTransformExplicitIdempotent(t *testing.T) {
	tr := Explicit[int32](77)
	once := tr.Apply(5)
	assert.Equal(t, once, tr.Apply(once))

	b := BytesExplicit([]byte{1, 2})
	out := b.Apply([]byte{9})
	assert.Equal(t, out, b.Apply(out))

	s := StringExplicit("x")
	assert.Equal(t, s.Apply("a"), s.Apply(s.Apply("a")))
}

func TestTransformEqual(t *testing.T) {
	assert.True(t, Add[int32](4).Equal(Add[int32](4)))
	assert.False(t, Add[int32](4).Equal(Add[int32](5)))
	assert.False(t, Add[int32](4).Equal(Subtract[int32](4)))
	assert.False(t, Add[int32](4).Equal(Add[int32](4).Then(Xor[int32](3))))
	assert.True(t, Add[int32](4).Then(Xor[int32](3)).Equal(Add[int32](4).Then(Xor[int32](3))))

	// Filters are not part of equality.
	assert.True(t, Add[int32](4).SetFilter(filter.NewAccessFilter(1)).Equal(Add[int32](4)))

	assert.True(t, BytesInsert([]byte{1}, 2).Equal(BytesInsert([]byte{1}, 2)))
	assert.False(t, BytesInsert([]byte{1}, 2).Equal(BytesInsert([]byte{2}, 2)))
}

func TestTransformNearby(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	tr := Add[int32](5).SetFilter(filter.NewAccessFilter(1)).Then(Xor[int32](1))
	n, err := tr.Nearby(r)
	require.NoError(t, err)

	assert.Equal(t, KindAdd, n.Kind())
	assert.Nil(t, n.Filter())
	assert.Nil(t, n.Next())
	got := n.Apply(0)
	assert.GreaterOrEqual(t, got, int32(5))
	assert.Less(t, got, int32(5+MaxNearbyDelta))

	for i := 0; i < 100; i++ {
		s, err := ShiftLeft[int8](3).Nearby(r)
		require.NoError(t, err)
		assert.Less(t, s.op.(intOp[int8]).n, 8)
	}
}

func TestTransformNearbyUnsupported(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	set := corpus.Shared()

	fromFile, err := FromFile(set.Integers, 0)
	require.NoError(t, err)
	_, err = fromFile.Nearby(r)
	assert.ErrorIs(t, err, ErrUnsupported)

	bytesFromFile, err := BytesFromFile(set.Bytes, 1)
	require.NoError(t, err)
	_, err = bytesFromFile.Nearby(r)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = FromFunc(func(s string) string { return s + "!" }).Nearby(r)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFromFunc(t *testing.T) {
	tr := FromFunc(func(s string) string { return s + "!" })
	assert.Equal(t, KindInteractive, tr.Kind())
	assert.Equal(t, "hi!", tr.Apply("hi"))

	out, ok := tr.ApplyOptional("ignored", false)
	assert.True(t, ok)
	assert.Equal(t, "!", out)

	assert.False(t, tr.Equal(tr))
}

func TestKindNames(t *testing.T) {
	for k := Kind(0); k < numKinds; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	k, err := ParseKind(" Shift_Left ")
	require.NoError(t, err)
	assert.Equal(t, KindShiftLeft, k)

	_, err = ParseKind("rotate")
	assert.Error(t, err)
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
