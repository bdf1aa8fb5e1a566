package splice

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestInsertPosition(t *testing.T) {
	tests := []struct {
		pos, n, want int
	}{
		{0, 4, 0},
		{4, 4, 4},
		{5, 4, 0},
		{6, 4, 1},
		{-1, 4, 3},
		{-4, 4, 0},
		{-5, 4, 4},
		{3, 0, 0},
		{-3, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InsertPosition(tt.pos, tt.n), "pos=%d n=%d", tt.pos, tt.n)
	}
}

func TestStartPosition(t *testing.T) {
	tests := []struct {
		start, n, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{-1, 4, 2},
		{-3, 4, 0},
		{-4, 4, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StartPosition(tt.start, tt.n), "start=%d n=%d", tt.start, tt.n)
	}
}

// TestInsertWraparound covers the negative-from-end and wrap-to-front cases.
func TestInsertWraparound(t *testing.T) {
	s := []byte{1, 2, 3, 4}

	got := Insert(s, []byte{0xAA}, -1)
	if diff := cmp.Diff([]byte{1, 2, 3, 0xAA, 4}, got); diff != "" {
		t.Errorf("Insert(-1) mismatch (-want +got):\n%s", diff)
	}
	got = Insert(s, []byte{0xAA}, 5)
	if diff := cmp.Diff([]byte{0xAA, 1, 2, 3, 4}, got); diff != "" {
		t.Errorf("Insert(5) mismatch (-want +got):\n%s", diff)
	}
	got = Insert(s, []byte{0xAA, 0xBB}, 4)
	if diff := cmp.Diff([]byte{1, 2, 3, 4, 0xAA, 0xBB}, got); diff != "" {
		t.Errorf("Insert(4) mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []byte{1, 2, 3, 4}, s, "input must not change")
}

func TestInsertNil(t *testing.T) {
	assert.Equal(t, []byte{7}, Insert(nil, []byte{7}, 10))
	assert.Equal(t, []byte{}, Insert(nil, nil, 0))
}

func TestDelete(t *testing.T) {
	s := []byte{1, 2, 3, 4, 5}
	tests := []struct {
		name         string
		start, count int
		want         []byte
	}{
		{"front", 0, 2, []byte{3, 4, 5}},
		{"middle", 2, 1, []byte{1, 2, 4, 5}},
		{"clamped end", 3, 10, []byte{1, 2, 3}},
		{"wrapped start", 6, 1, []byte{1, 3, 4, 5}},
		{"negative start", -1, 1, []byte{1, 2, 3, 5}},
		{"zero count", 1, 0, []byte{1, 2, 3, 4, 5}},
		{"negative count", 1, -3, []byte{1, 2, 3, 4, 5}},
		{"huge count", 0, int(^uint(0) >> 1), []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delete(s, tt.start, tt.count)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Delete(%d, %d) mismatch (-want +got):\n%s", tt.start, tt.count, diff)
			}
		})
	}
	assert.Equal(t, []byte{}, Delete(nil, 3, 3))
}

func TestDuplicate(t *testing.T) {
	s := []byte{1, 2, 3, 4}
	assert.Equal(t, []byte{1, 2, 3, 2, 3, 4}, Duplicate(s, 1, 2))
	assert.Equal(t, []byte{1, 2, 3, 4, 4}, Duplicate(s, 3, 9))
	assert.Equal(t, []byte{1, 2, 3, 4}, Duplicate(s, 0, 0))
	assert.Equal(t, []byte{}, Duplicate(nil, 0, 1))
}

func TestShuffle(t *testing.T) {
	s := []byte{10, 20, 30, 40}
	// Swap 0<->1, then 2<->3 (7 % 4 == 3).
	got := Shuffle(s, []byte{0, 1, 2, 7})
	assert.Equal(t, []byte{20, 10, 40, 30}, got)
	assert.Equal(t, []byte{10, 20, 30, 40}, s)

	// A lone trailing key byte is ignored.
	assert.Equal(t, []byte{10, 20, 30, 40}, Shuffle(s, []byte{3}))
	assert.Equal(t, []byte{}, Shuffle(nil, []byte{1, 2}))
}

func TestShuffleLong(t *testing.T) {
	s := make([]byte, 300)
	for i := range s {
		s[i] = byte(i)
	}
	// 0x0101 = 257, 0x0002 = 2.
	got := Shuffle(s, []byte{0x01, 0x01, 0x00, 0x02})
	assert.Equal(t, byte(2), got[257])
	assert.Equal(t, byte(1), got[2]) // 257 truncated to a byte
	assert.Len(t, got, 300)
}

func TestShuffleDeterministic(t *testing.T) {
	s := []byte("the quick brown fox")
	key := []byte{3, 9, 1, 14, 200, 7, 5, 5}
	assert.Equal(t, Shuffle(s, key), Shuffle(s, key))
	assert.ElementsMatch(t, s, Shuffle(s, key))
}

func TestXor(t *testing.T) {
	s := []byte{0x00, 0x0F, 0xF0, 0xFF}
	assert.Equal(t, []byte{0x00, 0x0F, 0x0F, 0x00}, Xor(s, []byte{0xFF, 0xFF, 0xFF}, 2))
	assert.Equal(t, []byte{0x00, 0x0F, 0xF0, 0x00}, Xor(s, []byte{0xFF}, -1))
	assert.Equal(t, []byte{0xFF, 0x0F, 0xF0, 0xFF}, Xor(s, []byte{0xFF}, 4))
	assert.Equal(t, []byte{}, Xor(nil, []byte{1}, 0))
}

func TestOverwrite(t *testing.T) {
	s := []byte{1, 2, 3, 4}
	assert.Equal(t, []byte{1, 9, 9, 4}, Overwrite(s, []byte{9, 9}, 1))
	assert.Equal(t, []byte{1, 2, 3, 9}, Overwrite(s, []byte{9, 9, 9}, -1))
	assert.Equal(t, []byte{}, Overwrite(nil, []byte{9}, 0))
}

func TestAppendPrepend(t *testing.T) {
	assert.Equal(t, []byte{1, 2, 3}, Append([]byte{1}, []byte{2, 3}))
	assert.Equal(t, []byte{2, 3, 1}, Prepend([]byte{1}, []byte{2, 3}))
	assert.Equal(t, []byte{}, Append(nil, nil))
}
