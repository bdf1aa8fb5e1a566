// Package splice implements the position based sequence operations shared by
// the byte array, string and integer transforms.
//
// Positions never fail. Insert positions count from the end when negative and
// wrap past the end back to the front, start positions for removal style
// operations wrap into [0, len). Every function returns a freshly allocated
// result and leaves its inputs untouched.
package splice

import "encoding/binary"

// mod is the euclidean remainder, always in [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// InsertPosition normalizes pos for an insertion into a sequence of length n.
// The result is in [0, n].
func InsertPosition(pos, n int) int {
	if pos < 0 {
		pos += n
	}
	return mod(pos, n+1)
}

// StartPosition normalizes the start of a removal range in a sequence of
// length n > 0. Negative starts are shifted by n-1 before wrapping.
func StartPosition(start, n int) int {
	if start < 0 {
		start += n - 1
	}
	return mod(start, n)
}

// OffsetPosition normalizes the start of an overwrite in a sequence of length
// n > 0. Negative offsets count from the end, -1 being the last element.
func OffsetPosition(start, n int) int {
	if start < 0 {
		start += n
	}
	return mod(start, n)
}

// rangeEnd returns from+count clamped to n without overflowing.
func rangeEnd(from, count, n int) int {
	if count > n-from {
		return n
	}
	return from + count
}

// Clone returns a copy of b. A nil input yields an empty, non-nil slice.
func Clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Insert splices value into s at the normalized position pos.
func Insert(s, value []byte, pos int) []byte {
	p := InsertPosition(pos, len(s))
	out := make([]byte, 0, len(s)+len(value))
	out = append(out, s[:p]...)
	out = append(out, value...)
	return append(out, s[p:]...)
}

// Delete removes up to count bytes starting at the normalized start.
func Delete(s []byte, start, count int) []byte {
	if len(s) == 0 || count <= 0 {
		return Clone(s)
	}
	from := StartPosition(start, len(s))
	to := rangeEnd(from, count, len(s))
	out := make([]byte, 0, len(s)-(to-from))
	out = append(out, s[:from]...)
	return append(out, s[to:]...)
}

// Duplicate copies the range selected like Delete and inserts the copy
// directly after the original range.
func Duplicate(s []byte, start, count int) []byte {
	if len(s) == 0 || count <= 0 {
		return Clone(s)
	}
	from := StartPosition(start, len(s))
	to := rangeEnd(from, count, len(s))
	out := make([]byte, 0, len(s)+(to-from))
	out = append(out, s[:to]...)
	out = append(out, s[from:to]...)
	return append(out, s[to:]...)
}

// Shuffle permutes s by swapping positions chosen from key. Sequences of up to
// 255 bytes consume the key one byte per position, longer ones two bytes
// (big endian) per position. Trailing key bytes that do not form a full pair
// are ignored.
func Shuffle(s, key []byte) []byte {
	out := Clone(s)
	n := len(out)
	switch {
	case n == 0:
	case n > 255:
		for i := 0; i+3 < len(key); i += 4 {
			p1 := int(binary.BigEndian.Uint16(key[i:])) % n
			p2 := int(binary.BigEndian.Uint16(key[i+2:])) % n
			out[p1], out[p2] = out[p2], out[p1]
		}
	default:
		for i := 0; i+1 < len(key); i += 2 {
			p1 := int(key[i]) % n
			p2 := int(key[i+1]) % n
			out[p1], out[p2] = out[p2], out[p1]
		}
	}
	return out
}

// Xor combines mask into s starting at the normalized offset. Mask bytes
// running past the end of s are dropped.
func Xor(s, mask []byte, start int) []byte {
	out := Clone(s)
	if len(out) == 0 {
		return out
	}
	from := OffsetPosition(start, len(out))
	for i := 0; i < len(mask) && from+i < len(out); i++ {
		out[from+i] ^= mask[i]
	}
	return out
}

// Overwrite replaces the bytes of s starting at the normalized offset with
// value, truncated at the end of s. The length of s never changes.
func Overwrite(s, value []byte, start int) []byte {
	out := Clone(s)
	if len(out) == 0 {
		return out
	}
	copy(out[OffsetPosition(start, len(out)):], value)
	return out
}

// Append returns s followed by value.
func Append(s, value []byte) []byte {
	out := make([]byte, 0, len(s)+len(value))
	out = append(out, s...)
	return append(out, value...)
}

// Prepend returns value followed by s.
func Prepend(s, value []byte) []byte {
	return Append(value, s)
}
