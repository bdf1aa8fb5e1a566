package splice

// The string variants address characters (runes), not bytes.

// InsertString splices value into s at the normalized character position.
func InsertString(s, value string, pos int) string {
	r := []rune(s)
	p := InsertPosition(pos, len(r))
	return string(r[:p]) + value + string(r[p:])
}

// DeleteString removes up to count characters starting at the normalized start.
func DeleteString(s string, start, count int) string {
	r := []rune(s)
	if len(r) == 0 || count <= 0 {
		return s
	}
	from := StartPosition(start, len(r))
	to := rangeEnd(from, count, len(r))
	return string(r[:from]) + string(r[to:])
}

// AppendString returns s followed by value.
func AppendString(s, value string) string {
	return s + value
}

// PrependString returns value followed by s.
func PrependString(s, value string) string {
	return value + s
}
