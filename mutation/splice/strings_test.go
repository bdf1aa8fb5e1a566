package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertString(t *testing.T) {
	assert.Equal(t, "abXcd", InsertString("abcd", "X", 2))
	assert.Equal(t, "abcXd", InsertString("abcd", "X", -1))
	assert.Equal(t, "Xabcd", InsertString("abcd", "X", 5))
	assert.Equal(t, "abcdX", InsertString("abcd", "X", 4))
	assert.Equal(t, "X", InsertString("", "X", 7))
}

// TestInsertStringRunes makes sure positions count characters, not bytes.
func TestInsertStringRunes(t *testing.T) {
	assert.Equal(t, "héXllo", InsertString("héllo", "X", 2))
	assert.Equal(t, "日本!語", InsertString("日本語", "!", -1))
}

func TestDeleteString(t *testing.T) {
	assert.Equal(t, "ad", DeleteString("abcd", 1, 2))
	assert.Equal(t, "abd", DeleteString("abcd", -1, 1))
	assert.Equal(t, "ab", DeleteString("abcd", 2, 100))
	assert.Equal(t, "abcd", DeleteString("abcd", 2, 0))
	assert.Equal(t, "", DeleteString("", 2, 1))
	assert.Equal(t, "日語", DeleteString("日本語", 1, 1))
}

func TestAppendPrependString(t *testing.T) {
	assert.Equal(t, "abcd", AppendString("ab", "cd"))
	assert.Equal(t, "cdab", PrependString("ab", "cd"))
}
