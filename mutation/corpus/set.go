package corpus

import (
	"embed"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Resource names of the per type corpora.
const (
	IntegerName    = "integer"
	LongName       = "long"
	BigIntegerName = "biginteger"
	BytesName      = "array"
	StringName     = "string"
)

//go:embed data/*.vec
var embedded embed.FS

// Embedded returns the corpora compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Set groups one cache per value type over a common source.
type Set struct {
	Integers    *Cache[int32]
	Longs       *Cache[int64]
	BigIntegers *Cache[*big.Int]
	Bytes       *Cache[[]byte]
	Strings     *Cache[string]
}

// NewSet returns caches reading from src.
func NewSet(src fs.FS) *Set {
	return &Set{
		Integers:    New(IntegerName, src, ParseInt32),
		Longs:       New(LongName, src, ParseInt64),
		BigIntegers: New(BigIntegerName, src, ParseBigInt),
		Bytes:       New(BytesName, src, ParseBytes),
		Strings:     New(StringName, src, ParseString),
	}
}

// Dir returns a set reading the corpora from a directory on disk. An empty
// dir selects the shared embedded set.
func Dir(dir string) *Set {
	if dir == "" {
		return Shared()
	}
	return NewSet(os.DirFS(dir))
}

var shared = NewSet(Embedded())

// Shared returns the process wide set backed by the embedded corpora.
func Shared() *Set {
	return shared
}

// ParseInt32 accepts decimal, 0x hex, 0o octal and 0b binary notation.
func ParseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 0, 32)
	return int32(v), err
}

// ParseInt64 accepts the same notations as ParseInt32.
func ParseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 0, 64)
}

// ParseBigInt accepts signed values of any size in the ParseInt32 notations.
func ParseBigInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

// ParseBytes decodes 0x prefixed hex. "0x" alone is the empty array.
func ParseBytes(s string) ([]byte, error) {
	return hexutil.Decode(s)
}

// ParseString returns s unchanged.
func ParseString(s string) (string, error) {
	return s, nil
}
