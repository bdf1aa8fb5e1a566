// Package corpus loads the explicit values that random transforms draw from.
//
// A corpus is a line oriented text resource named "<name>.vec". The value of a
// line is the text before its first whitespace run; the rest of the line is a
// free-form comment and blank values are skipped. Each Cache loads its
// resource once on first use and is read-only afterwards. A failed load is
// final as well: the resource is not opened again.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/ethereum/go-ethereum/log"
)

// ErrConfiguration reports a corpus that cannot be located, read or parsed.
// It is fatal: callers must not fall back to other values.
var ErrConfiguration = errors.New("corpus configuration error")

// ParseFunc converts one corpus value into E.
type ParseFunc[E any] func(string) (E, error)

// Cache is a lazily loaded corpus of explicit values of type E.
type Cache[E any] struct {
	name  string
	src   fs.FS
	parse ParseFunc[E]

	mu      sync.Mutex
	err     error // first load failure, guarded by mu
	entries atomic.Pointer[[]E]
}

// New returns a cache reading "<name>.vec" from src on first use.
func New[E any](name string, src fs.FS, parse ParseFunc[E]) *Cache[E] {
	return &Cache[E]{name: name, src: src, parse: parse}
}

// Name returns the resource name without extension.
func (c *Cache[E]) Name() string {
	return c.name
}

// Entries returns the loaded values. The slice is shared and must not be
// modified. Once loading failed every call returns that same error.
func (c *Cache[E]) Entries() ([]E, error) {
	if p := c.entries.Load(); p != nil {
		return *p, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if p := c.entries.Load(); p != nil {
		return *p, nil
	}
	if c.err != nil {
		return nil, c.err
	}
	entries, err := c.load()
	if err != nil {
		c.err = err
		return nil, err
	}
	c.entries.Store(&entries)
	return entries, nil
}

// Get returns the value at index, wrapped modulo the corpus size.
func (c *Cache[E]) Get(index int) (E, error) {
	entries, err := c.Entries()
	if err != nil {
		var zero E
		return zero, err
	}
	i := index % len(entries)
	if i < 0 {
		i += len(entries)
	}
	return entries[i], nil
}

// Len returns the number of values in the corpus.
func (c *Cache[E]) Len() (int, error) {
	entries, err := c.Entries()
	return len(entries), err
}

func (c *Cache[E]) load() ([]E, error) {
	file := c.name + ".vec"
	if c.src == nil {
		return nil, fmt.Errorf("%w: no source for %s", ErrConfiguration, file)
	}
	f, err := c.src.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrConfiguration, file, err)
	}
	defer f.Close()

	entries, err := Read(f, c.parse)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, file, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s holds no values", ErrConfiguration, file)
	}
	log.Debug("Loaded corpus", "name", c.name, "entries", len(entries))
	return entries, nil
}

// Read parses a corpus from r.
func Read[E any](r io.Reader, parse ParseFunc[E]) ([]E, error) {
	var (
		entries []E
		scanner = bufio.NewScanner(r)
		line    int
	)
	for scanner.Scan() {
		line++
		value := scanner.Text()
		if i := strings.IndexFunc(value, unicode.IsSpace); i >= 0 {
			value = value[:i]
		}
		if value == "" {
			continue
		}
		v, err := parse(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return entries, nil
}
