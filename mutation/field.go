package mutation

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
	"github.com/AgnopraxLab/modvar/mutation/filter"
)

// ErrNoFields is returned when a holder exposes no fields to choose from.
var ErrNoFields = errors.New("holder has no fields")

// Field is the type erased view of a named Variable registered by a message.
type Field interface {
	Name() string
	Meta() Meta
	// Type is the value type name: byte, integer, long, biginteger, array,
	// string or bool.
	Type() string

	HasOriginal() bool
	ClearOriginal()
	HasTransform() bool
	ClearTransform()
	RandomizeOnNextRead()
	Randomizing() bool
	HasAssertion() bool

	// Validate reads the effective value if an assertion is set and compares.
	Validate() (bool, error)
	// Render reads the effective value and formats it for logs.
	Render() (string, error)
	// String describes original value and transform without reading.
	String() string

	bind(r *Randomizer)
	attach(e PlanEntry, set *corpus.Set) error
	check() error
}

// Holder is implemented by messages to list the variables they are built
// from, in wire order.
type Holder interface {
	Fields() []Field
}

type field[E any] struct {
	*Variable[E]
	name string
	meta Meta
}

// NewField registers v under name. The meta description must be valid.
func NewField[E any](name string, v *Variable[E], meta Meta) (Field, error) {
	if name == "" {
		return nil, errors.New("field name must not be empty")
	}
	if v == nil {
		return nil, fmt.Errorf("field %q: nil variable", name)
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	return &field[E]{Variable: v, name: name, meta: meta}, nil
}

// MustField is like NewField but panics on error. It is meant for fields
// declared by message constructors.
func MustField[E any](name string, v *Variable[E], meta Meta) Field {
	f, err := NewField(name, v, meta)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *field[E]) Name() string { return f.name }

func (f *field[E]) Meta() Meta { return f.meta }

func (f *field[E]) bind(r *Randomizer) { f.SetRandomizer(r) }

// attach appends the transform described by e to the field's chain.
func (f *field[E]) attach(e PlanEntry, set *corpus.Set) error {
	if f.traits.build == nil {
		return fmt.Errorf("field %q: %s values cannot be planned", f.name, f.traits.name)
	}
	t, err := f.traits.build(e, set)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	if len(e.Suppress) > 0 {
		t.SetFilter(filter.NewAccessFilter(e.Suppress...))
	}
	if f.transform == nil {
		f.transform = t
	} else {
		f.transform.Then(t)
	}
	return nil
}

// check reads the effective value once and compares it with the assertion
// and, for byte arrays and strings, with the length bounds of the meta.
func (f *field[E]) check() error {
	out, ok, err := f.Lookup()
	if err != nil {
		return err
	}
	var errs []error
	if !f.matches(out, ok) {
		errs = append(errs, ErrAssertion)
	}
	if f.traits.length != nil && ok {
		if n := f.traits.length(out); !f.meta.Fits(n) {
			errs = append(errs, fmt.Errorf("%w: %d not in [%d, %s]", ErrLength, n, f.meta.MinLength, maxString(f.meta.MaxLength)))
		}
	}
	return errors.Join(errs...)
}

func maxString(n int) string {
	if n == 0 {
		return "any"
	}
	return fmt.Sprint(n)
}

// FieldByName returns the field of h called name.
func FieldByName(h Holder, name string) (Field, bool) {
	for _, f := range h.Fields() {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// RandomField picks one field of h uniformly.
func RandomField(h Holder, r *rand.Rand) (Field, error) {
	fields := h.Fields()
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	return fields[r.Intn(len(fields))], nil
}

// ResetOriginals clears the original value of every field of h, leaving
// attached transforms in place.
func ResetOriginals(h Holder) {
	for _, f := range h.Fields() {
		f.ClearOriginal()
	}
}

// ValidateAll checks every field carrying an assertion and reports each
// mismatch or read failure. A present byte array or string effective value
// must also fit the length bounds of the field. Fields without an assertion
// are not read.
func ValidateAll(h Holder) error {
	var errs []error
	for _, f := range h.Fields() {
		if !f.HasAssertion() {
			continue
		}
		if err := f.check(); err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", f.Name(), err))
		}
	}
	return errors.Join(errs...)
}

var (
	// ErrAssertion marks a field whose effective value differs from its
	// expected value.
	ErrAssertion = errors.New("effective value differs from expected")
	// ErrLength marks a field whose effective value is outside its length
	// bounds.
	ErrLength = errors.New("effective value length out of bounds")
)
