package mutation

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/AgnopraxLab/modvar/mutation/corpus"
)

// PlanEntry describes one transform to attach to a named field. Which of the
// parameters are read depends on the kind.
type PlanEntry struct {
	Field    string `yaml:"field"`
	Kind     string `yaml:"kind"`
	Value    string `yaml:"value,omitempty"`    // operand, parsed like a corpus line of the field type
	Position int    `yaml:"position,omitempty"` // insert position, start offset or bit position
	Count    int    `yaml:"count,omitempty"`    // delete and duplicate length
	Shift    int    `yaml:"shift,omitempty"`    // shift amount
	Index    int    `yaml:"index,omitempty"`    // corpus index for explicit_from_file
	Suppress []int  `yaml:"suppress,omitempty"` // 1-based reads on which the transform is skipped
}

// Plan is an ordered list of deterministic mutations. Entries naming the same
// field are chained in order.
type Plan struct {
	Mutations []PlanEntry `yaml:"mutations"`
}

// ParsePlan decodes a YAML plan.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse mutation plan: %w", err)
	}
	return &p, nil
}

// LoadPlan reads a YAML plan from path.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mutation plan: %w", err)
	}
	return ParsePlan(data)
}

// Marshal encodes the plan as YAML.
func (p *Plan) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Empty reports whether the plan has no entries.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Mutations) == 0
}

// Apply attaches every entry to the matching field of h, drawing corpus
// values from set. All entries are tried; the returned error joins every
// failure.
func (p *Plan) Apply(h Holder, set *corpus.Set) error {
	if p.Empty() {
		return nil
	}
	if set == nil {
		set = corpus.Shared()
	}
	var errs []error
	for i, e := range p.Mutations {
		f, ok := FieldByName(h, e.Field)
		if !ok {
			errs = append(errs, fmt.Errorf("mutation %d: unknown field %q", i, e.Field))
			continue
		}
		if err := f.attach(e, set); err != nil {
			errs = append(errs, fmt.Errorf("mutation %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func kindError(k Kind, typ string) error {
	return fmt.Errorf("kind %v is not available for %s values", k, typ)
}

func operand[E any](e PlanEntry, parse corpus.ParseFunc[E]) (E, error) {
	v, err := parse(e.Value)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("invalid %s operand %q: %w", e.Kind, e.Value, err)
	}
	return v, nil
}

func parseInt8(s string) (int8, error) {
	v, err := strconv.ParseInt(s, 0, 8)
	return int8(v), err
}

func buildByte(e PlanEntry, _ *corpus.Set) (*Transform[int8], error) {
	k, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindAppendBits, KindPrependBits, KindInsertBits, KindExplicitFromFile:
		return nil, kindError(k, "byte")
	}
	return buildFixed(k, e, parseInt8, nil)
}

func buildInteger(e PlanEntry, set *corpus.Set) (*Transform[int32], error) {
	k, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	return buildFixed(k, e, corpus.ParseInt32, set.Integers)
}

func buildLong(e PlanEntry, set *corpus.Set) (*Transform[int64], error) {
	k, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	return buildFixed(k, e, corpus.ParseInt64, set.Longs)
}

func buildFixed[T Integer](k Kind, e PlanEntry, parse corpus.ParseFunc[T], c *corpus.Cache[T]) (*Transform[T], error) {
	switch k {
	case KindExplicitFromFile:
		return FromFile(c, e.Index)
	case KindShiftLeft:
		return ShiftLeft[T](e.Shift), nil
	case KindShiftRight:
		return ShiftRight[T](e.Shift), nil
	}
	v, err := operand(e, parse)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindExplicit:
		return Explicit(v), nil
	case KindAdd:
		return Add(v), nil
	case KindSubtract:
		return Subtract(v), nil
	case KindXor:
		return Xor(v), nil
	case KindMultiply:
		return Multiply(v), nil
	case KindAppendBits:
		return AppendBits(v), nil
	case KindPrependBits:
		return PrependBits(v), nil
	case KindInsertBits:
		return InsertBits(v, e.Position), nil
	}
	return nil, kindError(k, "integer")
}

func buildBigInteger(e PlanEntry, set *corpus.Set) (*Transform[*big.Int], error) {
	k, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindExplicitFromFile:
		return BigFromFile(set.BigIntegers, e.Index)
	case KindShiftLeft:
		return BigShiftLeft(e.Shift), nil
	case KindShiftRight:
		return BigShiftRight(e.Shift), nil
	}
	v, err := operand(e, corpus.ParseBigInt)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindExplicit:
		return BigExplicit(v), nil
	case KindAdd:
		return BigAdd(v), nil
	case KindSubtract:
		return BigSubtract(v), nil
	case KindXor:
		return BigXor(v), nil
	case KindMultiply:
		return BigMultiply(v), nil
	case KindAppendBits:
		return BigAppendBits(v), nil
	case KindPrependBits:
		return BigPrependBits(v), nil
	case KindInsertBits:
		return BigInsertBits(v, e.Position), nil
	}
	return nil, kindError(k, "biginteger")
}

func buildBytes(e PlanEntry, set *corpus.Set) (*Transform[[]byte], error) {
	k, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindExplicitFromFile:
		return BytesFromFile(set.Bytes, e.Index)
	case KindDelete:
		return BytesDelete(e.Position, e.Count), nil
	case KindDuplicate:
		return BytesDuplicate(e.Position, e.Count), nil
	}
	v, err := operand(e, corpus.ParseBytes)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindExplicit:
		return BytesExplicit(v), nil
	case KindInsert:
		return BytesInsert(v, e.Position), nil
	case KindShuffle:
		return BytesShuffle(v), nil
	case KindXor:
		return BytesXor(v, e.Position), nil
	case KindPayloadReplace:
		return BytesPayloadReplace(v, e.Position), nil
	case KindAppend:
		return BytesAppend(v), nil
	case KindPrepend:
		return BytesPrepend(v), nil
	}
	return nil, kindError(k, "array")
}

func buildString(e PlanEntry, set *corpus.Set) (*Transform[string], error) {
	k, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindExplicit:
		return StringExplicit(e.Value), nil
	case KindExplicitFromFile:
		return StringFromFile(set.Strings, e.Index)
	case KindInsert:
		return StringInsert(e.Value, e.Position), nil
	case KindDelete:
		return StringDelete(e.Position, e.Count), nil
	case KindAppend:
		return StringAppend(e.Value), nil
	case KindPrepend:
		return StringPrepend(e.Value), nil
	}
	return nil, kindError(k, "string")
}

func buildBool(e PlanEntry, _ *corpus.Set) (*Transform[bool], error) {
	k, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindToggle:
		return Toggle(), nil
	case KindExplicit:
		v, err := operand(e, strconv.ParseBool)
		if err != nil {
			return nil, err
		}
		return BoolExplicit(v), nil
	}
	return nil, kindError(k, "bool")
}
