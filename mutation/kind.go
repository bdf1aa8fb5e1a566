package mutation

import (
	"fmt"
	"strings"
)

// Kind identifies a transform variant. Not every value type supports every
// kind; see the per type constructors.
type Kind int

const (
	KindExplicit Kind = iota
	KindExplicitFromFile
	KindAdd
	KindSubtract
	KindXor
	KindShiftLeft
	KindShiftRight
	KindMultiply
	KindAppendBits
	KindPrependBits
	KindInsertBits
	KindInsert
	KindDelete
	KindDuplicate
	KindShuffle
	KindPayloadReplace
	KindAppend
	KindPrepend
	KindToggle
	KindInteractive
	numKinds
)

var kindNames = [numKinds]string{
	KindExplicit:         "explicit",
	KindExplicitFromFile: "explicit_from_file",
	KindAdd:              "add",
	KindSubtract:         "subtract",
	KindXor:              "xor",
	KindShiftLeft:        "shift_left",
	KindShiftRight:       "shift_right",
	KindMultiply:         "multiply",
	KindAppendBits:       "append_bits",
	KindPrependBits:      "prepend_bits",
	KindInsertBits:       "insert_bits",
	KindInsert:           "insert",
	KindDelete:           "delete",
	KindDuplicate:        "duplicate",
	KindShuffle:          "shuffle",
	KindPayloadReplace:   "payload_replace",
	KindAppend:           "append",
	KindPrepend:          "prepend",
	KindToggle:           "toggle",
	KindInteractive:      "interactive",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind by its String form, case insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown mutation kind %q", s)
}
