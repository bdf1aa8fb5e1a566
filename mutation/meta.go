package mutation

import (
	"errors"
	"fmt"
)

// Purpose classifies what a field carries inside its message.
type Purpose int

const (
	PurposeNone Purpose = iota
	PurposeLength
	PurposeCount
	PurposeType
	PurposeVersion
	PurposeTimestamp
	PurposeIdentifier
	PurposeHash
	PurposeSignature
	PurposeKey
	PurposePadding
	PurposePayload
)

var purposeNames = [...]string{
	PurposeNone:       "none",
	PurposeLength:     "length",
	PurposeCount:      "count",
	PurposeType:       "type",
	PurposeVersion:    "version",
	PurposeTimestamp:  "timestamp",
	PurposeIdentifier: "identifier",
	PurposeHash:       "hash",
	PurposeSignature:  "signature",
	PurposeKey:        "key",
	PurposePadding:    "padding",
	PurposePayload:    "payload",
}

func (p Purpose) String() string {
	if p >= 0 && int(p) < len(purposeNames) {
		return purposeNames[p]
	}
	return fmt.Sprintf("Purpose(%d)", int(p))
}

// Encoding tells how a field is laid out on the wire.
type Encoding int

const (
	EncodingNone Encoding = iota
	EncodingBigEndian
	EncodingLittleEndian
	EncodingRLP
	EncodingASCII
	EncodingUTF8
)

var encodingNames = [...]string{
	EncodingNone:         "none",
	EncodingBigEndian:    "big_endian",
	EncodingLittleEndian: "little_endian",
	EncodingRLP:          "rlp",
	EncodingASCII:        "ascii",
	EncodingUTF8:         "utf8",
}

func (e Encoding) String() string {
	if e >= 0 && int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// Meta describes a field at registration time. Lengths are in bytes for byte
// arrays and characters for strings; zero means unbounded.
type Meta struct {
	Purpose   Purpose
	Encoding  Encoding
	MinLength int
	MaxLength int
}

// Validate checks that the description is self-consistent.
func (m Meta) Validate() error {
	var errs []error
	if m.Purpose < 0 || int(m.Purpose) >= len(purposeNames) {
		errs = append(errs, fmt.Errorf("unknown purpose %d", int(m.Purpose)))
	}
	if m.Encoding < 0 || int(m.Encoding) >= len(encodingNames) {
		errs = append(errs, fmt.Errorf("unknown encoding %d", int(m.Encoding)))
	}
	if m.MinLength < 0 {
		errs = append(errs, fmt.Errorf("negative minimum length %d", m.MinLength))
	}
	if m.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("negative maximum length %d", m.MaxLength))
	}
	if m.MaxLength > 0 && m.MinLength > m.MaxLength {
		errs = append(errs, fmt.Errorf("minimum length %d exceeds maximum %d", m.MinLength, m.MaxLength))
	}
	return errors.Join(errs...)
}

// Fits reports whether a value of length n satisfies the length bounds.
func (m Meta) Fits(n int) bool {
	if n < m.MinLength {
		return false
	}
	return m.MaxLength == 0 || n <= m.MaxLength
}
