package message

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns the SHA3-256 digest of a packet sequence. Each packet
// is length prefixed so that different splits of the same bytes differ.
func Fingerprint(packets [][]byte) []byte {
	h := sha3.New256()
	var size [8]byte
	for _, p := range packets {
		binary.BigEndian.PutUint64(size[:], uint64(len(p)))
		h.Write(size[:])
		h.Write(p)
	}
	return h.Sum(nil)
}
