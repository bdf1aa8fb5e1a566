package message

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Wire layout: hash || signature || kind || rlp(body). The hash covers
// everything after itself and the signature covers kind and body.
const (
	hashSize = 32
	sigSize  = crypto.SignatureLength
	headSize = hashSize + sigSize
)

var (
	ErrPacketTooSmall = errors.New("packet too small")
	ErrBadHash        = errors.New("packet hash mismatch")
	ErrBadPoint       = errors.New("invalid curve point")
	ErrUnknownKind    = errors.New("unknown packet kind")
)

// bodies maps a packet kind to a constructor of its empty wire form.
var bodies = map[byte]func() Body{
	PingPacket: func() Body { return new(PingBody) },
	PongPacket: func() Body { return new(PongBody) },
}

// Pubkey is an uncompressed secp256k1 public key without its prefix byte.
type Pubkey [64]byte

// Encode reads the effective values of p and encodes them into a signed
// packet. It returns the packet and its leading hash.
func Encode(priv *ecdsa.PrivateKey, p Packet) (packet, hash []byte, err error) {
	body, err := p.Body()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return EncodeBody(priv, body)
}

// EncodeBody signs and frames a plain packet body.
func EncodeBody(priv *ecdsa.PrivateKey, body Body) (packet, hash []byte, err error) {
	var buf bytes.Buffer
	buf.Write(make([]byte, headSize))
	buf.WriteByte(body.Kind())
	if err := rlp.Encode(&buf, body); err != nil {
		return nil, nil, fmt.Errorf("encode %s body: %w", body.Name(), err)
	}
	packet = buf.Bytes()
	if hash, err = seal(priv, packet); err != nil {
		return nil, nil, err
	}
	return packet, hash, nil
}

// seal fills the head of a framed packet in place and returns its hash.
func seal(priv *ecdsa.PrivateKey, packet []byte) ([]byte, error) {
	sig, err := crypto.Sign(crypto.Keccak256(packet[headSize:]), priv)
	if err != nil {
		return nil, fmt.Errorf("sign packet: %w", err)
	}
	copy(packet[hashSize:headSize], sig)
	hash := crypto.Keccak256(packet[hashSize:])
	copy(packet, hash)
	return hash, nil
}

// Decode checks the hash of a packet produced by Encode, recovers the
// signer and decodes the body. Bytes after the body are ignored. The signer
// is returned as soon as it is known, even if the body cannot be decoded.
func Decode(input []byte) (Body, Pubkey, []byte, error) {
	if len(input) <= headSize {
		return nil, Pubkey{}, nil, fmt.Errorf("%w: %d bytes", ErrPacketTooSmall, len(input))
	}
	hash, sig, payload := input[:hashSize], input[hashSize:headSize], input[headSize:]
	if !bytes.Equal(hash, crypto.Keccak256(input[hashSize:])) {
		return nil, Pubkey{}, nil, ErrBadHash
	}
	signer, err := recoverSigner(payload, sig)
	if err != nil {
		return nil, signer, hash, err
	}
	body, err := decodeBody(payload)
	return body, signer, hash, err
}

func decodeBody(payload []byte) (Body, error) {
	newBody, ok := bodies[payload[0]]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownKind, payload[0])
	}
	body := newBody()
	if err := rlp.NewStream(bytes.NewReader(payload[1:]), 0).Decode(body); err != nil {
		return nil, fmt.Errorf("decode %s body: %w", body.Name(), err)
	}
	return body, nil
}

func recoverSigner(payload, sig []byte) (Pubkey, error) {
	var key Pubkey
	pub, err := crypto.Ecrecover(crypto.Keccak256(payload), sig)
	if err != nil {
		return key, fmt.Errorf("recover signer: %w", err)
	}
	copy(key[:], pub[1:])
	return key, nil
}

// Sender decodes input and returns the public key that signed it.
func Sender(input []byte) (*ecdsa.PublicKey, error) {
	_, signer, _, err := Decode(input)
	if err != nil {
		return nil, err
	}
	return DecodePubkey(secp256k1.S256(), signer)
}

// EncodePubkey returns the X and Y coordinates of key, each left padded to
// 32 bytes.
func EncodePubkey(key *ecdsa.PublicKey) Pubkey {
	var e Pubkey
	math.ReadBits(key.X, e[:32])
	math.ReadBits(key.Y, e[32:])
	return e
}

// DecodePubkey is the inverse of EncodePubkey. The point must lie on curve.
func DecodePubkey(curve elliptic.Curve, e Pubkey) (*ecdsa.PublicKey, error) {
	x, y := new(big.Int).SetBytes(e[:32]), new(big.Int).SetBytes(e[32:])
	if !curve.IsOnCurve(x, y) {
		return nil, ErrBadPoint
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}
