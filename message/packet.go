// Package message builds discovery style ping and pong packets out of
// mutable variables and encodes them to signed wire packets.
package message

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/AgnopraxLab/modvar/mutation"
)

// Packet types
const (
	PingPacket = iota + 1
	PongPacket
)

// Body is the plain wire form of a packet.
type Body interface {
	Name() string
	// Kind is the leading byte of the signed payload.
	Kind() byte
}

// Packet is a message whose fields can be mutated. Body reads every field
// once and returns the wire form of the effective values.
type Packet interface {
	mutation.Holder
	Name() string
	Body() (Body, error)
}

type (
	// PingBody is the wire form of a ping. Values are carried as raw bits so
	// that negative effective values survive RLP encoding.
	PingBody struct {
		Version    uint32
		TTL        uint8
		Expiration uint64
		ENRSeq     []byte // big endian magnitude
		Token      []byte
		Rest       []byte
	}

	// PongBody is the wire form of a pong.
	PongBody struct {
		To         string
		ReplyTok   []byte // hash of the answered ping
		Expiration uint64
		ENRSeq     []byte
		Reachable  bool
	}
)

func (req *PingBody) Name() string { return "PING/mv" }
func (req *PingBody) Kind() byte   { return PingPacket }
func (req *PingBody) String() string {
	return fmt.Sprintf("Version: %d\nTTL: %d\nExpiration: %d\nENRSeq: %s\nToken: %s",
		req.Version, req.TTL, req.Expiration, hex.EncodeToString(req.ENRSeq), hex.EncodeToString(req.Token))
}

func (req *PingBody) Expired() bool { return Expired(req.Expiration) }

func (req *PongBody) Name() string { return "PONG/mv" }
func (req *PongBody) Kind() byte   { return PongPacket }
func (req *PongBody) String() string {
	return fmt.Sprintf("To: %s\nReplyTok: %s\nExpiration: %d\nENRSeq: %s\nReachable: %t",
		req.To, hex.EncodeToString(req.ReplyTok), req.Expiration, hex.EncodeToString(req.ENRSeq), req.Reachable)
}

func (req *PongBody) Expired() bool { return Expired(req.Expiration) }

// Expired reports whether the unix time ts has passed.
func Expired(ts uint64) bool {
	return time.Unix(int64(ts), 0).Before(time.Now())
}

// Ping is a mutable ping.
type Ping struct {
	Version    *mutation.Variable[int32]
	TTL        *mutation.Variable[int8]
	Expiration *mutation.Variable[int64]
	ENRSeq     *mutation.Variable[*big.Int]
	Token      *mutation.Variable[[]byte]
	Rest       *mutation.Variable[[]byte]

	fields []mutation.Field
}

// NewPing returns a ping whose original values are taken from b. A nil b
// leaves every field unset.
func NewPing(b *PingBody) *Ping {
	p := &Ping{
		Version:    mutation.NewInteger(),
		TTL:        mutation.NewByte(),
		Expiration: mutation.NewLong(),
		ENRSeq:     mutation.NewBigInteger(),
		Token:      mutation.NewBytes(),
		Rest:       mutation.NewBytes(),
	}
	p.fields = []mutation.Field{
		mutation.MustField("version", p.Version, mutation.Meta{Purpose: mutation.PurposeVersion, Encoding: mutation.EncodingRLP}),
		mutation.MustField("ttl", p.TTL, mutation.Meta{Purpose: mutation.PurposeCount, Encoding: mutation.EncodingRLP}),
		mutation.MustField("expiration", p.Expiration, mutation.Meta{Purpose: mutation.PurposeTimestamp, Encoding: mutation.EncodingRLP}),
		mutation.MustField("enr_seq", p.ENRSeq, mutation.Meta{Purpose: mutation.PurposeCount, Encoding: mutation.EncodingBigEndian}),
		mutation.MustField("token", p.Token, mutation.Meta{Purpose: mutation.PurposeIdentifier, MaxLength: 32}),
		mutation.MustField("rest", p.Rest, mutation.Meta{Purpose: mutation.PurposePadding}),
	}
	if b != nil {
		p.Version.SetOriginal(int32(b.Version))
		p.TTL.SetOriginal(int8(b.TTL))
		p.Expiration.SetOriginal(int64(b.Expiration))
		p.ENRSeq.SetOriginal(new(big.Int).SetBytes(b.ENRSeq))
		p.Token.SetOriginal(b.Token)
		p.Rest.SetOriginal(b.Rest)
	}
	return p
}

func (p *Ping) Name() string { return "PING/mv" }

func (p *Ping) Fields() []mutation.Field { return p.fields }

// Body reads the effective value of every field.
func (p *Ping) Body() (Body, error) {
	version, err := p.Version.Value()
	if err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}
	ttl, err := p.TTL.Value()
	if err != nil {
		return nil, fmt.Errorf("ttl: %w", err)
	}
	expiration, err := p.Expiration.Value()
	if err != nil {
		return nil, fmt.Errorf("expiration: %w", err)
	}
	seq, err := p.ENRSeq.Value()
	if err != nil {
		return nil, fmt.Errorf("enr_seq: %w", err)
	}
	token, err := p.Token.Value()
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	rest, err := p.Rest.Value()
	if err != nil {
		return nil, fmt.Errorf("rest: %w", err)
	}
	return &PingBody{
		Version:    uint32(version),
		TTL:        uint8(ttl),
		Expiration: uint64(expiration),
		ENRSeq:     magnitude(seq),
		Token:      token,
		Rest:       rest,
	}, nil
}

// Pong is a mutable pong.
type Pong struct {
	To         *mutation.Variable[string]
	ReplyTok   *mutation.Variable[[]byte]
	Expiration *mutation.Variable[int64]
	ENRSeq     *mutation.Variable[*big.Int]
	Reachable  *mutation.Variable[bool]

	fields []mutation.Field
}

// NewPong returns a pong whose original values are taken from b. A nil b
// leaves every field unset.
func NewPong(b *PongBody) *Pong {
	p := &Pong{
		To:         mutation.NewString(),
		ReplyTok:   mutation.NewBytes(),
		Expiration: mutation.NewLong(),
		ENRSeq:     mutation.NewBigInteger(),
		Reachable:  mutation.NewBool(),
	}
	p.fields = []mutation.Field{
		mutation.MustField("to", p.To, mutation.Meta{Purpose: mutation.PurposeIdentifier, Encoding: mutation.EncodingASCII}),
		mutation.MustField("reply_tok", p.ReplyTok, mutation.Meta{Purpose: mutation.PurposeHash, MinLength: 32, MaxLength: 32}),
		mutation.MustField("expiration", p.Expiration, mutation.Meta{Purpose: mutation.PurposeTimestamp, Encoding: mutation.EncodingRLP}),
		mutation.MustField("enr_seq", p.ENRSeq, mutation.Meta{Purpose: mutation.PurposeCount, Encoding: mutation.EncodingBigEndian}),
		mutation.MustField("reachable", p.Reachable, mutation.Meta{}),
	}
	if b != nil {
		p.To.SetOriginal(b.To)
		p.ReplyTok.SetOriginal(b.ReplyTok)
		p.Expiration.SetOriginal(int64(b.Expiration))
		p.ENRSeq.SetOriginal(new(big.Int).SetBytes(b.ENRSeq))
		p.Reachable.SetOriginal(b.Reachable)
	}
	return p
}

func (p *Pong) Name() string { return "PONG/mv" }

func (p *Pong) Fields() []mutation.Field { return p.fields }

// Body reads the effective value of every field. An absent address encodes
// as the empty string.
func (p *Pong) Body() (Body, error) {
	to, err := p.To.Value()
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	tok, err := p.ReplyTok.Value()
	if err != nil {
		return nil, fmt.Errorf("reply_tok: %w", err)
	}
	expiration, err := p.Expiration.Value()
	if err != nil {
		return nil, fmt.Errorf("expiration: %w", err)
	}
	seq, err := p.ENRSeq.Value()
	if err != nil {
		return nil, fmt.Errorf("enr_seq: %w", err)
	}
	reachable, err := p.Reachable.Value()
	if err != nil {
		return nil, fmt.Errorf("reachable: %w", err)
	}
	return &PongBody{
		To:         to,
		ReplyTok:   tok,
		Expiration: uint64(expiration),
		ENRSeq:     magnitude(seq),
		Reachable:  reachable,
	}, nil
}

// magnitude returns the big endian absolute value of x; nil reads as zero.
func magnitude(x *big.Int) []byte {
	if x == nil {
		return []byte{}
	}
	return x.Bytes()
}

// New returns an empty packet of the named type.
func New(name string) (Packet, error) {
	switch name {
	case "ping":
		return NewPing(nil), nil
	case "pong":
		return NewPong(nil), nil
	}
	return nil, fmt.Errorf("unknown packet type %q", name)
}
