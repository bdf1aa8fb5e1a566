// Copyright 2024 Fudong
// This file is part of the D2PFuzz library.
//
// The D2PFuzz library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The D2PFuzz library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the D2PFuzz library. If not, see <http://www.gnu.org/licenses/>.

package generator

import (
	"fmt"
	"math/big"
	"time"

	"github.com/AgnopraxLab/modvar/fuzzing"
	"github.com/AgnopraxLab/modvar/message"
)

const (
	pingVersion  = 4
	defaultTTL   = 16
	tokenSize    = 32
	expiryWindow = 20 * time.Second
)

// base returns a packet of the configured type carrying fresh originals.
func (g *Generator) base() (message.Packet, error) {
	switch g.opts.Type {
	case "ping":
		return message.NewPing(g.pingBody()), nil
	case "pong":
		return message.NewPong(g.pongBody()), nil
	}
	return nil, fmt.Errorf("unknown packet type %q", g.opts.Type)
}

func (g *Generator) pingBody() *message.PingBody {
	return &message.PingBody{
		Version:    pingVersion,
		TTL:        defaultTTL,
		Expiration: g.expiration(),
		ENRSeq:     g.enrSeq(),
		Token:      fuzzing.RandBytes(g.rng, tokenSize),
	}
}

func (g *Generator) pongBody() *message.PongBody {
	return &message.PongBody{
		To:         fmt.Sprintf("127.0.0.1:%d", fuzzing.RandIntRange(g.rng, 1024, 65535)),
		ReplyTok:   fuzzing.RandBytes(g.rng, tokenSize),
		Expiration: g.expiration(),
		ENRSeq:     g.enrSeq(),
		Reachable:  fuzzing.RandBool(g.rng),
	}
}

func (g *Generator) expiration() uint64 {
	if g.opts.Expiration != 0 {
		return g.opts.Expiration
	}
	return uint64(time.Now().Add(expiryWindow).Unix())
}

// enrSeq returns a random sequence number as its big-endian magnitude.
func (g *Generator) enrSeq() []byte {
	return new(big.Int).SetUint64(g.rng.Uint64()).Bytes()
}
