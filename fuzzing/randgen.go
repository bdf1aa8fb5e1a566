// Copyright 2024 Fudong and Hosen
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

// Package fuzzing holds the seeded random helpers used to synthesize
// transform parameters. Every helper takes its source explicitly so a run is
// reproducible from its seed.
package fuzzing

import (
	"encoding/binary"
	"math/big"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// NewRand returns a generator for seed. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SubSeed derives the seed of a named stream from a run seed, so consumers
// sharing one run seed draw independent sequences. A zero seed is replaced by
// the current time first. The result is never zero.
func SubSeed(seed int64, stream string) int64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	h := crypto.Keccak256([]byte(stream), buf[:])
	if sub := int64(binary.BigEndian.Uint64(h[:8])); sub != 0 {
		return sub
	}
	return 1
}

// RandIntn returns a value in [0, n), or 0 if n <= 0.
func RandIntn(r *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return r.Intn(n)
}

// RandIntRange returns a random integer within the specified range [min, max]
func RandIntRange(r *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}
	return r.Intn(max-min+1) + min
}

// RandBigIntN returns a random big.Int value in range [0, n)
func RandBigIntN(r *rand.Rand, n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Rand(r, n)
}

// RandBigIntRange returns a random big.Int value within the specified range [min, max]
func RandBigIntRange(r *rand.Rand, min, max *big.Int) *big.Int {
	if min.Cmp(max) >= 0 {
		return new(big.Int).Set(min)
	}
	diff := new(big.Int).Sub(max, min)
	diff.Add(diff, big.NewInt(1))

	result := new(big.Int).Rand(r, diff)
	return result.Add(result, min)
}

// RandBytes returns n random bytes.
func RandBytes(r *rand.Rand, n int) []byte {
	if n < 0 {
		n = 0
	}
	b := make([]byte, n)
	r.Read(b)
	return b
}

// RandHex produces some random hex data
func RandHex(r *rand.Rand, maxSize int) string {
	return hexutil.Encode(RandBytes(r, RandIntn(r, maxSize)))
}

// RandBool returns a random boolean value
func RandBool(r *rand.Rand) bool {
	return r.Intn(2) == 1
}

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandString generates a random string of specified length
func RandString(r *rand.Rand, length int) string {
	if length < 0 {
		length = 0
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[r.Intn(len(charset))]
	}
	return string(b)
}
