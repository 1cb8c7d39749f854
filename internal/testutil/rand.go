// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go, so test vectors derived from it are stable.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

// NewRand returns a generator whose output is fully determined by seed.
func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

// Int returns a non-negative 62-bit integer.
func (r *Rand) Int() int {
	r.Encrypt(r.blk[:], r.blk[:])
	return int(binary.LittleEndian.Uint64(r.blk[:]) & (1<<62 - 1))
}

// Intn returns an integer in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

// Bytes returns n pseudo-random bytes.
func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

// Alphabet returns n pseudo-random bytes drawn from the first k byte values,
// where k is within [1, 256].
// Small alphabets produce the long runs and repeated contexts that BWT output
// is made of.
func (r *Rand) Alphabet(n, k int) []byte {
	b := r.Bytes(n)
	for i := range b {
		b[i] = byte(int(b[i]) % k)
	}
	return b
}
