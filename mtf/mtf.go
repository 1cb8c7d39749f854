// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mtf implements move-to-front coding.
//
// The coder keeps a recency list of every symbol in the alphabet, initially in
// ascending order. Each symbol is replaced by its current position in the list
// and is then moved to the front. Runs of equal symbols thus become runs of
// zeros, and recently seen symbols get small ranks.
//
// For example, with the initial list 0, 1, ..., 255:
//	vals:  []byte{65, 65, 66, 65}
//	ranks: []uint8{65, 0, 66, 1}
package mtf

import (
	"fmt"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "mtf", Msg: fmt.Sprintf(f, a...)}
}

// DefaultAlphabetSize is the number of symbols in the default alphabet.
const DefaultAlphabetSize = internal.MaxAlphabetSize

// Config configures a Codec. The zero value is the default.
type Config struct {
	// AlphabetSize is the number of symbols in the recency list, which holds
	// the values 0 through AlphabetSize-1. It must be within [1, 256].
	// If zero, DefaultAlphabetSize is used.
	AlphabetSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

func (c *Config) alphabetSize() (int, error) {
	n := DefaultAlphabetSize
	if c != nil && c.AlphabetSize != 0 {
		n = c.AlphabetSize
	}
	if n < 1 || n > internal.MaxAlphabetSize {
		return 0, errorf(errors.Invalid, "alphabet size %d out of range [1, %d]", n, internal.MaxAlphabetSize)
	}
	return n, nil
}

// Codec encodes and decodes whole buffers. Every call starts from a fresh
// recency list, so calls are independent of each other. A Codec must not be
// used by multiple goroutines at the same time.
type Codec struct {
	list recencyList
	size int
}

// New returns a Codec configured by conf, which may be nil.
func New(conf *Config) (*Codec, error) {
	n, err := conf.alphabetSize()
	if err != nil {
		return nil, err
	}
	return &Codec{size: n}, nil
}

// AlphabetSize reports the number of symbols in the recency list.
func (c *Codec) AlphabetSize() int { return c.size }

// Encode returns the rank of each value in vals.
// It fails if any value is outside the alphabet.
func (c *Codec) Encode(vals []byte) ([]uint8, error) {
	c.list.Init(c.size)
	idxs := make([]uint8, len(vals))
	for i, v := range vals {
		if int(v) >= c.size {
			return nil, errorf(errors.Invalid, "symbol %d at offset %d outside alphabet of %d", v, i, c.size)
		}
		idxs[i] = c.list.Encode(v)
	}
	return idxs, nil
}

// Decode returns the value for each rank in idxs.
// It fails if any rank is not a valid position in the recency list.
func (c *Codec) Decode(idxs []uint8) ([]byte, error) {
	c.list.Init(c.size)
	vals := make([]byte, len(idxs))
	for i, idx := range idxs {
		if int(idx) >= c.size {
			return nil, errorf(errors.Corrupted, "rank %d at offset %d outside alphabet of %d", idx, i, c.size)
		}
		vals[i] = c.list.Decode(idx)
	}
	return vals, nil
}

// Encode returns the move-to-front ranks of vals using the default alphabet.
func Encode(vals []byte) []uint8 {
	var l recencyList
	l.Init(DefaultAlphabetSize)
	idxs := make([]uint8, len(vals))
	for i, v := range vals {
		idxs[i] = l.Encode(v)
	}
	return idxs
}

// Decode inverts Encode.
func Decode(idxs []uint8) []byte {
	var l recencyList
	l.Init(DefaultAlphabetSize)
	vals := make([]byte, len(idxs))
	for i, idx := range idxs {
		vals[i] = l.Decode(idx)
	}
	return vals
}
