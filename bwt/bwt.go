// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the Burrows-Wheeler Transform.
//
// The forward transform sorts all circular rotations of the input and emits
// the last column of the sorted rotation matrix together with the row index of
// the rotation that begins at offset zero. The inverse transform recovers the
// input from that pair in linear time with a counting sort, without having to
// sort any rotations.
//
// References:
//	https://en.wikipedia.org/wiki/Burrows%E2%80%93Wheeler_transform
package bwt

import (
	"fmt"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/suffix"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "bwt", Msg: fmt.Sprintf(f, a...)}
}

// Record is the output of the forward transform.
type Record struct {
	// Ptr is the row of the sorted rotation matrix holding the rotation that
	// starts at offset zero, which is the original input itself.
	Ptr int

	// Data is the last column of the sorted rotation matrix.
	Data []byte
}

// Config configures the transform. The zero value is the default.
type Config struct {
	// Method selects the suffix sorting algorithm used by Encode.
	Method suffix.Method
}

// Transform converts between inputs and their Records.
// A Transform carries no state between calls.
type Transform struct {
	method suffix.Method
}

// New returns a Transform configured by conf, which may be nil.
func New(conf *Config) *Transform {
	t := new(Transform)
	if conf != nil {
		t.method = conf.Method
	}
	return t
}

// Encode computes the forward transform of buf, which must not be empty.
// The input is not modified.
func (t *Transform) Encode(buf []byte) (Record, error) {
	if len(buf) == 0 {
		return Record{}, errorf(errors.Invalid, "empty input")
	}
	o, err := suffix.Compute(buf, t.method)
	if err != nil {
		return Record{}, err
	}

	// The last character of each rotation is the one circularly preceding
	// its starting offset.
	rec := Record{Ptr: -1, Data: make([]byte, len(buf))}
	for i, p := range o.Offsets() {
		if p == 0 {
			rec.Ptr = i
			p = len(buf)
		}
		rec.Data[i] = buf[p-1]
	}
	if rec.Ptr < 0 {
		return Record{}, errorf(errors.Internal, "rotation at offset zero not found")
	}
	return rec, nil
}

// Decode computes the inverse transform of rec.
func (t *Transform) Decode(rec Record) ([]byte, error) {
	buf := rec.Data
	if len(buf) == 0 {
		return nil, errorf(errors.Invalid, "empty input")
	}
	if rec.Ptr < 0 || rec.Ptr >= len(buf) {
		return nil, errorf(errors.Corrupted, "pointer %d out of range [0, %d)", rec.Ptr, len(buf))
	}

	// Counting the last column and taking exclusive prefix sums gives the
	// row at which each symbol's block starts in the sorted first column.
	var c [internal.MaxAlphabetSize]int
	for _, v := range buf {
		c[v]++
	}
	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}
	if sum != len(buf) {
		return nil, errorf(errors.Corrupted, "symbol counts sum to %d, want %d", sum, len(buf))
	}

	// The k-th occurrence of a symbol in the last column and its k-th
	// occurrence in the first column belong to the same character of the
	// input. Thus, the row starting with the character at last column row i
	// is followed, in input order, by row i.
	first := make([]byte, len(buf))
	next := make([]int, len(buf))
	for i, v := range buf {
		r := c[v]
		first[r] = v
		next[r] = i
		c[v]++
	}

	out := make([]byte, len(buf))
	p := rec.Ptr
	for i := range out {
		out[i] = first[p]
		p = next[p]
	}
	return out, nil
}

// Encode computes the forward transform of buf using the default Config.
func Encode(buf []byte) (Record, error) {
	return New(nil).Encode(buf)
}

// Decode computes the inverse transform of rec.
func Decode(rec Record) ([]byte, error) {
	return New(nil).Decode(rec)
}
