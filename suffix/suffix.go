// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package suffix sorts the circular suffixes of a byte string.
//
// A circular suffix of a string of length n is the length-n string that starts
// at some offset and wraps around to the beginning once it runs off the end.
// Sorting all n of them is the expensive half of the Burrows-Wheeler Transform.
//
// Rotations that are equal in all n characters (which happens only when the
// input is periodic) are ordered by their offset, so the resulting order is
// unique for every input.
package suffix

import (
	"fmt"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "suffix", Msg: fmt.Sprintf(f, a...)}
}

// Method selects the algorithm used to sort the rotations.
// All methods produce the same order.
type Method int

const (
	// Doubling sorts by prefixes of length 1, 2, 4, ... using stable radix
	// passes, taking O(n log n) time regardless of how repetitive the input is.
	Doubling Method = iota

	// Naive sorts using Compare as the comparator. Each comparison may read
	// up to n characters, so it is only suitable for short inputs.
	Naive
)

func (m Method) String() string {
	switch m {
	case Doubling:
		return "doubling"
	case Naive:
		return "naive"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the Method with the given name.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "doubling", "":
		return Doubling, nil
	case "naive":
		return Naive, nil
	default:
		return 0, errorf(errors.Invalid, "unknown method %q", s)
	}
}

// Order is the sorted order of all circular suffixes of a string.
type Order struct {
	idx []int
}

// Compute sorts the circular suffixes of buf with the given method.
// It returns an error if buf is nil or the method is unknown.
func Compute(buf []byte, m Method) (*Order, error) {
	if buf == nil {
		return nil, errorf(errors.Invalid, "nil input")
	}
	var idx []int
	switch m {
	case Doubling:
		idx = sortDoubling(buf)
	case Naive:
		idx = sortNaive(buf)
	default:
		return nil, errorf(errors.Invalid, "unknown method %v", m)
	}
	if internal.Debug {
		for i := 1; i < len(idx); i++ {
			if Compare(buf, idx[i-1], idx[i]) >= 0 {
				panic(fmt.Sprintf("suffix: offsets %d and %d out of order", idx[i-1], idx[i]))
			}
		}
	}
	return &Order{idx: idx}, nil
}

// Len reports the length of the string the order was computed from.
func (o *Order) Len() int { return len(o.idx) }

// Index returns the starting offset of the i-th smallest circular suffix.
func (o *Order) Index(i int) (int, error) {
	if i < 0 || i >= len(o.idx) {
		return 0, errorf(errors.Invalid, "index %d out of range [0, %d)", i, len(o.idx))
	}
	return o.idx[i], nil
}

// Offsets returns the whole order, where Offsets()[i] == Index(i).
// The returned slice is owned by the Order and must not be modified.
func (o *Order) Offsets() []int { return o.idx }
