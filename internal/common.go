// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of helpers shared by the transforms.
//
// For performance reasons, these helpers lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

import "encoding/binary"

// MaxAlphabetSize is the number of distinct symbols a byte can hold.
const MaxAlphabetSize = 256

// PutUint32 stores v in big-endian order, which is how integers are laid out
// on the wire by every format in this module.
func PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// Uint32 loads a big-endian integer.
func Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// CheckLength reports whether n fits in the 32-bit length and pointer fields
// used by the wire formats.
func CheckLength(n int) bool { return uint64(n) <= 1<<32-1 }
