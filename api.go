// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package blocksort is a collection of the reversible transforms used at the
// front of a block-sorting compressor.
//
// The suffix package orders circular suffixes, the bwt package implements the
// Burrows-Wheeler transform on top of that ordering, and the mtf package
// recodes a byte stream into move-to-front ranks. The pipeline package chains
// all of them into a framed stream that is handed to an entropy coder.
package blocksort

// Error is the wrapper type for errors specific to this library.
type Error interface {
	error
	CompressError()

	// IsInternal reports whether the error is a bug in the library.
	IsInternal() bool

	// IsInvalid reports whether the caller violated an API precondition,
	// such as passing a nil input or an out-of-range index.
	IsInvalid() bool

	// IsCorrupted reports whether the input being decoded is malformed.
	IsCorrupted() bool

	// IsClosed reports whether an operation was attempted on a closed
	// Reader or Writer.
	IsClosed() bool
}
