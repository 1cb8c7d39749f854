// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package pipeline implements a framed stream that chains the Burrows-Wheeler
// Transform, move-to-front coding, and an external entropy coder.
//
// The stream starts with a 5-byte header:
//	magic:   "BSZ"
//	version: 1
//	entropy: 0 (none), 1 (DEFLATE), or 2 (XZ)
//
// Everything after the header is passed through the selected entropy coder.
// The body is a sequence of blocks, each independently transformed:
//	length:  uint32, number of raw bytes in the block (non-zero)
//	crc:     uint32, CRC-32 (IEEE) of the raw bytes
//	ptr:     uint32, BWT origin pointer
//	ranks:   [length]byte, MTF ranks of the BWT last column
//
// The body ends with a zero length followed by the CRC-32 of the entire
// decompressed stream. All integers are big-endian.
package pipeline

import (
	"fmt"
	"hash/crc32"
	"io"
	"io/ioutil"

	hashutil "github.com/dsnet/golib/hashmerge"
	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"

	"github.com/dsnet/blocksort/internal/errors"
)

const (
	magic   = "BSZ"
	version = 1

	hdrSize   = len(magic) + 2
	blkSize   = 12 // length, crc, and ptr
	trailSize = 4  // stream crc following the zero length
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "pipeline", Msg: fmt.Sprintf(f, a...)}
}

var (
	errClosed  = errors.Error{Code: errors.Closed, Pkg: "pipeline"}
	errCorrupt = errorf(errors.Corrupted, "unexpected end of stream")
)

// Entropy identifies the external coder that the MTF ranks are handed to.
type Entropy int

const (
	EntropyNone  Entropy = iota // Store ranks as is
	EntropyFlate                // DEFLATE via github.com/klauspost/compress/flate
	EntropyXZ                   // XZ via github.com/ulikunitz/xz
)

var entropyNames = map[Entropy]string{
	EntropyNone:  "none",
	EntropyFlate: "flate",
	EntropyXZ:    "xz",
}

func (e Entropy) String() string {
	if s, ok := entropyNames[e]; ok {
		return s
	}
	return fmt.Sprintf("Entropy(%d)", int(e))
}

// ParseEntropy returns the Entropy with the given name.
func ParseEntropy(s string) (Entropy, error) {
	for e, name := range entropyNames {
		if name == s {
			return e, nil
		}
	}
	return 0, errorf(errors.Invalid, "unknown entropy coder %q", s)
}

// EntropyNames lists the names accepted by ParseEntropy.
func EntropyNames() []string {
	return []string{"none", "flate", "xz"}
}

func newEntropyWriter(w io.Writer, e Entropy, level int) (io.WriteCloser, error) {
	switch e {
	case EntropyNone:
		return nopWriteCloser{w}, nil
	case EntropyFlate:
		if level == 0 {
			level = flate.DefaultCompression
		}
		zw, err := flate.NewWriter(w, level)
		if err != nil {
			return nil, errorf(errors.Invalid, "%v", err)
		}
		return zw, nil
	case EntropyXZ:
		return xz.NewWriter(w)
	default:
		return nil, errorf(errors.Invalid, "unknown entropy coder %v", e)
	}
}

func newEntropyReader(r io.Reader, e Entropy) (io.ReadCloser, error) {
	switch e {
	case EntropyNone:
		return ioutil.NopCloser(r), nil
	case EntropyFlate:
		return flate.NewReader(r), nil
	case EntropyXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return ioutil.NopCloser(xr), nil
	default:
		return nil, errorf(errors.Corrupted, "unknown entropy coder %d", int(e))
	}
}

// entropyError converts decoding errors of the entropy stage into corruption
// errors. Other errors, such as those of the underlying reader, are returned
// as is.
func entropyError(err error) error {
	if _, ok := err.(flate.CorruptInputError); ok {
		return errorf(errors.Corrupted, "%v", err)
	}
	return err
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// countWriter counts the bytes written to the underlying io.Writer.
type countWriter struct {
	w   io.Writer
	cnt *int64
}

func (cw countWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	*cw.cnt += int64(n)
	return n, err
}

// countReader counts the bytes read from the underlying io.Reader.
type countReader struct {
	r   io.Reader
	cnt *int64
}

func (cr countReader) Read(b []byte) (int, error) {
	n, err := cr.r.Read(b)
	*cr.cnt += int64(n)
	return n, err
}

// combineCRC returns the CRC-32 of the concatenation of two strings, given
// the CRC of each and the length of the second.
func combineCRC(crc1, crc2 uint32, len2 int64) uint32 {
	return hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, len2)
}
