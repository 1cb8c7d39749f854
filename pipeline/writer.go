// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pipeline

import (
	"hash/crc32"
	"io"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/mtf"
	"github.com/dsnet/blocksort/suffix"
)

type WriterConfig struct {
	// BlockSize is the number of input bytes transformed as one block.
	// If zero, the entire input is buffered until Close and becomes one block.
	BlockSize int

	// Entropy selects the coder applied to the block stream.
	Entropy Entropy

	// Level is the DEFLATE compression level used by EntropyFlate.
	// If zero, the library default is used.
	Level int

	// Method selects the suffix sorting algorithm for the forward BWT.
	Method suffix.Method

	_ struct{} // Blank field to prevent unkeyed struct literals
}

type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer
	BlockCount   int64 // Total number of blocks emitted

	wr   io.Writer      // Underlying writer with output counting
	ew   io.WriteCloser // Entropy stage, nil until the header is written
	conf WriterConfig
	bwt  *bwt.Transform
	buf  []byte
	crc  uint32 // CRC-32 of all bytes flushed so far
	err  error  // Persistent error
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	zw := new(Writer)
	if conf != nil {
		zw.conf = *conf
	}
	if zw.conf.BlockSize < 0 || !internal.CheckLength(zw.conf.BlockSize) {
		return nil, errorf(errors.Invalid, "block size %d out of range", zw.conf.BlockSize)
	}
	if _, ok := entropyNames[zw.conf.Entropy]; !ok {
		return nil, errorf(errors.Invalid, "unknown entropy coder %v", zw.conf.Entropy)
	}
	if zw.conf.Method != suffix.Doubling && zw.conf.Method != suffix.Naive {
		return nil, errorf(errors.Invalid, "unknown suffix method %v", zw.conf.Method)
	}
	zw.bwt = bwt.New(&bwt.Config{Method: zw.conf.Method})
	zw.Reset(w)
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (cnt int, err error) {
	if zw.err != nil {
		return 0, zw.err
	}

	func() {
		defer errors.Recover(&zw.err)
		for len(buf) > 0 {
			n := len(buf)
			if bs := zw.conf.BlockSize; bs > 0 && len(zw.buf)+n > bs {
				n = bs - len(zw.buf)
			}
			zw.buf = append(zw.buf, buf[:n]...)
			zw.InputOffset += int64(n)
			cnt += n
			buf = buf[n:]

			if len(zw.buf) == zw.conf.BlockSize {
				zw.flushBlock()
			}
		}
	}()
	if zw.err == nil && !internal.CheckLength(len(zw.buf)) {
		zw.err = errorf(errors.Invalid, "block of %d bytes exceeds 32-bit length", len(zw.buf))
	}
	return cnt, zw.err
}

// Close flushes any buffered input and ends the stream.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() (err error) {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}
	defer func() {
		if err == nil {
			zw.err = errClosed
		} else {
			zw.err = err
		}
	}()
	defer errors.Recover(&err)

	if len(zw.buf) > 0 {
		zw.flushBlock()
	}
	zw.writeHeader()

	var trailer [4 + trailSize]byte
	internal.PutUint32(trailer[4:], zw.crc)
	zw.write(trailer[:])
	errors.Panic(zw.ew.Close())
	return nil
}

func (zw *Writer) Reset(w io.Writer) error {
	*zw = Writer{
		conf: zw.conf,
		bwt:  zw.bwt,
		buf:  zw.buf[:0],
	}
	zw.wr = countWriter{w, &zw.OutputOffset}
	return nil
}

// writeHeader emits the stream header and starts the entropy stage.
// It is a no-op after the first call.
func (zw *Writer) writeHeader() {
	if zw.ew != nil {
		return
	}
	hdr := append([]byte(magic), version, byte(zw.conf.Entropy))
	_, err := zw.wr.Write(hdr)
	errors.Panic(err)

	ew, err := newEntropyWriter(zw.wr, zw.conf.Entropy, zw.conf.Level)
	errors.Panic(err)
	zw.ew = ew
}

// flushBlock transforms the buffered input and writes it as one block.
func (zw *Writer) flushBlock() {
	zw.writeHeader()

	rec, err := zw.bwt.Encode(zw.buf)
	errors.Panic(err)
	ranks := mtf.Encode(rec.Data)
	crc := crc32.ChecksumIEEE(zw.buf)

	var hdr [blkSize]byte
	internal.PutUint32(hdr[0:], uint32(len(zw.buf)))
	internal.PutUint32(hdr[4:], crc)
	internal.PutUint32(hdr[8:], uint32(rec.Ptr))
	zw.write(hdr[:])
	zw.write(ranks)

	zw.crc = combineCRC(zw.crc, crc, int64(len(zw.buf)))
	zw.buf = zw.buf[:0]
	zw.BlockCount++
}

func (zw *Writer) write(b []byte) {
	_, err := zw.ew.Write(b)
	errors.Panic(err)
}
