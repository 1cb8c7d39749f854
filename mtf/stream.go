// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import (
	"io"

	"github.com/dsnet/blocksort/internal/errors"
)

var errClosed = errors.Error{Code: errors.Closed, Pkg: "mtf"}

type WriterConfig struct {
	AlphabetSize int // See Config.AlphabetSize

	_ struct{} // Blank field to prevent unkeyed struct literals
}

type ReaderConfig struct {
	AlphabetSize int // See Config.AlphabetSize

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer writes one rank byte for each byte written to it.
// The recency list spans the whole stream and is only reset by Reset.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr   io.Writer
	list recencyList
	size int
	buf  [4096]byte
	err  error
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	var c *Config
	if conf != nil {
		c = &Config{AlphabetSize: conf.AlphabetSize}
	}
	n, err := c.alphabetSize()
	if err != nil {
		return nil, err
	}
	mw := &Writer{size: n}
	mw.Reset(w)
	return mw, nil
}

func (mw *Writer) Write(buf []byte) (cnt int, err error) {
	for len(buf) > 0 && mw.err == nil {
		chunk := mw.buf[:]
		if len(buf) < len(chunk) {
			chunk = chunk[:len(buf)]
		}
		for i, v := range buf[:len(chunk)] {
			if int(v) >= mw.size {
				mw.err = errorf(errors.Invalid, "symbol %d at offset %d outside alphabet of %d", v, mw.InputOffset+int64(i), mw.size)
				chunk = chunk[:i]
				break
			}
			chunk[i] = mw.list.Encode(v)
		}

		n, err := mw.wr.Write(chunk)
		mw.OutputOffset += int64(n)
		mw.InputOffset += int64(n)
		cnt += n
		buf = buf[n:]
		if err != nil {
			mw.err = err
		}
	}
	return cnt, mw.err
}

// Close ends the stream. It does not close the underlying io.Writer.
func (mw *Writer) Close() error {
	if mw.err == errClosed {
		return nil
	}
	if mw.err != nil {
		return mw.err
	}
	mw.err = errClosed
	return nil
}

func (mw *Writer) Reset(w io.Writer) error {
	mw.wr, mw.err = w, nil
	mw.InputOffset, mw.OutputOffset = 0, 0
	mw.list.Init(mw.size)
	return nil
}

// Reader yields one value for each rank byte read from the underlying reader.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd   io.Reader
	list recencyList
	size int
	err  error
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	var c *Config
	if conf != nil {
		c = &Config{AlphabetSize: conf.AlphabetSize}
	}
	n, err := c.alphabetSize()
	if err != nil {
		return nil, err
	}
	mr := &Reader{size: n}
	mr.Reset(r)
	return mr, nil
}

func (mr *Reader) Read(buf []byte) (int, error) {
	if mr.err != nil {
		return 0, mr.err
	}
	n, err := mr.rd.Read(buf)
	mr.InputOffset += int64(n)
	for i, idx := range buf[:n] {
		if int(idx) >= mr.size {
			mr.err = errorf(errors.Corrupted, "rank %d at offset %d outside alphabet of %d", idx, mr.OutputOffset, mr.size)
			return i, mr.err
		}
		buf[i] = mr.list.Decode(idx)
		mr.OutputOffset++
	}
	if err != nil {
		mr.err = err
	}
	return n, err
}

func (mr *Reader) Close() error {
	if mr.err == errClosed {
		return nil
	}
	mr.err = errClosed
	return nil
}

func (mr *Reader) Reset(r io.Reader) error {
	mr.rd, mr.err = r, nil
	mr.InputOffset, mr.OutputOffset = 0, 0
	mr.list.Init(mr.size)
	return nil
}
