// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"io"

	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/suffix"
)

var errClosed = errors.Error{Code: errors.Closed, Pkg: "bwt"}

type WriterConfig struct {
	Method suffix.Method // Suffix sorting algorithm

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer buffers everything written to it and emits the binary form of its
// transform upon Close. The transform needs the whole input, so nothing is
// written to the underlying io.Writer before then.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr  io.Writer
	tr  Transform
	buf []byte
	err error
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	bw := new(Writer)
	if conf != nil {
		bw.tr.method = conf.Method
	}
	bw.Reset(w)
	return bw, nil
}

func (bw *Writer) Write(buf []byte) (int, error) {
	if bw.err != nil {
		return 0, bw.err
	}
	bw.buf = append(bw.buf, buf...)
	bw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close transforms the buffered input and writes the result.
// An empty input produces no output at all.
// It does not close the underlying io.Writer.
func (bw *Writer) Close() error {
	if bw.err == errClosed {
		return nil
	}
	if bw.err != nil {
		return bw.err
	}
	if len(bw.buf) > 0 {
		rec, err := bw.tr.Encode(bw.buf)
		if err != nil {
			bw.err = err
			return err
		}
		n, err := rec.WriteTo(bw.wr)
		bw.OutputOffset += n
		if err != nil {
			bw.err = err
			return err
		}
	}
	bw.buf = bw.buf[:0]
	bw.err = errClosed
	return nil
}

func (bw *Writer) Reset(w io.Writer) error {
	*bw = Writer{wr: w, tr: bw.tr, buf: bw.buf[:0]}
	return nil
}
