// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"io"
	"io/ioutil"
)

type ReaderConfig struct {
	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader consumes the binary form of a Record and yields the original input.
// The entire record is read from the underlying io.Reader on the first call
// to Read.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd   io.Reader
	tr   Transform
	buf  []byte
	done bool
	err  error
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	br := new(Reader)
	br.Reset(r)
	return br, nil
}

func (br *Reader) Read(buf []byte) (int, error) {
	if br.err != nil {
		return 0, br.err
	}
	if !br.done {
		br.done = true
		if br.err = br.decode(); br.err != nil {
			return 0, br.err
		}
	}
	if len(br.buf) == 0 {
		br.err = io.EOF
		return 0, br.err
	}
	n := copy(buf, br.buf)
	br.buf = br.buf[n:]
	br.OutputOffset += int64(n)
	return n, nil
}

func (br *Reader) decode() error {
	b, err := ioutil.ReadAll(br.rd)
	br.InputOffset += int64(len(b))
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil // Empty input transforms to empty output
	}
	var rec Record
	if err := rec.UnmarshalBinary(b); err != nil {
		return err
	}
	br.buf, err = br.tr.Decode(rec)
	return err
}

func (br *Reader) Close() error {
	if br.err == errClosed {
		return nil
	}
	br.buf = nil
	br.err = errClosed
	return nil
}

func (br *Reader) Reset(r io.Reader) error {
	*br = Reader{rd: r}
	return nil
}
