// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"io"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
)

// The binary form of a Record is the pointer as a 32-bit big-endian integer
// followed by exactly len(Data) raw bytes.
const ptrSize = 4

// MarshalBinary encodes the record in its binary form.
func (r Record) MarshalBinary() ([]byte, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	b := make([]byte, ptrSize+len(r.Data))
	internal.PutUint32(b, uint32(r.Ptr))
	copy(b[ptrSize:], r.Data)
	return b, nil
}

// UnmarshalBinary decodes the binary form of a record.
// The record retains a reference to b.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) <= ptrSize {
		return errorf(errors.Corrupted, "record of %d bytes is too short", len(b))
	}
	ptr, data := internal.Uint32(b), b[ptrSize:]
	if uint64(ptr) >= uint64(len(data)) {
		return errorf(errors.Corrupted, "pointer %d out of range [0, %d)", ptr, len(data))
	}
	r.Ptr, r.Data = int(ptr), data
	return nil
}

// WriteTo writes the binary form of the record to w.
func (r Record) WriteTo(w io.Writer) (int64, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	var hdr [ptrSize]byte
	internal.PutUint32(hdr[:], uint32(r.Ptr))
	n1, err := w.Write(hdr[:])
	if err != nil {
		return int64(n1), err
	}
	n2, err := w.Write(r.Data)
	return int64(n1 + n2), err
}

func (r Record) check() error {
	if len(r.Data) == 0 || !internal.CheckLength(len(r.Data)) {
		return errorf(errors.Invalid, "data length %d not encodable", len(r.Data))
	}
	if r.Ptr < 0 || r.Ptr >= len(r.Data) {
		return errorf(errors.Invalid, "pointer %d out of range [0, %d)", r.Ptr, len(r.Data))
	}
	return nil
}
