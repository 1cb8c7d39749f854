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
)

type ReaderConfig struct {
	_ struct{} // Blank field to prevent unkeyed struct literals
}

type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read
	BlockCount   int64 // Total number of blocks decoded

	rd     io.Reader     // Underlying reader with input counting
	er     io.ReadCloser // Entropy stage, nil until the header is read
	bwt    *bwt.Transform
	toRead []byte // Decoded data ready to be emitted from Read
	ranks  []byte
	crc    uint32 // CRC-32 of all blocks decoded so far
	err    error  // Persistent error
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := &Reader{bwt: bwt.New(nil)}
	zr.Reset(r)
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}

		func() {
			defer errors.Recover(&zr.err)
			zr.readBlock()
		}()
	}
}

// Close ends decompression. It does not close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == errClosed {
		return nil
	}
	if zr.er != nil {
		zr.er.Close()
	}
	if zr.err == nil || zr.err == io.EOF {
		zr.toRead = nil
		zr.err = errClosed
		return nil
	}
	return zr.err
}

func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{
		bwt:   zr.bwt,
		ranks: zr.ranks[:0],
	}
	zr.rd = countReader{r, &zr.InputOffset}
	return nil
}

// readHeader verifies the stream header and starts the entropy stage.
func (zr *Reader) readHeader() {
	var hdr [hdrSize]byte
	zr.readFull(zr.rd, hdr[:])
	if string(hdr[:len(magic)]) != magic {
		panic(errorf(errors.Corrupted, "invalid magic %q", hdr[:len(magic)]))
	}
	if v := hdr[len(magic)]; v != version {
		panic(errorf(errors.Corrupted, "unsupported version %d", v))
	}
	er, err := newEntropyReader(zr.rd, Entropy(hdr[len(magic)+1]))
	if err != nil {
		if !errors.IsCorrupted(err) {
			err = errorf(errors.Corrupted, "%v", err)
		}
		panic(err)
	}
	zr.er = er
}

// readBlock decodes the next block into toRead, or verifies the trailer and
// ends the stream with io.EOF.
func (zr *Reader) readBlock() {
	if zr.er == nil {
		zr.readHeader()
	}

	var hdr [blkSize]byte
	zr.readFull(zr.er, hdr[:4])
	n := internal.Uint32(hdr[0:])
	if n == 0 {
		zr.readFull(zr.er, hdr[4:4+trailSize])
		if crc := internal.Uint32(hdr[4:]); crc != zr.crc && !internal.GoFuzz {
			panic(errorf(errors.Corrupted, "stream checksum mismatch: got %08x, want %08x", zr.crc, crc))
		}
		panic(io.EOF)
	}
	zr.readFull(zr.er, hdr[4:])
	want := internal.Uint32(hdr[4:])
	ptr := internal.Uint32(hdr[8:])
	if ptr >= n {
		panic(errorf(errors.Corrupted, "block pointer %d out of range [0, %d)", ptr, n))
	}

	// Read the ranks in bounded chunks so that a forged length on a short
	// stream fails before allocating the full block.
	zr.ranks = zr.ranks[:0]
	for rem := int64(n); rem > 0; {
		chunk := int64(1 << 20)
		if rem < chunk {
			chunk = rem
		}
		off := len(zr.ranks)
		zr.ranks = append(zr.ranks, make([]byte, chunk)...)
		zr.readFull(zr.er, zr.ranks[off:])
		rem -= chunk
	}

	data, err := zr.bwt.Decode(bwt.Record{Ptr: int(ptr), Data: mtf.Decode(zr.ranks)})
	if err != nil {
		if !errors.IsCorrupted(err) {
			err = errorf(errors.Corrupted, "%v", err)
		}
		panic(err)
	}
	crc := crc32.ChecksumIEEE(data)
	if crc != want && !internal.GoFuzz {
		panic(errorf(errors.Corrupted, "block %d checksum mismatch: got %08x, want %08x", zr.BlockCount, crc, want))
	}
	zr.crc = combineCRC(zr.crc, crc, int64(len(data)))
	zr.toRead = data
	zr.BlockCount++
}

// readFull reads exactly len(b) bytes from r.
// A stream that ends early is reported as corrupted.
func (zr *Reader) readFull(r io.Reader, b []byte) {
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			panic(errCorrupt)
		}
		panic(entropyError(err))
	}
}
