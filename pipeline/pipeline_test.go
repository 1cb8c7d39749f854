// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pipeline

import (
	"bytes"
	"hash/crc32"
	"io"
	"io/ioutil"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/internal/testutil"
	"github.com/dsnet/blocksort/mtf"
	"github.com/dsnet/blocksort/suffix"
)

func compress(t testing.TB, input []byte, conf *WriterConfig) []byte {
	var buf bytes.Buffer
	zw, err := NewWriter(&buf, conf)
	if err != nil {
		t.Fatalf("unexpected NewWriter error: %v", err)
	}
	if _, err := zw.Write(input); err != nil {
		t.Fatalf("unexpected Write error: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("unexpected Close error: %v", err)
	}
	if zw.OutputOffset != int64(buf.Len()) {
		t.Errorf("output offset mismatch: got %d, want %d", zw.OutputOffset, buf.Len())
	}
	return buf.Bytes()
}

func decompress(input []byte) ([]byte, error) {
	zr, err := NewReader(bytes.NewReader(input), nil)
	if err != nil {
		return nil, err
	}
	output, err := ioutil.ReadAll(zr)
	if err != nil {
		return output, err
	}
	return output, zr.Close()
}

// rawBlock builds the uncompressed encoding of a single block.
func rawBlock(data string) []byte {
	rec, _ := bwt.Encode([]byte(data))
	var hdr [blkSize]byte
	internal.PutUint32(hdr[0:], uint32(len(data)))
	internal.PutUint32(hdr[4:], crc32.ChecksumIEEE([]byte(data)))
	internal.PutUint32(hdr[8:], uint32(rec.Ptr))
	return append(hdr[:], mtf.Encode(rec.Data)...)
}

func rawTrailer(crc uint32) []byte {
	var b [8]byte
	internal.PutUint32(b[4:], crc)
	return b[:]
}

func concat(bs ...[]byte) []byte {
	var out []byte
	for _, b := range bs {
		out = append(out, b...)
	}
	return out
}

var rawHeader = []byte("BSZ\x01\x00")

func TestFormat(t *testing.T) {
	var vectors = []struct {
		input     string
		blockSize int
		output    []byte
	}{{
		input:  "",
		output: concat(rawHeader, rawTrailer(0)),
	}, {
		input: "banana",
		output: concat(rawHeader,
			[]byte{0, 0, 0, 6}, []byte{0x03, 0x8b, 0x67, 0xcf}, []byte{0, 0, 0, 3},
			[]byte{'n', 0, 'c', 'c', 0, 0},
			rawTrailer(crc32.ChecksumIEEE([]byte("banana")))),
	}, {
		input:     "banana",
		blockSize: 4,
		output: concat(rawHeader, rawBlock("bana"), rawBlock("na"),
			rawTrailer(crc32.ChecksumIEEE([]byte("banana")))),
	}, {
		input:     "abcabc",
		blockSize: 3,
		output: concat(rawHeader, rawBlock("abc"), rawBlock("abc"),
			rawTrailer(crc32.ChecksumIEEE([]byte("abcabc")))),
	}}

	for i, v := range vectors {
		output := compress(t, []byte(v.input), &WriterConfig{BlockSize: v.blockSize})
		if diff := cmp.Diff(v.output, output); diff != "" {
			t.Errorf("test %d, output mismatch (-want +got):\n%s", i, diff)
		}

		input, err := decompress(output)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if got := string(input); got != v.input {
			t.Errorf("test %d, input mismatch:\ngot  %q\nwant %q", i, got, v.input)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	var configs = []WriterConfig{
		{},
		{BlockSize: 1},
		{BlockSize: 777},
		{BlockSize: 1 << 12, Entropy: EntropyFlate},
		{BlockSize: 1 << 12, Entropy: EntropyFlate, Level: 1},
		{Entropy: EntropyFlate, Level: 9},
		{BlockSize: 1 << 12, Entropy: EntropyXZ},
		{BlockSize: 256, Entropy: EntropyXZ, Method: suffix.Naive},
	}

	for i, conf := range configs {
		conf := conf
		for _, cp := range testutil.Corpora(1 << 13) {
			output := compress(t, cp.Data, &conf)
			input, err := decompress(output)
			if err != nil {
				t.Errorf("test %d (%s, %v), unexpected error: %v", i, cp.Name, conf.Entropy, err)
				continue
			}
			if !bytes.Equal(input, cp.Data) {
				t.Errorf("test %d (%s, %v), round trip mismatch", i, cp.Name, conf.Entropy)
			}
		}
	}
}

func TestBlockCount(t *testing.T) {
	input := testutil.MakeRepeats(testutil.NewRand(0), 10000)

	var buf bytes.Buffer
	zw, err := NewWriter(&buf, &WriterConfig{BlockSize: 3000, Entropy: EntropyFlate})
	assert.Nil(t, err)
	cnt, err := io.CopyBuffer(zw, bytes.NewReader(input), make([]byte, 1234))
	assert.Nil(t, err)
	assert.Equal(t, int64(len(input)), cnt)
	assert.Equal(t, int64(3), zw.BlockCount) // Last partial block is pending
	assert.Nil(t, zw.Close())
	assert.Equal(t, int64(4), zw.BlockCount)
	assert.Equal(t, int64(len(input)), zw.InputOffset)

	zr, err := NewReader(&buf, nil)
	assert.Nil(t, err)
	output, err := ioutil.ReadAll(zr)
	assert.Nil(t, err)
	assert.Equal(t, input, output)
	assert.Equal(t, int64(4), zr.BlockCount)
	assert.Equal(t, int64(len(input)), zr.OutputOffset)
	assert.Nil(t, zr.Close())

	// Reset reuses the Writer for a fresh stream.
	var buf2 bytes.Buffer
	assert.Nil(t, zw.Reset(&buf2))
	_, err = zw.Write([]byte("hello"))
	assert.Nil(t, err)
	assert.Nil(t, zw.Close())
	output, err = decompress(buf2.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, "hello", string(output))
}

func TestCorrupted(t *testing.T) {
	valid := concat(rawHeader, rawBlock("banana"), rawTrailer(crc32.ChecksumIEEE([]byte("banana"))))

	mutate := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), valid...))
	}

	var vectors = []struct {
		desc  string
		input []byte
	}{{
		desc:  "bad magic",
		input: mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
	}, {
		desc:  "bad version",
		input: mutate(func(b []byte) []byte { b[3] = 2; return b }),
	}, {
		desc:  "unknown entropy",
		input: mutate(func(b []byte) []byte { b[4] = 7; return b }),
	}, {
		desc:  "block checksum",
		input: mutate(func(b []byte) []byte { b[hdrSize+4] ^= 0x01; return b }),
	}, {
		desc:  "stream checksum",
		input: mutate(func(b []byte) []byte { b[len(b)-1] ^= 0x80; return b }),
	}, {
		desc:  "pointer out of range",
		input: mutate(func(b []byte) []byte { b[hdrSize+11] = 6; return b }),
	}, {
		desc:  "modified rank",
		input: mutate(func(b []byte) []byte { b[hdrSize+blkSize+1] = 1; return b }),
	}, {
		desc:  "empty",
		input: nil,
	}, {
		desc:  "missing trailer",
		input: valid[:len(valid)-8],
	}, {
		desc:  "oversized length",
		input: mutate(func(b []byte) []byte { b[hdrSize] = 0xff; return b }),
	}}

	for i, v := range vectors {
		_, err := decompress(v.input)
		assert.True(t, errors.IsCorrupted(err), "test %d (%s), got %v", i, v.desc, err)
	}

	// Every strict prefix of a valid stream is truncated.
	for n := 0; n < len(valid); n++ {
		_, err := decompress(valid[:n])
		assert.True(t, errors.IsCorrupted(err), "prefix %d, got %v", n, err)
	}
}

func TestWriterErrors(t *testing.T) {
	for _, conf := range []*WriterConfig{
		{BlockSize: -1},
		{Entropy: Entropy(9)},
		{Method: suffix.Method(9)},
	} {
		_, err := NewWriter(ioutil.Discard, conf)
		assert.True(t, errors.IsInvalid(err), "config %+v, got %v", *conf, err)
	}

	zw, err := NewWriter(ioutil.Discard, nil)
	assert.Nil(t, err)
	assert.Nil(t, zw.Close())
	assert.Nil(t, zw.Close())
	_, err = zw.Write([]byte("abc"))
	assert.True(t, errors.IsClosed(err), "got %v", err)

	// Errors from the underlying writer are persistent.
	bw := &testutil.BuggyWriter{W: ioutil.Discard, N: 10, Err: io.ErrShortWrite}
	zw, err = NewWriter(bw, &WriterConfig{BlockSize: 16})
	assert.Nil(t, err)
	_, err = zw.Write(make([]byte, 64))
	assert.Equal(t, io.ErrShortWrite, err)
	assert.Equal(t, io.ErrShortWrite, zw.Close())
}

func TestReaderErrors(t *testing.T) {
	valid := compress(t, []byte("hello, world"), &WriterConfig{Entropy: EntropyFlate})

	// Errors from the underlying reader are passed through.
	br := &testutil.BuggyReader{R: bytes.NewReader(valid), N: 3, Err: io.ErrNoProgress}
	zr, err := NewReader(br, nil)
	assert.Nil(t, err)
	_, err = ioutil.ReadAll(zr)
	assert.Equal(t, io.ErrNoProgress, err)

	zr, err = NewReader(bytes.NewReader(valid), nil)
	assert.Nil(t, err)
	assert.Nil(t, zr.Close())
	_, err = zr.Read(make([]byte, 1))
	assert.True(t, errors.IsClosed(err), "got %v", err)
}

func TestParseEntropy(t *testing.T) {
	for _, name := range EntropyNames() {
		e, err := ParseEntropy(name)
		assert.Nil(t, err)
		assert.Equal(t, name, e.String())
	}
	_, err := ParseEntropy("brotli")
	assert.True(t, errors.IsInvalid(err), "got %v", err)
	assert.Equal(t, "Entropy(5)", Entropy(5).String())
}

func BenchmarkWriter(b *testing.B) {
	input := testutil.MakeRepeats(testutil.NewRand(0), 1<<20)
	conf := &WriterConfig{BlockSize: 1 << 18, Entropy: EntropyFlate}
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compress(b, input, conf)
	}
}

func BenchmarkReader(b *testing.B) {
	input := testutil.MakeRepeats(testutil.NewRand(0), 1<<20)
	output := compress(b, input, &WriterConfig{BlockSize: 1 << 18, Entropy: EntropyFlate})
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		decompress(output)
	}
}
