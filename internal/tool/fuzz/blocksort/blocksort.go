// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build gofuzz

package blocksort

import (
	"bytes"
	"io/ioutil"

	"github.com/dsnet/blocksort"
	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/mtf"
	"github.com/dsnet/blocksort/pipeline"
	"github.com/dsnet/blocksort/suffix"
)

func Fuzz(data []byte) int {
	testTransforms(data)
	testCoding(data)
	for _, e := range []pipeline.Entropy{pipeline.EntropyNone, pipeline.EntropyFlate} {
		testEncoder(data, e)
	}
	if testDecoder(data) {
		return 1 // Favor valid inputs
	}
	return 0
}

// testTransforms checks that both suffix sorting methods agree and that the
// inverse transform recovers the input.
func testTransforms(data []byte) {
	if len(data) == 0 {
		return
	}
	var recs [2]bwt.Record
	for i, m := range []suffix.Method{suffix.Doubling, suffix.Naive} {
		rec, err := bwt.New(&bwt.Config{Method: m}).Encode(data)
		if err != nil {
			panic(err)
		}
		recs[i] = rec
	}
	if recs[0].Ptr != recs[1].Ptr || !bytes.Equal(recs[0].Data, recs[1].Data) {
		panic("mismatching transforms")
	}
	out, err := bwt.Decode(recs[0])
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(out, data) {
		panic("mismatching bytes")
	}

	// Treating the input as a transformed column must either succeed or
	// report corruption, but never panic.
	if _, err := bwt.Decode(bwt.Record{Ptr: int(data[0]) % len(data), Data: data}); err != nil {
		if err, ok := err.(blocksort.Error); !ok || !err.IsCorrupted() {
			panic(err)
		}
	}
}

// testCoding checks that move-to-front coding is a bijection.
func testCoding(data []byte) {
	if !bytes.Equal(mtf.Decode(mtf.Encode(data)), data) {
		panic("mismatching bytes")
	}
	if !bytes.Equal(mtf.Encode(mtf.Decode(data)), data) {
		panic("mismatching ranks")
	}
}

// testEncoder compresses the input and checks that it decompresses properly.
func testEncoder(data []byte, e pipeline.Entropy) {
	bb := new(bytes.Buffer)
	zw, err := pipeline.NewWriter(bb, &pipeline.WriterConfig{BlockSize: 1 + len(data)/3, Entropy: e})
	if err != nil {
		panic(err)
	}
	n, err := zw.Write(data)
	if n != len(data) || err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}

	zr, err := pipeline.NewReader(bb, nil)
	if err != nil {
		panic(err)
	}
	out, err := ioutil.ReadAll(zr)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(out, data) {
		panic("mismatching bytes")
	}
}

// testDecoder checks that arbitrary input is either decoded or rejected with
// a library error. The XZ stage reports its own errors, which are not checked.
// It reports whether the input was a valid stream.
func testDecoder(data []byte) bool {
	zr, err := pipeline.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		panic(err)
	}
	defer zr.Close()
	if _, err := ioutil.ReadAll(zr); err != nil {
		if _, ok := err.(blocksort.Error); !ok && len(data) > 4 && data[4] != byte(pipeline.EntropyXZ) {
			panic(err)
		}
		return false
	}
	return true
}
