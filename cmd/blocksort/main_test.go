// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"io/ioutil"
	"log"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/internal/testutil"
	"github.com/dsnet/blocksort/pipeline"
	"github.com/dsnet/blocksort/suffix"
)

func testSession(input []byte) (*session, *bytes.Buffer) {
	var out bytes.Buffer
	s := newSession(bytes.NewReader(input), &out, true)
	s.logger = log.New(ioutil.Discard, "", 0)
	return s, &out
}

func TestStages(t *testing.T) {
	input := []byte("ABRACADABRA!")

	s, out := testSession(input)
	assert.Nil(t, s.bwt(modeEncode, "doubling"))
	assert.Equal(t, "\x00\x00\x00\x03ARD!RCAAAABB", out.String())
	transformed := out.Bytes()

	s, out = testSession(transformed)
	assert.Nil(t, s.mtf(modeEncode))
	assert.Len(t, out.Bytes(), len(transformed))
	ranks := out.Bytes()

	s, out = testSession(ranks)
	assert.Nil(t, s.mtf(modeDecode))
	assert.Equal(t, transformed, out.Bytes())

	s, out = testSession(transformed)
	assert.Nil(t, s.bwt(modeDecode, "doubling"))
	assert.Equal(t, input, out.Bytes())
	assert.Equal(t, int64(len(transformed)), s.in.count)
	assert.Equal(t, int64(len(input)), s.out.count)
}

func TestStageErrors(t *testing.T) {
	s, _ := testSession([]byte("abc"))
	assert.NotNil(t, s.bwt("sideways", "doubling"))

	s, _ = testSession([]byte("abc"))
	assert.True(t, errors.IsInvalid(pkgerrors.Cause(s.bwt(modeEncode, "quick"))))

	s, _ = testSession([]byte("abc"))
	assert.NotNil(t, s.mtf("sideways"))

	// Pointer 9 is out of range for a 3-byte column.
	s, _ = testSession([]byte("\x00\x00\x00\x09abc"))
	assert.True(t, errors.IsCorrupted(pkgerrors.Cause(s.bwt(modeDecode, "doubling"))))

	s, _ = testSession([]byte("not a stream"))
	assert.True(t, errors.IsCorrupted(pkgerrors.Cause(s.decompress())))
}

func TestCompress(t *testing.T) {
	for _, cp := range testutil.Corpora(1 << 12) {
		for _, entropy := range pipeline.EntropyNames() {
			conf, err := compressConfig("1k", entropy, 0, "doubling")
			if err != nil {
				t.Fatalf("unexpected config error: %v", err)
			}

			s, out := testSession(cp.Data)
			if err := s.compress(conf); err != nil {
				t.Errorf("%s/%s, unexpected compress error: %v", cp.Name, entropy, err)
				continue
			}

			s, out = testSession(out.Bytes())
			if err := s.decompress(); err != nil {
				t.Errorf("%s/%s, unexpected decompress error: %v", cp.Name, entropy, err)
				continue
			}
			if !bytes.Equal(out.Bytes(), cp.Data) {
				t.Errorf("%s/%s, round trip mismatch", cp.Name, entropy)
			}
		}
	}
}

func TestCompressConfig(t *testing.T) {
	var vectors = []struct {
		blockSize string
		entropy   string
		method    string
		want      *pipeline.WriterConfig
	}{{
		blockSize: "0", entropy: "none", method: "doubling",
		want: &pipeline.WriterConfig{},
	}, {
		blockSize: "900k", entropy: "flate", method: "naive",
		want: &pipeline.WriterConfig{BlockSize: 900000, Entropy: pipeline.EntropyFlate, Method: suffix.Naive},
	}, {
		blockSize: "1Mi", entropy: "xz", method: "doubling",
		want: &pipeline.WriterConfig{BlockSize: 1 << 20, Entropy: pipeline.EntropyXZ},
	}, {
		blockSize: "-5", entropy: "none", method: "doubling",
	}, {
		blockSize: "1.5", entropy: "none", method: "doubling",
	}, {
		blockSize: "huge", entropy: "none", method: "doubling",
	}, {
		blockSize: "0", entropy: "brotli", method: "doubling",
	}}

	for i, v := range vectors {
		got, err := compressConfig(v.blockSize, v.entropy, 0, v.method)
		if v.want == nil {
			assert.NotNil(t, err, "test %d", i)
			continue
		}
		if assert.Nil(t, err, "test %d", i) {
			assert.Equal(t, v.want.BlockSize, got.BlockSize, "test %d", i)
			assert.Equal(t, v.want.Entropy, got.Entropy, "test %d", i)
			assert.Equal(t, v.want.Method, got.Method, "test %d", i)
		}
	}
}
