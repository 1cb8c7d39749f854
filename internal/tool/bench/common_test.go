// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"hash/crc32"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRoundTrip(t *testing.T, enc Encoder, dec Decoder) {
	type entry struct {
		name  string // Name of the test
		file  string // The input test file
		level int    // The compression level
		size  int    // The size of the input
	}
	var vectors []entry
	for _, f := range CorpusNames() {
		var l, s int = 6, 1e5
		vectors = append(vectors, entry{getName(f, l, s), f, l, s})
	}

	for i, v := range vectors {
		input, err := LoadInput(v.file, v.size)
		if err != nil {
			t.Fatalf("test %d, %s: unexpected error: %v", i, v.name, err)
		}
		buf := new(bytes.Buffer)
		wr := enc(buf, v.level)
		_, cpErr := io.Copy(wr, bytes.NewReader(input))
		if err := wr.Close(); err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, err)
			continue
		}
		if cpErr != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, cpErr)
			continue
		}

		hash := crc32.NewIEEE()
		rd := dec(buf)
		cnt, cpErr := io.Copy(hash, rd)
		if err := rd.Close(); err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, err)
			continue
		}
		if cpErr != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, cpErr)
			continue
		}

		sum := crc32.ChecksumIEEE(input)
		if int(cnt) != len(input) {
			t.Errorf("test %d, %s: mismatching count: got %d, want %d", i, v.name, cnt, len(input))
		}
		if hash.Sum32() != sum {
			t.Errorf("test %d, %s: mismatching checksum: got 0x%08x, want 0x%08x", i, v.name, hash.Sum32(), sum)
		}
	}
}

func TestDSLib(t *testing.T) {
	testRoundTrip(t, Encoders[FormatBWT]["ds"], Decoders[FormatBWT]["ds"])
	testRoundTrip(t, Encoders[FormatMTF]["ds"], Decoders[FormatMTF]["ds"])
	for _, name := range []string{"ds-none", "ds-flate", "ds-xz"} {
		testRoundTrip(t, Encoders[FormatBSZ][name], Decoders[FormatBSZ]["ds"])
	}
}

func TestRefLib(t *testing.T) {
	testRoundTrip(t, Encoders[FormatFlate]["std"], Decoders[FormatFlate]["kp"])
	testRoundTrip(t, Encoders[FormatFlate]["kp"], Decoders[FormatFlate]["std"])
	testRoundTrip(t, Encoders[FormatXZ]["uk"], Decoders[FormatXZ]["uk"])
}

func TestGetName(t *testing.T) {
	var vectors = []struct {
		file  string
		level int
		size  int
		want  string
	}{
		{"zeros", 6, 1e4, "zeros:6:1e4"},
		{"/tmp/twain.txt", 9, 1e6, "twain.txt:9:1e6"},
	}
	for i, v := range vectors {
		if got := getName(v.file, v.level, v.size); got != v.want {
			t.Errorf("test %d, name mismatch:\ngot  %s\nwant %s", i, got, v.want)
		}
	}
}

func TestRatioSuite(t *testing.T) {
	encs := []string{"ds-none", "ds-flate"}
	results, names := BenchmarkRatioSuite(FormatBSZ, encs, []string{"zeros", "missing.bin"}, []int{9}, []int{1e4}, nil)
	assert.Equal(t, "zeros:9:1e4", names[0])
	assert.Len(t, results, 2)

	// Storing raw ranks adds framing overhead, while flate shrinks the zero runs.
	assert.True(t, results[0][0].R < 1, "got %v", results[0][0].R)
	assert.True(t, results[0][1].R > 10, "got %v", results[0][1].R)
	assert.Equal(t, 1.0, results[0][0].D)

	// Missing files produce empty results.
	assert.Equal(t, 0.0, results[1][0].R)
}

func TestParse(t *testing.T) {
	for f, name := range formatNames {
		got, ok := ParseFormat(name)
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
	for tt, name := range testNames {
		got, ok := ParseTest(name)
		assert.True(t, ok)
		assert.Equal(t, tt, got)
	}
	_, ok := ParseFormat("br")
	assert.False(t, ok)
}
