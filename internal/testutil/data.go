// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import "strings"

// Corpus is a named test input.
type Corpus struct {
	Name string
	Data []byte
}

// Corpora returns a deterministic set of inputs with very different
// statistics, each approximately n bytes long.
func Corpora(n int) []Corpus {
	r := NewRand(0)
	text := "Mary had a little lamb, its fleece was white as snow. " +
		"And everywhere that Mary went, the lamb was sure to go. "
	return []Corpus{
		{"random", r.Bytes(n)},
		{"repeats", MakeRepeats(r, n)},
		{"zeros", make([]byte, n)},
		{"text", ResizeData([]byte(text), n)},
		{"periodic", []byte(strings.Repeat("abcab", n/5+1))[:n]},
		{"digits", MakeDigits(r, n)},
	}
}

// MakeDigits returns n random ASCII decimal digits.
func MakeDigits(r *Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0' + byte(r.Intn(10))
	}
	return b
}

// MakeRepeats returns n bytes of mostly random data where a large bulk of it
// is a copy from some distance ago. The repeated substrings give the sorted
// rotations long common prefixes, which is the slow case for suffix sorting.
func MakeRepeats(r *Rand, n int) []byte {
	var b []byte
	if n <= 0 {
		return b
	}

	randLen := func() int {
		switch p := r.Intn(100); {
		case p < 15: // 4..8
			return 4 + r.Intn(4)
		case p < 30: // 8..16
			return 8 + r.Intn(8)
		case p < 45: // 16..32
			return 16 + r.Intn(16)
		case p < 60: // 32..64
			return 32 + r.Intn(32)
		case p < 75: // 64..128
			return 64 + r.Intn(64)
		case p < 90: // 128..256
			return 128 + r.Intn(128)
		default: // 256..512
			return 256 + r.Intn(256)
		}
	}
	randDist := func() int {
		for {
			d := 1 << uint(r.Intn(15))
			d += r.Intn(d)
			if d <= len(b) {
				return d
			}
		}
	}
	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < n {
		switch p := r.Intn(10); {
		case p < 1:
			writeRand(randLen())
		default:
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}
