// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	var vectors = []struct {
		err    Error
		output string
	}{
		{Error{}, "unknown error"},
		{Error{Code: Corrupted}, "corrupted input"},
		{Error{Code: Invalid, Pkg: "bwt"}, "bwt: invalid argument"},
		{New("mtf", Corrupted, "rank %d out of range", 300), "mtf: corrupted input: rank 300 out of range"},
	}

	for i, v := range vectors {
		if got := v.err.Error(); got != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, got, v.output)
		}
	}
}

func TestRecover(t *testing.T) {
	fail := func(err error) (out error) {
		defer Recover(&out)
		Panic(err)
		return nil
	}

	assert.Nil(t, fail(nil))
	assert.Equal(t, io.ErrUnexpectedEOF, fail(io.ErrUnexpectedEOF))

	err := fail(Error{Code: Corrupted, Pkg: "bwt"})
	assert.True(t, IsCorrupted(err))
	assert.False(t, IsInvalid(err))

	assert.Panics(t, func() {
		var err error
		defer Recover(&err)
		var s []int
		_ = s[1]
	})
}
