// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build !no_ds_lib

package bench

import (
	"io"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/mtf"
	"github.com/dsnet/blocksort/pipeline"
)

// bszBlockSize maps a level to a block size the way bzip2 does,
// where level 9 selects blocks of 900k.
func bszBlockSize(lvl int) int {
	if lvl < 1 || lvl > 9 {
		lvl = 9
	}
	return lvl * 100000
}

func init() {
	RegisterEncoder(FormatBWT, "ds",
		func(w io.Writer, lvl int) io.WriteCloser {
			bw, err := bwt.NewWriter(w, nil)
			if err != nil {
				panic(err)
			}
			return bw
		})
	RegisterDecoder(FormatBWT, "ds",
		func(r io.Reader) io.ReadCloser {
			br, err := bwt.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return br
		})

	RegisterEncoder(FormatMTF, "ds",
		func(w io.Writer, lvl int) io.WriteCloser {
			mw, err := mtf.NewWriter(w, nil)
			if err != nil {
				panic(err)
			}
			return mw
		})
	RegisterDecoder(FormatMTF, "ds",
		func(r io.Reader) io.ReadCloser {
			mr, err := mtf.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return mr
		})

	for _, e := range []pipeline.Entropy{pipeline.EntropyNone, pipeline.EntropyFlate, pipeline.EntropyXZ} {
		e := e
		RegisterEncoder(FormatBSZ, "ds-"+e.String(),
			func(w io.Writer, lvl int) io.WriteCloser {
				zw, err := pipeline.NewWriter(w, &pipeline.WriterConfig{
					BlockSize: bszBlockSize(lvl),
					Entropy:   e,
				})
				if err != nil {
					panic(err)
				}
				return zw
			})
	}
	RegisterDecoder(FormatBSZ, "ds",
		func(r io.Reader) io.ReadCloser {
			zr, err := pipeline.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return zr
		})
}
