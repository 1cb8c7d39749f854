// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command blocksort applies the Burrows-Wheeler Transform and move-to-front
// coding to a byte stream, either as individual stages or as a complete
// framed compressor.
//
// Example usage:
//	$ blocksort bwt encode < input.txt | blocksort mtf encode > ranks.bin
//	$ blocksort mtf decode < ranks.bin | blocksort bwt decode > input.txt
//	$ blocksort compress --block-size 900k --entropy xz -i input.txt -o input.bsz
//	$ blocksort decompress -i input.bsz
package main

import (
	"log"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	version = "head"
	app     = kingpin.New("blocksort", "Block-sorting transforms and compressor")

	bwtCmd        = app.Command("bwt", "Apply the forward or inverse Burrows-Wheeler Transform")
	mtfCmd        = app.Command("mtf", "Apply move-to-front encoding or decoding")
	compressCmd   = app.Command("compress", "Compress with BWT, MTF, and an entropy coder")
	decompressCmd = app.Command("decompress", "Decompress a stream produced by compress")
)

var appArgs = struct {
	in         *string
	out        *string
	verbose    *bool
	timestamps *bool
}{
	app.Flag("in", "Input file (- for stdin)").Short('i').Default("-").String(),
	app.Flag("out", "Output file (- for stdout)").Short('o').Default("-").String(),
	app.Flag("verbose", "Display statistics after each operation").Short('v').Bool(),
	app.Flag("timestamps", "Prefix all output by timestamps (for logging purposes)").Bool(),
}

var bwtArgs = struct {
	mode   *string
	method *string
}{
	bwtCmd.Arg("mode", "encode for the forward transform, decode for the inverse").Required().Enum(modeEncode, modeDecode),
	bwtCmd.Flag("method", "Suffix sorting algorithm for the forward transform").Default("doubling").Enum("doubling", "naive"),
}

var mtfArgs = struct {
	mode *string
}{
	mtfCmd.Arg("mode", "encode to ranks, decode from ranks").Required().Enum(modeEncode, modeDecode),
}

var compressArgs = struct {
	blockSize *string
	entropy   *string
	level     *int
	method    *string
}{
	compressCmd.Flag("block-size", "Bytes per block, e.g. 900k or 1Mi (0 for the whole input)").Short('b').Default("0").String(),
	compressCmd.Flag("entropy", "Entropy coder applied to the ranks").Short('e').Default("flate").Enum("none", "flate", "xz"),
	compressCmd.Flag("level", "DEFLATE compression level (0 for the default)").Short('l').Default("0").Int(),
	compressCmd.Flag("method", "Suffix sorting algorithm").Default("doubling").Enum("doubling", "naive"),
}

func main() {
	app.HelpFlag.Short('h')
	app.Version(version)
	app.VersionFlag.Short('V')

	cmd, err := app.Parse(os.Args[1:])
	if *appArgs.timestamps {
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	} else {
		log.SetFlags(0)
	}

	switch kingpin.MustParse(cmd, err) {
	case bwtCmd.FullCommand():
		must(run(func(s *session) error {
			return s.bwt(*bwtArgs.mode, *bwtArgs.method)
		}))

	case mtfCmd.FullCommand():
		must(run(func(s *session) error {
			return s.mtf(*mtfArgs.mode)
		}))

	case compressCmd.FullCommand():
		conf, err := compressConfig(*compressArgs.blockSize, *compressArgs.entropy, *compressArgs.level, *compressArgs.method)
		must(err)
		must(run(func(s *session) error {
			return s.compress(conf)
		}))

	case decompressCmd.FullCommand():
		must(run(func(s *session) error {
			return s.decompress()
		}))
	}
}

func must(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}
