// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare performance between the block-sorting stages and
// reference compressors. Individual implementations are referred to as codecs.
//
// Example usage:
//	$ go run ./internal/tool/bench/benchmark \
//		--formats bsz,xz          \
//		--tests   encRate,ratio   \
//		--files   text,repeats    \
//		--levels  1,9             \
//		--sizes   1e4,1e5,1e6
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/dsnet/blocksort/internal/tool/bench"
)

const (
	defaultLevels = "1,6,9"
	defaultSizes  = "1e4,1e5,1e6"
)

// The decompression speed benchmark works by decompressing some pre-compressed
// data. In order for the benchmarks to be consistent, the same encoder should
// be used to generate the pre-compressed data for all the trials.
//
// encRefs defines the priority order for which encoders to choose first as the
// reference compressor. If no compressor is found for any of the listed codecs,
// then a random encoder will be chosen.
var encRefs = []string{"std", "ds", "ds-flate", "uk"}

func defaultFormats() string {
	m := make(map[bench.Format]bool)
	for k := range bench.Encoders {
		m[k] = true
	}
	for k := range bench.Decoders {
		m[k] = true
	}
	var d []int
	for k := range m {
		d = append(d, int(k))
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, bench.Format(v).String())
	}
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	m := make(map[string]bool)
	for _, v := range bench.Encoders {
		for k := range v {
			m[k] = true
		}
	}
	for _, v := range bench.Decoders {
		for k := range v {
			m[k] = true
		}
	}
	hasStd := m["std"]
	delete(m, "std")
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	if hasStd {
		s = append([]string{"std"}, s...) // Ensure "std" always appears first
	}
	return strings.Join(s, ",")
}

var (
	app = kingpin.New("benchmark", "Compare block-sorting codecs against reference compressors")

	formatsArg = app.Flag("formats", "List of formats to benchmark").Default(defaultFormats()).String()
	testsArg   = app.Flag("tests", "List of different benchmark tests").Default("encRate,decRate,ratio").String()
	codecsArg  = app.Flag("codecs", "List of codecs to benchmark").Default(defaultCodecs()).String()
	pathsArg   = app.Flag("paths", "List of paths to search for test files").Default(".").String()
	filesArg   = app.Flag("files", "List of input files or generated corpora to benchmark").Default(strings.Join(bench.CorpusNames(), ",")).String()
	levelsArg  = app.Flag("levels", "List of compression levels to benchmark").Default(defaultLevels).String()
	sizesArg   = app.Flag("sizes", "List of input sizes to benchmark").Default(defaultSizes).String()
)

func main() {
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))
	log.SetFlags(0)

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var codecs, files []string
	var formats []bench.Format
	var tests []bench.Test
	var levels, sizes []int
	codecs = sep.Split(*codecsArg, -1)
	files = sep.Split(*filesArg, -1)
	bench.Paths = sep.Split(*pathsArg, -1)
	for _, s := range sep.Split(*formatsArg, -1) {
		f, ok := bench.ParseFormat(s)
		if !ok {
			log.Fatalf("invalid format: %q", s)
		}
		formats = append(formats, f)
	}
	for _, s := range sep.Split(*testsArg, -1) {
		t, ok := bench.ParseTest(s)
		if !ok {
			log.Fatalf("invalid test: %q", s)
		}
		tests = append(tests, t)
	}
	for _, s := range sep.Split(*levelsArg, -1) {
		lvl, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			log.Fatalf("invalid level: %q", s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*sizesArg, -1) {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			log.Fatalf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	runBenchmarks(files, codecs, formats, tests, levels, sizes)
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))
}

func runBenchmarks(files, codecs []string, formats []bench.Format, tests []bench.Test, levels, sizes []int) {
	for _, f := range formats {
		// Get lists of encoders and decoders that exist.
		var encs, decs []string
		for _, c := range codecs {
			if _, ok := bench.Encoders[f][c]; ok {
				encs = append(encs, c)
			}
		}
		for _, c := range codecs {
			if _, ok := bench.Decoders[f][c]; ok {
				decs = append(decs, c)
			}
		}

		for _, t := range tests {
			var results [][]bench.Result
			var names, codecs []string
			var title, suffix string

			// Check that we can actually do this bench.
			fmt.Printf("BENCHMARK: %v:%v\n", f, t)
			if len(encs) == 0 {
				fmt.Print("\tSKIP: There are no encoders available.\n\n")
				continue
			}
			if len(decs) == 0 && t == bench.TestDecodeRate {
				fmt.Print("\tSKIP: There are no decoders available.\n\n")
				continue
			}

			// Progress ticker.
			var cnt int
			tick := func() {
				total := len(codecs) * len(files) * len(levels) * len(sizes)
				pct := 100.0 * float64(cnt) / float64(total)
				fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
				cnt++
			}

			// Perform the bench. This may take some time.
			switch t {
			case bench.TestEncodeRate:
				codecs, title, suffix = encs, "MB/s", ""
				results, names = bench.BenchmarkEncoderSuite(f, encs, files, levels, sizes, tick)
			case bench.TestDecodeRate:
				ref := getReferenceEncoder(f)
				codecs, title, suffix = decs, "MB/s", ""
				results, names = bench.BenchmarkDecoderSuite(f, decs, files, levels, sizes, ref, tick)
			case bench.TestCompressRatio:
				codecs, title, suffix = encs, "ratio", "x"
				results, names = bench.BenchmarkRatioSuite(f, encs, files, levels, sizes, tick)
			default:
				panic("unknown test")
			}

			// Print all of the results.
			printResults(results, names, codecs, title, suffix)
			fmt.Println()
		}
		fmt.Println()
	}
}

func getReferenceEncoder(f bench.Format) bench.Encoder {
	for _, c := range encRefs {
		if enc, ok := bench.Encoders[f][c]; ok {
			return enc // Choose by priority
		}
	}
	for _, enc := range bench.Encoders[f] {
		return enc // Choose any random encoder
	}
	return nil // There are no encoders
}

func printResults(results [][]bench.Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
