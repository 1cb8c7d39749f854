// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"io"
	"log"
	"os"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/pkg/errors"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/mtf"
	"github.com/dsnet/blocksort/pipeline"
	"github.com/dsnet/blocksort/suffix"
)

const (
	modeEncode = "encode"
	modeDecode = "decode"
)

// session is a single invocation of a command over one input and one output.
type session struct {
	in      *counterReader
	out     *counterWriter
	verbose bool
	logger  *log.Logger
}

func newSession(r io.Reader, w io.Writer, verbose bool) *session {
	return &session{
		in:      &counterReader{reader: r},
		out:     &counterWriter{writer: w},
		verbose: verbose,
		logger:  log.New(os.Stderr, "", log.Flags()),
	}
}

// run opens the input and output named by the global flags, performs f, and
// closes the output.
func run(f func(*session) error) error {
	var r io.Reader = os.Stdin
	if *appArgs.in != "-" {
		fr, err := os.Open(*appArgs.in)
		if err != nil {
			return errors.Wrap(err, "opening input")
		}
		defer fr.Close()
		r = fr
	}

	var w io.WriteCloser = os.Stdout
	if *appArgs.out != "-" {
		fw, err := os.Create(*appArgs.out)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		w = fw
	}

	s := newSession(r, w, *appArgs.verbose)
	err := f(s)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "closing output")
	}
	return err
}

func (s *session) bwt(mode, method string) error {
	m, err := suffix.ParseMethod(method)
	if err != nil {
		return err
	}
	ts := time.Now()
	switch mode {
	case modeEncode:
		bw, err := bwt.NewWriter(s.out, &bwt.WriterConfig{Method: m})
		if err != nil {
			return err
		}
		if err := s.copyClose(bw, s.in); err != nil {
			return errors.WithMessage(err, "forward transform")
		}
	case modeDecode:
		br, err := bwt.NewReader(s.in, nil)
		if err != nil {
			return err
		}
		if err := s.copy(s.out, br); err != nil {
			return errors.WithMessage(err, "inverse transform")
		}
	default:
		return errors.Errorf("unknown mode %q", mode)
	}
	s.stats("bwt "+mode, ts)
	return nil
}

func (s *session) mtf(mode string) error {
	ts := time.Now()
	switch mode {
	case modeEncode:
		mw, err := mtf.NewWriter(s.out, nil)
		if err != nil {
			return err
		}
		if err := s.copyClose(mw, s.in); err != nil {
			return errors.WithMessage(err, "move-to-front encoding")
		}
	case modeDecode:
		mr, err := mtf.NewReader(s.in, nil)
		if err != nil {
			return err
		}
		if err := s.copy(s.out, mr); err != nil {
			return errors.WithMessage(err, "move-to-front decoding")
		}
	default:
		return errors.Errorf("unknown mode %q", mode)
	}
	s.stats("mtf "+mode, ts)
	return nil
}

func (s *session) compress(conf *pipeline.WriterConfig) error {
	ts := time.Now()
	zw, err := pipeline.NewWriter(s.out, conf)
	if err != nil {
		return err
	}
	if err := s.copyClose(zw, s.in); err != nil {
		return errors.WithMessage(err, "compressing")
	}
	if s.verbose {
		s.logger.Printf("%d blocks, %v entropy coder", zw.BlockCount, conf.Entropy)
	}
	s.stats("compress", ts)
	return nil
}

func (s *session) decompress() error {
	ts := time.Now()
	zr, err := pipeline.NewReader(s.in, nil)
	if err != nil {
		return err
	}
	if err := s.copy(s.out, zr); err != nil {
		return errors.WithMessage(err, "decompressing")
	}
	if err := zr.Close(); err != nil {
		return err
	}
	if s.verbose {
		s.logger.Printf("%d blocks", zr.BlockCount)
	}
	s.stats("decompress", ts)
	return nil
}

func (s *session) copy(w io.Writer, r io.Reader) error {
	_, err := io.Copy(w, r)
	return err
}

func (s *session) copyClose(w io.WriteCloser, r io.Reader) error {
	if _, err := io.Copy(w, r); err != nil {
		return err
	}
	return w.Close()
}

func (s *session) stats(op string, ts time.Time) {
	if !s.verbose {
		return
	}
	in, out := s.in.count, s.out.count
	ratio := float64(in) / float64(out)
	if out == 0 {
		ratio = 0
	}
	s.logger.Printf("%s: %sB -> %sB (%.3fx) in %v", op,
		strconv.FormatPrefix(float64(in), strconv.Base1024, 2),
		strconv.FormatPrefix(float64(out), strconv.Base1024, 2),
		ratio, time.Since(ts))
}

// compressConfig builds the pipeline configuration from command-line values.
// The block size accepts SI and IEC prefixes, e.g. "900k" or "1Mi".
func compressConfig(blockSize, entropy string, level int, method string) (*pipeline.WriterConfig, error) {
	nf, err := strconv.ParsePrefix(blockSize, strconv.AutoParse)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid block size %q", blockSize)
	}
	if nf < 0 || nf != float64(int64(nf)) || nf > 1<<32-1 {
		return nil, errors.Errorf("invalid block size %q", blockSize)
	}
	e, err := pipeline.ParseEntropy(entropy)
	if err != nil {
		return nil, err
	}
	m, err := suffix.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	return &pipeline.WriterConfig{
		BlockSize: int(nf),
		Entropy:   e,
		Level:     level,
		Method:    m,
	}, nil
}

type counterReader struct {
	count  int64
	reader io.Reader
}

func (r *counterReader) Read(buffer []byte) (int, error) {
	n, err := r.reader.Read(buffer)
	r.count += int64(n)
	return n, err
}

type counterWriter struct {
	count  int64
	writer io.Writer
}

func (w *counterWriter) Write(buffer []byte) (int, error) {
	n, err := w.writer.Write(buffer)
	w.count += int64(n)
	return n, err
}
