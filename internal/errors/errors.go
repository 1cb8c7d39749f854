// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate errors.
package errors

import (
	"fmt"
	"runtime"
)

// Error codes returned by the block-sorting packages.
const (
	Unknown   = iota // Unknown error cause
	Internal         // Library contains a bug
	Invalid          // Caller violated an API precondition
	Corrupted        // Encoded input is malformed
	Closed           // Operation on a closed handler
)

var codeMap = map[int]string{
	Unknown:   "unknown error",
	Internal:  "internal error",
	Invalid:   "invalid argument",
	Corrupted: "corrupted input",
	Closed:    "closed handler",
}

// Error is the concrete error type used by every package in this module.
type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	switch len(ss) {
	case 0:
		return "unknown error"
	case 1:
		return ss[0]
	case 2:
		return ss[0] + ": " + ss[1]
	default:
		return ss[0] + ": " + ss[1] + ": " + ss[2]
	}
}

func (e Error) CompressError() {}
func (e Error) IsInternal() bool  { return e.Code == Internal }
func (e Error) IsInvalid() bool   { return e.Code == Invalid }
func (e Error) IsCorrupted() bool { return e.Code == Corrupted }
func (e Error) IsClosed() bool    { return e.Code == Closed }

// New constructs an Error with a formatted message.
func New(pkg string, code int, format string, args ...interface{}) Error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(format, args...)}
}

func IsInternal(err error) bool  { return isCode(err, Internal) }
func IsInvalid(err error) bool   { return isCode(err, Invalid) }
func IsCorrupted(err error) bool { return isCode(err, Corrupted) }
func IsClosed(err error) bool    { return isCode(err, Closed) }

func isCode(err error, code int) bool {
	if cerr, ok := err.(Error); ok && cerr.Code == code {
		return true
	}
	return false
}

// Panic panics with err if it is not nil.
func Panic(err error) {
	if err != nil {
		panic(err)
	}
}

// Recover recovers from panics caused by Panic and stores the error in err.
// Runtime errors are not recovered since they indicate a programming bug.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
