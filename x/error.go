// Package x holds small helpers shared by the dateline packages and the
// datelinewrap command.
package x

// Errors built here carry stack traces from github.com/pkg/errors. Use
// errors.Wrapf when returning an error received from a library call, and
// errors.Errorf when creating a new one.

import (
	"log"

	"github.com/pkg/errors"
)

// Check logs fatal if err != nil.
func Check(err error) {
	if err != nil {
		err = errors.Wrap(err, "")
		log.Fatalf("%+v", err)
	}
}

// Checkf is Check with extra info.
func Checkf(err error, format string, args ...interface{}) {
	if err != nil {
		err = errors.Wrapf(err, format, args...)
		log.Fatalf("%+v", err)
	}
}

// AssertTruef panics with a stack-carrying error if b is false. It guards
// programmer errors (broken preconditions), never bad input.
func AssertTruef(b bool, format string, args ...interface{}) {
	if !b {
		panic(errors.Errorf(format, args...))
	}
}
