// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the translator's logging seam. The tr package never
// imports "log" directly; it calls conlog so a CLI can route output to
// a console, and so tests can make "fatal" assertions without killing
// the test binary.
package conlog

import "log"

var (
	printf  func(string, ...interface{}) = defaultPrintf
	fatalf  func(string, ...interface{}) = defaultFatalf
)

func defaultPrintf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func defaultFatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// SetPrintf overrides where informational output goes.
func SetPrintf(f func(string, ...interface{})) {
	printf = f
}

// SetFatalf overrides what happens on a fatal programming error (spec
// §7 category 1: buffer overflow, unknown enum value, missing cache
// entry, ...). The default calls log.Fatalf; tests install one that
// panics so the fatal path is assertable without exiting the process.
func SetFatalf(f func(string, ...interface{})) {
	fatalf = f
}

// Printf logs an informational message.
func Printf(format string, v ...interface{}) {
	printf(format, v...)
}

// Warnf logs a recoverable but noteworthy condition — a degraded
// default being applied, a skipped command.
func Warnf(format string, v ...interface{}) {
	printf("warn: "+format, v...)
}

// Fatalf reports a fatal programming error. It does not return under
// the default configuration.
func Fatalf(format string, v ...interface{}) {
	fatalf(format, v...)
}
