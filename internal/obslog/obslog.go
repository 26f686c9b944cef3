// Package obslog is the package-level diagnostic logger shared by every
// pipeline stage. It defaults to the stdlib log package but may be
// replaced wholesale by a caller that wants structured or redirected
// output.
package obslog

import "log"

// Logf prints progress messages. Defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// Warnf prints recoverable-condition messages (spec.md §7 "warning" kind):
// kernel promotion, window enlargement, missing header keys, skipped
// tiles. Defaults to log.Printf with a "warning: " prefix.
var Warnf func(format string, v ...interface{}) = func(format string, v ...interface{}) {
	log.Printf("warning: "+format, v...)
}

// Debugf prints verbosity-gated diagnostic messages. No-op by default.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetWarner replaces Warnf. Passing nil installs a no-op warner.
func SetWarner(f func(format string, v ...interface{})) {
	if f == nil {
		Warnf = func(string, ...interface{}) {}
		return
	}
	Warnf = f
}

// SetDebugger replaces Debugf. Passing nil installs a no-op debugger.
func SetDebugger(f func(format string, v ...interface{})) {
	if f == nil {
		Debugf = func(string, ...interface{}) {}
		return
	}
	Debugf = f
}
