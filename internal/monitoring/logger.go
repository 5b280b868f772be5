// Package monitoring is the shared diagnostic log used by the aggregation and
// rendering packages. Output goes through the standard log package unless
// replaced with SetLogger.
package monitoring

import "log"

// Logf is the process-wide diagnostic logger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the logger. Passing nil mutes all diagnostics.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Component returns a logger that prefixes each message with "[name] ". The
// current Logf is looked up on every call, so SetLogger applies to loggers
// created earlier.
func Component(name string) func(format string, v ...interface{}) {
	prefix := "[" + name + "] "
	return func(format string, v ...interface{}) {
		Logf(prefix+format, v...)
	}
}
