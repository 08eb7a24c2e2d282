// Package trace wraps glog so the core packages (cpu, console) depend
// on a tiny interface instead of importing glog directly, matching the
// capability-interface style the spec's design notes prefer for anything
// that might be swapped out.
package trace

import "github.com/golang/glog"

// Logger is the trace-hook surface the core calls on unmapped reads and
// unknown opcodes. Neither call is ever on a hot path that cares about
// allocation, so a simple interface is adequate.
type Logger interface {
	Tracef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

// Glog is the default Logger, backed by github.com/golang/glog.
type Glog struct{}

func (Glog) Tracef(format string, args ...interface{}) {
	if glog.V(2) {
		glog.Infof(format, args...)
	}
}

func (Glog) Warningf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

// Default is the Logger used when a caller doesn't supply its own.
var Default Logger = Glog{}
