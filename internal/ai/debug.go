package ai

import "sync/atomic"

// debugLoggingEnabled gates decision logging. A package-level flag keeps
// the hot decision path from paying for a log-level check per turn.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables decision logging.
// Call during initialization, before battles start.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether decision logging is on.
// Use this to guard debug log calls that build attributes:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("ai decision", ...)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
