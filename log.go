package keypair

import "go.uber.org/zap"

// log is the package logger.  It is disabled by default so the library stays
// silent unless the caller opts in with UseLogger.
var log = zap.NewNop()

// DisableLog disables all library log output.
func DisableLog() {
	log = zap.NewNop()
}

// UseLogger uses a specified Logger to output package logging info.  It is
// meant to be called once during application start-up, before any key pairs
// are created.
func UseLogger(logger *zap.Logger) {
	if logger == nil {
		DisableLog()
		return
	}
	log = logger.Named("keypair")
}
