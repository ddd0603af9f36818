package recycler

import (
	"log/slog"
	"os"
)

// logLevel controls the log level for recycler logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) or RECYCLER_DEBUG=1 sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

func init() {
	if os.Getenv("RECYCLER_DEBUG") != "" {
		logLevel.Set(slog.LevelDebug)
	}
}

// SetVerbose enables or disables verbose/debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// verbose returns true if debug logging is enabled.
func verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// defaultLogger is used by every Recycler that was not given WithLogger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetLogger replaces the logger used by recyclers created afterwards
// without WithLogger. A nil logger restores the stderr default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	}
	defaultLogger = l
}
