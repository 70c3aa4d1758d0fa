package memo

import "log/slog"

// nopLogger returns a logger that discards every record. Used when no
// logger is configured so engine code can log unconditionally.
func nopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
