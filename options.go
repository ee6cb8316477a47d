package earlyalloc

import (
	"io"
	"log/slog"
)

type options struct {
	pageSize uintptr
	logger   *slog.Logger
}

// Option configures New.
type Option func(*options)

// WithPageSize sets the page-allocation granularity. It must be a non-zero
// power of two; New reports ErrInvalidPageSize otherwise.
//
// If not set, DefaultPageSize is used.
func WithPageSize(size uintptr) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// WithLogger sets the logger used for the init banner and allocation failures.
//
// If nil is passed, logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		pageSize: DefaultPageSize,
		logger:   discardLogger(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// addrAttr formats an address attribute the way boot logs print them.
func addrAttr(key string, v uintptr) slog.Attr {
	return slog.String(key, hex(v))
}
