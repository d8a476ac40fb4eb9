// Package logging configures structured logging for the student record
// manager and provides context propagation helpers.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Options configures the logger.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is "json" or "text".
	Format string

	// Output defaults to stderr so log lines never interleave with the
	// interactive menu on stdout.
	Output io.Writer
}

// Init builds the application logger from the given options.
func Init(opts Options) *logrus.Logger {
	log := logrus.New()

	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	log.SetOutput(opts.Output)

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// WithContext returns a new context with the logger entry attached.
func WithContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// Logger retrieves the logger entry from context, or a default entry.
func Logger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
