// Package logger builds the zerolog logger shared by the API server and the
// seed tool. Until Init runs, Get hands out a JSON logger on stderr so that
// startup failures (bad configuration, unreachable database) still log.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options describes the process logger.
type Options struct {
	// Service and Env are stamped on every line when set.
	Service string
	Env     string
	// Level is parsed with zerolog.ParseLevel; empty or unknown means info.
	Level string
	// Pretty switches to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu      sync.RWMutex
	current = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// New builds a logger from opts without installing it.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(parseLevel(opts.Level)).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}
	return ctx.Logger()
}

// Init builds the process logger and installs it as the one Get returns.
func Init(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := New(opts)
	mu.Lock()
	current = l
	mu.Unlock()
	return l
}

// Get returns the installed process logger.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Component returns the process logger tagged with a "component" field.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
