package logger

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger with better controls for levels and colors.
//
// Our loggers serve both as traditional loggers (where each call to Infof()
// is a discrete log entry) and as Writers (where each call to Write() may be
// part of a larger output stream, such as a build command's stdout, and may
// not end in a newline).
//
// Discrete messages (like Infof) append a newline to the string before
// passing it to Write().
type Logger interface {
	// log information that is likely to only be of interest to buildhelper developers
	Debugf(format string, a ...interface{})

	// log information that an operator might not want to see on every run, but that they might find
	// useful when debugging a project definition
	Verbosef(format string, a ...interface{})

	// log information that we always want to show
	Infof(format string, a ...interface{})

	// Warnings that don't stop the build.
	Warnf(format string, a ...interface{})

	// Errors that halt the build.
	Errorf(format string, a ...interface{})

	Write(level Level, bytes []byte)

	// gets an io.Writer that filters to the specified level for, e.g., passing to a subprocess
	Writer(level Level) io.Writer

	Level() Level

	SupportsColor() bool

	WithFields(fields Fields) Logger
}

type LogHandler interface {
	Write(level Level, fields Fields, bytes []byte) error
}

type Level struct {
	id       int32
	severity int32
}

func (l Level) String() string {
	switch l.id {
	case DebugLvl.id:
		return "debug"
	case VerboseLvl.id:
		return "verbose"
	case InfoLvl.id:
		return "info"
	case WarnLvl.id:
		return "warn"
	case ErrorLvl.id:
		return "error"
	}
	return "none"
}

// If l is the logger level, determine if we should display
// logs of the given severity.
func (l Level) ShouldDisplay(log Level) bool {
	return l.severity <= log.severity
}

func (l Level) AsSevereAs(log Level) bool {
	return l.severity >= log.severity
}

var (
	NoneLvl    = Level{id: 0, severity: 0}
	DebugLvl   = Level{id: 3, severity: 100}
	VerboseLvl = Level{id: 2, severity: 200}
	InfoLvl    = Level{id: 1, severity: 300}
	WarnLvl    = Level{id: 4, severity: 400}
	ErrorLvl   = Level{id: 5, severity: 500}
)

type loggerContextKey struct{}

func Get(ctx context.Context) Logger {
	val := ctx.Value(loggerContextKey{})

	if val != nil {
		return val.(Logger)
	}

	// No logger found in context, something is wrong.
	panic("Called logger.Get(ctx) on a context with no logger attached!")
}

func NewLogger(minLevel Level, writer io.Writer) Logger {
	return NewFuncLogger(SupportsColor(writer), minLevel, func(level Level, fields Fields, bytes []byte) error {
		_, err := writer.Write(bytes)
		return err
	})
}

// SupportsColor reports whether escape codes written to w will be rendered.
// Writers that aren't files are assumed to support color.
func SupportsColor(w io.Writer) bool {
	// adapted from fatih/color
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	file, isFile := w.(*os.File)
	if !isFile {
		return true
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

func getColor(l Logger, c color.Attribute) *color.Color {
	color := color.New(c)
	if !l.SupportsColor() {
		color.DisableColor()
	}
	return color
}

func Cyan(l Logger) *color.Color   { return getColor(l, color.FgCyan) }
func Yellow(l Logger) *color.Color { return getColor(l, color.FgYellow) }
func Green(l Logger) *color.Color  { return getColor(l, color.FgGreen) }
func Red(l Logger) *color.Color    { return getColor(l, color.FgRed) }

func CtxWithLogHandler(ctx context.Context, handler LogHandler) context.Context {
	original := Get(ctx)
	newLogger := NewFuncLogger(original.SupportsColor(), original.Level(), handler.Write)
	return WithLogger(ctx, newLogger)
}

// Returns a context containing a logger that forks all of its output
// to both the parent context's logger and to the given `io.Writer`
func CtxWithForkedOutput(ctx context.Context, writer io.Writer) context.Context {
	l := Get(ctx)

	write := func(level Level, fields Fields, b []byte) error {
		l.WithFields(fields).Write(level, b)
		if l.Level().ShouldDisplay(level) {
			b = append([]byte{}, b...)
			_, err := writer.Write(b)
			if err != nil {
				return err
			}
		}
		return nil
	}

	forkedLogger := NewFuncLogger(l.SupportsColor(), l.Level(), write)
	return WithLogger(ctx, forkedLogger)
}
