package logger

import (
	"fmt"
	"io"
)

// A logger that writes all of its messages to `write`
type funcLogger struct {
	supportsColor bool
	level         Level
	fields        Fields
	write         func(level Level, fields Fields, b []byte) error
}

var _ Logger = funcLogger{}

func NewFuncLogger(supportsColor bool, level Level, write func(level Level, fields Fields, b []byte) error) Logger {
	return funcLogger{supportsColor: supportsColor, level: level, write: write}
}

func (l funcLogger) Level() Level {
	return l.level
}

func (l funcLogger) Debugf(format string, a ...interface{}) {
	l.WriteString(DebugLvl, fmt.Sprintf(format+"\n", a...))
}

func (l funcLogger) Verbosef(format string, a ...interface{}) {
	l.WriteString(VerboseLvl, fmt.Sprintf(format+"\n", a...))
}

func (l funcLogger) Infof(format string, a ...interface{}) {
	l.WriteString(InfoLvl, fmt.Sprintf(format+"\n", a...))
}

func (l funcLogger) Warnf(format string, a ...interface{}) {
	l.WriteString(WarnLvl, Yellow(l).Sprintf(format, a...)+"\n")
}

func (l funcLogger) Errorf(format string, a ...interface{}) {
	l.WriteString(ErrorLvl, Red(l).Sprintf(format, a...)+"\n")
}

func (l funcLogger) Write(level Level, bytes []byte) {
	if !l.level.ShouldDisplay(level) {
		return
	}
	_ = l.write(level, l.fields, bytes)
}

func (l funcLogger) WriteString(level Level, s string) {
	l.Write(level, []byte(s))
}

type FuncLoggerWriter struct {
	l     funcLogger
	level Level
}

var _ io.Writer = FuncLoggerWriter{}

func (fw FuncLoggerWriter) Write(b []byte) (int, error) {
	if !fw.l.level.ShouldDisplay(fw.level) {
		return len(b), nil
	}
	return len(b), fw.l.write(fw.level, fw.l.fields, b)
}

func (l funcLogger) Writer(level Level) io.Writer {
	return FuncLoggerWriter{l, level}
}

func (l funcLogger) SupportsColor() bool {
	return l.supportsColor
}

func (l funcLogger) WithFields(fields Fields) Logger {
	if len(fields) == 0 {
		return l
	}

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	l.fields = merged
	return l
}
