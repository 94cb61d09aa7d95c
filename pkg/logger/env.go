package logger

import (
	"strings"
)

// PrepareEnv returns a set of strings in the form of "key=value"
// based on a provided set of strings in the same format with additional
// entries to improve subprocess log output.
func PrepareEnv(l Logger, env []string) []string {
	supportsColor := l.SupportsColor()
	hasLines := false
	hasColumns := false
	hasForceColor := false
	hasPythonUnbuffered := false

	for _, e := range env {
		// LINES and COLUMNS are posix standards.
		// https://pubs.opengroup.org/onlinepubs/9699919799/basedefs/V1_chap08.html
		hasLines = hasLines || strings.HasPrefix(e, "LINES=")
		hasColumns = hasColumns || strings.HasPrefix(e, "COLUMNS=")

		// FORCE_COLOR is common in nodejs build tooling
		hasForceColor = hasForceColor || strings.HasPrefix(e, "FORCE_COLOR=")

		// PYTHONUNBUFFERED tells old Python versions not to buffer their output (< Python 3.7)
		// when they're not connected to a TTY.
		hasPythonUnbuffered = hasPythonUnbuffered || strings.HasPrefix(e, "PYTHONUNBUFFERED=")
	}

	if !hasLines {
		env = append(env, "LINES=24")
	}
	if !hasColumns {
		env = append(env, "COLUMNS=80")
	}
	if !hasForceColor && supportsColor {
		env = append(env, "FORCE_COLOR=1")
	}
	if !hasPythonUnbuffered {
		env = append(env, "PYTHONUNBUFFERED=1")
	}
	return env
}
