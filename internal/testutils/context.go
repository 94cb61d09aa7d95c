package testutils

import (
	"context"
	"io"
	"os"

	"github.com/tilt-dev/buildhelper/pkg/logger"
)

// CtxForTest returns a context.Context suitable for use in tests (i.e. with
// a debug-level logger attached).
func CtxForTest() context.Context {
	l := logger.NewLogger(logger.DebugLvl, os.Stdout)
	return logger.WithLogger(context.Background(), l)
}

// ForkedCtxForTest returns a context.Context suitable for use in tests, with
// all log output also copied to `w`.
func ForkedCtxForTest(w io.Writer) context.Context {
	return logger.CtxWithForkedOutput(CtxForTest(), w)
}
