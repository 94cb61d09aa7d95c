package logger

// Allow arbitrary fields on a log.
// Inspired by the logrus.Fields API
// https://github.com/sirupsen/logrus
type Fields map[string]string

// The pipeline stage that produced a log line.
const FieldNameStage = "stage"

// "stdout" or "stderr" for lines streamed from a build command.
const FieldNameStream = "stream"
