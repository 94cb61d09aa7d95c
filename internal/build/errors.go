package build

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrArtifactNotFound       = errors.New("artifact not found")
	ErrArtifactOutsideWorkdir = errors.New("artifact path is outside the working directory")
)

type Stage string

const (
	StageSetup     Stage = "setup"
	StagePackages  Stage = "packages"
	StageSync      Stage = "sync"
	StageSteps     Stage = "steps"
	StageArtifacts Stage = "artifacts"
)

// StageError is the error that ended a run. By the time Run returns it,
// it has already been printed.
type StageError struct {
	Stage Stage

	// What the runner was doing, e.g. "installing package 'curl'".
	Action string

	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func IsStageError(err error) bool {
	var se *StageError
	return errors.As(err, &se)
}
