package common

import (
	"errors"
	"fmt"
)

type QEPErrorCode int

const (
	// MalformedPlanInputError indicates a raw plan that is not a well-formed
	// nested operator record, e.g. a node without a "Node Type" tag.
	MalformedPlanInputError QEPErrorCode = iota
	// PlanSourceError indicates the plan source could not produce a plan,
	// either because it is unreachable or because the query was rejected.
	PlanSourceError
	// InvalidQueryError indicates a request that carries no usable query text.
	InvalidQueryError
	// DiffAlignmentError is returned by the diff engine when its position
	// counters run past the end of one of the compared plans.
	DiffAlignmentError
	// InvalidConfigError indicates a configuration file or flag that cannot be used.
	InvalidConfigError
)

func (ec QEPErrorCode) String() string {
	switch ec {
	case MalformedPlanInputError:
		return "MalformedPlanInputError"
	case PlanSourceError:
		return "PlanSourceError"
	case InvalidQueryError:
		return "InvalidQueryError"
	case DiffAlignmentError:
		return "DiffAlignmentError"
	case InvalidConfigError:
		return "InvalidConfigError"
	}
	return "unknown"
}

// Stage names the part of the pipeline that produced an error.
type Stage string

const (
	StagePlanSource Stage = "plan source"
	StageParse      Stage = "parse"
	StageBuild      Stage = "build"
	StageDiff       Stage = "diff"
	StageConfig     Stage = "config"
)

// QEPError is the error type shared by every stage of the explain/compare
// pipeline. It carries the error code and the stage that failed so that the
// request layer can map it to a single user-facing message.
type QEPError struct {
	Code      QEPErrorCode
	Stage     Stage
	ErrString string
	Err       error
}

func NewError(code QEPErrorCode, stage Stage, format string, args ...any) QEPError {
	return QEPError{Code: code, Stage: stage, ErrString: fmt.Sprintf(format, args...)}
}

// WrapError attaches a code and stage to an underlying error.
func WrapError(code QEPErrorCode, stage Stage, err error, msg string) QEPError {
	return QEPError{Code: code, Stage: stage, ErrString: msg, Err: err}
}

func (e QEPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("err: %s; stage: %s; msg: %s: %v", e.Code.String(), e.Stage, e.ErrString, e.Err)
	}
	return fmt.Sprintf("err: %s; stage: %s; msg: %s", e.Code.String(), e.Stage, e.ErrString)
}

func (e QEPError) Unwrap() error {
	return e.Err
}

// AsError extracts a QEPError from anywhere in err's chain.
func AsError(err error) (QEPError, bool) {
	var qe QEPError
	if errors.As(err, &qe) {
		return qe, true
	}
	return QEPError{}, false
}

// IsCode reports whether err carries a QEPError with the given code.
func IsCode(err error, code QEPErrorCode) bool {
	qe, ok := AsError(err)
	return ok && qe.Code == code
}
