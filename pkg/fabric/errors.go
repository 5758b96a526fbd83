package fabric

import (
	"errors"

	"github.com/FabricAttachedMemory/Emulation/pkg/shm"
)

// Steps a touch can fail at.
const (
	OpOpen = "open"
	OpMmap = "mmap"
	// OpOther labels failures that happened outside open and mmap, such as
	// a cancelled context.
	OpOther = "other"
)

// ErrInvalidSize is returned for non-positive region sizes.
var ErrInvalidSize = shm.ErrInvalidSize

// OpError reports the step of a touch that failed. Its message follows the
// "<op> failed: <reason>" form operators know from perror(3).
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return e.Op + " failed: " + capitalize(e.Err.Error())
}

func (e *OpError) Unwrap() error { return e.Err }

// Op returns the failed step of err, or "" when err is not an *OpError.
func Op(err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Op
	}
	return ""
}

// FailureLabel is Op(err) with OpOther standing in for errors that carry no
// step, so metric labels are never empty.
func FailureLabel(err error) string {
	if op := Op(err); op != "" {
		return op
	}
	return OpOther
}

// capitalize upper-cases the leading ASCII letter of msg. Go's errno strings
// are lower case where strerror(3) text is not.
func capitalize(msg string) string {
	if msg == "" || msg[0] < 'a' || msg[0] > 'z' {
		return msg
	}
	return string(msg[0]-'a'+'A') + msg[1:]
}

func wrapMapError(path string, err error) error {
	var se *shm.OpError
	if errors.As(err, &se) {
		return &OpError{Op: se.Op, Path: se.Path, Err: se.Err}
	}
	if errors.Is(err, shm.ErrInvalidSize) {
		return &OpError{Op: OpMmap, Path: path, Err: err}
	}
	return err
}
