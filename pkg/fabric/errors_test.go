package fabric

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&OpError{Op: OpOpen, Err: errors.New("no such file or directory")}, "open failed: No such file or directory"},
		{&OpError{Op: OpMmap, Err: errors.New("no such device")}, "mmap failed: No such device"},
		{&OpError{Op: OpMmap, Err: errors.New("EOF")}, "mmap failed: EOF"},
		{&OpError{Op: OpMmap, Err: errors.New("")}, "mmap failed: "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestFailureLabel(t *testing.T) {
	open := &OpError{Op: OpOpen, Err: errors.New("denied")}
	assert.Equal(t, OpOpen, FailureLabel(open))
	assert.Equal(t, OpOpen, FailureLabel(fmt.Errorf("touch: %w", open)))
	assert.Equal(t, OpOther, FailureLabel(context.Canceled))
	assert.Equal(t, "", Op(context.Canceled))
}
