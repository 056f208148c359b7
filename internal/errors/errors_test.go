package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  &ExitError{Err: New("boom"), Code: ExitUser},
			want: "boom",
		},
		{
			name: "nil underlying error",
			err:  &ExitError{Code: ExitSystem},
			want: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	inner := New("inner")
	err := NewUserError(inner, "")
	assert.True(t, Is(err, inner))
}

func TestNewUserError(t *testing.T) {
	err := NewUserError(New("bad flag"), "run with --help")
	require.NotNil(t, err)
	assert.Equal(t, ExitUser, err.Code)
	assert.Equal(t, "run with --help", err.Suggestion)
}

func TestNewSystemError(t *testing.T) {
	err := NewSystemError(New("disk full"), "")
	require.NotNil(t, err)
	assert.Equal(t, ExitSystem, err.Code)
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(New("invalid yaml"), "/home/user/prism.yaml")
	require.NotNil(t, err)
	assert.Equal(t, ExitUser, err.Code)
	assert.Contains(t, err.Suggestion, "/home/user/prism.yaml")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "user error", err: NewUserError(New("x"), ""), want: ExitUser},
		{name: "system error", err: NewSystemError(New("x"), ""), want: ExitSystem},
		{name: "wrapped exit error", err: Wrap(NewUserError(New("x"), ""), "context"), want: ExitUser},
		{name: "plain error", err: New("x"), want: ExitSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
