package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "sysctl %s", "hw.physmem")

	assert.Contains(t, wrapped.Error(), "sysctl hw.physmem")
	assert.Contains(t, wrapped.Error(), "original")
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "run as administrator")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "run as administrator", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"unsupported direct", ErrUnsupported, IsUnsupported, true},
		{"unsupported wrapped", NewUnsupportedError("windows registry"), IsUnsupported, true},
		{"not found formatted", NewNotFoundError("value %q", "DisplayVersion"), IsNotFound, true},
		{"not found wrapping foreign error", WrapNotFound(New("no such file"), "read /etc/os-release"), IsNotFound, true},
		{"unknown sub-value wrapped", Wrapf(ErrUnknownSubValue, "%s", "swap_memory.bogus"), IsUnknownSubValue, true},
		{"nil is never a sentinel", nil, IsNotFound, false},
		{"unrelated error", New("boom"), IsUnsupported, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestNotFoundKeepsMessage(t *testing.T) {
	err := WrapNotFound(New("no such file"), "read /etc/os-release")
	assert.Contains(t, err.Error(), "read /etc/os-release")
	assert.Contains(t, err.Error(), "no such file")
}

func ExampleWrap() {
	baseErr := New("access denied")
	err := Wrap(baseErr, "failed to open registry key")
	fmt.Println(err)
	// Output: failed to open registry key: access denied
}
