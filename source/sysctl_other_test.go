//go:build linux || windows

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sysfacts/errors"
)

func TestSysctl_UnsupportedWithoutBSDSysctl(t *testing.T) {
	_, err := Local(Options{}).SysctlUint64("hw.physmem")
	require.Error(t, err)
	assert.True(t, errors.IsUnsupported(err))
}
