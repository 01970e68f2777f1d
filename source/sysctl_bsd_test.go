//go:build freebsd || darwin

package source

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sysfacts/errors"
)

func TestSysctlUint64_PhysicalMemory(t *testing.T) {
	name := "hw.physmem"
	if runtime.GOOS == "darwin" {
		name = "hw.memsize"
	}

	total, err := Local(Options{}).SysctlUint64(name)
	require.NoError(t, err)
	assert.Greater(t, total, uint64(0))

	t.Logf("%s = %d bytes (%.2f GB)", name, total, float64(total)/1024/1024/1024)
}

func TestSysctlRaw_UnknownName(t *testing.T) {
	_, err := Local(Options{}).SysctlRaw("hw.definitely_not_here")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
