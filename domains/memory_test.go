package domains

import (
	"encoding/binary"
	"testing"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source/sourcetest"
)

const gib = 1 << 30

const swapinfoEncrypted = `Device          1K-blocks     Used    Avail Capacity
/dev/ada0p3.eli   2097152   524288  1572864    25%
/dev/md99.eli     1048576        0  1048576     0%
Total             3145728   524288  2621440    17%
`

func TestSwapMemory_FreeBSD(t *testing.T) {
	fake := sourcetest.New().SetCommand(swapinfoCommand, swapinfoEncrypted)
	reg := newTestRegistry(t, fake, "freebsd")

	got := resolveAll(t, reg, SwapMemory)
	assert.Equal(t, resolver.Values{
		TotalBytes:     uint64(3145728 * 1024),
		UsedBytes:      uint64(524288 * 1024),
		AvailableBytes: uint64(2621440 * 1024),
		Capacity:       "16.67%",
		Encrypted:      true,
	}, got)
	assert.Equal(t, 1, fake.Calls(sourcetest.OpRun))
}

func TestParseSwapinfo(t *testing.T) {
	t.Run("mixed devices are not encrypted", func(t *testing.T) {
		usage, encrypted, err := parseSwapinfo("Device 1K-blocks Used Avail Capacity\n/dev/ada0p3.eli 1024 0 1024 0%\n/dev/ada1p2 1024 512 512 50%\n")
		require.NoError(t, err)
		require.NotNil(t, usage)
		assert.False(t, encrypted)
		assert.Equal(t, uint64(2048*1024), usage.total)
		assert.Equal(t, uint64(512*1024), usage.used)
	})

	t.Run("no devices", func(t *testing.T) {
		usage, _, err := parseSwapinfo("Device          1K-blocks     Used    Avail Capacity\n")
		require.NoError(t, err)
		assert.Nil(t, usage)
	})

	t.Run("malformed", func(t *testing.T) {
		_, _, err := parseSwapinfo("Device 1K-blocks Used Avail Capacity\n/dev/ada0p3 lots 0 0 0%\n")
		require.Error(t, err)
	})
}

func TestSwapMemory_FreeBSDNoSwap(t *testing.T) {
	fake := sourcetest.New().SetCommand(swapinfoCommand, "Device          1K-blocks     Used    Avail Capacity\n")
	reg := newTestRegistry(t, fake, "freebsd")

	for sub, v := range resolveAll(t, reg, SwapMemory) {
		assert.Nil(t, v, "%s", sub)
	}
}

func TestSwapMemory_CommandFailureCached(t *testing.T) {
	fake := sourcetest.New().SetCommandError(swapinfoCommand, errors.New("swapinfo: permission denied"))
	reg := newTestRegistry(t, fake, "freebsd")

	for i := 0; i < 3; i++ {
		for sub, v := range resolveAll(t, reg, SwapMemory) {
			assert.Nil(t, v, "%s", sub)
		}
	}
	assert.Equal(t, 1, fake.Calls(sourcetest.OpRun))
}

func TestSwapMemory_Linux(t *testing.T) {
	fake := sourcetest.New().SetFile("/proc/meminfo", `MemTotal:       16303480 kB
MemFree:         1187392 kB
SwapCached:            0 kB
SwapTotal:       2097148 kB
SwapFree:        1048574 kB
HugePages_Total:       0
`)
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, SwapMemory)
	assert.Equal(t, uint64(2097148*1024), got[TotalBytes])
	assert.Equal(t, uint64(1048574*1024), got[AvailableBytes])
	assert.Equal(t, uint64(1048574*1024), got[UsedBytes])
	assert.Equal(t, "50.00%", got[Capacity])
	assert.Nil(t, got[Encrypted])
}

func TestSwapMemory_LinuxMissingMeminfo(t *testing.T) {
	fake := sourcetest.New()
	reg := newTestRegistry(t, fake, "linux")

	for sub, v := range resolveAll(t, reg, SwapMemory) {
		assert.Nil(t, v, "%s", sub)
	}
	assert.Equal(t, 1, fake.Calls(sourcetest.OpReadFile))
}

func TestSwapMemory_Darwin(t *testing.T) {
	buf := make([]byte, xswUsageSize)
	binary.NativeEndian.PutUint64(buf[0:8], gib)
	binary.NativeEndian.PutUint64(buf[8:16], 768<<20)
	binary.NativeEndian.PutUint64(buf[16:24], 256<<20)
	binary.NativeEndian.PutUint32(buf[24:28], 4096)
	binary.NativeEndian.PutUint32(buf[28:32], 1)
	fake := sourcetest.New().SetSysctlRaw(swapUsageSysctl, buf)
	reg := newTestRegistry(t, fake, "darwin")

	got := resolveAll(t, reg, SwapMemory)
	assert.Equal(t, uint64(gib), got[TotalBytes])
	assert.Equal(t, uint64(256<<20), got[UsedBytes])
	assert.Equal(t, uint64(768<<20), got[AvailableBytes])
	assert.Equal(t, "25.00%", got[Capacity])
	assert.Equal(t, true, got[Encrypted])
}

func TestParseXswUsage_Short(t *testing.T) {
	_, _, err := parseXswUsage(make([]byte, 8))
	require.Error(t, err)
}

func TestSwapMemory_Gopsutil(t *testing.T) {
	fake := sourcetest.New().SetSwapMemory(&mem.SwapMemoryStat{Total: 4096, Used: 1024, Free: 3072}, nil)
	reg := newTestRegistry(t, fake, "windows")

	got := resolveAll(t, reg, SwapMemory)
	assert.Equal(t, uint64(4096), got[TotalBytes])
	assert.Equal(t, "25.00%", got[Capacity])
	assert.Nil(t, got[Encrypted])
}

func TestSystemMemory_Linux(t *testing.T) {
	fake := sourcetest.New().SetVirtualMemory(&mem.VirtualMemoryStat{Total: 8 * gib, Available: 6 * gib}, nil)
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, SystemMemory)
	assert.Equal(t, resolver.Values{
		TotalBytes:     uint64(8 * gib),
		AvailableBytes: uint64(6 * gib),
		UsedBytes:      uint64(2 * gib),
		Capacity:       "25.00%",
	}, got)
	assert.Equal(t, 0, fake.Calls(sourcetest.OpSysctl))
}

func TestSystemMemory_FreeBSD(t *testing.T) {
	fake := sourcetest.New().
		SetSysctlUint64("hw.physmem", 4*gib).
		SetVirtualMemory(&mem.VirtualMemoryStat{Total: 4 * gib, Available: 3 * gib}, nil)
	reg := newTestRegistry(t, fake, "freebsd")

	got := resolveAll(t, reg, SystemMemory)
	assert.Equal(t, uint64(4*gib), got[TotalBytes])
	assert.Equal(t, uint64(gib), got[UsedBytes])
	assert.Equal(t, "25.00%", got[Capacity])
	assert.Equal(t, 1, fake.Calls(sourcetest.OpSysctl))
}

func TestSystemMemory_SysctlFailureOnlyNilsTotal(t *testing.T) {
	fake := sourcetest.New().
		SetSysctlError("hw.memsize", errors.New("sysctl: operation not permitted")).
		SetVirtualMemory(&mem.VirtualMemoryStat{Available: 3 * gib}, nil)
	reg := newTestRegistry(t, fake, "darwin")

	got := resolveAll(t, reg, SystemMemory)
	assert.Nil(t, got[TotalBytes])
	assert.Nil(t, got[UsedBytes])
	assert.Nil(t, got[Capacity])
	assert.Equal(t, uint64(3*gib), got[AvailableBytes])
}

func TestSystemMemory_AllProbesFail(t *testing.T) {
	fake := sourcetest.New()
	reg := newTestRegistry(t, fake, "freebsd")

	for sub, v := range resolveAll(t, reg, SystemMemory) {
		assert.Nil(t, v, "%s", sub)
	}
}
