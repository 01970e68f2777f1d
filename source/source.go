// Package source provides the raw OS data adapters that domain resolvers
// acquire from: the Windows registry, sysctl, plain files, external commands
// and gopsutil probes.
//
// Adapters never cache. Every call goes to the operating system and may
// fail; resolvers decide what a failure means for their domain.
//
// Capabilities a platform lacks return an error wrapping
// errors.ErrUnsupported, so a resolver written against Source works
// unchanged on every OS.
package source

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Key is an open registry key. It must be closed on every path.
type Key interface {
	// ValueNames lists the names of all values stored under the key
	ValueNames() ([]string, error)
	// StringValue reads a string value; a missing value wraps errors.ErrNotFound
	StringValue(name string) (string, error)
	Close() error
}

// Registry opens keys below HKEY_LOCAL_MACHINE
type Registry interface {
	OpenKey(path string) (Key, error)
}

// Sysctl reads kernel state by name
type Sysctl interface {
	SysctlRaw(name string) ([]byte, error)
	SysctlUint64(name string) (uint64, error)
}

// Files reads whole files; a missing file wraps errors.ErrNotFound
type Files interface {
	ReadFile(path string) ([]byte, error)
}

// Commands runs an external command line and returns its stdout
type Commands interface {
	Run(ctx context.Context, commandLine string) (string, error)
}

// Stats exposes gopsutil probes
type Stats interface {
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error)
	HostInfo(ctx context.Context) (*host.InfoStat, error)
	CPUInfo(ctx context.Context) ([]cpu.InfoStat, error)
	CPUCounts(ctx context.Context, logical bool) (int, error)
}

// Source is the full system data capability handed to domain resolvers
type Source interface {
	Registry
	Sysctl
	Files
	Commands
	Stats
}

// Options configures the local Source
type Options struct {
	// CommandTimeout bounds every external command. Zero means the caller's
	// context is the only bound.
	CommandTimeout time.Duration
}
