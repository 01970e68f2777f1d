// Package sourcetest provides an in-memory source.Source for resolver tests.
//
// Every adapter call is counted so tests can assert how often the OS would
// have been hit, and registry handles are tracked so tests can assert they
// were released.
package sourcetest

import (
	"context"
	"encoding/binary"
	"sort"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/source"
)

// Operation names accepted by Fake.Calls
const (
	OpOpenKey       = "OpenKey"
	OpValueNames    = "ValueNames"
	OpStringValue   = "StringValue"
	OpSysctl        = "Sysctl"
	OpReadFile      = "ReadFile"
	OpRun           = "Run"
	OpVirtualMemory = "VirtualMemory"
	OpSwapMemory    = "SwapMemory"
	OpHostInfo      = "HostInfo"
	OpCPUInfo       = "CPUInfo"
	OpCPUCounts     = "CPUCounts"
)

// Fake is a configurable source.Source. Zero-valued capabilities behave as
// absent: registry keys, sysctls, files and commands report not found and
// gopsutil probes report ErrUnsupported.
type Fake struct {
	mu sync.Mutex

	keys        map[string]map[string]string
	keyErrors   map[string]error
	listErrors  map[string]error
	valueErrors map[string]error
	sysctls     map[string][]byte
	sysctlErrs  map[string]error
	files       map[string]string
	fileErrs    map[string]error
	commands    map[string]string
	commandErrs map[string]error

	virtual     *mem.VirtualMemoryStat
	virtualErr  error
	swap        *mem.SwapMemoryStat
	swapErr     error
	host        *host.InfoStat
	hostErr     error
	cpus        []cpu.InfoStat
	cpuErr      error
	logical     int
	physical    int
	countErr    error
	statsLoaded bool

	calls       map[string]int
	openHandles int
	closed      int

	// OnRun, when set, is called with the context of every Run call before
	// the canned output is returned.
	OnRun func(ctx context.Context, commandLine string) error
}

var _ source.Source = (*Fake)(nil)

// New returns an empty Fake
func New() *Fake {
	return &Fake{
		keys:        make(map[string]map[string]string),
		keyErrors:   make(map[string]error),
		listErrors:  make(map[string]error),
		valueErrors: make(map[string]error),
		sysctls:     make(map[string][]byte),
		sysctlErrs:  make(map[string]error),
		files:       make(map[string]string),
		fileErrs:    make(map[string]error),
		commands:    make(map[string]string),
		commandErrs: make(map[string]error),
		calls:       make(map[string]int),
	}
}

// SetRegistryValue stores a string value under path\name
func (f *Fake) SetRegistryValue(path, name, value string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[path] == nil {
		f.keys[path] = make(map[string]string)
	}
	f.keys[path][name] = value
	return f
}

// SetRegistryKeyError makes OpenKey(path) fail with err
func (f *Fake) SetRegistryKeyError(path string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyErrors[path] = err
	return f
}

// SetRegistryListError lets OpenKey(path) succeed but makes listing its
// value names fail with err
func (f *Fake) SetRegistryListError(path string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[path] == nil {
		f.keys[path] = make(map[string]string)
	}
	f.listErrors[path] = err
	return f
}

// SetRegistryValueError lists name under path but makes reading it fail
func (f *Fake) SetRegistryValueError(path, name string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[path] == nil {
		f.keys[path] = make(map[string]string)
	}
	f.keys[path][name] = ""
	f.valueErrors[path+`\`+name] = err
	return f
}

// SetSysctlUint64 stores an 8-byte native-endian sysctl value
func (f *Fake) SetSysctlUint64(name string, v uint64) *Fake {
	buf := make([]byte, 8)
	binary.NativeEndian.PutUint64(buf, v)
	return f.SetSysctlRaw(name, buf)
}

// SetSysctlRaw stores a raw sysctl buffer
func (f *Fake) SetSysctlRaw(name string, buf []byte) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sysctls[name] = buf
	return f
}

// SetSysctlError makes sysctl name fail with err
func (f *Fake) SetSysctlError(name string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sysctlErrs[name] = err
	return f
}

// SetFile stores file content
func (f *Fake) SetFile(path, content string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
	return f
}

// SetFileError makes reading path fail with err
func (f *Fake) SetFileError(path string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fileErrs[path] = err
	return f
}

// SetCommand stores the stdout of a command line
func (f *Fake) SetCommand(commandLine, stdout string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands[commandLine] = stdout
	return f
}

// SetCommandError makes a command line fail with err
func (f *Fake) SetCommandError(commandLine string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commandErrs[commandLine] = err
	return f
}

// SetVirtualMemory configures the gopsutil virtual memory probe
func (f *Fake) SetVirtualMemory(v *mem.VirtualMemoryStat, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.virtual, f.virtualErr = v, err
	return f
}

// SetSwapMemory configures the gopsutil swap probe
func (f *Fake) SetSwapMemory(s *mem.SwapMemoryStat, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swap, f.swapErr = s, err
	return f
}

// SetHostInfo configures the gopsutil host probe
func (f *Fake) SetHostInfo(h *host.InfoStat, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.host, f.hostErr = h, err
	return f
}

// SetCPUs configures the gopsutil cpu probes
func (f *Fake) SetCPUs(info []cpu.InfoStat, logical, physical int, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cpus, f.logical, f.physical = info, logical, physical
	f.cpuErr, f.countErr = err, err
	f.statsLoaded = true
	return f
}

// Calls returns how many times op was invoked
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the number of adapter calls of any kind
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// OpenHandles returns registry keys opened and not yet closed
func (f *Fake) OpenHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.openHandles
}

// ClosedHandles returns how many registry keys were closed
func (f *Fake) ClosedHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fake) record(op string) {
	f.calls[op]++
}

func (f *Fake) OpenKey(path string) (source.Key, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpOpenKey)

	if err := f.keyErrors[path]; err != nil {
		return nil, err
	}
	values, ok := f.keys[path]
	if !ok {
		return nil, errors.NewNotFoundError("registry key %s", path)
	}
	f.openHandles++
	return &fakeKey{fake: f, path: path, values: values}, nil
}

func (f *Fake) SysctlRaw(name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpSysctl)

	if err := f.sysctlErrs[name]; err != nil {
		return nil, err
	}
	buf, ok := f.sysctls[name]
	if !ok {
		return nil, errors.NewNotFoundError("sysctl %s", name)
	}
	return buf, nil
}

func (f *Fake) SysctlUint64(name string) (uint64, error) {
	buf, err := f.SysctlRaw(name)
	if err != nil {
		return 0, err
	}
	return source.DecodeUint(buf)
}

func (f *Fake) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpReadFile)

	if err := f.fileErrs[path]; err != nil {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, errors.NewNotFoundError("file %s", path)
	}
	return []byte(content), nil
}

func (f *Fake) Run(ctx context.Context, commandLine string) (string, error) {
	f.mu.Lock()
	f.record(OpRun)
	hook := f.OnRun
	out, ok := f.commands[commandLine]
	err := f.commandErrs[commandLine]
	f.mu.Unlock()

	if hook != nil {
		if hookErr := hook(ctx, commandLine); hookErr != nil {
			return "", hookErr
		}
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.NewNotFoundError("command %q", commandLine)
	}
	return out, nil
}

func (f *Fake) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpVirtualMemory)
	if f.virtual == nil && f.virtualErr == nil {
		return nil, errors.NewUnsupportedError("virtual memory")
	}
	return f.virtual, f.virtualErr
}

func (f *Fake) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpSwapMemory)
	if f.swap == nil && f.swapErr == nil {
		return nil, errors.NewUnsupportedError("swap memory")
	}
	return f.swap, f.swapErr
}

func (f *Fake) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpHostInfo)
	if f.host == nil && f.hostErr == nil {
		return nil, errors.NewUnsupportedError("host info")
	}
	return f.host, f.hostErr
}

func (f *Fake) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpCPUInfo)
	if !f.statsLoaded {
		return nil, errors.NewUnsupportedError("cpu info")
	}
	return f.cpus, f.cpuErr
}

func (f *Fake) CPUCounts(ctx context.Context, logical bool) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(OpCPUCounts)
	if !f.statsLoaded {
		return 0, errors.NewUnsupportedError("cpu counts")
	}
	if f.countErr != nil {
		return 0, f.countErr
	}
	if logical {
		return f.logical, nil
	}
	return f.physical, nil
}

type fakeKey struct {
	fake   *Fake
	path   string
	values map[string]string
	closed bool
}

func (k *fakeKey) ValueNames() ([]string, error) {
	k.fake.mu.Lock()
	defer k.fake.mu.Unlock()
	k.fake.record(OpValueNames)

	if err := k.fake.listErrors[k.path]; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(k.values))
	for name := range k.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (k *fakeKey) StringValue(name string) (string, error) {
	k.fake.mu.Lock()
	defer k.fake.mu.Unlock()
	k.fake.record(OpStringValue)

	if err := k.fake.valueErrors[k.path+`\`+name]; err != nil {
		return "", err
	}
	v, ok := k.values[name]
	if !ok {
		return "", errors.NewNotFoundError("registry value %s\\%s", k.path, name)
	}
	return v, nil
}

func (k *fakeKey) Close() error {
	k.fake.mu.Lock()
	defer k.fake.mu.Unlock()
	if k.closed {
		return errors.New("registry key closed twice")
	}
	k.closed = true
	k.fake.openHandles--
	k.fake.closed++
	return nil
}
