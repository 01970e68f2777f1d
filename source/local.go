package source

import (
	"bytes"
	"context"
	"encoding/binary"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/teranos/sysfacts/errors"
)

// waitDelay bounds how long Run waits for output pipes after the command
// is killed, so a grandchild holding stdout cannot stall an acquisition.
const waitDelay = time.Second

type local struct {
	commandTimeout time.Duration
}

// Local returns the Source for the running operating system
func Local(opts Options) Source {
	return &local{commandTimeout: opts.CommandTimeout}
}

func (l *local) OpenKey(path string) (Key, error) {
	return openKey(path)
}

func (l *local) SysctlRaw(name string) ([]byte, error) {
	return sysctlRaw(name)
}

func (l *local) SysctlUint64(name string) (uint64, error) {
	buf, err := sysctlRaw(name)
	if err != nil {
		return 0, err
	}
	return DecodeUint(buf)
}

func (l *local) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapNotFound(err, "read file")
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}

func (l *local) Run(ctx context.Context, commandLine string) (string, error) {
	args, err := shellquote.Split(commandLine)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse command %q", commandLine)
	}
	if len(args) == 0 {
		return "", errors.Newf("empty command %q", commandLine)
	}

	if l.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.commandTimeout)
		defer cancel()
	}

	path, err := exec.LookPath(args[0])
	if err != nil {
		return "", errors.WrapNotFound(err, "look up "+args[0])
	}

	cmd := exec.CommandContext(ctx, path, args[1:]...)
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", errors.Wrapf(errors.ErrTimeout, "command %q", commandLine)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errors.WithDetail(err, msg)
		}
		return "", errors.Wrapf(err, "command %q failed", commandLine)
	}
	return string(out), nil
}

func (l *local) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get memory stats")
	}
	return v, nil
}

func (l *local) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	s, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get swap stats")
	}
	return s, nil
}

func (l *local) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	h, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get host info")
	}
	return h, nil
}

func (l *local) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	info, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cpu info")
	}
	return info, nil
}

func (l *local) CPUCounts(ctx context.Context, logical bool) (int, error) {
	n, err := cpu.CountsWithContext(ctx, logical)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count cpus")
	}
	return n, nil
}

// DecodeUint parses a sysctl buffer holding a native-endian unsigned
// integer of 4 or 8 bytes.
func DecodeUint(buf []byte) (uint64, error) {
	switch len(buf) {
	case 4:
		return uint64(binary.NativeEndian.Uint32(buf)), nil
	case 8:
		return binary.NativeEndian.Uint64(buf), nil
	default:
		return 0, errors.Newf("unexpected sysctl integer width %d", len(buf))
	}
}
