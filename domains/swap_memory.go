package domains

import (
	"bufio"
	"context"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/normalize"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

const (
	swapinfoCommand = "swapinfo -k"
	swapUsageSysctl = "vm.swapusage"
)

type memoryUsage struct {
	total     uint64
	used      uint64
	available uint64
}

func (m memoryUsage) values() resolver.Values {
	return resolver.Values{
		TotalBytes:     m.total,
		UsedBytes:      m.used,
		AvailableBytes: m.available,
		Capacity:       normalize.Percent(m.used, m.total),
	}
}

func acquireSwapMemory(src source.Source, opts Options) resolver.AcquireFunc {
	return func(ctx context.Context) (resolver.Values, error) {
		switch opts.GOOS {
		case "freebsd":
			out, err := src.Run(ctx, swapinfoCommand)
			if err != nil {
				return nil, err
			}
			usage, encrypted, err := parseSwapinfo(out)
			if err != nil {
				return nil, err
			}
			if usage == nil {
				// No swap devices configured
				return resolver.Values{}, nil
			}
			values := usage.values()
			values[Encrypted] = encrypted
			return values, nil

		case "darwin":
			buf, err := src.SysctlRaw(swapUsageSysctl)
			if err != nil {
				return nil, err
			}
			usage, encrypted, err := parseXswUsage(buf)
			if err != nil {
				return nil, err
			}
			values := usage.values()
			values[Encrypted] = encrypted
			return values, nil

		case "linux":
			content, err := src.ReadFile(opts.MeminfoPath)
			if err != nil {
				return nil, err
			}
			info, err := parseMeminfo(string(content))
			if err != nil {
				return nil, err
			}
			total, okTotal := info["SwapTotal"]
			free, okFree := info["SwapFree"]
			if !okTotal || !okFree {
				return nil, errors.Newf("%s has no swap totals", opts.MeminfoPath)
			}
			return memoryUsage{total: total, used: total - free, available: free}.values(), nil

		default:
			s, err := src.SwapMemory(ctx)
			if err != nil {
				return nil, err
			}
			return memoryUsage{total: s.Total, used: s.Used, available: s.Free}.values(), nil
		}
	}
}

// parseSwapinfo sums the devices listed by `swapinfo -k`. It returns a nil
// usage when no device is listed. Swap counts as encrypted only when every
// device is a GELI (.eli) provider.
func parseSwapinfo(out string) (*memoryUsage, bool, error) {
	var (
		usage     memoryUsage
		devices   int
		encrypted = true
	)

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] == "Device" || fields[0] == "Total" {
			continue
		}
		if len(fields) < 4 {
			return nil, false, errors.Newf("malformed swapinfo line %q", scanner.Text())
		}

		var kb [3]uint64
		for i := range kb {
			n, err := strconv.ParseUint(fields[i+1], 10, 64)
			if err != nil {
				return nil, false, errors.Wrapf(err, "malformed swapinfo line %q", scanner.Text())
			}
			kb[i] = n
		}
		usage.total += kb[0] * 1024
		usage.used += kb[1] * 1024
		usage.available += kb[2] * 1024
		encrypted = encrypted && strings.HasSuffix(fields[0], ".eli")
		devices++
	}
	if err := scanner.Err(); err != nil {
		return nil, false, errors.Wrap(err, "failed to read swapinfo output")
	}

	if devices == 0 {
		return nil, false, nil
	}
	return &usage, encrypted, nil
}

// xswUsageSize is sizeof(struct xsw_usage): three uint64 counters, the page
// size and the encrypted flag.
const xswUsageSize = 32

// parseXswUsage decodes the struct xsw_usage returned for vm.swapusage
func parseXswUsage(buf []byte) (memoryUsage, bool, error) {
	if len(buf) < xswUsageSize {
		return memoryUsage{}, false, errors.Newf("unexpected %s size %d", swapUsageSysctl, len(buf))
	}
	total := binary.NativeEndian.Uint64(buf[0:8])
	avail := binary.NativeEndian.Uint64(buf[8:16])
	used := binary.NativeEndian.Uint64(buf[16:24])
	encrypted := binary.NativeEndian.Uint32(buf[28:32]) != 0
	return memoryUsage{total: total, used: used, available: avail}, encrypted, nil
}

// parseMeminfo reads /proc/meminfo style "Key:   123 kB" lines into bytes
func parseMeminfo(content string) (map[string]uint64, error) {
	info := make(map[string]uint64)
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		if len(fields) > 1 && fields[1] == "kB" {
			n *= 1024
		}
		info[strings.TrimSpace(key)] = n
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read meminfo")
	}
	if len(info) == 0 {
		return nil, errors.New("meminfo has no entries")
	}
	return info, nil
}
