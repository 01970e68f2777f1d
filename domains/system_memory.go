package domains

import (
	"context"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/logger"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

// physicalMemorySysctl names the OID holding installed memory, per OS
var physicalMemorySysctl = map[string]string{
	"freebsd": "hw.physmem",
	"darwin":  "hw.memsize",
}

func acquireSystemMemory(src source.Source, opts Options) resolver.AcquireFunc {
	log := opts.Logger.Named(SystemMemory.String())

	return func(ctx context.Context) (resolver.Values, error) {
		oid, viaSysctl := physicalMemorySysctl[opts.GOOS]
		if !viaSysctl {
			v, err := src.VirtualMemory(ctx)
			if err != nil {
				return nil, err
			}
			return memoryUsage{total: v.Total, used: v.Total - v.Available, available: v.Available}.values(), nil
		}

		values := resolver.Values{}
		total, totalErr := src.SysctlUint64(oid)
		if totalErr != nil {
			log.Debugw("Physical memory sysctl failed", logger.FieldSource, oid, logger.FieldError, totalErr.Error())
		} else {
			values[TotalBytes] = total
		}

		v, statErr := src.VirtualMemory(ctx)
		if statErr != nil {
			log.Debugw("Virtual memory probe failed", logger.FieldError, statErr.Error())
		} else {
			values[AvailableBytes] = v.Available
		}

		if totalErr != nil && statErr != nil {
			return nil, errors.CombineErrors(totalErr, statErr)
		}
		if totalErr == nil && statErr == nil && v.Available <= total {
			full := memoryUsage{total: total, used: total - v.Available, available: v.Available}.values()
			return full, nil
		}
		return values, nil
	}
}
