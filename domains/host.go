package domains

import (
	"context"

	"github.com/teranos/sysfacts/normalize"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

// Host sub-values
const (
	Hostname             resolver.SubValue = "hostname"
	UptimeSeconds        resolver.SubValue = "uptime_seconds"
	BootTime             resolver.SubValue = "boot_time"
	VirtualizationSystem resolver.SubValue = "virtualization_system"
	VirtualizationRole   resolver.SubValue = "virtualization_role"
	Platform             resolver.SubValue = "platform"
	PlatformFamily       resolver.SubValue = "platform_family"
	PlatformVersion      resolver.SubValue = "platform_version"
)

func acquireHost(src source.Source, opts Options) resolver.AcquireFunc {
	return func(ctx context.Context) (resolver.Values, error) {
		h, err := src.HostInfo(ctx)
		if err != nil {
			return nil, err
		}

		values := resolver.Values{}
		for sub, s := range map[resolver.SubValue]string{
			Hostname:             h.Hostname,
			VirtualizationSystem: h.VirtualizationSystem,
			VirtualizationRole:   h.VirtualizationRole,
			Platform:             h.Platform,
			PlatformFamily:       h.PlatformFamily,
			PlatformVersion:      h.PlatformVersion,
		} {
			if v := normalize.TrimOrNil(s); v != nil {
				values[sub] = v
			}
		}
		values.Set(UptimeSeconds, h.Uptime, h.BootTime > 0)
		values.Set(BootTime, h.BootTime, h.BootTime > 0)
		return values, nil
	}
}
