package facts

import (
	"strings"

	d "github.com/teranos/sysfacts/domains"
	"github.com/teranos/sysfacts/resolver"
)

var (
	onlyWindows = []string{"windows"}
	onlyLinux   = []string{"linux"}
	unixLike    = []string{"linux", "freebsd", "openbsd", "netbsd", "darwin"}
)

func subs(s ...resolver.SubValue) []resolver.SubValue { return s }

// Catalog returns the built-in fact definitions
func Catalog() []Definition {
	return []Definition{
		// Swap
		{Name: "memory.swap.total", Aliases: []string{"swapsize"}, Domain: d.SwapMemory,
			SubValues: subs(d.TotalBytes), Transform: humanBytes(d.TotalBytes)},
		{Name: "memory.swap.total_bytes", Domain: d.SwapMemory, SubValues: subs(d.TotalBytes)},
		{Name: "memory.swap.available", Aliases: []string{"swapfree"}, Domain: d.SwapMemory,
			SubValues: subs(d.AvailableBytes), Transform: humanBytes(d.AvailableBytes)},
		{Name: "memory.swap.available_bytes", Domain: d.SwapMemory, SubValues: subs(d.AvailableBytes)},
		{Name: "memory.swap.used", Domain: d.SwapMemory,
			SubValues: subs(d.UsedBytes), Transform: humanBytes(d.UsedBytes)},
		{Name: "memory.swap.used_bytes", Domain: d.SwapMemory, SubValues: subs(d.UsedBytes)},
		{Name: "memory.swap.capacity", Domain: d.SwapMemory, SubValues: subs(d.Capacity)},
		{Name: "memory.swap.encrypted", Aliases: []string{"swapencrypted"}, Domain: d.SwapMemory,
			SubValues: subs(d.Encrypted), Confine: []string{"freebsd", "darwin"}},

		// System memory
		{Name: "memory.system.total", Aliases: []string{"memorysize"}, Domain: d.SystemMemory,
			SubValues: subs(d.TotalBytes), Transform: humanBytes(d.TotalBytes)},
		{Name: "memory.system.total_bytes", Domain: d.SystemMemory, SubValues: subs(d.TotalBytes)},
		{Name: "memory.system.available", Aliases: []string{"memoryfree"}, Domain: d.SystemMemory,
			SubValues: subs(d.AvailableBytes), Transform: humanBytes(d.AvailableBytes)},
		{Name: "memory.system.available_bytes", Domain: d.SystemMemory, SubValues: subs(d.AvailableBytes)},
		{Name: "memory.system.used", Domain: d.SystemMemory,
			SubValues: subs(d.UsedBytes), Transform: humanBytes(d.UsedBytes)},
		{Name: "memory.system.used_bytes", Domain: d.SystemMemory, SubValues: subs(d.UsedBytes)},
		{Name: "memory.system.capacity", Domain: d.SystemMemory, SubValues: subs(d.Capacity)},

		// Windows product release
		{Name: "os.windows.edition_id", Aliases: []string{"windows_edition_id"}, Domain: d.ProductRelease,
			SubValues: subs(d.EditionID), Confine: onlyWindows},
		{Name: "os.windows.installation_type", Aliases: []string{"windows_installation_type"}, Domain: d.ProductRelease,
			SubValues: subs(d.InstallationType), Confine: onlyWindows},
		{Name: "os.windows.product_name", Aliases: []string{"windows_product_name"}, Domain: d.ProductRelease,
			SubValues: subs(d.ProductName), Confine: onlyWindows},
		{Name: "os.windows.release_id", Aliases: []string{"windows_release_id"}, Domain: d.ProductRelease,
			SubValues: subs(d.ReleaseID), Confine: onlyWindows},
		{Name: "os.windows.display_version", Aliases: []string{"windows_display_version"}, Domain: d.ProductRelease,
			SubValues: subs(d.DisplayVersion), Confine: onlyWindows},

		// Linux distribution
		{Name: "os.distro.id", Aliases: []string{"lsbdistid"}, Domain: d.OSRelease,
			SubValues: subs(d.OSID), Confine: onlyLinux},
		{Name: "os.distro.codename", Aliases: []string{"lsbdistcodename"}, Domain: d.OSRelease,
			SubValues: subs(d.OSVersionCodename), Confine: onlyLinux},
		{Name: "os.distro.description", Aliases: []string{"lsbdistdescription"}, Domain: d.OSRelease,
			SubValues: subs(d.OSPrettyName), Confine: onlyLinux},
		{Name: "os.distro.release.full", Aliases: []string{"lsbdistrelease"}, Domain: d.OSRelease,
			SubValues: subs(d.OSVersionID), Transform: versionPart(d.OSVersionID, fullVersion), Confine: onlyLinux},
		{Name: "os.distro.release.major", Aliases: []string{"lsbmajdistrelease"}, Domain: d.OSRelease,
			SubValues: subs(d.OSVersionID), Transform: versionPart(d.OSVersionID, majorVersion), Confine: onlyLinux},
		{Name: "os.distro.release.minor", Aliases: []string{"lsbminordistrelease"}, Domain: d.OSRelease,
			SubValues: subs(d.OSVersionID), Transform: versionPart(d.OSVersionID, minorVersion), Confine: onlyLinux},
		{Name: "os.name", Aliases: []string{"operatingsystem"}, Domain: d.OSRelease,
			SubValues: subs(d.OSName), Confine: onlyLinux},
		{Name: "os.family", Aliases: []string{"osfamily"}, Domain: d.OSRelease,
			SubValues: subs(d.OSIDLike, d.OSID), Transform: osFamily, Confine: onlyLinux},

		// Kernel
		{Name: "kernel", Domain: d.Uname, SubValues: subs(d.KernelName), Confine: unixLike},
		{Name: "kernelrelease", Domain: d.Uname, SubValues: subs(d.KernelRelease), Confine: unixLike},
		{Name: "kernelversion", Domain: d.Uname, SubValues: subs(d.KernelRelease),
			Transform: versionPart(d.KernelRelease, fullVersion), Confine: unixLike},
		{Name: "kernelmajversion", Domain: d.Uname, SubValues: subs(d.KernelRelease),
			Transform: versionPart(d.KernelRelease, majorMinor), Confine: unixLike},
		{Name: "os.hardware", Aliases: []string{"hardwaremodel"}, Domain: d.Uname,
			SubValues: subs(d.Machine), Confine: unixLike},

		// Processors
		{Name: "processors.count", Aliases: []string{"processorcount"}, Domain: d.Processors, SubValues: subs(d.Count)},
		{Name: "processors.physicalcount", Aliases: []string{"physicalprocessorcount"}, Domain: d.Processors,
			SubValues: subs(d.PhysicalCount)},
		{Name: "processors.models", Domain: d.Processors, SubValues: subs(d.Models)},
		{Name: "processors.speed", Domain: d.Processors, SubValues: subs(d.SpeedHz), Transform: humanHertz(d.SpeedHz)},
		{Name: "processors.isa", Aliases: []string{"hardwareisa"}, Domain: d.Processors, SubValues: subs(d.ISA)},

		// Host
		{Name: "networking.hostname", Aliases: []string{"hostname"}, Domain: d.Host, SubValues: subs(d.Hostname)},
		{Name: "system_uptime.seconds", Aliases: []string{"uptime_seconds"}, Domain: d.Host,
			SubValues: subs(d.UptimeSeconds)},
		{Name: "system_uptime.hours", Aliases: []string{"uptime_hours"}, Domain: d.Host,
			SubValues: subs(d.UptimeSeconds), Transform: uptimeIn(d.UptimeSeconds, 3600)},
		{Name: "system_uptime.days", Aliases: []string{"uptime_days"}, Domain: d.Host,
			SubValues: subs(d.UptimeSeconds), Transform: uptimeIn(d.UptimeSeconds, 86400)},
		{Name: "system_uptime.uptime", Aliases: []string{"uptime"}, Domain: d.Host,
			SubValues: subs(d.UptimeSeconds), Transform: uptimeText(d.UptimeSeconds)},
		{Name: "virtual", Domain: d.Host, SubValues: subs(d.VirtualizationSystem, d.VirtualizationRole),
			Transform: virtualSystem(d.VirtualizationSystem, d.VirtualizationRole)},
		{Name: "is_virtual", Domain: d.Host, SubValues: subs(d.VirtualizationRole),
			Transform: isGuest(d.VirtualizationRole)},
	}
}

// osFamily prefers the first ID_LIKE entry and falls back to ID
func osFamily(v resolver.Values) any {
	if like, ok := resolver.String(v[d.OSIDLike]); ok {
		if fields := strings.Fields(like); len(fields) > 0 {
			return fields[0]
		}
	}
	if id, ok := resolver.String(v[d.OSID]); ok {
		return id
	}
	return nil
}
