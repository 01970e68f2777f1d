// Package domains defines the closed set of fact domains and the registry
// that owns one resolver per domain.
//
// Each domain pairs a fixed list of sub-values with one acquisition
// procedure over a source.Source. Acquisitions never call into another
// domain's resolver.
package domains

import (
	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/resolver"
)

// Domain identifies one group of facts sharing an acquisition
type Domain int

const (
	ProductRelease Domain = iota
	SwapMemory
	SystemMemory
	OSRelease
	Uname
	Processors
	Host

	domainCount
)

var domainNames = [domainCount]string{
	ProductRelease: "product_release",
	SwapMemory:     "swap_memory",
	SystemMemory:   "system_memory",
	OSRelease:      "os_release",
	Uname:          "uname",
	Processors:     "processors",
	Host:           "host",
}

// Sub-values shared by the memory domains
const (
	TotalBytes     resolver.SubValue = "total_bytes"
	UsedBytes      resolver.SubValue = "used_bytes"
	AvailableBytes resolver.SubValue = "available_bytes"
	Capacity       resolver.SubValue = "capacity"
	Encrypted      resolver.SubValue = "encrypted"
)

var subValues = [domainCount][]resolver.SubValue{
	ProductRelease: {EditionID, InstallationType, ProductName, ReleaseID, DisplayVersion},
	SwapMemory:     {TotalBytes, UsedBytes, AvailableBytes, Capacity, Encrypted},
	SystemMemory:   {TotalBytes, AvailableBytes, UsedBytes, Capacity},
	OSRelease:      {OSID, OSIDLike, OSName, OSPrettyName, OSVersion, OSVersionID, OSVersionCodename},
	Uname:          {KernelName, NodeName, KernelRelease, KernelVersion, Machine, Processor},
	Processors:     {Count, PhysicalCount, Models, SpeedHz, ISA},
	Host: {Hostname, UptimeSeconds, BootTime, VirtualizationSystem, VirtualizationRole,
		Platform, PlatformFamily, PlatformVersion},
}

// String returns the domain's stable name
func (d Domain) String() string {
	if !d.valid() {
		return "unknown"
	}
	return domainNames[d]
}

// SubValues returns the sub-values the domain declares
func (d Domain) SubValues() []resolver.SubValue {
	if !d.valid() {
		return nil
	}
	return append([]resolver.SubValue(nil), subValues[d]...)
}

func (d Domain) valid() bool {
	return d >= 0 && d < domainCount
}

// All returns every domain in declaration order
func All() []Domain {
	all := make([]Domain, 0, domainCount)
	for d := Domain(0); d < domainCount; d++ {
		all = append(all, d)
	}
	return all
}

// Parse maps a domain name back to its Domain
func Parse(name string) (Domain, error) {
	for d, n := range domainNames {
		if n == name {
			return Domain(d), nil
		}
	}
	return 0, errors.Wrapf(errors.ErrUnknownDomain, "%q", name)
}
