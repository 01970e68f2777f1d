package domains

import (
	"testing"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source/sourcetest"
)

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 22.04.3 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
VERSION_CODENAME=jammy
ID=ubuntu
ID_LIKE=debian
# comment
HOME_URL="https://www.ubuntu.com/"
`

func TestOSRelease_FirstReadablePathWins(t *testing.T) {
	fake := sourcetest.New().SetFile("/usr/lib/os-release", ubuntuOSRelease)
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, OSRelease)
	assert.Equal(t, resolver.Values{
		OSID:              "ubuntu",
		OSIDLike:          "debian",
		OSName:            "Ubuntu",
		OSPrettyName:      "Ubuntu 22.04.3 LTS",
		OSVersion:         "22.04.3 LTS (Jammy Jellyfish)",
		OSVersionID:       "22.04",
		OSVersionCodename: "jammy",
	}, got)
	assert.Equal(t, 2, fake.Calls(sourcetest.OpReadFile), "/etc/os-release tried first")
}

func TestOSRelease_PartialFile(t *testing.T) {
	fake := sourcetest.New().SetFile("/etc/os-release", "ID=alpine\nVERSION_ID=3.19.1\nNAME='Alpine Linux'\nBROKEN LINE\n")
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, OSRelease)
	assert.Equal(t, "alpine", got[OSID])
	assert.Equal(t, "Alpine Linux", got[OSName])
	assert.Equal(t, "3.19.1", got[OSVersionID])
	assert.Nil(t, got[OSVersionCodename])
	assert.Nil(t, got[OSIDLike])
}

func TestOSRelease_NoFile(t *testing.T) {
	fake := sourcetest.New()
	reg := newTestRegistry(t, fake, "linux")

	for sub, v := range resolveAll(t, reg, OSRelease) {
		assert.Nil(t, v, "%s", sub)
	}
	assert.Equal(t, 2, fake.Calls(sourcetest.OpReadFile))
}

func TestUname(t *testing.T) {
	fake := sourcetest.New().SetCommand(unameCommand,
		"Linux\nweb01\n5.15.0-91-generic\n#101-Ubuntu SMP Tue Nov 14 13:30:08 UTC 2023\nx86_64\nunknown\n")
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, Uname)
	assert.Equal(t, resolver.Values{
		KernelName:    "Linux",
		NodeName:      "web01",
		KernelRelease: "5.15.0-91-generic",
		KernelVersion: "#101-Ubuntu SMP Tue Nov 14 13:30:08 UTC 2023",
		Machine:       "x86_64",
		Processor:     nil,
	}, got)
	assert.Equal(t, 1, fake.Calls(sourcetest.OpRun))
}

func TestParseUname_ShortOutput(t *testing.T) {
	got := parseUname("FreeBSD\nbsd01\n")
	assert.Equal(t, resolver.Values{KernelName: "FreeBSD", NodeName: "bsd01"}, got)
}

func TestUname_Unavailable(t *testing.T) {
	fake := sourcetest.New().SetCommandError(unameCommand, errors.NewNotFoundError("sh"))
	reg := newTestRegistry(t, fake, "windows")

	for sub, v := range resolveAll(t, reg, Uname) {
		assert.Nil(t, v, "%s", sub)
	}
}

func TestProcessors(t *testing.T) {
	fake := sourcetest.New().SetCPUs([]cpu.InfoStat{
		{ModelName: "Intel(R) Xeon(R) CPU E5-2680 v4", Mhz: 2400},
		{ModelName: "Intel(R) Xeon(R) CPU E5-2680 v4", Mhz: 2400},
	}, 2, 1, nil)
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, Processors)
	assert.Equal(t, 2, got[Count])
	assert.Equal(t, 1, got[PhysicalCount])
	assert.Equal(t, []string{"Intel(R) Xeon(R) CPU E5-2680 v4", "Intel(R) Xeon(R) CPU E5-2680 v4"}, got[Models])
	assert.Equal(t, uint64(2_400_000_000), got[SpeedHz])
	assert.Equal(t, "amd64", got[ISA])
	assert.Equal(t, 1, fake.Calls(sourcetest.OpCPUInfo))
}

func TestProcessors_AllProbesFail(t *testing.T) {
	fake := sourcetest.New()
	reg := newTestRegistry(t, fake, "linux")

	for sub, v := range resolveAll(t, reg, Processors) {
		assert.Nil(t, v, "%s", sub)
	}
}

func TestHost(t *testing.T) {
	fake := sourcetest.New().SetHostInfo(&host.InfoStat{
		Hostname:             "web01",
		Uptime:               3 * 86400,
		BootTime:             1_700_000_000,
		VirtualizationSystem: "kvm",
		VirtualizationRole:   "guest",
		Platform:             "ubuntu",
		PlatformFamily:       "debian",
		PlatformVersion:      "22.04",
	}, nil)
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, Host)
	assert.Equal(t, resolver.Values{
		Hostname:             "web01",
		UptimeSeconds:        uint64(3 * 86400),
		BootTime:             uint64(1_700_000_000),
		VirtualizationSystem: "kvm",
		VirtualizationRole:   "guest",
		Platform:             "ubuntu",
		PlatformFamily:       "debian",
		PlatformVersion:      "22.04",
	}, got)
	assert.Equal(t, 1, fake.Calls(sourcetest.OpHostInfo))
}

func TestHost_EmptyFieldsAreNil(t *testing.T) {
	fake := sourcetest.New().SetHostInfo(&host.InfoStat{Hostname: "bare"}, nil)
	reg := newTestRegistry(t, fake, "linux")

	got := resolveAll(t, reg, Host)
	assert.Equal(t, "bare", got[Hostname])
	assert.Nil(t, got[VirtualizationRole])
	assert.Nil(t, got[UptimeSeconds])
}
