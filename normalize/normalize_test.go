package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0.00 B"},
		{1, "1.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048575, "1.00 MB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
		{2147483648, "2.00 GB"},
		{4294967296 + 536870912, "4.50 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 62, "4.00 EB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bytes(tt.in), "Bytes(%d)", tt.in)
	}
}

func TestHertz(t *testing.T) {
	assert.Equal(t, "0.00 Hz", Hertz(0))
	assert.Equal(t, "2.40 GHz", Hertz(2_400_000_000))
	assert.Equal(t, "800.00 MHz", Hertz(800_000_000))
	assert.Equal(t, "1.00 GHz", Hertz(999_999_999))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.00%", Percent(5, 0))
	assert.Equal(t, "25.00%", Percent(1024, 4096))
	assert.Equal(t, "33.33%", Percent(1, 3))
}

func TestVersion(t *testing.T) {
	tests := []struct {
		in     string
		want   VersionParts
		wantOK bool
	}{
		{"5.15.0-91-generic", VersionParts{Full: "5.15.0", Major: "5", Minor: "15", Patch: "0", Suffix: "91-generic"}, true},
		{"10.0.17763", VersionParts{Full: "10.0.17763", Major: "10", Minor: "0", Patch: "17763"}, true},
		{"v1.2.3", VersionParts{Full: "1.2.3", Major: "1", Minor: "2", Patch: "3"}, true},
		{"22.04", VersionParts{Full: "22.04", Major: "22", Minor: "04"}, true},
		{"12.3-RELEASE-p5", VersionParts{Full: "12.3", Major: "12", Minor: "3", Suffix: "RELEASE-p5"}, true},
		{"  11 ", VersionParts{Full: "11", Major: "11"}, true},
		{"21H2", VersionParts{Full: "21H2"}, false},
		{"bookworm/sid", VersionParts{Full: "bookworm/sid"}, false},
		{"", VersionParts{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Version(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionParts_MajorMinor(t *testing.T) {
	v, _ := Version("5.15.0-91-generic")
	assert.Equal(t, "5.15", v.MajorMinor())
	v, _ = Version("11")
	assert.Equal(t, "11", v.MajorMinor())
}

func TestTrimOrNil(t *testing.T) {
	assert.Nil(t, TrimOrNil("   "))
	assert.Nil(t, TrimOrNil(nil))
	assert.Equal(t, "Server", TrimOrNil(" Server\n"))
	assert.Equal(t, uint64(3), TrimOrNil(uint64(3)))
	assert.Equal(t, "x", Trim("\tx "))
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 minutes"},
		{60, "1 minute"},
		{300, "5 minutes"},
		{3600 + 5*60, "1:05 hours"},
		{23*3600 + 59*60, "23:59 hours"},
		{86400, "1 day"},
		{86400*2 - 1, "1 day"},
		{86400 * 3, "3 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Seconds(tt.in), "Seconds(%d)", tt.in)
	}
}
