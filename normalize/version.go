package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionParts is a version string split for display
type VersionParts struct {
	Full   string `json:"full" yaml:"full" toml:"full"`
	Major  string `json:"major" yaml:"major" toml:"major"`
	Minor  string `json:"minor,omitempty" yaml:"minor,omitempty" toml:"minor,omitempty"`
	Patch  string `json:"patch,omitempty" yaml:"patch,omitempty" toml:"patch,omitempty"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty" toml:"suffix,omitempty"`
}

// dottedPrefix matches a numeric dotted version followed by the end of the
// string or a separator ("12.3-RELEASE-p5", "22.04").
var dottedPrefix = regexp.MustCompile(`^(\d+(?:\.\d+)*)(?:[-_+~](.*))?$`)

// Version splits s into full/major/minor.
//
// Strict semantic versions ("5.15.0-91-generic", "10.0.17763") are parsed
// with semver; Full drops the pre-release suffix, which lands in Suffix.
// Other dotted numeric versions ("22.04", "12.3-RELEASE-p5") keep their
// segments verbatim, leading zeros included. Anything else ("21H2",
// "bookworm/sid") returns ok=false with Full set to the trimmed input.
func Version(s string) (VersionParts, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return VersionParts{}, false
	}

	if v, err := semver.StrictNewVersion(strings.TrimPrefix(s, "v")); err == nil {
		major := strconv.FormatUint(v.Major(), 10)
		minor := strconv.FormatUint(v.Minor(), 10)
		patch := strconv.FormatUint(v.Patch(), 10)
		return VersionParts{
			Full:   major + "." + minor + "." + patch,
			Major:  major,
			Minor:  minor,
			Patch:  patch,
			Suffix: v.Prerelease(),
		}, true
	}

	m := dottedPrefix.FindStringSubmatch(s)
	if m == nil {
		return VersionParts{Full: s}, false
	}

	segments := strings.Split(m[1], ".")
	parts := VersionParts{Full: m[1], Major: segments[0], Suffix: m[2]}
	if len(segments) > 1 {
		parts.Minor = segments[1]
	}
	if len(segments) > 2 {
		parts.Patch = segments[2]
	}
	return parts, true
}

// MajorMinor returns "major.minor" (or just major when there is no minor)
func (p VersionParts) MajorMinor() string {
	if p.Minor == "" {
		return p.Major
	}
	return p.Major + "." + p.Minor
}
