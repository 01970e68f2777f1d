package facts

import (
	"github.com/teranos/sysfacts/normalize"
	"github.com/teranos/sysfacts/resolver"
)

// Transforms shared by the catalog. Each maps absent input to nil.

func humanBytes(sub resolver.SubValue) Transform {
	return func(v resolver.Values) any {
		n, ok := resolver.Uint64(v[sub])
		if !ok {
			return nil
		}
		return normalize.Bytes(n)
	}
}

func humanHertz(sub resolver.SubValue) Transform {
	return func(v resolver.Values) any {
		n, ok := resolver.Uint64(v[sub])
		if !ok {
			return nil
		}
		return normalize.Hertz(n)
	}
}

// versionPart picks one part of a version string. Strings that do not
// parse as versions keep their full form and have no major or minor.
func versionPart(sub resolver.SubValue, part func(normalize.VersionParts) string) Transform {
	return func(v resolver.Values) any {
		s, ok := resolver.String(v[sub])
		if !ok {
			return nil
		}
		parts, _ := normalize.Version(s)
		return nilIfEmpty(part(parts))
	}
}

func fullVersion(p normalize.VersionParts) string  { return p.Full }
func majorVersion(p normalize.VersionParts) string { return p.Major }
func minorVersion(p normalize.VersionParts) string { return p.Minor }
func majorMinor(p normalize.VersionParts) string   { return p.MajorMinor() }

func uptimeIn(sub resolver.SubValue, unit uint64) Transform {
	return func(v resolver.Values) any {
		n, ok := resolver.Uint64(v[sub])
		if !ok {
			return nil
		}
		return n / unit
	}
}

func uptimeText(sub resolver.SubValue) Transform {
	return func(v resolver.Values) any {
		n, ok := resolver.Uint64(v[sub])
		if !ok {
			return nil
		}
		return normalize.Seconds(n)
	}
}

// virtualSystem reports the hypervisor for guests and "physical" otherwise
func virtualSystem(system, role resolver.SubValue) Transform {
	return func(v resolver.Values) any {
		if r, _ := resolver.String(v[role]); r != "guest" {
			return "physical"
		}
		if s, ok := resolver.String(v[system]); ok {
			return s
		}
		return "physical"
	}
}

func isGuest(role resolver.SubValue) Transform {
	return func(v resolver.Values) any {
		r, _ := resolver.String(v[role])
		return r == "guest"
	}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
