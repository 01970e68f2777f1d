package domains

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

func newTestRegistry(t *testing.T, src source.Source, goos string) *Registry {
	t.Helper()
	return New(src, Options{
		GOOS:           goos,
		GOARCH:         "amd64",
		OSReleasePaths: []string{"/etc/os-release", "/usr/lib/os-release"},
		MeminfoPath:    "/proc/meminfo",
		Logger:         zaptest.NewLogger(t).Sugar(),
	})
}

// resolveAll resolves every sub-value of d and returns them keyed by name
func resolveAll(t *testing.T, reg *Registry, d Domain) resolver.Values {
	t.Helper()
	out := resolver.Values{}
	for _, sub := range d.SubValues() {
		v, err := reg.Resolve(context.Background(), d, sub)
		require.NoError(t, err)
		out[sub] = v
	}
	return out
}
