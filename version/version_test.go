package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	dev := Info{Version: "dev", CommitHash: "abc", BuildTime: "unknown"}
	assert.Equal(t, "sysfacts dev (commit abc, built unknown)", dev.String())

	tagged := Info{Version: "v0.3.0", CommitHash: "0123456789", BuildTime: "2026-10-01"}
	assert.Equal(t, "sysfacts v0.3.0 (commit 0123456789, built 2026-10-01)", tagged.String())
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "0123456", Info{CommitHash: "0123456789"}.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}
