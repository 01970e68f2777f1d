//go:build linux || darwin || freebsd

package source

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sysfacts/errors"
)

func TestLocalRun_QuotedArguments(t *testing.T) {
	src := Local(Options{CommandTimeout: 5 * time.Second})

	out, err := src.Run(context.Background(), `sh -c 'echo first && echo "second line"'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second line"}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestLocalRun_Timeout(t *testing.T) {
	src := Local(Options{CommandTimeout: 100 * time.Millisecond})

	start := time.Now()
	_, err := src.Run(context.Background(), "sleep 5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTimeout))
	assert.Less(t, time.Since(start), 4*time.Second, "the command must be killed at the deadline")
}

func TestLocalRun_FailureCarriesStderr(t *testing.T) {
	src := Local(Options{CommandTimeout: 5 * time.Second})

	_, err := src.Run(context.Background(), `sh -c 'echo permission denied >&2; exit 3'`)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenDetails(err), "permission denied")
}
