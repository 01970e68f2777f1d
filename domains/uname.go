package domains

import (
	"context"
	"strings"

	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

// uname sub-values
const (
	KernelName    resolver.SubValue = "kernel_name"
	NodeName      resolver.SubValue = "node_name"
	KernelRelease resolver.SubValue = "kernel_release"
	KernelVersion resolver.SubValue = "kernel_version"
	Machine       resolver.SubValue = "machine"
	Processor     resolver.SubValue = "processor"
)

// unameCommand prints one field per line, in unameOrder, from one process
const unameCommand = `sh -c "uname -s; uname -n; uname -r; uname -v; uname -m; uname -p"`

var unameOrder = []resolver.SubValue{KernelName, NodeName, KernelRelease, KernelVersion, Machine, Processor}

func acquireUname(src source.Source, opts Options) resolver.AcquireFunc {
	return func(ctx context.Context) (resolver.Values, error) {
		out, err := src.Run(ctx, unameCommand)
		if err != nil {
			return nil, err
		}
		return parseUname(out), nil
	}
}

// parseUname maps output lines onto unameOrder. Missing or blank lines, and
// the "unknown" placeholder some systems print for -p, leave the slot nil.
func parseUname(out string) resolver.Values {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	values := resolver.Values{}
	for i, sub := range unameOrder {
		if i >= len(lines) {
			break
		}
		line := strings.TrimSpace(lines[i])
		values.Set(sub, line, line != "" && line != "unknown")
	}
	return values
}
