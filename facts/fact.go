// Package facts turns resolver values into named fact records.
//
// A Definition reads one or more sub-values from exactly one domain,
// applies a display transform and emits a primary record plus one legacy
// record per alias. Definitions never touch the operating system and
// never cache; that is the resolvers' job.
package facts

import (
	"context"

	"github.com/teranos/sysfacts/domains"
	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/resolver"
)

// Kind tags a record as the primary name or a legacy alias
type Kind string

const (
	KindPrimary Kind = "primary"
	KindLegacy  Kind = "legacy"
)

// ResolvedFact is one output record. Records are values; nothing mutates
// them after emission.
type ResolvedFact struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value any    `json:"value" yaml:"value" toml:"value"`
	Kind  Kind   `json:"kind" yaml:"kind" toml:"kind"`
}

// Resolver is the slice of the domain registry a fact needs
type Resolver interface {
	Resolve(ctx context.Context, d domains.Domain, sub resolver.SubValue) (any, error)
}

var _ Resolver = (*domains.Registry)(nil)

// Transform builds the display value from the resolved sub-values. Absent
// sub-values are present in the map as nil.
type Transform func(values resolver.Values) any

// Definition describes one fact
type Definition struct {
	Name      string
	Aliases   []string
	Domain    domains.Domain
	SubValues []resolver.SubValue
	// Transform defaults to the raw value of the first sub-value
	Transform Transform
	// Confine lists the GOOS values the fact applies to; empty means all
	Confine []string
}

// Applies reports whether the fact is meaningful on goos
func (d Definition) Applies(goos string) bool {
	if len(d.Confine) == 0 {
		return true
	}
	for _, c := range d.Confine {
		if c == goos {
			return true
		}
	}
	return false
}

// Names returns the primary name followed by the aliases
func (d Definition) Names() []string {
	return append([]string{d.Name}, d.Aliases...)
}

// Resolve reads the definition's sub-values and emits its records. Absent
// data yields nil values, not an error; errors are reserved for undeclared
// sub-values and cancelled contexts.
func (d Definition) Resolve(ctx context.Context, res Resolver) ([]ResolvedFact, error) {
	if len(d.SubValues) == 0 {
		return nil, errors.AssertionFailedf("fact %s reads no sub-values", d.Name)
	}

	values := make(resolver.Values, len(d.SubValues))
	for _, sub := range d.SubValues {
		v, err := res.Resolve(ctx, d.Domain, sub)
		if err != nil {
			return nil, errors.Wrapf(err, "fact %s", d.Name)
		}
		values[sub] = v
	}

	var value any
	if d.Transform != nil {
		value = d.Transform(values)
	} else {
		value = values[d.SubValues[0]]
	}
	return d.records(value), nil
}

// records emits the primary record and one legacy record per alias, all
// carrying value
func (d Definition) records(value any) []ResolvedFact {
	out := make([]ResolvedFact, 0, 1+len(d.Aliases))
	out = append(out, ResolvedFact{Name: d.Name, Value: value, Kind: KindPrimary})
	for _, alias := range d.Aliases {
		out = append(out, ResolvedFact{Name: alias, Value: value, Kind: KindLegacy})
	}
	return out
}
