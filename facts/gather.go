package facts

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/logger"
)

// DefaultWorkers bounds concurrent fact evaluation when no option is given
const DefaultWorkers = 4

// GatherOptions configures a Gatherer
type GatherOptions struct {
	// Workers bounds how many definitions are evaluated at once
	Workers int
	// GOOS confines definitions; empty means the running platform
	GOOS string
	// Legacy includes alias records in unfiltered and prefix queries.
	// A query naming an alias exactly always returns it.
	Legacy bool
	Logger *zap.SugaredLogger
}

// Gatherer evaluates a set of definitions against a resolver
type Gatherer struct {
	res     Resolver
	defs    []Definition
	workers int
	goos    string
	legacy  bool
	logger  *zap.SugaredLogger
}

// NewGatherer creates a Gatherer over defs
func NewGatherer(res Resolver, defs []Definition, opts GatherOptions) *Gatherer {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Logger == nil {
		opts.Logger = logger.ComponentLogger("facts")
	}
	return &Gatherer{
		res:     res,
		defs:    defs,
		workers: opts.Workers,
		goos:    opts.GOOS,
		legacy:  opts.Legacy,
		logger:  opts.Logger,
	}
}

// Definitions returns the definitions that apply to the gatherer's platform
func (g *Gatherer) Definitions() []Definition {
	out := make([]Definition, 0, len(g.defs))
	for _, def := range g.defs {
		if def.Applies(g.goos) {
			out = append(out, def)
		}
	}
	return out
}

// Gather resolves every applicable definition matching queries and returns
// the records sorted by name. With no queries every primary record is
// returned. A query is either an exact fact name or a dotted prefix
// ("memory" matches "memory.swap.total"). A query matching nothing yields a
// single nil record under the query name.
//
// A definition that fails degrades to nil values; only cancellation of ctx
// aborts the run. Failures that point at the definition itself (an
// undeclared sub-value, a violated assertion) are logged at error level.
func (g *Gatherer) Gather(ctx context.Context, queries ...string) ([]ResolvedFact, error) {
	runID := uuid.New().String()
	ctx = logger.WithRunID(ctx, runID)
	log := g.logger.With(logger.FieldsFromContext(ctx)...)
	start := time.Now()

	var selected []Definition
	for _, def := range g.Definitions() {
		if g.selects(def, queries) {
			selected = append(selected, def)
		}
	}

	results := make([][]ResolvedFact, len(selected))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, def := range selected {
		i, def := i, def
		eg.Go(func() error {
			records, err := def.Resolve(egCtx, g.res)
			if err != nil {
				if ctxErr := egCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				fields := []interface{}{
					logger.FieldFact, def.Name,
					logger.FieldDomain, def.Domain.String(),
					logger.FieldError, err.Error(),
				}
				if errors.IsUnknownSubValue(err) || errors.IsAssertionFailure(err) {
					// A broken definition, not missing data
					log.Errorw("Fact definition is invalid, reporting nil", fields...)
				} else {
					log.Warnw("Fact failed, reporting nil", fields...)
				}
				records = def.records(nil)
			}
			results[i] = records
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "gather interrupted")
	}

	var out []ResolvedFact
	for _, records := range results {
		for _, f := range records {
			if g.keep(f, queries) {
				out = append(out, f)
			}
		}
	}
	out = append(out, unmatched(out, queries)...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	log.Infow("Gathered facts",
		logger.FieldCount, len(out),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return out, nil
}

// selects reports whether any record of def could survive keep
func (g *Gatherer) selects(def Definition, queries []string) bool {
	if len(queries) == 0 {
		return true
	}
	for _, name := range def.Names() {
		for _, q := range queries {
			if matches(name, q) {
				return true
			}
		}
	}
	return false
}

func (g *Gatherer) keep(f ResolvedFact, queries []string) bool {
	visible := f.Kind == KindPrimary || g.legacy
	if len(queries) == 0 {
		return visible
	}
	for _, q := range queries {
		if f.Name == q {
			return true
		}
		if visible && matches(f.Name, q) {
			return true
		}
	}
	return false
}

// matches reports whether name is q or lies below q in the dotted namespace
func matches(name, q string) bool {
	return name == q || strings.HasPrefix(name, q+".")
}

// unmatched returns a nil record for every query no record answered
func unmatched(records []ResolvedFact, queries []string) []ResolvedFact {
	var out []ResolvedFact
	seen := make(map[string]bool, len(queries))
	for _, q := range queries {
		if seen[q] {
			continue
		}
		seen[q] = true
		found := false
		for _, f := range records {
			if matches(f.Name, q) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, ResolvedFact{Name: q, Kind: KindPrimary})
		}
	}
	return out
}
