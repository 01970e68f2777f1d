package domains

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/sysfacts/config"
	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/logger"
	"github.com/teranos/sysfacts/resolver"
	"github.com/teranos/sysfacts/source"
)

// Options configures how domains acquire their data
type Options struct {
	// GOOS and GOARCH select platform-specific acquisitions. Empty means
	// the running platform.
	GOOS   string
	GOARCH string

	// AcquisitionTimeout bounds every acquisition. Zero uses
	// resolver.DefaultAcquisitionTimeout.
	AcquisitionTimeout time.Duration

	OSReleasePaths []string
	MeminfoPath    string

	Logger *zap.SugaredLogger
}

// OptionsFromConfig derives registry options from loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AcquisitionTimeout: cfg.AcquisitionTimeout(),
		OSReleasePaths:     cfg.Source.OSReleasePaths,
		MeminfoPath:        cfg.Source.MeminfoPath,
	}
}

func (o Options) withDefaults() Options {
	if o.GOOS == "" {
		o.GOOS = runtime.GOOS
	}
	if o.GOARCH == "" {
		o.GOARCH = runtime.GOARCH
	}
	if o.AcquisitionTimeout == 0 {
		o.AcquisitionTimeout = resolver.DefaultAcquisitionTimeout
	}
	if len(o.OSReleasePaths) == 0 {
		o.OSReleasePaths = config.DefaultOSReleasePaths
	}
	if o.MeminfoPath == "" {
		o.MeminfoPath = config.DefaultMeminfoPath
	}
	if o.Logger == nil {
		o.Logger = logger.ComponentLogger("domains")
	}
	return o
}

// acquirers maps every domain to the builder of its acquisition
var acquirers = [domainCount]func(src source.Source, opts Options) resolver.AcquireFunc{
	ProductRelease: acquireProductRelease,
	SwapMemory:     acquireSwapMemory,
	SystemMemory:   acquireSystemMemory,
	OSRelease:      acquireOSRelease,
	Uname:          acquireUname,
	Processors:     acquireProcessors,
	Host:           acquireHost,
}

// Registry holds one resolver per domain. Resolvers are built eagerly by
// New and live as long as the Registry; the set never changes afterwards.
type Registry struct {
	resolvers [domainCount]*resolver.Resolver
	logger    *zap.SugaredLogger
}

// New builds a resolver for every domain over src
func New(src source.Source, opts Options) *Registry {
	opts = opts.withDefaults()
	r := &Registry{logger: opts.Logger}
	for _, d := range All() {
		r.resolvers[d] = resolver.New(d.String(), subValues[d], acquirers[d](src, opts),
			resolver.WithTimeout(opts.AcquisitionTimeout),
			resolver.WithLogger(opts.Logger.Named(d.String())))
	}
	return r
}

// Resolver returns the resolver owning d
func (r *Registry) Resolver(d Domain) (*resolver.Resolver, error) {
	if !d.valid() {
		return nil, errors.Wrapf(errors.ErrUnknownDomain, "domain %d", int(d))
	}
	return r.resolvers[d], nil
}

// Resolve forwards to the resolver of d
func (r *Registry) Resolve(ctx context.Context, d Domain, sub resolver.SubValue) (any, error) {
	res, err := r.Resolver(d)
	if err != nil {
		return nil, err
	}
	return res.Resolve(ctx, sub)
}

// Invalidate clears the cache of d only
func (r *Registry) Invalidate(d Domain) error {
	res, err := r.Resolver(d)
	if err != nil {
		return err
	}
	res.InvalidateCache()
	return nil
}

// InvalidateAll clears every domain cache
func (r *Registry) InvalidateAll() {
	for _, res := range r.resolvers {
		res.InvalidateCache()
	}
	r.logger.Debugw("Invalidated all domain caches", logger.FieldCount, len(r.resolvers))
}

// Domains returns every domain the registry serves
func (r *Registry) Domains() []Domain {
	return All()
}

// Acquisitions reports how many acquisitions each domain has run
func (r *Registry) Acquisitions() map[Domain]int {
	out := make(map[Domain]int, len(r.resolvers))
	for d, res := range r.resolvers {
		out[Domain(d)] = res.Acquisitions()
	}
	return out
}
