// Package resolver implements the per-domain caching protocol shared by every
// fact domain.
//
// A Resolver owns the cache for one domain. The first Resolve for any of the
// domain's sub-values runs the domain's acquisition once and stores a slot for
// every declared sub-value, including the ones nobody asked for yet. Later
// calls are served from that cache until InvalidateCache.
//
// The cache is either empty or fully populated. A sub-value whose data was
// missing is stored as nil, which is a real answer and distinct from
// "not resolved yet". An acquisition that fails outright is cached the same
// way: every slot nil, no retry until invalidation.
package resolver

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/sysfacts/errors"
	"github.com/teranos/sysfacts/logger"
)

// SubValue names one value inside a domain (e.g. "total_bytes")
type SubValue string

// Values maps sub-values to resolved values. A nil value means the OS had
// no data for that slot.
type Values map[SubValue]any

// AcquireFunc performs a domain's full acquisition. It returns whatever
// slots it could fill; missing slots are stored as nil. A non-nil error
// means the acquisition failed as a whole and any returned values are
// discarded.
type AcquireFunc func(ctx context.Context) (Values, error)

// DefaultAcquisitionTimeout bounds one acquisition when no option is given
const DefaultAcquisitionTimeout = 10 * time.Second

// Option configures a Resolver
type Option func(*Resolver)

// WithTimeout bounds every acquisition. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithLogger sets the logger used for acquisition diagnostics
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver caches one domain's values
type Resolver struct {
	name     string
	declared map[SubValue]struct{}
	order    []SubValue
	acquire  AcquireFunc
	timeout  time.Duration
	logger   *zap.SugaredLogger

	mu    sync.RWMutex
	cache Values // nil until populated

	acquisitions atomic.Int64
}

// New creates a Resolver for the named domain. subValues is the closed set
// of identifiers the domain can produce; acquire must be able to fill any
// subset of them.
func New(name string, subValues []SubValue, acquire AcquireFunc, opts ...Option) *Resolver {
	r := &Resolver{
		name:     name,
		declared: make(map[SubValue]struct{}, len(subValues)),
		order:    append([]SubValue(nil), subValues...),
		acquire:  acquire,
		timeout:  DefaultAcquisitionTimeout,
		logger:   logger.ComponentLogger("resolver"),
	}
	for _, sv := range subValues {
		r.declared[sv] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.FieldDomain, name)
	return r
}

// Name returns the domain name
func (r *Resolver) Name() string {
	return r.name
}

// SubValues returns the declared sub-values in declaration order
func (r *Resolver) SubValues() []SubValue {
	return append([]SubValue(nil), r.order...)
}

// Acquisitions returns how many times the acquisition procedure ran
func (r *Resolver) Acquisitions() int {
	return int(r.acquisitions.Load())
}

// Resolve returns the cached value of sub, acquiring the whole domain first
// if the cache is empty.
//
// The returned error is non-nil only for an undeclared sub-value
// (errors.ErrUnknownSubValue) or when ctx is done by the time the
// acquisition returns. A successful acquisition is cached even then. OS
// failures never surface here; they resolve to nil.
func (r *Resolver) Resolve(ctx context.Context, sub SubValue) (any, error) {
	if _, ok := r.declared[sub]; !ok {
		return nil, errors.Wrapf(errors.ErrUnknownSubValue, "%s.%s", r.name, sub)
	}

	r.mu.RLock()
	if r.cache != nil {
		v := r.cache[sub]
		r.mu.RUnlock()
		return v, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have populated the cache while we waited
	if r.cache == nil {
		if err := r.populate(ctx); err != nil {
			return nil, err
		}
	}
	return r.cache[sub], nil
}

// Snapshot returns a copy of the whole cache, acquiring first if needed.
// The copy always holds every declared sub-value.
func (r *Resolver) Snapshot(ctx context.Context) (Values, error) {
	if len(r.order) == 0 {
		return Values{}, nil
	}
	for {
		if _, err := r.Resolve(ctx, r.order[0]); err != nil {
			return nil, err
		}

		r.mu.RLock()
		if r.cache != nil {
			out := make(Values, len(r.cache))
			for k, v := range r.cache {
				out[k] = v
			}
			r.mu.RUnlock()
			return out, nil
		}
		// Invalidated between Resolve and RLock
		r.mu.RUnlock()
	}
}

// InvalidateCache drops every cached value; the next Resolve re-acquires
func (r *Resolver) InvalidateCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = nil
}

// populate runs the acquisition and writes the full cache. Callers hold mu.
func (r *Resolver) populate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "resolve %s", r.name)
	}

	acqCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		acqCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log := r.logger.With(logger.FieldsFromContext(ctx)...)
	start := time.Now()
	values, err := r.runAcquire(acqCtx)
	r.acquisitions.Add(1)
	elapsed := time.Since(start).Milliseconds()

	cache := make(Values, len(r.order))
	for _, sv := range r.order {
		cache[sv] = nil
	}

	if err != nil {
		// A failure after the caller gave up says nothing about the OS
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Wrapf(ctxErr, "resolve %s", r.name)
		}
		log.Warnw("Acquisition failed, domain resolves to nil until invalidated",
			logger.FieldError, err.Error(),
			logger.FieldDurationMS, elapsed)
		r.cache = cache
		return nil
	}

	for sv, v := range values {
		if _, ok := r.declared[sv]; !ok {
			log.Debugw("Dropping undeclared sub-value from acquisition", logger.FieldSubValue, string(sv))
			continue
		}
		cache[sv] = v
	}

	r.cache = cache
	log.Debugw("Acquired domain",
		logger.FieldCount, len(values),
		logger.FieldDurationMS, elapsed)

	// The values are kept for later callers; this one still learns it gave up
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrapf(ctxErr, "resolve %s", r.name)
	}
	return nil
}

// runAcquire calls the acquisition, converting a panic into a failure so one
// broken domain cannot take down the whole gather.
func (r *Resolver) runAcquire(ctx context.Context) (values Values, err error) {
	defer func() {
		if p := recover(); p != nil {
			values = nil
			err = errors.AssertionFailedf("acquisition of %s panicked: %s", r.name, fmt.Sprint(p))
		}
	}()
	return r.acquire(ctx)
}
