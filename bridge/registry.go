package bridge

import (
	"log/slog"
	"os"
	"reflect"
	"sync"

	"duck-bridge/convert"
	"duck-bridge/internal/emit"
	"duck-bridge/internal/match"
	"duck-bridge/internal/plan"
	"duck-bridge/internal/shape"
	"duck-bridge/options"
)

// Registry owns factories, failures and adapters of one bridging universe.
// Registries share nothing; two of them may bridge the same spec differently.
type Registry struct {
	config   options.Config
	logger   *slog.Logger
	catalog  *shape.Catalog
	emitter  *emit.Emitter
	casters  *convert.Casters
	chain    *convert.Chain
	matcher  *match.Matcher
	resolver *plan.Resolver
	namer    namer

	// mu guards the maps below under the global-lock sync mode.
	mu        sync.Mutex
	factories map[Spec]Factory
	failed    map[Spec]error
	building  map[Spec]struct{}

	routinesMu sync.Mutex
	routines   map[Spec]*routine

	// adapters indexes every live synthesized adapter by identity.
	adapters *identityTable
}

// New creates a Registry. Options are applied in order.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		config:    options.Default(),
		logger:    slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		catalog:   shape.NewCatalog(),
		emitter:   emit.NewEmitter(),
		factories: make(map[Spec]Factory),
		failed:    make(map[Spec]error),
		building:  make(map[Spec]struct{}),
		routines:  make(map[Spec]*routine),
		adapters:  newIdentityTable(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.chain = convert.Build(r.config.Scalars, r.casters)
	r.matcher = match.NewMatcher(r.catalog, r.config.Enums, r.chain)
	r.resolver = plan.NewResolver(r.matcher, r.catalog, plan.ConfigFrom(r.config))
	r.namer = newNamer(r.config.Naming)

	return r, nil
}

// Config returns the configuration in effect.
func (r *Registry) Config() options.Config {
	return r.config
}

// Catalog returns the catalog consulted by the registry.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// RegisterShim installs the shim emitting adapters of the interface I.
func RegisterShim[I any](r *Registry, shim Shim) error {
	return r.emitter.Register(reflect.TypeFor[I](), shim)
}

func (r *Registry) lock() func() {
	if r.config.Sync != options.SyncGlobalLock {
		return func() {}
	}

	r.mu.Lock()

	return r.mu.Unlock
}

// GetFactory returns the factory of spec if one was already created.
func (r *Registry) GetFactory(spec Spec) (Factory, bool) {
	defer r.lock()()

	if _, ok := r.building[spec]; ok {
		return nil, false
	}

	f, ok := r.factories[spec]

	return f, ok
}

// ObtainFactory returns the factory of spec, creating it on first use.
// A spec that failed once fails again with the same error.
func (r *Registry) ObtainFactory(spec Spec) (Factory, error) {
	defer r.lock()()

	return r.obtain(spec)
}

// obtain is ObtainFactory for callers already holding the lock.
func (r *Registry) obtain(spec Spec) (Factory, error) {
	if f, ok := r.factories[spec]; ok {
		r.logger.Debug("factory cache hit", "spec", spec.String(), "kind", f.Kind().String())
		return f, nil
	}

	if err, ok := r.failed[spec]; ok {
		r.logger.Warn("bridge spec failed before", "spec", spec.String(), "error", err)
		return nil, err
	}

	r.logger.Debug("factory cache miss", "spec", spec.String())

	kind, err := r.classify(spec)
	if err != nil {
		r.failed[spec] = err
		return nil, err
	}

	f, err := r.build(spec, kind)
	if err != nil {
		r.failed[spec] = err
		return nil, err
	}

	r.factories[spec] = f

	sf, ok := f.(*synthesized)
	if !ok {
		return f, nil
	}

	r.building[spec] = struct{}{}
	err = sf.prepare()
	delete(r.building, spec)

	if err != nil {
		delete(r.factories, spec)
		r.failed[spec] = err
		r.logger.Warn("adapter synthesis failed", "spec", spec.String(), "error", err)

		return nil, err
	}

	r.logger.Info("adapter synthesized", "spec", spec.String(), "kind", kind.String(), "adapter", sf.name)

	return sf, nil
}

// Plan resolves the member mapping of a contract spec without synthesizing it.
func (r *Registry) Plan(spec Spec) (*AdapterPlan, error) {
	return r.resolver.Resolve(spec)
}
