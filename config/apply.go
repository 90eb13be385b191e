package config

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/pthm/hxasset"
)

// Funcs holds the Go functions declarations may refer to by name.
type Funcs struct {
	Predicates map[string]hxasset.Predicate
	Providers  map[string]hxasset.ProviderFunc
}

// PredicateNames returns the registered predicate names, sorted.
func (f Funcs) PredicateNames() []string {
	return slices.Sorted(maps.Keys(f.Predicates))
}

// ProviderNames returns the registered provider names, sorted.
func (f Funcs) ProviderNames() []string {
	return slices.Sorted(maps.Keys(f.Providers))
}

// Asset builds the script or style d declares.
func (d Declaration) Asset(funcs Funcs) (hxasset.Asset, error) {
	src := hxasset.Literal(d.Src)
	if d.Provider != "" {
		fn, ok := funcs.Providers[d.Provider]
		if !ok {
			return nil, fmt.Errorf("%w: %s: provider %q", ErrUnknownFunc, d, d.Provider)
		}
		src = hxasset.Provide(fn)
	}

	switch d.Kind {
	case hxasset.KindScript:
		var opts []hxasset.ScriptOption
		if d.InFooter {
			opts = append(opts, hxasset.InFooter())
		}
		return hxasset.NewScript(d.Handle, src, d.Deps, d.VersionString(), opts...), nil
	case hxasset.KindStyle:
		media, err := hxasset.ParseMedia(d.Media)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDeclaration, d, err)
		}
		return hxasset.NewStyle(d.Handle, src, d.Deps, d.VersionString(), hxasset.WithMedia(media)), nil
	}
	return nil, fmt.Errorf("%w: %s: unknown kind", ErrInvalidDeclaration, d)
}

// AddOptions returns the registry options d declares.
func (d Declaration) AddOptions(funcs Funcs) ([]hxasset.AddOption, error) {
	var opts []hxasset.AddOption
	if d.EnabledIf != "" {
		p, ok := funcs.Predicates[d.EnabledIf]
		if !ok {
			return nil, fmt.Errorf("%w: %s: predicate %q", ErrUnknownFunc, d, d.EnabledIf)
		}
		opts = append(opts, hxasset.EnabledIf(p))
	}
	if d.RegisterOnly {
		opts = append(opts, hxasset.RegisterOnly())
	}
	return opts, nil
}

// Apply validates the configuration, resolves every function name, and only
// then adds the declarations to reg in order. Nothing is added on error.
func (c *Config) Apply(ctx context.Context, reg *hxasset.Registry, funcs Funcs) error {
	if err := c.Validate(); err != nil {
		return err
	}

	type pending struct {
		asset    hxasset.Asset
		location hxasset.Location
		opts     []hxasset.AddOption
	}
	var (
		all  []pending
		errs []error
	)
	for _, d := range c.Declarations {
		asset, err := d.Asset(funcs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		opts, err := d.AddOptions(funcs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, pending{asset, hxasset.Location(d.Location), opts})
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	for _, p := range all {
		reg.Add(ctx, p.asset, p.location, p.opts...)
	}
	return nil
}

// SetupFunc returns a function that applies c to a registry, suitable for
// page.Middleware.
func (c *Config) SetupFunc(funcs Funcs) func(ctx context.Context, reg *hxasset.Registry) error {
	return func(ctx context.Context, reg *hxasset.Registry) error {
		return c.Apply(ctx, reg, funcs)
	}
}
