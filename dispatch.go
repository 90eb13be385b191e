package hxasset

import (
	"context"
	"errors"
)

// Register hands asset to the host's kind-specific register primitive.
//
// It returns false without calling anything when the primitive is unbound;
// that is expected outside a real host (tests, tooling) and is not an error.
// Otherwise the source is resolved (a provider is called once, with asset as
// argument) and the host's answer is returned. The only error is a failing
// source provider, wrapped with ErrSourceProvider.
func (r *Registry) Register(ctx context.Context, asset Asset) (bool, error) {
	if isNil(asset) {
		return false, nil
	}
	if !r.host.CanRegister(asset.Kind()) {
		r.logger.DebugContext(ctx, "hxasset: register primitive unavailable", "asset", asset)
		return false, nil
	}

	src, err := asset.Source().Resolve(ctx, asset)
	if err != nil {
		return false, err
	}

	var ok bool
	switch a := asset.(type) {
	case *Script:
		ok = r.host.RegisterScript(ctx, scriptArgs(a, src))
	case *Style:
		ok = r.host.RegisterStyle(ctx, styleArgs(a, src))
	}
	if ok {
		r.markRegistered(asset)
	}
	return ok, nil
}

// Enqueue hands the entry's asset to the host's kind-specific enqueue primitive.
//
// It returns false without error when the primitive is unbound or the
// entry's predicate returns false. The source is resolved exactly as in
// Register. Enqueue does not look at RegisterOnly: calling it directly on a
// register-only entry enqueues it.
func (r *Registry) Enqueue(ctx context.Context, e *Entry) (bool, error) {
	err := r.enqueue(ctx, e)
	if err == nil {
		return true, nil
	}
	if IsSkip(err) {
		return false, nil
	}
	return false, err
}

// enqueue returns nil when the host was called, a skip reason
// (ErrHostUnavailable, ErrDisabled) or a provider error otherwise.
func (r *Registry) enqueue(ctx context.Context, e *Entry) error {
	if e == nil || isNil(e.asset) {
		return ErrHostUnavailable
	}
	asset := e.asset
	if !r.host.CanEnqueue(asset.Kind()) {
		r.logger.DebugContext(ctx, "hxasset: enqueue primitive unavailable", "asset", asset)
		return ErrHostUnavailable
	}
	if !e.isEnabled(ctx) {
		r.logger.DebugContext(ctx, "hxasset: entry disabled", "asset", asset, "location", e.location)
		return ErrDisabled
	}

	src, err := asset.Source().Resolve(ctx, asset)
	if err != nil {
		return err
	}

	switch a := asset.(type) {
	case *Script:
		r.host.EnqueueScript(ctx, scriptArgs(a, src))
	case *Style:
		r.host.EnqueueStyle(ctx, styleArgs(a, src))
	}
	return nil
}

// Skip records an entry that was not enqueued during a dispatch cycle.
type Skip struct {
	Entry  *Entry
	Reason error // ErrHostUnavailable, ErrDisabled, or a provider error
}

// Report describes one dispatch cycle.
type Report struct {
	Location Location
	Enqueued []*Entry
	Skipped  []Skip
}

// Handles returns the handles of the enqueued entries of kind, in order.
func (rep Report) Handles(kind Kind) []string {
	var out []string
	for _, e := range rep.Enqueued {
		if e.Kind() == kind {
			out = append(out, e.handle)
		}
	}
	return out
}

// DispatchForContext enqueues every active entry for location: all scripts,
// then all styles, each in insertion order.
//
// Render-time triggers call this exactly once per page render. Cycles are
// serialized, so concurrent calls never interleave. A failing source provider
// skips its entry and the cycle continues; every provider error is returned,
// joined, after the cycle completes.
func (r *Registry) DispatchForContext(ctx context.Context, location Location) (Report, error) {
	r.cycleMu.Lock()
	defer r.cycleMu.Unlock()

	rep := Report{Location: location}
	var errs []error

	for _, kind := range Kinds {
		for e := range r.Enumerate(kind, location) {
			err := r.enqueue(ctx, e)
			switch {
			case err == nil:
				rep.Enqueued = append(rep.Enqueued, e)
			case IsSkip(err):
				rep.Skipped = append(rep.Skipped, Skip{Entry: e, Reason: err})
			default:
				r.logger.ErrorContext(ctx, "hxasset: enqueue failed", "asset", e.asset, "error", err)
				rep.Skipped = append(rep.Skipped, Skip{Entry: e, Reason: err})
				errs = append(errs, err)
			}
		}
	}

	r.logger.DebugContext(ctx, "hxasset: dispatch complete",
		"location", location, "enqueued", len(rep.Enqueued), "skipped", len(rep.Skipped))
	return rep, errors.Join(errs...)
}
