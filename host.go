package hxasset

import "context"

// ScriptArgs is the parameter set handed to the host's script primitives.
type ScriptArgs struct {
	Handle   string
	Src      string
	Deps     []string
	Version  string
	InFooter bool
}

// StyleArgs is the parameter set handed to the host's style primitives.
type StyleArgs struct {
	Handle  string
	Src     string
	Deps    []string
	Version string
	Media   Media
}

// Host binds the asset platform primitives the registry dispatches to.
//
// Any field may be nil. A nil primitive is unbound: Register and Enqueue
// check for it and report failure without calling anything. The zero Host is
// therefore valid and useful in tests or tooling that only inspects the
// registry.
//
// The host owns everything the registry treats as opaque: dependency
// resolution, ordering, and how tags end up in the document.
type Host struct {
	RegisterScript func(ctx context.Context, args ScriptArgs) bool
	RegisterStyle  func(ctx context.Context, args StyleArgs) bool
	EnqueueScript  func(ctx context.Context, args ScriptArgs)
	EnqueueStyle   func(ctx context.Context, args StyleArgs)
}

// Platform is implemented by complete host platforms such as page.Assets.
type Platform interface {
	RegisterScript(ctx context.Context, args ScriptArgs) bool
	RegisterStyle(ctx context.Context, args StyleArgs) bool
	EnqueueScript(ctx context.Context, args ScriptArgs)
	EnqueueStyle(ctx context.Context, args StyleArgs)
}

// HostOf binds all four primitives of p.
func HostOf(p Platform) Host {
	if p == nil {
		return Host{}
	}
	return Host{
		RegisterScript: p.RegisterScript,
		RegisterStyle:  p.RegisterStyle,
		EnqueueScript:  p.EnqueueScript,
		EnqueueStyle:   p.EnqueueStyle,
	}
}

// CanRegister reports whether the register primitive for k is bound.
func (h Host) CanRegister(k Kind) bool {
	switch k {
	case KindScript:
		return h.RegisterScript != nil
	case KindStyle:
		return h.RegisterStyle != nil
	}
	return false
}

// CanEnqueue reports whether the enqueue primitive for k is bound.
func (h Host) CanEnqueue(k Kind) bool {
	switch k {
	case KindScript:
		return h.EnqueueScript != nil
	case KindStyle:
		return h.EnqueueStyle != nil
	}
	return false
}

func scriptArgs(s *Script, src string) ScriptArgs {
	return ScriptArgs{
		Handle:   s.Handle(),
		Src:      src,
		Deps:     s.Dependencies(),
		Version:  s.Version(),
		InFooter: s.InFooter(),
	}
}

func styleArgs(s *Style, src string) StyleArgs {
	return StyleArgs{
		Handle:  s.Handle(),
		Src:     src,
		Deps:    s.Dependencies(),
		Version: s.Version(),
		Media:   s.Media(),
	}
}
