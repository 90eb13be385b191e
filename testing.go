package hxasset

import (
	"context"
	"slices"
	"sync"
)

// HostOp names a host primitive recorded by RecordingHost.
type HostOp string

// Host primitives.
const (
	OpRegisterScript HostOp = "register_script"
	OpRegisterStyle  HostOp = "register_style"
	OpEnqueueScript  HostOp = "enqueue_script"
	OpEnqueueStyle   HostOp = "enqueue_style"
)

// HostCall is one recorded invocation of a host primitive.
type HostCall struct {
	Op       HostOp
	Handle   string
	Src      string
	Deps     []string
	Version  string
	InFooter bool
	Media    Media
}

// Kind returns the asset kind the call was made for.
func (c HostCall) Kind() Kind {
	if c.Op == OpRegisterStyle || c.Op == OpEnqueueStyle {
		return KindStyle
	}
	return KindScript
}

// RecordingHost is a Host that records every primitive invocation.
//
// Use it to test code that populates a registry without a real page:
//
//	rec := hxasset.NewRecordingHost()
//	reg := hxasset.NewRegistry(rec.Host())
//	reg.Add(ctx, app, hxasset.LocationFrontend)
//	reg.DispatchForContext(ctx, hxasset.LocationFrontend)
//	rec.Handles(hxasset.OpEnqueueScript) // ["app-js"]
//
// Register primitives succeed unless the handle was passed to FailRegister.
type RecordingHost struct {
	mu     sync.Mutex
	calls  []HostCall
	reject map[string]bool
}

// NewRecordingHost creates an empty recording host.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{reject: make(map[string]bool)}
}

// Host binds all four primitives to the recorder.
func (h *RecordingHost) Host() Host {
	return HostOf(h)
}

// FailRegister makes register primitives return false for handle.
func (h *RecordingHost) FailRegister(handle string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reject[handle] = true
}

// RegisterScript records the call and reports success unless rejected.
func (h *RecordingHost) RegisterScript(_ context.Context, args ScriptArgs) bool {
	return h.record(scriptCall(OpRegisterScript, args))
}

// RegisterStyle records the call and reports success unless rejected.
func (h *RecordingHost) RegisterStyle(_ context.Context, args StyleArgs) bool {
	return h.record(styleCall(OpRegisterStyle, args))
}

// EnqueueScript records the call.
func (h *RecordingHost) EnqueueScript(_ context.Context, args ScriptArgs) {
	h.record(scriptCall(OpEnqueueScript, args))
}

// EnqueueStyle records the call.
func (h *RecordingHost) EnqueueStyle(_ context.Context, args StyleArgs) {
	h.record(styleCall(OpEnqueueStyle, args))
}

// Calls returns every recorded call in order.
func (h *RecordingHost) Calls() []HostCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.calls)
}

// CallsFor returns the recorded calls of op in order.
func (h *RecordingHost) CallsFor(op HostOp) []HostCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []HostCall
	for _, c := range h.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Handles returns the handles passed to op, in call order.
func (h *RecordingHost) Handles(op HostOp) []string {
	var out []string
	for _, c := range h.CallsFor(op) {
		out = append(out, c.Handle)
	}
	return out
}

// Count returns how many times op was called.
func (h *RecordingHost) Count(op HostOp) int {
	return len(h.CallsFor(op))
}

// Reset forgets recorded calls. Rejections are kept.
func (h *RecordingHost) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = nil
}

func (h *RecordingHost) record(c HostCall) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, c)
	return !h.reject[c.Handle]
}

func scriptCall(op HostOp, a ScriptArgs) HostCall {
	return HostCall{Op: op, Handle: a.Handle, Src: a.Src, Deps: a.Deps, Version: a.Version, InFooter: a.InFooter}
}

func styleCall(op HostOp, a StyleArgs) HostCall {
	return HostCall{Op: op, Handle: a.Handle, Src: a.Src, Deps: a.Deps, Version: a.Version, Media: a.Media}
}
