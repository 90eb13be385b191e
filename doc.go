// Package hxasset collects the scripts and stylesheets a page needs and
// hands them to a host asset platform at render time.
//
// Application code declares assets up front, each with a handle, a source,
// dependency handles and a version, and files them in a Registry under the
// page context they belong to:
//
//	reg := hxasset.NewRegistry(hxasset.HostOf(assets))
//	reg.Add(ctx, hxasset.NewScript("app-js", hxasset.Literal("/static/app.js"), []string{"htmx"}, "1.4.0",
//	    hxasset.InFooter()), hxasset.LocationFrontend)
//	reg.Add(ctx, hxasset.NewStyle("admin-css", hxasset.Literal("/static/admin.css"), nil, hxasset.VersionAuto),
//	    hxasset.LocationBackend)
//
// When the page renders, a single call enqueues everything active for that
// location:
//
//	report, err := reg.DispatchForContext(ctx, hxasset.LocationFrontend)
//
// # Sources
//
// A source is either a literal URL or a ProviderFunc that computes the URL
// from the asset itself when it is registered or enqueued. Providers are
// called once per host call and never when the host primitive is unbound.
//
// # Hosts
//
// The registry does not render tags or order dependencies. Those belong to
// the Host, a set of four primitives (register and enqueue, for scripts and
// styles). Any primitive may be nil; the registry checks before calling and
// treats an unbound primitive as "nothing to do". Package page provides a
// complete host that renders tags with templ, and RecordingHost records calls
// for tests.
//
// # Entries
//
// Every Add is kept as an Entry. For a given handle, kind and location the
// most recent entry wins. Entries can carry an EnabledIf predicate evaluated
// per dispatch, or be RegisterOnly: registered immediately and never
// enqueued by dispatch, so other assets can depend on them.
package hxasset
