// Package vangoroute is a client-side URL router core modeled on the
// Angular Router's internals: URL parsing and serialization, redirect
// expansion, route recognition, router-state diffing with component reuse,
// guard/resolver preactivation, and a serialized navigation scheduler.
//
// The package owns none of the surrounding application: the component/view
// renderer, the browser location adapter, lazy module loading mechanics
// beyond their contract, link directives, and preloader heuristics are all
// external collaborators the caller supplies (see package collab).
//
// Router is the facade most callers need:
//
//	r, err := vangoroute.New(vangoroute.Config{
//		Routes:   routes,
//		Location: myLocationAdapter,
//		Outlet:   myOutletAdapter,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	ok, err := r.NavigateByUrl(ctx, "/team/7")
package vangoroute
