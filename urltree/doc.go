// Package urltree implements the URL tree data model, parser, and
// serializer described in spec.md §3 and §4.1 (component C1): a grammar
// with primary and named outlets, matrix parameters, query parameters, and
// a fragment.
//
// The grammar (bit-exact, matters for external compatibility):
//
//	urltree   = "/"? children ("?" query)? ("#" fragment)?
//	children  = segment ( "/" segment )* ( "/"? "(" group ")" )?
//	          | "(" group ")"
//	group     = outletBlock ( "//" outletBlock )*
//	outletBlock = ( name ":" )? children
//	segment   = pathToken (";" matrixParam)*
//	matrixParam = key ("=" value)?
//	query     = qparam ("&" qparam)*
//	qparam    = key ("=" value)?
package urltree

// PrimaryOutlet is the reserved name for the default outlet.
const PrimaryOutlet = "primary"
