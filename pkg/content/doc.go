// Package content is the read-only query layer over the hosted blog store.
//
// Client runs the three page queries, normalises documents into Post values
// and never surfaces store failures: callers get empty lists or a not-found
// result instead. Results can be cached in memory or Redis, and concurrent
// identical fetches share one store round trip.
package content
