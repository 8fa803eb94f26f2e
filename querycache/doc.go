// Package querycache provides exact-match, time-bounded memoization of
// query responses keyed by (query text, project scope).
//
// It sits between the query router and the retrieval+generation pipeline:
// a hit short-circuits the pipeline entirely, a miss runs it and stores the
// fresh payload. Entries expire lazily after a TTL and the store is bounded,
// evicting the oldest-written entry when full.
package querycache
