// Package observe provides observability primitives for query answering.
//
// It is a pure instrumentation library: no retrieval, no generation, no I/O
// beyond exporter setup. Consumers wire the observer into the query pipeline
// or into server middleware.
package observe
