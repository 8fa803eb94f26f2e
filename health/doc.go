// Package health provides health checking for the query answering service.
//
// It defines a Checker interface, an Aggregator that combines multiple
// checkers into one composite status, HTTP probe handlers, and a checker
// reporting query cache occupancy and effectiveness.
package health
